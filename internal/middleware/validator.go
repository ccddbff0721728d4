package middleware

import (
	"regexp"
	"strings"
)

// Input sanitization utilities

var identifierPattern = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters
	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// SanitizeIdentifier reduces a caller-supplied id to characters safe for
// log lines and object keys (alphanumeric, dash, underscore, max 64 chars)
func SanitizeIdentifier(id string) string {
	id = identifierPattern.ReplaceAllString(SanitizeString(id), "")
	if len(id) > 64 {
		id = id[:64]
	}
	if id == "" {
		return "unknown"
	}
	return id
}
