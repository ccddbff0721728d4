package analysis

// Request is the decoded analysis payload. It stays map-backed because the
// calculator frontend sends a loose document: required groups are enforced
// where they are read, optional fields degrade to a placeholder.
type Request map[string]any

// RequestID returns the caller-supplied request id, or "unknown"
func (r Request) RequestID() string {
	if v, ok := r["requestId"].(string); ok && v != "" {
		return v
	}
	return "unknown"
}

// Currency returns the currency code, empty when absent
func (r Request) Currency() string {
	v, _ := r["currency"].(string)
	return v
}

// Group returns a nested object group such as propertyData or location.
// A missing group yields an empty map, so optional groups read cleanly.
func (r Request) Group(name string) map[string]any {
	if m, ok := r[name].(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// HasGroup reports whether the group is present and non-empty
func (r Request) HasGroup(name string) bool {
	m, ok := r[name].(map[string]any)
	return ok && len(m) > 0
}
