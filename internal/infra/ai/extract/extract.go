// Package extract turns raw model replies into structured analysis data.
// The model is instructed to emit bare JSON but in practice wraps it in
// commentary or markdown fences, or returns garbage; extraction therefore
// never fails, it degrades to a fallback result.
package extract

import (
	"encoding/json"
	"strings"

	"github.com/bryanwahyu/propsight-ai/internal/domain/analysis"
)

// Outcome is the always-valid result of an extraction attempt. Exactly one
// of Parsed/Fallback describes where Analysis came from.
type Outcome struct {
	Analysis any
	Fallback bool
}

// Extract attempts, in order: the whole text as JSON, the first fenced code
// block, the first-{ to last-} span. Whatever fails, the caller still gets
// a schema-valid analysis.
//
// The brace scan is intentionally first/last rather than depth-balanced:
// a reply with commentary containing a stray } after the real terminator
// over-captures and falls through to the fallback. Kept to match the
// behavior the frontend was built against.
func Extract(text string) Outcome {
	if obj, ok := tryParse(text); ok {
		return Outcome{Analysis: obj}
	}

	stripped := stripFences(text)
	if stripped != text {
		if obj, ok := tryParse(stripped); ok {
			return Outcome{Analysis: obj}
		}
	}

	if obj, ok := tryBraceSpan(stripped); ok {
		return Outcome{Analysis: obj}
	}

	return Outcome{Analysis: analysis.FallbackResult(), Fallback: true}
}

// HasScorecard reports whether an extracted object carries the required
// top-level scorecard key. Typed fallback results always do.
func HasScorecard(v any) bool {
	switch obj := v.(type) {
	case map[string]any:
		_, ok := obj["scorecard"]
		return ok
	case *analysis.Result:
		return true
	}
	return false
}

func tryParse(text string) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &obj); err != nil {
		return nil, false
	}
	if obj == nil { // "null" parses into a nil map
		return nil, false
	}
	return obj, true
}

// stripFences returns the content of the first markdown code block,
// preferring a ```json block over a bare ``` one. No fence, no change.
func stripFences(text string) string {
	if _, after, found := strings.Cut(text, "```json"); found {
		inner, _, _ := strings.Cut(after, "```")
		return inner
	}
	if _, after, found := strings.Cut(text, "```"); found {
		inner, _, _ := strings.Cut(after, "```")
		return inner
	}
	return text
}

func tryBraceSpan(text string) (map[string]any, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return nil, false
	}
	return tryParse(text[start : end+1])
}
