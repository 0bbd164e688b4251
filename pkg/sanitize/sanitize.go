package sanitize

import "strings"

// htmlEscaper encodes the six characters that can break out of an HTML
// context. Replacer scans the input once, so already-produced entities
// in the output are never re-encoded within a single pass.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
)

// String HTML-entity-encodes a single string value.
func String(s string) string {
	return htmlEscaper.Replace(s)
}

// Value recursively sanitizes an arbitrary JSON-shaped value as produced
// by encoding/json: strings are entity-encoded, sequences are mapped
// element-wise, mappings are rebuilt with both keys and values encoded,
// and every other scalar (numbers, bools, nil) passes through unchanged.
//
// Rebuilding mappings with encoded keys means a hostile key like
// "__proto__" or "<img onerror=...>" can never reach a downstream
// consumer verbatim. The function is total: it never panics and never
// mutates its input.
func Value(v any) any {
	switch val := v.(type) {
	case string:
		return String(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Value(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[String(k)] = Value(item)
		}
		return out
	default:
		return v
	}
}

// Map sanitizes a decoded JSON object in one call. A nil map yields a
// nil map.
func Map(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	return Value(m).(map[string]any)
}
