package rename

import "strings"

// BuildName concatenates the non-empty trimmed segment values in the
// fixed field order, hyphen separated, and appends the extension when
// one is present. All-empty segments produce the empty string, which
// callers treat as "no prediction available". Pure: no I/O, no side
// effects.
func BuildName(values map[string]string, ext string) string {
	parts := make([]string, 0, len(FieldOrder))
	for _, key := range FieldOrder {
		if v := strings.TrimSpace(values[key]); v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	name := strings.Join(parts, "-")
	if ext != "" {
		name += "." + ext
	}
	return name
}
