package rename

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Segments is the mutable store of currently chosen taxonomy values for
// one renaming session. A fixed-choice field holds either the empty
// string or exactly one of its option codes; free-text fields hold a
// sanitized string. Not safe for concurrent use; callers serialize.
type Segments struct {
	tax    Taxonomy
	values map[string]string
}

// NewSegments returns an empty store bound to the given catalog.
func NewSegments(tax Taxonomy) *Segments {
	return &Segments{tax: tax, values: make(map[string]string, len(FieldOrder))}
}

// Select toggles an option code on a fixed-choice field: selecting the
// active code again clears the field, selecting another code replaces
// it. Other fields of the store are untouched.
func (s *Segments) Select(field, code string) error {
	f, ok := s.tax.Field(field)
	if !ok {
		return fmt.Errorf("unknown field %q", field)
	}
	if !f.FixedChoice() {
		return fmt.Errorf("field %q is not fixed choice", field)
	}
	if !f.HasOption(code) {
		return fmt.Errorf("field %q has no option %q", field, code)
	}
	if s.values[field] == code {
		s.values[field] = ""
	} else {
		s.values[field] = code
	}
	return nil
}

// SetText stores a free-text value after applying the field's
// sanitization policy.
func (s *Segments) SetText(field, raw string) error {
	f, ok := s.tax.Field(field)
	if !ok {
		return fmt.Errorf("unknown field %q", field)
	}
	if f.FixedChoice() {
		return fmt.Errorf("field %q is fixed choice", field)
	}
	s.values[field] = SanitizeValue(field, raw)
	return nil
}

// Value returns the current value of a field, empty when unset.
func (s *Segments) Value(field string) string {
	return s.values[field]
}

// Values returns a copy of the current field values.
func (s *Segments) Values() map[string]string {
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Empty reports whether every segment is unset.
func (s *Segments) Empty() bool {
	for _, v := range s.values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Clear resets every segment and stamps the date field with today.
func (s *Segments) Clear() {
	for k := range s.values {
		delete(s.values, k)
	}
	s.values[FieldDate] = DateStamp(time.Now())
}

// BuildName assembles the canonical filename from the current values.
func (s *Segments) BuildName(ext string) string {
	return BuildName(s.values, ext)
}

// DateStamp formats a time as the compact YYYYMMDD date segment.
func DateStamp(t time.Time) string {
	return t.Format("20060102")
}

// DateFromISO converts a YYYY-MM-DD date-picker value to YYYYMMDD. No
// calendar validation happens beyond removing the hyphens.
func DateFromISO(iso string) string {
	return strings.ReplaceAll(strings.TrimSpace(iso), "-", "")
}

// SanitizeValue applies the per-field input policy: Client is upper
// case A-Z0-9, Job additionally keeps hyphens, Description keeps word
// characters with whitespace runs collapsed to single underscores, Date
// is free form.
func SanitizeValue(field, raw string) string {
	v := normalizeInput(raw)
	switch field {
	case FieldClient:
		return stripTo(strings.ToUpper(v), false)
	case FieldJob:
		return stripTo(strings.ToUpper(v), true)
	case FieldDesc:
		return sanitizeDescription(v)
	default:
		return v
	}
}

func stripTo(s string, keepHyphen bool) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case keepHyphen && r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}

func sanitizeDescription(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '_' || r == '-' || r == ' ':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	fields := strings.Fields(b.String())
	return strings.Join(fields, "_")
}
