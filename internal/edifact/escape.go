package edifact

import "strings"

// releaseChar literal-izes reserved syntax characters within field data.
const releaseChar = "?"

// reserved are the EDIFACT service characters that need releasing.
// The release character itself is handled separately.
var reserved = [...]string{"'", "+", ":", "*"}

func stripControl(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Escape encodes arbitrary text into EDIFACT-safe field content.
// Control characters are removed, then the release character is doubled
// before any other replacement so inserted markers are never escaped a
// second time.
func Escape(s string) string {
	s = stripControl(s)
	s = strings.ReplaceAll(s, releaseChar, releaseChar+releaseChar)
	for _, c := range reserved {
		s = strings.ReplaceAll(s, c, releaseChar+c)
	}
	return s
}

// Unescape reverses Escape, recovering the control-stripped original.
func Unescape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '?' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// Sanitize walks a decoded JSON value and strips control characters
// from every string. It builds new maps and slices throughout, so the
// input value is never mutated.
func Sanitize(v any) any {
	switch t := v.(type) {
	case string:
		return stripControl(t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = Sanitize(vv)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = Sanitize(vv)
		}
		return out
	default:
		return v
	}
}
