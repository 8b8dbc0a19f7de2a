// Package dateutil resolves the letter date from metadata or configuration.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxFormatLength limits format string length.
const MaxFormatLength = 50

// DefaultFormat is used for a bare "auto". Letters read best with a long date.
const DefaultFormat = "MMMM D, YYYY"

// tokens maps user-friendly tokens to Go layout components, longest first
// within each letter so matching is greedy.
var tokens = []struct {
	token  string
	layout string
}{
	{"YYYY", "2006"},
	{"YY", "06"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"MM", "01"},
	{"M", "1"},
	{"DD", "02"},
	{"D", "2"},
	{"dddd", "Monday"},
	{"ddd", "Mon"},
}

// Presets are named shortcuts usable as "auto:NAME" or as the bare name.
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
	"full":     "dddd, MMMM D, YYYY",
}

// Layout converts a token format such as "MMMM D, YYYY" to a Go time layout.
// Text inside brackets is copied literally: "[on] D MMMM" keeps "on".
// Other characters pass through unchanged.
func Layout(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxFormatLength)
	}

	var b strings.Builder
	b.Grow(len(format) + 8)

	for i := 0; i < len(format); {
		if format[i] == '[' {
			end := strings.IndexByte(format[i+1:], ']')
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			b.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}

		n := matchToken(&b, format[i:])
		if n == 0 {
			b.WriteByte(format[i])
			n = 1
		}
		i += n
	}
	return b.String(), nil
}

// matchToken writes the layout for the token at the start of s and returns
// its length, or 0 if s does not start with a token.
func matchToken(b *strings.Builder, s string) int {
	for _, t := range tokens {
		if strings.HasPrefix(s, t.token) {
			b.WriteString(t.layout)
			return len(t.token)
		}
	}
	return 0
}

// Format renders now with a token format or preset name.
func Format(format string, now time.Time) (string, error) {
	if preset, ok := Presets[strings.ToLower(format)]; ok {
		format = preset
	}
	layout, err := Layout(format)
	if err != nil {
		return "", err
	}
	return now.Format(layout), nil
}

// Resolve interprets a date value:
//   - "auto" formats now with DefaultFormat
//   - "auto:FORMAT" formats now with FORMAT or the preset it names
//   - a bare preset name ("iso", "long", ...) formats now with that preset
//   - anything else is a literal date and is returned unchanged
func Resolve(value string, now time.Time) (string, error) {
	trimmed := strings.TrimSpace(value)
	lower := strings.ToLower(trimmed)

	if _, ok := Presets[lower]; ok {
		return Format(lower, now)
	}
	if !strings.HasPrefix(lower, "auto") {
		return value, nil
	}
	if lower == "auto" {
		return Format(DefaultFormat, now)
	}
	if !strings.HasPrefix(lower, "auto:") {
		return "", fmt.Errorf("%w: invalid auto syntax %q, use \"auto\" or \"auto:FORMAT\"", ErrInvalidDateFormat, value)
	}

	// Keep the original case: tokens are case-sensitive.
	format := trimmed[len("auto:"):]
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty after \"auto:\"", ErrInvalidDateFormat)
	}
	return Format(format, now)
}

// ResolveOr resolves value, or fallback when value is blank.
func ResolveOr(value, fallback string, now time.Time) (string, error) {
	if strings.TrimSpace(value) == "" {
		value = fallback
	}
	if value == "" {
		return "", nil
	}
	return Resolve(value, now)
}
