// Package latex maps arbitrary text to LaTeX-safe text.
//
// Every piece of text that ends up in an emitted document passes through the
// same ordered pipeline: whitespace normalization, escaping, quote smartening.
// Text applies that order; callers should not compose the steps by hand.
package latex

import (
	"fmt"
	"regexp"
	"strings"
)

// Mode selects which escaping contract is applied.
type Mode int

const (
	// ModePlain escapes every reserved character, dollar signs included.
	ModePlain Mode = iota
	// ModeMath leaves inline math spans ($...$) untouched and escapes the rest.
	ModeMath
)

// String returns the configuration name of the mode.
func (m Mode) String() string {
	switch m {
	case ModePlain:
		return "plain"
	case ModeMath:
		return "math"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a configuration value to a Mode.
// An empty value selects def.
func ParseMode(s string, def Mode) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return def, nil
	case "plain":
		return ModePlain, nil
	case "math":
		return ModeMath, nil
	default:
		return def, fmt.Errorf("invalid escaping mode %q (must be plain or math)", s)
	}
}

// replacements is the total substitution table. Lookup is per rune, so no
// replacement is ever fed back into the table.
var replacements = map[rune]string{
	'&':  `\&`,
	'%':  `\%`,
	'$':  `\$`,
	'#':  `\#`,
	'_':  `\_`,
	'{':  `\{`,
	'}':  `\}`,
	'~':  `\textasciitilde{}`,
	'^':  `\textasciicircum{}`,
	'\\': `\textbackslash{}`,
	'←':  `$\leftarrow$`,
	'→':  `$\rightarrow$`,
	'↔':  `$\leftrightarrow$`,
}

// IsReserved reports whether r has an entry in the substitution table.
func IsReserved(r rune) bool {
	_, ok := replacements[r]
	return ok
}

// Escape maps every reserved character of s to its literal-safe equivalent
// in a single left-to-right pass.
//
// Escape is not idempotent: Escape(Escape(s)) escapes the backslashes and
// braces introduced by the first pass. Escape each value exactly once.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/8)
	escapeTo(&b, s)
	return b.String()
}

func escapeTo(b *strings.Builder, s string) {
	for _, r := range s {
		if rep, ok := replacements[r]; ok {
			b.WriteString(rep)
			continue
		}
		b.WriteRune(r)
	}
}

// segment is a run of source text that is either inline math or ordinary text.
type segment struct {
	text string
	math bool
}

// splitMath cuts s into ordinary and inline-math segments. A math span opens
// at an unescaped dollar sign and closes at the next unescaped dollar sign; it
// must enclose at least one character. An escaped dollar (\$) never delimits
// a span and stays in the ordinary text.
func splitMath(s string) []segment {
	var segs []segment
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if i+1 < len(s) && s[i+1] == '$' {
				i++
			}
		case '$':
			end := closingDollar(s, i+1)
			if end < 0 || end == i+1 {
				continue
			}
			if start < i {
				segs = append(segs, segment{text: s[start:i]})
			}
			segs = append(segs, segment{text: s[i : end+1], math: true})
			start = end + 1
			i = end
		}
	}
	if start < len(s) {
		segs = append(segs, segment{text: s[start:]})
	}
	return segs
}

// closingDollar returns the index of the next unescaped '$' at or after from,
// or -1 if there is none.
func closingDollar(s string, from int) int {
	for j := from; j < len(s); j++ {
		switch s[j] {
		case '\\':
			if j+1 < len(s) && s[j+1] == '$' {
				j++
			}
		case '$':
			return j
		}
	}
	return -1
}

// escapeOrdinary escapes text outside math spans. An escaped dollar (\$) is
// already literal and is emitted as is.
func escapeOrdinary(b *strings.Builder, s string) {
	for {
		idx := strings.Index(s, `\$`)
		if idx < 0 {
			escapeTo(b, s)
			return
		}
		escapeTo(b, s[:idx])
		b.WriteString(`\$`)
		s = s[idx+2:]
	}
}

// EscapeMath escapes s like Escape but leaves every inline math span ($...$)
// byte-identical. Dollar signs that do not delimit a span are escaped.
func EscapeMath(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/8)
	for _, seg := range splitMath(s) {
		if seg.math {
			b.WriteString(seg.text)
			continue
		}
		escapeOrdinary(&b, seg.text)
	}
	return b.String()
}

// Quote patterns use shortest-match pairing: a quote mark pairs with the
// nearest following mark of the same style.
var (
	doubleQuoted = regexp.MustCompile(`"(.+?)"`)
	singleQuoted = regexp.MustCompile(`'(.+?)'`)
)

// SmartenQuotes rewrites straight double and single quote pairs to LaTeX
// opening and closing quotes, pairing each mark with the nearest following
// one of the same style. Unpaired quote characters are left untouched.
// Run it after escaping, never before.
//
// Single quotes go first: the double pass emits closing apostrophes, which the
// single pass would otherwise pair with later apostrophes.
func SmartenQuotes(s string) string {
	s = singleQuoted.ReplaceAllString(s, "`$1'")
	return doubleQuoted.ReplaceAllString(s, "``$1''")
}

// NormalizeSpace collapses every run of whitespace, newlines included, to a
// single space and trims both ends.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
