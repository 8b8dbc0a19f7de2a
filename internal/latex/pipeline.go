package latex

import "strings"

// Options selects the escaping contract and whether quotes are smartened.
type Options struct {
	Mode    Mode
	Smarten bool
}

// Common option sets.
var (
	// Label is for short fields such as titles, places and dates.
	Label = Options{Mode: ModePlain}
	// Prose is for free text that benefits from typographic quotes.
	Prose = Options{Mode: ModePlain, Smarten: true}
)

// WithMode returns a copy of o using mode m.
func (o Options) WithMode(m Mode) Options {
	o.Mode = m
	return o
}

// Text runs the full pipeline on text extracted from a source document:
// normalize whitespace, escape, then smarten quotes if requested.
func Text(s string, o Options) string {
	return Fragment(NormalizeSpace(s), o)
}

// Fragment escapes s and smartens its quotes without touching whitespace.
// Use it for text runs whose surrounding spaces are significant.
//
// In ModeMath quotes pair only within the text between math spans, so a
// pair that encloses a span ("cost $x$ rises") stays straight.
func Fragment(s string, o Options) string {
	if o.Mode != ModeMath {
		out := Escape(s)
		if o.Smarten {
			out = SmartenQuotes(out)
		}
		return out
	}

	// Quotes are smartened per ordinary segment so that primes inside math
	// spans ($f'(x)$) are never rewritten.
	var b strings.Builder
	b.Grow(len(s) + len(s)/8)
	for _, seg := range splitMath(s) {
		if seg.math {
			b.WriteString(seg.text)
			continue
		}
		if !o.Smarten {
			escapeOrdinary(&b, seg.text)
			continue
		}
		var part strings.Builder
		escapeOrdinary(&part, seg.text)
		b.WriteString(SmartenQuotes(part.String()))
	}
	return b.String()
}
