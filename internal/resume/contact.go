package resume

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alnah/go-stitchjob/internal/latex"
)

// schemePrefix matches a leading web scheme, stripped from website values.
var schemePrefix = regexp.MustCompile(`^https?://`)

// Field is one contact entry, in source order.
type Field struct {
	Key   string
	Value string
}

// Contact is the ordered profile mapping extracted from <contact>.
// Values are stored unescaped; Escaped and Render escape them exactly once.
type Contact struct {
	fields []Field
}

// NewContact builds a Contact from fields in order. A repeated key keeps its
// first position and takes the last value. The website value loses any
// leading http:// or https://.
func NewContact(fields ...Field) *Contact {
	c := &Contact{}
	index := make(map[string]int, len(fields))
	for _, f := range fields {
		if f.Key == "website" {
			f.Value = schemePrefix.ReplaceAllString(f.Value, "")
		}
		if i, ok := index[f.Key]; ok {
			c.fields[i].Value = f.Value
			continue
		}
		index[f.Key] = len(c.fields)
		c.fields = append(c.fields, f)
	}
	return c
}

// Get returns the raw value for key.
func (c *Contact) Get(key string) (string, bool) {
	if c == nil {
		return "", false
	}
	for _, f := range c.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Fields returns a copy of the fields in source order.
func (c *Contact) Fields() []Field {
	if c == nil {
		return nil
	}
	out := make([]Field, len(c.fields))
	copy(out, c.fields)
	return out
}

// Len returns the number of fields.
func (c *Contact) Len() int {
	if c == nil {
		return 0
	}
	return len(c.fields)
}

// Escaped returns every value escaped once, keyed by field name.
func (c *Contact) Escaped() map[string]string {
	out := make(map[string]string, c.Len())
	for _, f := range c.Fields() {
		out[f.Key] = latex.Text(f.Value, latex.Label)
	}
	return out
}

// Render emits the \setprofile block, one key={value} per line.
func (c *Contact) Render() string {
	if c.Len() == 0 {
		return "\\setprofile{}\n"
	}

	pairs := make([]string, 0, c.Len())
	for _, f := range c.fields {
		pairs = append(pairs, fmt.Sprintf("%s={%s}", f.Key, latex.Text(f.Value, latex.Label)))
	}
	return "\\setprofile{\n" + strings.Join(pairs, ",\n") + "\n}\n"
}
