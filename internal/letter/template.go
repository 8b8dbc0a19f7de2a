package letter

import (
	"fmt"
	"strings"
	"text/template"
)

// Template delimiters. LaTeX uses braces heavily, so the Go defaults would
// collide with ordinary source.
const (
	LeftDelim  = "<<"
	RightDelim = ">>"
)

var templateFuncs = template.FuncMap{
	// default returns def when v is empty: << .Meta "closing" | default "Sincerely," >>
	"default": func(def, v string) string {
		if strings.TrimSpace(v) == "" {
			return def
		}
		return v
	},
	// lines joins the non-empty values with LaTeX line breaks.
	"lines": func(values ...string) string {
		kept := make([]string, 0, len(values))
		for _, v := range values {
			if strings.TrimSpace(v) != "" {
				kept = append(kept, v)
			}
		}
		return strings.Join(kept, "\\\\\n")
	},
}

// ParseTemplate compiles a letter template. Inside the template the letter
// is exposed as:
//
//	.Contact "key"   escaped contact value from the resume, or ""
//	.Meta "key"      escaped front matter value, or ""
//	.Body            LaTeX body
//	.Signature       signature image path, or ""
func ParseTemplate(name, text string) (*template.Template, error) {
	t, err := template.New(name).
		Delims(LeftDelim, RightDelim).
		Funcs(templateFuncs).
		Option("missingkey=error").
		Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	return t, nil
}

// view is the data passed to the template.
type view struct {
	contact map[string]string
	letter  *Letter
}

func (v view) Contact(key string) string { return v.contact[key] }
func (v view) Meta(key string) string    { return v.letter.Metadata[key] }
func (v view) Body() string              { return v.letter.Body }
func (v view) Signature() string         { return v.letter.Signature }

// Render fills t with the letter. The letter must be escaped first; contact
// values are escaped here, once, from their raw stored form.
func (l *Letter) Render(t *template.Template) (string, error) {
	if !l.escaped {
		return "", ErrNotEscaped
	}

	var b strings.Builder
	if err := t.Execute(&b, view{contact: l.Contact.Escaped(), letter: l}); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	return b.String(), nil
}
