// Package letter builds a cover letter from a Markdown body with YAML front
// matter and the contact block of a companion resume.
//
// A Letter moves through fixed steps: Load, contact attached, signature and
// date resolved, Escape, then Render. Escape rewrites the metadata and body
// in place and may run only once.
package letter

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/alnah/go-stitchjob/internal/dateutil"
	"github.com/alnah/go-stitchjob/internal/latex"
	"github.com/alnah/go-stitchjob/internal/pipeline"
	"github.com/alnah/go-stitchjob/internal/resume"
	"github.com/alnah/go-stitchjob/internal/yamlutil"
)

// Metadata keys with a meaning beyond template substitution.
const (
	MetaSignatureImage = "signature_image"
	MetaDate           = "date"
)

// Letter is a cover letter ready to be resolved, escaped and rendered.
type Letter struct {
	Contact   *resume.Contact
	Metadata  map[string]string
	Body      string // Markdown until Escape, LaTeX after
	Signature string // path as emitted, empty for none

	escaped bool
}

// Load reads and parses the letter body at path.
func Load(path string) (*Letter, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is user-provided
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", resume.ErrSourceNotFound, path, err)
	}
	return Parse(data, path)
}

// Parse splits data into front matter metadata and body. A body without a
// leading "---" line has no metadata. name identifies the source in errors.
func Parse(data []byte, name string) (*Letter, error) {
	normalized := []byte(pipeline.NormalizeLineEndings(string(data)))

	raw := map[string]any{}
	body, err := yamlutil.FrontMatter(normalized, &raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", resume.ErrSourceParse, name, err)
	}

	meta := make(map[string]string, len(raw))
	for k, v := range raw {
		meta[k] = metaString(v)
	}
	return &Letter{Metadata: meta, Body: string(body)}, nil
}

// metaString flattens a decoded YAML value to text.
func metaString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		return v.Format("2006-01-02")
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, metaString(item))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}

// Keys returns the metadata keys in sorted order.
func (l *Letter) Keys() []string {
	keys := make([]string, 0, len(l.Metadata))
	for k := range l.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Escaped reports whether Escape has run.
func (l *Letter) Escaped() bool {
	return l.escaped
}

// ResolveSignature sets Signature following ResolveSignature's policy.
func (l *Letter) ResolveSignature(bodyPath string, opts SignatureOptions) error {
	if l.escaped {
		return ErrAlreadyEscaped
	}
	sig, err := ResolveSignature(bodyPath, l.Metadata, opts)
	if err != nil {
		return err
	}
	l.Signature = sig
	return nil
}

// ResolveDate replaces the date metadata with its resolved form, using
// fallback when the letter has none. See dateutil.Resolve.
func (l *Letter) ResolveDate(fallback string, now time.Time) error {
	if l.escaped {
		return ErrAlreadyEscaped
	}
	date, err := dateutil.ResolveOr(l.Metadata[MetaDate], fallback, now)
	if err != nil {
		return err
	}
	if date != "" {
		l.Metadata[MetaDate] = date
	}
	return nil
}

// Escape converts the body to LaTeX and escapes every metadata value, in
// place. It is a single-pass step: a second call returns ErrAlreadyEscaped
// and leaves the letter unchanged.
func (l *Letter) Escape(ctx context.Context, conv pipeline.BodyConverter) error {
	if l.escaped {
		return ErrAlreadyEscaped
	}

	pre := &pipeline.MarkdownPreprocessor{}
	body, err := conv.ToLaTeX(ctx, pre.Preprocess(ctx, l.Body))
	if err != nil {
		return err
	}

	meta := make(map[string]string, len(l.Metadata))
	for k, v := range l.Metadata {
		meta[k] = latex.Text(v, latex.Label)
	}

	l.Body = body
	l.Metadata = meta
	l.escaped = true
	return nil
}

// Build loads the body at bodyPath, attaches the contact block of the resume
// at resumePath, and resolves the signature image.
func Build(bodyPath, resumePath string, sig SignatureOptions) (*Letter, error) {
	l, err := Load(bodyPath)
	if err != nil {
		return nil, err
	}
	contact, err := resume.LoadContact(resumePath)
	if err != nil {
		return nil, err
	}
	l.Contact = contact
	if err := l.ResolveSignature(bodyPath, sig); err != nil {
		return nil, err
	}
	return l, nil
}
