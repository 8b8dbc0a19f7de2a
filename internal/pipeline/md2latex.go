package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-stitchjob/internal/latex"
)

// enumCounters are the LaTeX counters of nested enumerate levels.
var enumCounters = [...]string{"enumi", "enumii", "enumiii", "enumiv"}

// BodyConverter abstracts Markdown to LaTeX conversion.
type BodyConverter interface {
	ToLaTeX(ctx context.Context, content string) (string, error)
}

// LaTeXConverter converts Markdown to a LaTeX body fragment using goldmark.
type LaTeXConverter struct {
	parser parser.Parser
	text   latex.Options
}

// NewLaTeXConverter creates a converter that escapes text runs with o.
// Bare URLs become links.
func NewLaTeXConverter(o latex.Options) *LaTeXConverter {
	md := goldmark.New(
		goldmark.WithExtensions(extension.Linkify),
	)
	return &LaTeXConverter{parser: md.Parser(), text: o}
}

// ToLaTeX converts Markdown content to a LaTeX fragment suitable for the body
// of a document. Raw HTML is dropped. Text runs are escaped exactly once.
// Supports context cancellation via goroutine + select pattern since
// goldmark doesn't natively support context.
func (c *LaTeXConverter) ToLaTeX(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		out string
		err error
	}

	done := make(chan result, 1)

	go func() {
		source := []byte(content)
		doc := c.parser.Parse(text.NewReader(source))
		w := &latexWriter{source: source, text: c.text}
		w.blocks(doc)
		done <- result{out: w.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.out, r.err
	}
}

// latexWriter walks a goldmark AST. Consecutive text nodes are buffered in
// run so quote pairs spanning soft line breaks are still matched.
type latexWriter struct {
	source []byte
	text   latex.Options
	b      strings.Builder
	run    strings.Builder
	depth  int // enumerate nesting
}

// String returns the fragment with exactly one trailing newline, or "".
func (w *latexWriter) String() string {
	out := strings.TrimRight(w.b.String(), "\n")
	if out == "" {
		return ""
	}
	return out + "\n"
}

func (w *latexWriter) blocks(parent ast.Node) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		w.block(n)
	}
}

func (w *latexWriter) block(n ast.Node) {
	switch n := n.(type) {
	case *ast.Paragraph:
		w.inlines(n)
		w.b.WriteString("\n\n")
	case *ast.TextBlock:
		w.inlines(n)
		w.b.WriteString("\n")
	case *ast.Heading:
		w.b.WriteString("\\textbf{")
		w.inlines(n)
		w.b.WriteString("}\n\n")
	case *ast.ThematicBreak:
		w.b.WriteString("\\medskip\\hrule\\medskip\n\n")
	case *ast.CodeBlock:
		w.verbatim(n)
	case *ast.FencedCodeBlock:
		w.verbatim(n)
	case *ast.Blockquote:
		w.b.WriteString("\\begin{quote}\n")
		w.blocks(n)
		w.trimBlank()
		w.b.WriteString("\\end{quote}\n\n")
	case *ast.List:
		w.list(n)
	case *ast.HTMLBlock:
		// dropped
	default:
		w.blocks(n)
	}
}

func (w *latexWriter) list(n *ast.List) {
	env := "itemize"
	if n.IsOrdered() {
		env = "enumerate"
		w.depth++
		defer func() { w.depth-- }()
	}

	fmt.Fprintf(&w.b, "\\begin{%s}\n", env)
	if n.IsOrdered() && n.Start > 1 && w.depth <= len(enumCounters) {
		fmt.Fprintf(&w.b, "\\setcounter{%s}{%d}\n", enumCounters[w.depth-1], n.Start-1)
	}
	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		w.b.WriteString("\\item ")
		w.blocks(item)
		w.trimBlank()
	}
	fmt.Fprintf(&w.b, "\\end{%s}\n\n", env)
}

// trimBlank collapses trailing blank lines to a single newline so block
// environments close tightly.
func (w *latexWriter) trimBlank() {
	out := w.b.String()
	trimmed := strings.TrimRight(out, "\n")
	if len(trimmed) == len(out)-1 {
		return
	}
	w.b.Reset()
	w.b.WriteString(trimmed)
	w.b.WriteString("\n")
}

func (w *latexWriter) verbatim(n ast.Node) {
	w.b.WriteString("\\begin{verbatim}\n")
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		w.b.Write(seg.Value(w.source))
	}
	w.trimBlank()
	w.b.WriteString("\\end{verbatim}\n\n")
}

func (w *latexWriter) inlines(parent ast.Node) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		w.inline(n)
	}
	w.flush()
}

func (w *latexWriter) inline(n ast.Node) {
	switch n := n.(type) {
	case *ast.Text:
		v := n.Segment.Value(w.source)
		v = util.UnescapePunctuations(v)
		v = util.ResolveNumericReferences(v)
		v = util.ResolveEntityNames(v)
		switch {
		case n.HardLineBreak():
			w.run.WriteString(strings.TrimRight(string(v), " "))
			w.flush()
			w.b.WriteString("\\\\\n")
		case n.SoftLineBreak():
			w.run.Write(v)
			w.run.WriteByte(' ')
		default:
			w.run.Write(v)
		}
	case *ast.String:
		w.run.Write(n.Value)
	case *ast.Emphasis:
		w.flush()
		cmd := "\\emph{"
		if n.Level >= 2 {
			cmd = "\\textbf{"
		}
		w.b.WriteString(cmd)
		w.inlines(n)
		w.b.WriteString("}")
	case *ast.CodeSpan:
		w.flush()
		fmt.Fprintf(&w.b, "\\texttt{%s}", latex.Fragment(w.rawText(n), latex.Label))
	case *ast.Link:
		w.flush()
		fmt.Fprintf(&w.b, "\\href{%s}{", escapeURL(string(n.Destination)))
		w.inlines(n)
		w.b.WriteString("}")
	case *ast.AutoLink:
		w.flush()
		url := string(n.URL(w.source))
		if n.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(url), "mailto:") {
			url = "mailto:" + url
		}
		fmt.Fprintf(&w.b, "\\href{%s}{%s}", escapeURL(url), latex.Fragment(string(n.Label(w.source)), latex.Label))
	case *ast.RawHTML:
		// dropped
	default:
		// Images keep their alt text; unknown inlines keep their children.
		w.flush()
		w.inlines(n)
	}
}

// flush escapes the pending text run and writes it out.
func (w *latexWriter) flush() {
	if w.run.Len() == 0 {
		return
	}
	w.b.WriteString(latex.Fragment(w.run.String(), w.text))
	w.run.Reset()
}

// rawText concatenates the literal text under n.
func (w *latexWriter) rawText(n ast.Node) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(w.source))
		case *ast.String:
			b.Write(c.Value)
		}
	}
	return strings.ReplaceAll(b.String(), "\n", " ")
}

// urlEscaper protects the characters hyperref requires escaped in \href.
var urlEscaper = strings.NewReplacer("%", `\%`, "#", `\#`)

func escapeURL(url string) string {
	return urlEscaper.Replace(url)
}
