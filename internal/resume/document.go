package resume

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/alnah/go-stitchjob/internal/latex"
)

// DefaultClass is the document class emitted when none is configured.
const DefaultClass = "stitched"

// defaultHeading is used for sections without a type or heading.
const defaultHeading = "Section"

// knownHeadings maps common section types to their display title.
var knownHeadings = map[string]string{
	"professional": "Professional Experience",
	"volunteer":    "Volunteer Experience",
	"research":     "Research Experience",
	"teaching":     "Teaching Experience",
	"education":    "Education",
	"skills":       "Skills",
	"summary":      "Summary",
	"projects":     "Projects",
	"publications": "Publications",
	"awards":       "Awards",
}

// HeadingFor returns the default display title for a section type.
func HeadingFor(sectionType string) string {
	key := strings.ToLower(strings.TrimSpace(sectionType))
	if key == "" {
		return defaultHeading
	}
	if h, ok := knownHeadings[key]; ok {
		return h
	}
	// A Caser is stateful, so each call gets its own.
	return cases.Title(language.English).String(latex.NormalizeSpace(sectionType))
}

// Section is a titled, ordered group of child nodes.
type Section struct {
	Type     string
	Heading  string // resolved once at load time
	Children []Node
}

// Render emits \section* followed by every child, each child fragment
// followed by a blank line.
func (s *Section) Render(m latex.Mode) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\\section*{%s}\n", latex.Text(s.Heading, latex.Label.WithMode(m)))
	for _, child := range s.Children {
		b.WriteString(child.Render(m))
		b.WriteString("\n")
	}
	return b.String()
}

// String summarizes the section for debug output.
func (s *Section) String() string {
	kinds := make([]string, 0, len(s.Children))
	for _, c := range s.Children {
		kinds = append(kinds, c.Kind().String())
	}
	return fmt.Sprintf("Section(type=%q, heading=%q, children=[%s])", s.Type, s.Heading, strings.Join(kinds, " "))
}

// Document is a loaded resume: a profile plus ordered sections.
type Document struct {
	Class    string
	Mode     latex.Mode
	Contact  *Contact
	Sections []*Section
}

// Render assembles the complete LaTeX source for the document.
func (d *Document) Render() string {
	return Assemble(d.Class, d.Contact, d.Sections, d.Mode)
}

// Assemble emits the document class, the profile block, and every section
// between \begin{document} and \end{document}.
func Assemble(class string, profile *Contact, sections []*Section, m latex.Mode) string {
	if class == "" {
		class = DefaultClass
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\\documentclass{%s}\n", class)
	b.WriteString(profile.Render())
	b.WriteString("\n\\begin{document}\n\n")
	for _, sec := range sections {
		b.WriteString(sec.Render(m))
	}
	b.WriteString("\\end{document}\n")
	return b.String()
}
