package resume

import (
	"fmt"
	"strings"

	"github.com/alnah/go-stitchjob/internal/latex"
)

// Placeholder marks a missing date or period so the rendered document shows
// the gap instead of hiding it.
const Placeholder = "???"

// Kind identifies a section child variant.
type Kind int

// Section child variants. The set is closed: see childParsers.
const (
	KindExperience Kind = iota + 1
	KindDegree
	KindSkills
	KindDescription
)

// String returns the source tag of the kind.
func (k Kind) String() string {
	switch k {
	case KindExperience:
		return "experience"
	case KindDegree:
		return "degree"
	case KindSkills:
		return "skills"
	case KindDescription:
		return "description"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Node is a section child. Only the variants in this package implement it.
type Node interface {
	Kind() Kind
	// Render returns the LaTeX fragment for the node. It performs no I/O and
	// returns the same bytes on every call.
	Render(m latex.Mode) string
	sealed()
}

// Compile-time interface implementation checks.
var (
	_ Node = (*Experience)(nil)
	_ Node = (*Degree)(nil)
	_ Node = (*SkillList)(nil)
	_ Node = (*Description)(nil)
)

// Experience is a dated position with an optional bullet list.
type Experience struct {
	Title        string
	Organization string
	Location     string
	Blurb        string
	Begin        string
	End          string
	Items        []string
}

func (*Experience) Kind() Kind { return KindExperience }
func (*Experience) sealed()    {}

// Render emits \datedsubsection, \organization and an itemize list.
// The list is omitted when there are no items.
func (e *Experience) Render(m latex.Mode) string {
	label := latex.Label.WithMode(m)
	prose := latex.Prose.WithMode(m)

	var b strings.Builder
	fmt.Fprintf(&b, "\\datedsubsection{%s}{%s -- %s}\n",
		latex.Text(e.Title, label), latex.Text(e.Begin, label), latex.Text(e.End, label))
	fmt.Fprintf(&b, "\\organization{%s}[%s][%s]\n",
		latex.Text(e.Organization, label),
		optArg(latex.Text(e.Location, label)),
		optArg(latex.Text(e.Blurb, prose)))

	if len(e.Items) == 0 {
		return b.String()
	}
	b.WriteString("\\begin{itemize}\n")
	for _, item := range e.Items {
		fmt.Fprintf(&b, "  \\item %s\n", latex.Text(item, prose))
	}
	b.WriteString("\\end{itemize}\n")
	return b.String()
}

// Degree is a single education entry.
type Degree struct {
	Type     string
	Field    string
	School   string
	Location string
	Date     string
}

func (*Degree) Kind() Kind { return KindDegree }
func (*Degree) sealed()    {}

// Render emits \degree{type}{field}{school}{location}{date}.
func (d *Degree) Render(m latex.Mode) string {
	label := latex.Label.WithMode(m)
	return fmt.Sprintf("\\degree{%s}{%s}{%s}{%s}{%s}\n",
		latex.Text(d.Type, label),
		latex.Text(d.Field, label),
		latex.Text(d.School, label),
		latex.Text(d.Location, label),
		latex.Text(d.Date, label))
}

// SkillList is an ordered list of skill names.
type SkillList struct {
	Skills []string
}

func (*SkillList) Kind() Kind { return KindSkills }
func (*SkillList) sealed()    {}

// Render emits a skills environment with one \item per skill.
func (s *SkillList) Render(m latex.Mode) string {
	prose := latex.Prose.WithMode(m)

	var b strings.Builder
	b.WriteString("\\begin{skills}\n")
	for _, skill := range s.Skills {
		fmt.Fprintf(&b, "\\item %s\n", latex.Text(skill, prose))
	}
	b.WriteString("\\end{skills}\n")
	return b.String()
}

// Description is a free-text paragraph.
type Description struct {
	Text string
}

func (*Description) Kind() Kind { return KindDescription }
func (*Description) sealed()    {}

// Render emits the escaped paragraph followed by a newline.
func (d *Description) Render(m latex.Mode) string {
	return latex.Text(d.Text, latex.Prose.WithMode(m)) + "\n"
}

// optArg protects a closing bracket inside an optional argument.
func optArg(s string) string {
	if strings.ContainsRune(s, ']') {
		return "{" + s + "}"
	}
	return s
}
