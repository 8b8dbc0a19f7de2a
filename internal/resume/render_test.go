package resume

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-stitchjob/internal/latex"
)

// writeFile is a test helper that writes content to path.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// ---------------------------------------------------------------------------
// TestRender - Node fragments
// ---------------------------------------------------------------------------

func TestExperience_Render(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		node *Experience
		mode latex.Mode
		want string
	}{
		{
			name: "full entry",
			node: &Experience{
				Title:        "Digital Collections Coordinator",
				Organization: "UC Berkeley Library",
				Location:     "Berkeley, CA",
				Blurb:        "Led the 'open stacks' program.",
				Begin:        "2021",
				End:          "Present",
				Items:        []string{"Cut backlog by 40%", `Wrote the "intake" guide`},
			},
			mode: latex.ModeMath,
			want: "\\datedsubsection{Digital Collections Coordinator}{2021 -- Present}\n" +
				"\\organization{UC Berkeley Library}[Berkeley, CA][Led the `open stacks' program.]\n" +
				"\\begin{itemize}\n" +
				"  \\item Cut backlog by 40\\%\n" +
				"  \\item Wrote the ``intake'' guide\n" +
				"\\end{itemize}\n",
		},
		{
			name: "no items omits itemize",
			node: &Experience{Title: "Assistant", Organization: "OPL", Begin: Placeholder, End: Placeholder},
			mode: latex.ModeMath,
			want: "\\datedsubsection{Assistant}{??? -- ???}\n" +
				"\\organization{OPL}[][]\n",
		},
		{
			name: "math span kept in math mode",
			node: &Experience{Title: "Analyst", Organization: "Lab", Begin: "1", End: "2", Items: []string{"Fit $y = ax^2$ for 3% error"}},
			mode: latex.ModeMath,
			want: "\\datedsubsection{Analyst}{1 -- 2}\n" +
				"\\organization{Lab}[][]\n" +
				"\\begin{itemize}\n" +
				"  \\item Fit $y = ax^2$ for 3\\% error\n" +
				"\\end{itemize}\n",
		},
		{
			name: "dollar escaped in plain mode",
			node: &Experience{Title: "Analyst", Organization: "Lab", Begin: "1", End: "2", Items: []string{"Saved $5"}},
			mode: latex.ModePlain,
			want: "\\datedsubsection{Analyst}{1 -- 2}\n" +
				"\\organization{Lab}[][]\n" +
				"\\begin{itemize}\n" +
				"  \\item Saved \\$5\n" +
				"\\end{itemize}\n",
		},
		{
			name: "closing bracket protected in optional argument",
			node: &Experience{Title: "T", Organization: "O", Location: "Site [B]", Begin: "1", End: "2"},
			mode: latex.ModePlain,
			want: "\\datedsubsection{T}{1 -- 2}\n" +
				"\\organization{O}[{Site [B]}][]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.node.Render(tt.mode); got != tt.want {
				t.Errorf("Render() =\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestDegree_Render(t *testing.T) {
	t.Parallel()

	d := &Degree{
		Type:     "M.L.I.S.",
		Field:    "Library & Information Science",
		School:   "San José State University",
		Location: "San José, CA",
		Date:     "2020",
	}
	want := "\\degree{M.L.I.S.}{Library \\& Information Science}{San José State University}{San José, CA}{2020}\n"
	if got := d.Render(latex.ModeMath); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestSkillList_Render(t *testing.T) {
	t.Parallel()

	s := &SkillList{Skills: []string{"Python & SQL", `"Plain" writing`}}
	want := "\\begin{skills}\n\\item Python \\& SQL\n\\item ``Plain'' writing\n\\end{skills}\n"
	if got := s.Render(latex.ModeMath); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestDescription_Render(t *testing.T) {
	t.Parallel()

	d := &Description{Text: `A "people first" archivist with 100% recall`}
	want := "A ``people first'' archivist with 100\\% recall\n"
	if got := d.Render(latex.ModeMath); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestDescription_RenderQuotedPhrases(t *testing.T) {
	t.Parallel()

	d := &Description{Text: `Led "Apollo" and "Gemini" rollouts; it's done.`}
	want := "Led ``Apollo'' and ``Gemini'' rollouts; it's done.\n"
	if got := d.Render(latex.ModePlain); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}

	d = &Description{Text: `"x" it's`}
	want = "``x'' it's\n"
	if got := d.Render(latex.ModePlain); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	for _, k := range []Kind{KindExperience, KindDegree, KindSkills, KindDescription} {
		if _, ok := childParsers[k.String()]; !ok {
			t.Errorf("Kind %d has tag %q with no parser", int(k), k.String())
		}
	}
	if got := Kind(99).String(); got != "Kind(99)" {
		t.Errorf("Kind(99).String() = %q", got)
	}
}

// ---------------------------------------------------------------------------
// TestSection - Heading and separators
// ---------------------------------------------------------------------------

func TestSection_Render(t *testing.T) {
	t.Parallel()

	sec := &Section{
		Type:    "education",
		Heading: "Education & Training",
		Children: []Node{
			&Description{Text: "first"},
			&Description{Text: "second"},
		},
	}
	want := "\\section*{Education \\& Training}\nfirst\n\nsecond\n\n"
	if got := sec.Render(latex.ModeMath); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestSection_String(t *testing.T) {
	t.Parallel()

	sec := &Section{Type: "skills", Heading: "Skills", Children: []Node{&SkillList{}}}
	want := `Section(type="skills", heading="Skills", children=[skills])`
	if got := sec.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

// ---------------------------------------------------------------------------
// TestDocument - Assembly
// ---------------------------------------------------------------------------

func TestDocument_Render(t *testing.T) {
	t.Parallel()

	doc, err := Load(filepath.Join("testdata", "resume.xml"))
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	out := doc.Render()

	wantParts := []string{
		"\\documentclass{stitched}\n\\setprofile{\n",
		"name={Riley K. Chen},\n",
		"website={rileychen.example.com},\n",
		"github={rkchen}\n}\n\n\\begin{document}\n\n",
		"\\section*{Summary}\nArchivist and documentation lead with a ``people first'' approach to making collections findable.\n\n",
		"\\section*{Professional Experience}\n",
		"\\organization{UC Berkeley Library}[Berkeley, CA][Led the `open stacks' digitization program.]\n",
		"  \\item Cut cataloguing backlog by 40\\% in two years\n",
		"\\datedsubsection{Library Assistant}{??? -- ???}\n",
		"\\section*{Education \\& Training}\n",
		"\\item Python \\& SQL\n",
	}
	for _, part := range wantParts {
		if !strings.Contains(out, part) {
			t.Errorf("Render() missing %q", part)
		}
	}
	if !strings.HasSuffix(out, "\\end{skills}\n\n\\end{document}\n") {
		t.Errorf("Render() should end with the last section and \\end{document}, got tail %q", out[len(out)-40:])
	}

	// Order of contact fields follows the source.
	if strings.Index(out, "name=") > strings.Index(out, "email=") {
		t.Error("profile fields out of source order")
	}
}

func TestDocument_RenderIdempotent(t *testing.T) {
	t.Parallel()

	doc, err := Load(filepath.Join("testdata", "resume.xml"))
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	first := doc.Render()
	second := doc.Render()
	if first != second {
		t.Error("Render() is not idempotent")
	}
}

func TestAssemble(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		class    string
		profile  *Contact
		sections []*Section
		want     string
	}{
		{
			name:  "empty document",
			class: "",
			want:  "\\documentclass{stitched}\n\\setprofile{}\n\n\\begin{document}\n\n\\end{document}\n",
		},
		{
			name:    "escaped profile value",
			class:   "custom",
			profile: NewContact(Field{Key: "email", Value: "r_chen@example.com"}),
			want:    "\\documentclass{custom}\n\\setprofile{\nemail={r\\_chen@example.com}\n}\n\n\\begin{document}\n\n\\end{document}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Assemble(tt.class, tt.profile, tt.sections, latex.ModeMath); got != tt.want {
				t.Errorf("Assemble() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContact_Escaped(t *testing.T) {
	t.Parallel()

	c := NewContact(
		Field{Key: "name", Value: "Riley K. Chen"},
		Field{Key: "email", Value: "r_chen@example.com"},
	)
	got := c.Escaped()
	if got["name"] != "Riley K. Chen" {
		t.Errorf("Escaped()[name] = %q", got["name"])
	}
	if got["email"] != `r\_chen@example.com` {
		t.Errorf("Escaped()[email] = %q", got["email"])
	}
	// Stored values stay raw.
	if raw, _ := c.Get("email"); raw != "r_chen@example.com" {
		t.Errorf("Get(email) = %q, want raw value", raw)
	}
}
