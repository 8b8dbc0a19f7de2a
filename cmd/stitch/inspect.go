package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	tp "github.com/xlab/treeprint"

	"github.com/alnah/go-stitchjob/internal/letter"
	"github.com/alnah/go-stitchjob/internal/resume"
)

// maxSummaryLen bounds the text shown for a node in the tree.
const maxSummaryLen = 48

// newInspectCmd shows how a source file was understood.
func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.xml|file.md>",
		Short: "Show the parsed structure of a resume or letter",
		Long: `Show the parsed structure of a source without writing anything.

For a resume the tree lists the contact fields and every section with its
children. For a letter it lists the front matter and the body size.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				tree tp.Tree
				err  error
			)
			if strings.EqualFold(filepath.Ext(args[0]), ".md") {
				tree, err = letterTree(args[0])
			} else {
				tree, err = resumeTree(args[0])
			}
			if err != nil {
				return a.withHint(err)
			}
			a.printer.Println(strings.TrimRight(tree.String(), "\n"))
			return nil
		},
	}
}

// resumeTree loads the resume at path and describes it.
func resumeTree(path string) (tp.Tree, error) {
	doc, err := resume.Load(path)
	if err != nil {
		return nil, err
	}

	tree := tp.NewWithRoot(filepath.Base(path))
	contact := tree.AddBranch(fmt.Sprintf("contact (%d)", doc.Contact.Len()))
	for _, f := range doc.Contact.Fields() {
		contact.AddNode(f.Key + ": " + summarize(f.Value))
	}

	sections := tree.AddBranch(fmt.Sprintf("sections (%d)", len(doc.Sections)))
	for _, sec := range doc.Sections {
		branch := sections.AddBranch(fmt.Sprintf("%s [%s]", sec.Heading, sec.Type))
		for _, child := range sec.Children {
			branch.AddNode(describeNode(child))
		}
	}
	return tree, nil
}

// describeNode returns a one-line summary of a section child.
func describeNode(n resume.Node) string {
	switch v := n.(type) {
	case *resume.Experience:
		s := fmt.Sprintf("%s: %s, %s (%s - %s)", v.Kind(), v.Title, v.Organization, v.Begin, v.End)
		if len(v.Items) > 0 {
			s += fmt.Sprintf(" %d items", len(v.Items))
		}
		return s
	case *resume.Degree:
		return fmt.Sprintf("%s: %s %s, %s (%s)", v.Kind(), v.Type, v.Field, v.School, v.Date)
	case *resume.SkillList:
		return fmt.Sprintf("%s: %s", v.Kind(), summarize(strings.Join(v.Skills, ", ")))
	case *resume.Description:
		return fmt.Sprintf("%s: %s", v.Kind(), summarize(v.Text))
	default:
		return n.Kind().String()
	}
}

// letterTree loads the letter body at path and describes it.
func letterTree(path string) (tp.Tree, error) {
	l, err := letter.Load(path)
	if err != nil {
		return nil, err
	}

	tree := tp.NewWithRoot(filepath.Base(path))
	meta := tree.AddBranch(fmt.Sprintf("metadata (%d)", len(l.Metadata)))
	for _, k := range l.Keys() {
		meta.AddNode(k + ": " + summarize(l.Metadata[k]))
	}
	lines := 0
	if l.Body != "" {
		lines = strings.Count(strings.TrimRight(l.Body, "\n"), "\n") + 1
	}
	tree.AddNode(fmt.Sprintf("body: %d lines, %d words", lines, len(strings.Fields(l.Body))))
	return tree, nil
}

// summarize collapses whitespace and shortens s for display.
func summarize(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > maxSummaryLen {
		return string(r[:maxSummaryLen-3]) + "..."
	}
	return s
}
