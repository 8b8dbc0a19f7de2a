package resume

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/alnah/go-stitchjob/internal/latex"
)

// element is a generic XML node: the source vocabulary is small and
// dispatched by tag name, so no per-tag struct mapping is used.
type element struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []element  `xml:",any"`
}

// tag returns the local element name.
func (e *element) tag() string {
	return e.XMLName.Local
}

// attr returns the normalized value of an attribute and whether it is set
// to something other than whitespace.
func (e *element) attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			v := latex.NormalizeSpace(a.Value)
			return v, v != ""
		}
	}
	return "", false
}

// text returns the element's character data with whitespace collapsed.
func (e *element) text() string {
	return latex.NormalizeSpace(e.Text)
}

// child returns the first direct child with the given tag.
func (e *element) child(tag string) *element {
	for i := range e.Children {
		if e.Children[i].tag() == tag {
			return &e.Children[i]
		}
	}
	return nil
}

// children returns every direct child with the given tag.
func (e *element) children(tag string) []*element {
	var out []*element
	for i := range e.Children {
		if e.Children[i].tag() == tag {
			out = append(out, &e.Children[i])
		}
	}
	return out
}

// findText returns the normalized text of the first child named tag, or def
// if the child is missing or blank.
func (e *element) findText(tag, def string) string {
	if c := e.child(tag); c != nil {
		if t := c.text(); t != "" {
			return t
		}
	}
	return def
}

// Option configures how a resume is loaded and later rendered.
type Option func(*Document)

// WithMode sets the escaping mode used when the document is rendered.
func WithMode(m latex.Mode) Option {
	return func(d *Document) { d.Mode = m }
}

// WithClass sets the emitted document class.
func WithClass(class string) Option {
	return func(d *Document) {
		if class != "" {
			d.Class = class
		}
	}
}

// childParsers is the complete tag-to-variant mapping for section children.
// Any tag not listed is a structural error.
var childParsers = map[string]func(*element) Node{
	KindExperience.String():  parseExperience,
	KindDegree.String():      parseDegree,
	KindSkills.String():      parseSkills,
	KindDescription.String(): parseDescription,
}

// SupportedTags returns the section child tags in sorted order.
func SupportedTags() []string {
	tags := make([]string, 0, len(childParsers))
	for tag := range childParsers {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Load reads and parses the resume at path.
func Load(path string, opts ...Option) (*Document, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is user-provided
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceNotFound, path, err)
	}
	return Parse(bytes.NewReader(data), path, opts...)
}

// Parse builds a Document from XML read from r. name identifies the source
// in error messages.
func Parse(r io.Reader, name string, opts ...Option) (*Document, error) {
	root, err := decode(r, name)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Class:   DefaultClass,
		Mode:    latex.ModeMath,
		Contact: parseContact(root),
	}
	for _, opt := range opts {
		opt(doc)
	}

	for _, secEl := range root.children("section") {
		sec, err := parseSection(secEl)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		doc.Sections = append(doc.Sections, sec)
	}
	return doc, nil
}

// LoadContact reads only the contact block of the resume at path. Sections
// are not inspected, so a resume with an unsupported section child still
// yields its contact data.
func LoadContact(path string) (*Contact, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is user-provided
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceNotFound, path, err)
	}
	root, err := decode(bytes.NewReader(data), path)
	if err != nil {
		return nil, err
	}
	return parseContact(root), nil
}

func decode(r io.Reader, name string) (*element, error) {
	var root element
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceParse, name, err)
	}
	return &root, nil
}

// parseContact collects the children of the first <contact> in order.
// A missing block yields an empty contact; no field is required.
func parseContact(root *element) *Contact {
	block := root.child("contact")
	if block == nil {
		return NewContact()
	}
	fields := make([]Field, 0, len(block.Children))
	for i := range block.Children {
		item := &block.Children[i]
		fields = append(fields, Field{Key: item.tag(), Value: item.text()})
	}
	return NewContact(fields...)
}

func parseSection(el *element) (*Section, error) {
	sectionType, _ := el.attr("type")
	heading, ok := el.attr("heading")
	if !ok {
		heading = HeadingFor(sectionType)
	}

	sec := &Section{Type: sectionType, Heading: heading}
	for i := range el.Children {
		child := &el.Children[i]
		parse, ok := childParsers[child.tag()]
		if !ok {
			return nil, &TagError{Section: sectionType, Tag: child.tag()}
		}
		sec.Children = append(sec.Children, parse(child))
	}
	return sec, nil
}

func parseExperience(el *element) Node {
	exp := &Experience{
		Title:        el.findText("title", ""),
		Organization: el.findText("organization", ""),
		Location:     el.findText("location", ""),
		Blurb:        el.findText("blurb", ""),
		Begin:        period(el, "begin"),
		End:          period(el, "end"),
	}
	for _, items := range el.children("items") {
		for _, item := range items.children("item") {
			exp.Items = append(exp.Items, item.text())
		}
	}
	return exp
}

// period reads a begin/end marker from an attribute, then from a child
// element, and falls back to Placeholder.
func period(el *element, name string) string {
	if v, ok := el.attr(name); ok {
		return v
	}
	return el.findText(name, Placeholder)
}

func parseDegree(el *element) Node {
	return &Degree{
		Type:     el.findText("type", ""),
		Field:    el.findText("field", ""),
		School:   el.findText("school", ""),
		Location: el.findText("location", ""),
		Date:     el.findText("date", Placeholder),
	}
}

func parseSkills(el *element) Node {
	list := &SkillList{}
	for _, s := range el.children("skill") {
		list.Skills = append(list.Skills, s.text())
	}
	return list
}

func parseDescription(el *element) Node {
	return &Description{Text: el.text()}
}
