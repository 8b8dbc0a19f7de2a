package assets

// Built-in asset names.
const (
	// DefaultClassName is the class emitted resumes declare.
	DefaultClassName = "stitched"

	// DefaultLetterTemplate is the built-in letter template.
	DefaultLetterTemplate = "letter"
)

// kind describes where one sort of asset lives and how a miss is reported.
type kind struct {
	dir      string
	ext      string
	notFound error
}

var (
	classKind    = kind{dir: "classes", ext: ".cls", notFound: ErrClassNotFound}
	templateKind = kind{dir: "templates", ext: ".tex", notFound: ErrTemplateNotFound}
)

// file returns the slash-separated path of name relative to an asset root.
func (k kind) file(name string) string {
	return k.dir + "/" + name + k.ext
}

// ClassFileName returns the on-disk file name for a class, as LaTeX expects
// to find it next to the document.
func ClassFileName(name string) string {
	return name + classKind.ext
}
