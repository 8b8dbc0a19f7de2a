package assets

// AssetLoader loads the files a document needs besides its own source.
// Names are bare stems: "stitched", not "stitched.cls".
type AssetLoader interface {
	// LoadClass returns a LaTeX class or ErrClassNotFound.
	LoadClass(name string) (string, error)
	// LoadTemplate returns a letter template or ErrTemplateNotFound.
	LoadTemplate(name string) (string, error)
}
