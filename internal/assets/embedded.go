package assets

import (
	"embed"
	"fmt"
)

//go:embed classes templates
var bundled embed.FS

// EmbeddedLoader serves the class and template compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadClass returns the bundled source of class name.
func (e *EmbeddedLoader) LoadClass(name string) (string, error) {
	return e.load(classKind, name)
}

// LoadTemplate returns the bundled letter template name.
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return e.load(templateKind, name)
}

func (e *EmbeddedLoader) load(k kind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	data, err := bundled.ReadFile(k.file(name))
	if err != nil {
		return "", fmt.Errorf("%w: %q", k.notFound, name)
	}
	return string(data), nil
}

var _ AssetLoader = (*EmbeddedLoader)(nil)
