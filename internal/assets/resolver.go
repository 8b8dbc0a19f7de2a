package assets

import "errors"

// AssetResolver serves overrides from a directory when one is configured and
// falls back to the embedded assets for any asset the directory lacks.
type AssetResolver struct {
	custom   *FilesystemLoader // nil without an override directory
	embedded *EmbeddedLoader
}

// NewAssetResolver creates a resolver. An empty basePath uses only the
// embedded assets; a non-empty one must be a readable directory.
func NewAssetResolver(basePath string) (*AssetResolver, error) {
	r := &AssetResolver{embedded: NewEmbeddedLoader()}
	if basePath == "" {
		return r, nil
	}
	custom, err := NewFilesystemLoader(basePath)
	if err != nil {
		return nil, err
	}
	r.custom = custom
	return r, nil
}

// LoadClass returns the override for class name, else the bundled one.
func (r *AssetResolver) LoadClass(name string) (string, error) {
	return r.load(classKind, name)
}

// LoadTemplate returns the override for template name, else the bundled one.
func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.load(templateKind, name)
}

// load falls back only on a miss. A bad name, an unreadable file or an
// escaping symlink in the override directory is reported as is.
func (r *AssetResolver) load(k kind, name string) (string, error) {
	if r.custom != nil {
		content, err := r.custom.load(k, name)
		if !errors.Is(err, k.notFound) {
			return content, err
		}
	}
	return r.embedded.load(k, name)
}

// HasCustomLoader reports whether an override directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

var _ AssetLoader = (*AssetResolver)(nil)
