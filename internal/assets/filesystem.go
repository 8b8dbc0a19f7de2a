package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader reads overrides from {basePath}/classes/{name}.cls and
// {basePath}/templates/{name}.tex.
type FilesystemLoader struct {
	basePath string // absolute, symlinks resolved
}

// NewFilesystemLoader checks that basePath is a readable directory.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		abs = real
	}

	info, err := os.Stat(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, abs)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, abs)
	}
	if _, err := os.ReadDir(abs); err != nil {
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}
	return &FilesystemLoader{basePath: abs}, nil
}

// BasePath returns the resolved override directory.
func (f *FilesystemLoader) BasePath() string {
	return f.basePath
}

// LoadClass reads the override for class name.
func (f *FilesystemLoader) LoadClass(name string) (string, error) {
	return f.load(classKind, name)
}

// LoadTemplate reads the override for letter template name.
func (f *FilesystemLoader) LoadTemplate(name string) (string, error) {
	return f.load(templateKind, name)
}

func (f *FilesystemLoader) load(k kind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	path, err := f.contained(filepath.Join(f.basePath, filepath.FromSlash(k.file(name))))
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path) // #nosec G304 -- contained in basePath
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %q", k.notFound, name)
	case err != nil:
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(data), nil
}

// contained resolves symlinks in path and rejects results outside basePath.
// A missing file does not resolve; it is still checked lexically.
func (f *FilesystemLoader) contained(path string) (string, error) {
	if real, err := filepath.EvalSymlinks(path); err == nil {
		path = real
	}
	if !strings.HasPrefix(path, f.basePath+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrPathTraversal, path)
	}
	return path, nil
}

var _ AssetLoader = (*FilesystemLoader)(nil)
