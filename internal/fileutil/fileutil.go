// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrEmptyPath indicates a write was requested without a destination.
var ErrEmptyPath = errors.New("path cannot be empty")

// WriteFileAtomic writes data to path through a temporary file in the same
// directory, renamed into place once complete. Missing parent directories
// are created. On any failure the destination is left untouched and the
// temporary file is removed, so no partial file is ever visible.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if path == "" {
		return ErrEmptyPath
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		cleanup()
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ReplaceExt swaps the extension of path for ext (which includes the dot).
// A path without an extension gains ext.
//
// Examples:
//   - "resume/resume.xml", ".tex" -> "resume/resume.tex"
//   - "letter.md", ".tex" -> "letter.tex"
//   - "notes", ".tex" -> "notes.tex"
//   - "v1.2/letter", ".tex" -> "v1.2/letter.tex"
func ReplaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "stitch" -> false (name)
//   - "./stitch.yaml" -> true (relative path)
//   - "/etc/stitch.yaml" -> true (absolute)
//   - "C:\config\stitch.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
