package fileutil

// Notes:
// - The rename-failure branch of WriteFileAtomic is exercised by writing over
//   an existing directory; chmod and close failures are not reproducible
//   without fault injection and are left untested.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestWriteFileAtomic - No partial output
// ---------------------------------------------------------------------------

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	t.Run("creates file and parents", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out", "nested", "resume.tex")
		if err := WriteFileAtomic(path, []byte(`\documentclass{stitched}`), 0o644); err != nil {
			t.Fatalf("WriteFileAtomic() unexpected error: %v", err)
		}
		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile() error: %v", err)
		}
		if string(got) != `\documentclass{stitched}` {
			t.Errorf("content = %q", got)
		}
	})

	t.Run("replaces existing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "resume.tex")
		if err := os.WriteFile(path, []byte("old"), 0o600); err != nil {
			t.Fatalf("WriteFile() error: %v", err)
		}
		if err := WriteFileAtomic(path, []byte("new"), 0o644); err != nil {
			t.Fatalf("WriteFileAtomic() unexpected error: %v", err)
		}
		got, _ := os.ReadFile(path)
		if string(got) != "new" {
			t.Errorf("content = %q, want %q", got, "new")
		}
	})

	t.Run("leaves no temp files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if err := WriteFileAtomic(filepath.Join(dir, "a.tex"), []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFileAtomic() unexpected error: %v", err)
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("ReadDir() error: %v", err)
		}
		if len(entries) != 1 || entries[0].Name() != "a.tex" {
			t.Errorf("directory holds %d entries, want only a.tex", len(entries))
		}
	})

	t.Run("rename over directory fails cleanly", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		target := filepath.Join(dir, "taken")
		if err := os.MkdirAll(filepath.Join(target, "child"), 0o750); err != nil {
			t.Fatalf("MkdirAll() error: %v", err)
		}
		if err := WriteFileAtomic(target, []byte("x"), 0o644); err == nil {
			t.Fatal("WriteFileAtomic() over a directory should fail")
		}
		entries, _ := os.ReadDir(dir)
		for _, e := range entries {
			if strings.HasSuffix(e.Name(), ".tmp") {
				t.Errorf("temp file %q left behind", e.Name())
			}
		}
	})

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()

		if err := WriteFileAtomic("", []byte("x"), 0o644); !errors.Is(err, ErrEmptyPath) {
			t.Errorf("WriteFileAtomic(\"\") error = %v, want ErrEmptyPath", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestFileExists
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "sig.png")
	if err := os.WriteFile(file, []byte("png"), 0o600); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "regular file", path: file, want: true},
		{name: "directory", path: dir, want: false},
		{name: "missing", path: filepath.Join(dir, "missing.png"), want: false},
		{name: "empty path", path: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FileExists(tt.path); got != tt.want {
				t.Errorf("FileExists(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestReplaceExt / TestIsFilePath - Path helpers
// ---------------------------------------------------------------------------

func TestReplaceExt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		ext  string
		want string
	}{
		{path: "resume/resume.xml", ext: ".tex", want: "resume/resume.tex"},
		{path: "letter.md", ext: ".tex", want: "letter.tex"},
		{path: "notes", ext: ".tex", want: "notes.tex"},
		{path: "v1.2/letter", ext: ".tex", want: "v1.2/letter.tex"},
		{path: "out/resume.tex", ext: ".pdf", want: "out/resume.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			if got := ReplaceExt(tt.path, tt.ext); got != tt.want {
				t.Errorf("ReplaceExt(%q, %q) = %q, want %q", tt.path, tt.ext, got, tt.want)
			}
		})
	}
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{input: "stitch", want: false},
		{input: "my-config", want: false},
		{input: "./stitch.yaml", want: true},
		{input: "/etc/stitch.yaml", want: true},
		{input: `C:\config\stitch.yaml`, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := IsFilePath(tt.input); got != tt.want {
				t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
