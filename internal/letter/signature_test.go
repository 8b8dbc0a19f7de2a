package letter

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestResolveSignature - Resolution priority and path form
// ---------------------------------------------------------------------------

func TestResolveSignature(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	bodyDir := filepath.Join(root, "letter")
	bodyPath := filepath.Join(bodyDir, "letter.md")
	toolDir := filepath.Join(root, "tool")

	writeFile(t, bodyPath, "body")
	writeFile(t, filepath.Join(bodyDir, "mysig.png"), "png")
	writeFile(t, filepath.Join(bodyDir, "img", "ink.png"), "png")
	writeFile(t, filepath.Join(toolDir, "signature.png"), "png")
	writeFile(t, filepath.Join(bodyDir, "defaults", "signature.png"), "png")

	outside := filepath.ToSlash(filepath.Join(toolDir, "signature.png"))

	tests := []struct {
		name string
		meta map[string]string
		opts SignatureOptions
		want string
	}{
		{
			name: "metadata image relative to body",
			meta: map[string]string{"signature_image": "mysig.png"},
			want: "mysig.png",
		},
		{
			name: "metadata image wins over requested default",
			meta: map[string]string{"signature_image": "mysig.png"},
			opts: SignatureOptions{Requested: true, Image: "signature.png", Base: toolDir},
			want: "mysig.png",
		},
		{
			name: "metadata image without request",
			meta: map[string]string{"signature_image": "img/ink.png"},
			want: "img/ink.png",
		},
		{
			name: "requested default outside body dir is absolute",
			meta: map[string]string{},
			opts: SignatureOptions{Requested: true, Image: "signature.png", Base: toolDir},
			want: outside,
		},
		{
			name: "requested default inside body dir is relative",
			meta: map[string]string{},
			opts: SignatureOptions{Requested: true, Image: "defaults/signature.png", Base: bodyDir},
			want: "defaults/signature.png",
		},
		{
			name: "absolute metadata path inside body dir",
			meta: map[string]string{"signature_image": filepath.Join(bodyDir, "mysig.png")},
			want: "mysig.png",
		},
		{
			name: "default not requested",
			meta: map[string]string{},
			opts: SignatureOptions{Image: "signature.png", Base: toolDir},
			want: "",
		},
		{
			name: "blank metadata value ignored",
			meta: map[string]string{"signature_image": "  "},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ResolveSignature(bodyPath, tt.meta, tt.opts)
			if err != nil {
				t.Fatalf("ResolveSignature() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveSignature() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveSignature_NotFound(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	bodyPath := filepath.Join(root, "letter.md")
	writeFile(t, bodyPath, "body")
	writeFile(t, filepath.Join(root, "signature.png"), "png")

	tests := []struct {
		name     string
		meta     map[string]string
		opts     SignatureOptions
		wantPath string
	}{
		{
			name:     "metadata image missing",
			meta:     map[string]string{"signature_image": "mysig.png"},
			wantPath: "mysig.png",
		},
		{
			// The configured default is not consulted when metadata names an image.
			name:     "metadata image missing with valid default",
			meta:     map[string]string{"signature_image": "mysig.png"},
			opts:     SignatureOptions{Requested: true, Image: "signature.png", Base: root},
			wantPath: "mysig.png",
		},
		{
			name:     "requested default missing",
			meta:     map[string]string{},
			opts:     SignatureOptions{Requested: true, Image: "other.png", Base: root},
			wantPath: "other.png",
		},
		{
			name:     "directory is not an image",
			meta:     map[string]string{"signature_image": "."},
			wantPath: root,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ResolveSignature(bodyPath, tt.meta, tt.opts)
			if !errors.Is(err, ErrSignatureNotFound) {
				t.Fatalf("ResolveSignature() error = %v, want ErrSignatureNotFound", err)
			}
			if !strings.Contains(err.Error(), tt.wantPath) {
				t.Errorf("error %q should name %q", err, tt.wantPath)
			}
		})
	}
}
