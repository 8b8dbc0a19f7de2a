package letter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SignatureOptions configures the fallback signature image.
type SignatureOptions struct {
	Requested bool   // include the configured image when metadata names none
	Image     string // configured image, relative to Base unless absolute
	Base      string // directory Image is relative to; empty means the working directory
}

// ResolveSignature picks the signature image for a letter whose body lives at
// bodyPath:
//
//  1. metadata signature_image, relative to the body's directory
//  2. opts.Image relative to opts.Base, when opts.Requested
//  3. none, returning ""
//
// A chosen image that does not exist is ErrSignatureNotFound. The result is
// relative to the body's directory when the image lies inside it, otherwise
// absolute, always with forward slashes.
func ResolveSignature(bodyPath string, meta map[string]string, opts SignatureOptions) (string, error) {
	bodyDir, err := filepath.Abs(filepath.Dir(bodyPath))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSignatureNotFound, err)
	}

	var candidate string
	switch {
	case strings.TrimSpace(meta[MetaSignatureImage]) != "":
		candidate = under(bodyDir, strings.TrimSpace(meta[MetaSignatureImage]))
	case opts.Requested && opts.Image != "":
		base, err := filepath.Abs(opts.Base)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrSignatureNotFound, err)
		}
		candidate = under(base, opts.Image)
	default:
		return "", nil
	}

	info, err := os.Stat(candidate)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrSignatureNotFound, candidate)
	}
	return portable(bodyDir, candidate), nil
}

// under joins p to dir unless p is already absolute.
func under(dir, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(dir, p)
}

// portable expresses target relative to dir when target lies inside dir.
func portable(dir, target string) string {
	rel, err := filepath.Rel(dir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(target)
	}
	return filepath.ToSlash(rel)
}
