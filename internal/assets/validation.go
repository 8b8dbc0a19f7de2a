package assets

import (
	"fmt"
	"regexp"
)

// assetName admits the characters LaTeX class and file names use safely.
var assetName = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateAssetName checks that an asset name is safe for use as a filename.
// Returns ErrInvalidAssetName if the name is empty or contains anything but
// letters, digits, hyphens and underscores. Separators, dots and traversal
// sequences are therefore rejected.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if !assetName.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
