package assets

import "errors"

// Sentinel errors for asset operations.
var (
	// ErrClassNotFound indicates no .cls file exists for a class name.
	ErrClassNotFound = errors.New("class not found")

	// ErrTemplateNotFound indicates no letter template exists for a name.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrInvalidAssetName indicates a name that cannot be a bare file stem.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath indicates the override directory is unusable.
	ErrInvalidBasePath = errors.New("invalid asset directory")

	// ErrAssetRead indicates an override file exists but cannot be read.
	ErrAssetRead = errors.New("cannot read asset")

	// ErrPathTraversal indicates an override resolves outside its directory.
	ErrPathTraversal = errors.New("asset path escapes directory")
)
