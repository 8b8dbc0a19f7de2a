package main

import (
	"errors"
	"os"

	stitchjob "github.com/alnah/go-stitchjob"
	"github.com/alnah/go-stitchjob/internal/config"
)

// Exit codes for the stitch CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or environment
	ExitIO      = 3 // Source, output or signature file problems
	ExitCompile = 4 // Compiler missing or failed
	ExitSource  = 5 // Malformed or unsupported source structure
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Compile errors (exit 4)
	if errors.Is(err, stitchjob.ErrCompile) ||
		errors.Is(err, stitchjob.ErrCompilerNotFound) {
		return ExitCompile
	}

	// Source structure errors (exit 5)
	if errors.Is(err, stitchjob.ErrSourceParse) ||
		errors.Is(err, stitchjob.ErrUnknownTag) ||
		errors.Is(err, stitchjob.ErrTemplate) {
		return ExitSource
	}

	// I/O errors (exit 3)
	if errors.Is(err, stitchjob.ErrSourceNotFound) ||
		errors.Is(err, stitchjob.ErrSignatureNotFound) ||
		errors.Is(err, stitchjob.ErrOutputNotWritable) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, ErrInvalidEnv) ||
		errors.Is(err, ErrOutputConflict) ||
		errors.Is(err, ErrInvalidColor) ||
		errors.Is(err, stitchjob.ErrInvalidEscaping) ||
		errors.Is(err, stitchjob.ErrInvalidAssetPath) ||
		errors.Is(err, stitchjob.ErrInvalidDate) ||
		errors.Is(err, stitchjob.ErrClassNotFound) ||
		errors.Is(err, stitchjob.ErrTemplateNotFound) {
		return ExitUsage
	}

	return ExitGeneral
}
