package stitchjob

import (
	"errors"

	"github.com/alnah/go-stitchjob/internal/assets"
	"github.com/alnah/go-stitchjob/internal/dateutil"
	"github.com/alnah/go-stitchjob/internal/letter"
	"github.com/alnah/go-stitchjob/internal/resume"
)

// Sentinel errors for library operations. Each kind is distinct; the wrapped
// message carries the offending path or identifier.
var (
	// Source errors.
	ErrSourceNotFound = resume.ErrSourceNotFound
	ErrSourceParse    = resume.ErrSourceParse
	ErrUnknownTag     = resume.ErrUnknownTag

	// Letter errors.
	ErrSignatureNotFound = letter.ErrSignatureNotFound
	ErrAlreadyEscaped    = letter.ErrAlreadyEscaped
	ErrTemplate          = letter.ErrTemplate
	ErrInvalidDate       = dateutil.ErrInvalidDateFormat

	// Output errors.
	ErrOutputNotWritable = errors.New("cannot write output")

	// Compilation errors.
	ErrCompile          = errors.New("compilation failed")
	ErrCompilerNotFound = errors.New("compiler not found")

	// Option validation errors.
	ErrInvalidEscaping  = errors.New("invalid escaping mode")
	ErrInvalidAssetPath = errors.New("invalid asset path")

	// Asset loading errors.
	ErrClassNotFound    = assets.ErrClassNotFound
	ErrTemplateNotFound = assets.ErrTemplateNotFound
)

// TagError reports a section child whose tag has no node variant.
type TagError = resume.TagError
