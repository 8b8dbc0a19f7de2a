package letter

import "errors"

// Sentinel errors for the letter pipeline. Source read and parse failures
// reuse resume.ErrSourceNotFound and resume.ErrSourceParse.
var (
	// ErrSignatureNotFound indicates a requested signature image does not exist.
	ErrSignatureNotFound = errors.New("signature image not found")

	// ErrAlreadyEscaped indicates Escape was called on an escaped letter.
	ErrAlreadyEscaped = errors.New("letter already escaped")

	// ErrNotEscaped indicates Render was called before Escape.
	ErrNotEscaped = errors.New("letter not escaped")

	// ErrTemplate indicates the letter template could not be parsed or filled.
	ErrTemplate = errors.New("letter template failed")
)
