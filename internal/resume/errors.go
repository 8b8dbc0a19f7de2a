package resume

import (
	"errors"
	"fmt"
)

// Sentinel errors for loading a resume source.
var (
	// ErrSourceNotFound indicates the source file could not be read.
	ErrSourceNotFound = errors.New("cannot read source")

	// ErrSourceParse indicates the source is not well-formed XML.
	ErrSourceParse = errors.New("cannot parse source")

	// ErrUnknownTag indicates a section child outside the supported vocabulary.
	ErrUnknownTag = errors.New("unknown section child")
)

// TagError reports a section child whose tag has no node variant.
type TagError struct {
	Section string // section type attribute, may be empty
	Tag     string // offending child tag
}

func (e *TagError) Error() string {
	if e.Section == "" {
		return fmt.Sprintf("%s <%s>", ErrUnknownTag, e.Tag)
	}
	return fmt.Sprintf("%s <%s> in %q section", ErrUnknownTag, e.Tag, e.Section)
}

// Unwrap makes errors.Is(err, ErrUnknownTag) hold.
func (e *TagError) Unwrap() error {
	return ErrUnknownTag
}
