// Package yamlutil wraps YAML parsing to isolate the external dependency.
// Configuration files and letter front matter both decode through it.
package yamlutil

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData             = errors.New("yamlutil: nil or empty data")
	ErrNilDestination      = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge       = errors.New("yamlutil: input exceeds maximum size")
	ErrUnclosedFrontMatter = errors.New("yamlutil: front matter is not closed")
)

// frontMatterFence opens and closes a front matter block.
const frontMatterFence = "---"

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// Unmarshal decodes data into v, ignoring unknown fields.
func Unmarshal(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// SplitFrontMatter separates a leading "---" delimited YAML block from the
// rest of data. Without an opening fence the whole input is body and header
// is nil. The closing fence may also be "...". Line endings must already be
// normalized to "\n".
func SplitFrontMatter(data []byte) (header, body []byte, err error) {
	first, rest, found := bytes.Cut(data, []byte("\n"))
	if !found || string(bytes.TrimRight(first, " \t")) != frontMatterFence {
		return nil, data, nil
	}

	offset := 0
	for offset <= len(rest) {
		line, _, more := bytes.Cut(rest[offset:], []byte("\n"))
		fence := string(bytes.TrimRight(line, " \t"))
		if fence == frontMatterFence || fence == "..." {
			header = rest[:offset]
			body = rest[min(offset+len(line)+1, len(rest)):]
			return header, body, nil
		}
		if !more {
			break
		}
		offset += len(line) + 1
	}
	return nil, nil, ErrUnclosedFrontMatter
}

// FrontMatter decodes the front matter of data into v and returns the body.
// An absent or blank header leaves v untouched.
func FrontMatter(data []byte, v any) ([]byte, error) {
	header, body, err := SplitFrontMatter(data)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(header)) == 0 {
		return body, nil
	}
	if err := Unmarshal(header, v); err != nil {
		return nil, err
	}
	return body, nil
}
