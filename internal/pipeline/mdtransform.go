package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Compress multiple blank lines to max 2
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)

	// Trailing spaces other than a Markdown hard break (two or more spaces)
	strayTrailingSpace = regexp.MustCompile(`(?m)(\S) $`)
)

// Preprocessor defines the contract for body preprocessing.
type Preprocessor interface {
	Preprocess(ctx context.Context, content string) string
}

// MarkdownPreprocessor cleans letter bodies before conversion.
type MarkdownPreprocessor struct{}

// Preprocess applies all transformations to prepare the body for conversion.
func (p *MarkdownPreprocessor) Preprocess(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = NormalizeLineEndings(content)
	content = strayTrailingSpace.ReplaceAllString(content, "$1")
	content = compressBlankLines(content)
	return strings.Trim(content, "\n")
}

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// compressBlankLines limits consecutive blank lines to 2 maximum.
func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}
