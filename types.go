package stitchjob

import (
	"io"
	"log/slog"
	"time"
)

// ResumeInput describes one resume conversion.
type ResumeInput struct {
	Source   string // XML resume path
	Output   string // .tex path; empty = Source with a .tex extension
	Escaping string // "math" (default) or "plain"
	Class    string // document class; empty = stitched
	Compile  bool   // run the compiler after writing
}

// LetterInput describes one cover letter conversion.
type LetterInput struct {
	Body       string    // Markdown letter path
	Resume     string    // resume providing the contact block
	Output     string    // .tex path; empty = Body with a .tex extension
	Signature  Signature // fallback signature image
	DateFormat string    // date used when the letter has none, e.g. "auto:long"
	Template   string    // template asset name; empty = letter
	Compile    bool      // run the compiler after writing
}

// Signature configures the signature image used when the letter's front
// matter names none.
type Signature struct {
	Requested bool   // include Image at all
	Image     string // relative to Base unless absolute
	Base      string // empty = working directory
}

// Result reports the files produced by one conversion.
type Result struct {
	TexPath   string
	ClassPath string // written class file, empty when none
	PDFPath   string // empty unless compiled
	Pages     int    // PDF page count, zero when unknown
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger for debug and warning records.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithAssetPath loads the class and letter template from dir, falling back
// to the embedded assets for anything dir does not provide.
func WithAssetPath(dir string) Option {
	return func(s *Service) {
		s.assetPath = dir
	}
}

// WithCompiler replaces the default pdflatex compiler.
func WithCompiler(c *Compiler) Option {
	return func(s *Service) {
		if c != nil {
			s.compiler = c
		}
	}
}

// WithClock sets the time source used for "auto" letter dates.
// Panics if now is nil (programmer error).
func WithClock(now func() time.Time) Option {
	if now == nil {
		panic("stitchjob: WithClock requires a non-nil function")
	}
	return func(s *Service) {
		s.now = now
	}
}

// discardLogger drops every record.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
