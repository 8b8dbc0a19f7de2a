package main

import (
	"time"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
	color   string
}

// outputFlags holds output and compilation flags.
type outputFlags struct {
	output    string
	compile   bool
	runs      int
	timeout   time.Duration
	assetPath string
}

// resumeFlags holds resume-only flags.
type resumeFlags struct {
	escaping string
	class    string
	workers  int
}

// letterFlags holds letter-only flags.
type letterFlags struct {
	resume         string
	signature      bool
	signatureImage string
	signatureBase  string
	date           string
	template       string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
	fs.StringVar(&f.color, "color", "auto", "colored output: auto, always, never")
}

// addOutputFlags adds output and compilation flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output .tex file or directory")
	fs.BoolVar(&f.compile, "compile", false, "compile the result to PDF")
	fs.IntVar(&f.runs, "runs", 0, "compiler passes (1-5)")
	fs.DurationVarP(&f.timeout, "timeout", "t", 0, "compile timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory with classes/ and templates/ overrides")
}

// addResumeFlags adds resume flags to a FlagSet.
func addResumeFlags(fs *flag.FlagSet, f *resumeFlags) {
	fs.StringVar(&f.escaping, "escaping", "", "escaping mode: math, plain")
	fs.StringVar(&f.class, "class", "", "document class (default: stitched)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel conversions (0 = auto)")
}

// addLetterFlags adds letter flags to a FlagSet.
func addLetterFlags(fs *flag.FlagSet, f *letterFlags) {
	fs.StringVarP(&f.resume, "resume", "r", "", "resume providing the contact block")
	fs.BoolVarP(&f.signature, "signature", "s", false, "include the configured signature image")
	fs.StringVar(&f.signatureImage, "signature-image", "", "signature image used with --signature")
	fs.StringVar(&f.signatureBase, "signature-base", "", "directory --signature-image is relative to")
	fs.StringVar(&f.date, "date", "", "date when the letter has none (auto, auto:FORMAT, preset or literal)")
	fs.StringVar(&f.template, "template", "", "letter template name")
}
