package main

import (
	"time"

	"github.com/spf13/cobra"

	stitchjob "github.com/alnah/go-stitchjob"
)

// newLetterCmd converts a Markdown cover letter.
func newLetterCmd(a *app) *cobra.Command {
	var of outputFlags
	var lf letterFlags

	cmd := &cobra.Command{
		Use:   "letter [file.md]",
		Short: "Convert a Markdown cover letter to LaTeX",
		Long: `Convert a Markdown cover letter with YAML front matter to LaTeX.

The contact block comes from the resume (--resume, letter.resume or
resume.input). A signature_image front matter key names the signature;
--signature falls back to the configured image when it does not.`,
		Example: `  stitch letter
  stitch letter letter/acme.md -r resume/resume.xml --signature
  stitch letter letter/acme.md --date auto:iso --compile`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runLetter(cmd, args, &of, &lf)
		},
	}

	addOutputFlags(cmd.Flags(), &of)
	addLetterFlags(cmd.Flags(), &lf)
	return cmd
}

// runLetter merges flags into the configuration and converts one letter.
func (a *app) runLetter(cmd *cobra.Command, args []string, of *outputFlags, lf *letterFlags) error {
	a.mergeOutputFlags(cmd, of)
	fs := cmd.Flags()
	if fs.Changed("resume") {
		a.cfg.Letter.Resume = lf.resume
	}
	if fs.Changed("signature-image") {
		a.cfg.Letter.SignatureImage = lf.signatureImage
	}
	if fs.Changed("signature-base") {
		a.cfg.Letter.SignatureBase = lf.signatureBase
	}
	if fs.Changed("date") {
		a.cfg.Letter.DateFormat = lf.date
	}
	if err := a.validateMerged(); err != nil {
		return err
	}

	body := a.cfg.Letter.Input
	if len(args) == 1 {
		body = args[0]
	}
	jobs, err := planJobs([]string{body}, of.output, a.cfg.Output.Dir)
	if err != nil {
		return err
	}

	svc, err := a.newService(of)
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := svc.StitchLetter(cmd.Context(), stitchjob.LetterInput{
		Body:   body,
		Resume: a.cfg.ContactSource(),
		Output: jobs[0].Output,
		Signature: stitchjob.Signature{
			Requested: lf.signature,
			Image:     a.cfg.Letter.SignatureImage,
			Base:      a.cfg.Letter.SignatureBase,
		},
		DateFormat: a.cfg.Letter.DateFormat,
		Template:   lf.template,
		Compile:    a.cfg.Compile.Enabled,
	})
	return a.report([]jobResult{{Input: body, Result: res, Err: a.withHint(err), Duration: time.Since(start)}})
}
