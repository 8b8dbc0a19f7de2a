package main

import (
	"context"

	"github.com/spf13/cobra"

	stitchjob "github.com/alnah/go-stitchjob"
)

// newResumeCmd converts one or more XML resumes.
func newResumeCmd(a *app) *cobra.Command {
	var of outputFlags
	var rf resumeFlags

	cmd := &cobra.Command{
		Use:   "resume [file.xml...]",
		Short: "Convert XML resumes to LaTeX",
		Long: `Convert XML resumes to LaTeX using the stitched document class.

Without arguments the configured resume.input is converted. Several inputs
are converted concurrently; -o then names a directory.`,
		Example: `  stitch resume
  stitch resume resume/resume.xml --compile
  stitch resume a.xml b.xml -o build/ --workers 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runResume(cmd, args, &of, &rf)
		},
	}

	addOutputFlags(cmd.Flags(), &of)
	addResumeFlags(cmd.Flags(), &rf)
	return cmd
}

// runResume merges flags, plans outputs and converts every input.
func (a *app) runResume(cmd *cobra.Command, args []string, of *outputFlags, rf *resumeFlags) error {
	a.mergeOutputFlags(cmd, of)
	if cmd.Flags().Changed("escaping") {
		a.cfg.Resume.Escaping = rf.escaping
	}
	if cmd.Flags().Changed("class") {
		a.cfg.Resume.Class = rf.class
	}
	if err := a.validateMerged(); err != nil {
		return err
	}

	inputs := args
	if len(inputs) == 0 {
		inputs = []string{a.cfg.Resume.Input}
	}
	jobs, err := planJobs(inputs, of.output, a.cfg.Output.Dir)
	if err != nil {
		return err
	}

	svc, err := a.newService(of)
	if err != nil {
		return err
	}

	workers := 1
	if len(jobs) > 1 {
		workers = resolveWorkers(rf.workers, a.envCfg.Workers, a.logger)
		a.logger.Debug("converting resumes", "count", len(jobs), "workers", workers)
	}

	results := convertBatch(cmd.Context(), workers, jobs, func(ctx context.Context, j job) (*stitchjob.Result, error) {
		res, err := svc.StitchResume(ctx, stitchjob.ResumeInput{
			Source:   j.Input,
			Output:   j.Output,
			Escaping: a.cfg.Resume.Escaping,
			Class:    a.cfg.Resume.Class,
			Compile:  a.cfg.Compile.Enabled,
		})
		return res, a.withHint(err)
	})
	return a.report(results)
}

// report prints each result. A single failure is returned as is; in a batch
// each failure is printed and a summary error returned.
func (a *app) report(results []jobResult) error {
	succeeded := 0
	for _, r := range results {
		if r.Err != nil {
			if len(results) > 1 {
				a.printer.Failed(r.Input, r.Err)
			}
			continue
		}
		succeeded++
		a.printer.Created(r.Result.TexPath, r.Duration, a.flags.verbose)
		if r.Result.PDFPath != "" {
			a.printer.Created(r.Result.PDFPath, r.Duration, a.flags.verbose)
		}
	}
	if len(results) > 1 {
		a.printer.Summary(succeeded, len(results)-succeeded)
	}
	return firstError(results)
}
