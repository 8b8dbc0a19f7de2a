package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	stitchjob "github.com/alnah/go-stitchjob"
	"github.com/alnah/go-stitchjob/internal/config"
	"github.com/alnah/go-stitchjob/internal/fileutil"
	"github.com/alnah/go-stitchjob/internal/hints"
	"github.com/alnah/go-stitchjob/internal/resume"
)

// app is the state shared by subcommands, filled before any of them runs.
type app struct {
	env     *Environment
	flags   commonFlags
	envCfg  *envConfig
	cfg     *config.Config
	logger  *slog.Logger
	printer *Printer
}

// newRootCmd creates the root command for the stitch CLI.
func newRootCmd(env *Environment) *cobra.Command {
	a := &app{env: env}

	cmd := &cobra.Command{
		Use:   "stitch",
		Short: "Stitch XML resumes and Markdown cover letters into LaTeX",
		Long: `stitch converts a resume described in XML and a cover letter written in
Markdown with YAML front matter into LaTeX sources, and optionally compiles
them with pdflatex.

The letter takes its contact block from the resume, so both documents share
one source of truth for name, email and phone.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.SetOut(env.Stdout)
	cmd.SetErr(env.Stderr)

	addCommonFlags(cmd.PersistentFlags(), &a.flags)

	// Configure lipgloss for TTY detection
	lipgloss.SetHasDarkBackground(true)

	cmd.AddGroup(&cobra.Group{ID: "convert", Title: "Convert Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "admin", Title: "Admin Commands:"})
	addGroupedCommand(cmd, newResumeCmd(a), "convert")
	addGroupedCommand(cmd, newLetterCmd(a), "convert")
	addGroupedCommand(cmd, newInspectCmd(a), "admin")
	addGroupedCommand(cmd, newDoctorCmd(a), "admin")
	addGroupedCommand(cmd, newVersionCmd(a), "admin")

	return cmd
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}

// setup builds the printer, logger and configuration.
// Precedence: defaults < config file < STITCH_* variables < flags.
func (a *app) setup() error {
	color, err := resolveColor(a.flags.color, a.env.Stdout)
	if err != nil {
		return err
	}
	a.printer = NewPrinter(a.env.Stdout, a.env.Stderr, a.flags.quiet, color)
	a.logger = newLogger(a.env, a.flags)

	if a.env.Environ != nil {
		warnUnknownEnvVars(a.env.Environ(), a.env.Stderr)
	}
	a.envCfg, err = loadEnvConfig(a.env.Getenv)
	if err != nil {
		return err
	}

	a.cfg, err = loadConfig(a.flags.config, a.envCfg.ConfigPath)
	if err != nil {
		return err
	}
	a.envCfg.apply(a.cfg)
	return nil
}

// newLogger returns a text logger on stderr: debug with --verbose, errors
// only with --quiet, info otherwise.
func newLogger(env *Environment, f commonFlags) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case f.verbose:
		level = slog.LevelDebug
	case f.quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(env.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadConfig loads the config named by the flag, else by STITCH_CONFIG,
// else returns the defaults.
func loadConfig(flagValue, envValue string) (*config.Config, error) {
	name := flagValue
	if name == "" {
		name = envValue
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if errors.Is(err, config.ErrConfigNotFound) {
		var searched []string
		if !fileutil.IsFilePath(name) {
			searched = config.SearchPaths(name)
		}
		return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound(searched))
	}
	return cfg, err
}

// newService creates a Service from the merged configuration.
func (a *app) newService(of *outputFlags) (*stitchjob.Service, error) {
	compiler := stitchjob.NewCompiler()
	compiler.Command = a.cfg.Compile.Command
	compiler.Runs = a.cfg.Compile.Runs
	compiler.Timeout = a.cfg.Compile.Timeout
	if a.env.Runner != nil {
		compiler.Runner = a.env.Runner
	}

	assetPath := a.cfg.Assets.BasePath
	if of.assetPath != "" {
		assetPath = of.assetPath
	}

	return stitchjob.NewService(
		stitchjob.WithLogger(a.logger),
		stitchjob.WithAssetPath(assetPath),
		stitchjob.WithCompiler(compiler),
		stitchjob.WithClock(a.env.Now),
	)
}

// mergeOutputFlags applies explicitly set output flags over the config.
func (a *app) mergeOutputFlags(cmd *cobra.Command, of *outputFlags) {
	fs := cmd.Flags()
	if fs.Changed("compile") {
		a.cfg.Compile.Enabled = of.compile
	}
	if fs.Changed("runs") {
		a.cfg.Compile.Runs = of.runs
	}
	if fs.Changed("timeout") {
		a.cfg.Compile.Timeout = of.timeout
	}
}

// validateMerged re-checks the config after flags were applied.
func (a *app) validateMerged() error {
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	a.cfg.ApplyDefaults()
	return nil
}

// newVersionCmd prints the version.
func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the stitch version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.printer.Println("stitch " + Version)
			return nil
		},
	}
}

// withHint appends the actionable hint matching err, if any.
func (a *app) withHint(err error) error {
	if err == nil {
		return nil
	}
	hint := hintFor(err, a.cfg.Compile.Command)
	if hint == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, hint)
}

// hintFor picks the hint for an error kind. compiler names the engine binary.
func hintFor(err error, compiler string) string {
	var ce *stitchjob.CompileError
	switch {
	case errors.Is(err, stitchjob.ErrCompilerNotFound):
		return hints.ForCompilerNotFound(compiler)
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.As(err, &ce):
		return hints.ForCompileFailed(ce.Log)
	case errors.Is(err, stitchjob.ErrSignatureNotFound):
		return hints.ForSignatureImage()
	case errors.Is(err, stitchjob.ErrUnknownTag):
		return hints.ForUnknownTag(resume.SupportedTags())
	case errors.Is(err, stitchjob.ErrOutputNotWritable):
		return hints.ForOutputDirectory()
	}
	return ""
}
