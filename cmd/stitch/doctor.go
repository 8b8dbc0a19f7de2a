package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	stitchjob "github.com/alnah/go-stitchjob"
	"github.com/alnah/go-stitchjob/internal/assets"
	"github.com/alnah/go-stitchjob/internal/fileutil"
	"github.com/alnah/go-stitchjob/internal/hints"
)

// Check statuses, also used as the overall status.
const (
	checkOK    = "ok"
	checkWarn  = "warning"
	checkError = "error"
)

// versionTimeout bounds the compiler --version probe.
const versionTimeout = 10 * time.Second

// ErrDoctorFailed indicates at least one doctor check failed.
var ErrDoctorFailed = errors.New("environment check failed")

// doctorCheck is one diagnostic line.
type doctorCheck struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status    string        `json:"status"` // ok, warning or error
	OS        string        `json:"os"`
	Arch      string        `json:"arch"`
	Container bool          `json:"container"`
	Checks    []doctorCheck `json:"checks"`
}

func (r *doctorResult) add(name, status, format string, args ...any) {
	r.Checks = append(r.Checks, doctorCheck{Name: name, Status: status, Message: fmt.Sprintf(format, args...)})
	switch {
	case status == checkError:
		r.Status = checkError
	case status == checkWarn && r.Status == checkOK:
		r.Status = checkWarn
	}
}

// newDoctorCmd checks that the environment can build documents.
func newDoctorCmd(a *app) *cobra.Command {
	var jsonOutput bool
	var assetPath string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the LaTeX toolchain and configuration",
		Long: `Check that the LaTeX compiler is installed, the document class and
letter template load, and the temp directory is writable.

Exits non-zero when a check fails; warnings do not.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if assetPath == "" {
				assetPath = a.cfg.Assets.BasePath
			}
			result := a.runDoctor(cmd.Context(), assetPath)
			if jsonOutput {
				if err := a.printer.WriteJSON(result); err != nil {
					return err
				}
			} else {
				a.printDoctor(result)
			}
			if result.Status == checkError {
				return ErrDoctorFailed
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	cmd.Flags().StringVar(&assetPath, "asset-path", "", "directory with classes/ and templates/ overrides")
	return cmd
}

// runDoctor performs all diagnostic checks.
func (a *app) runDoctor(ctx context.Context, assetPath string) *doctorResult {
	result := &doctorResult{
		Status:    checkOK,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		Container: hints.IsInContainer(),
	}

	a.checkCompiler(ctx, result)
	checkAssets(result, assetPath)
	a.checkConfig(result)
	checkTempDir(result)
	return result
}

// checkCompiler locates the configured compiler and reads its version.
func (a *app) checkCompiler(ctx context.Context, result *doctorResult) {
	command := a.cfg.Compile.Command
	lookPath := a.env.LookPath
	if lookPath == nil {
		return
	}

	path, err := lookPath(command)
	if err != nil {
		status := checkError
		if !a.cfg.Compile.Enabled {
			// Conversions still work; only --compile needs it.
			status = checkWarn
		}
		result.add("compiler", status, "%s not found%s", command, hints.ForCompilerNotFound(command))
		return
	}
	result.add("compiler", checkOK, "%s", path)

	runner := a.env.Runner
	if runner == nil {
		runner = &stitchjob.ExecRunner{}
	}
	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()
	out, err := runner.Run(ctx, "", path, "--version")
	if err != nil {
		result.add("version", checkWarn, "could not get %s version: %v", command, err)
		return
	}
	line, _, _ := strings.Cut(strings.TrimSpace(out), "\n")
	result.add("version", checkOK, "%s", line)
}

// checkAssets loads the built-in class and letter template, or their
// overrides from assetPath.
func checkAssets(result *doctorResult, assetPath string) {
	resolver, err := assets.NewAssetResolver(assetPath)
	if err != nil {
		result.add("assets", checkError, "%v", err)
		return
	}
	if resolver.HasCustomLoader() {
		result.add("assets", checkOK, "overrides from %s", assetPath)
	} else {
		result.add("assets", checkOK, "embedded")
	}
	if _, err := resolver.LoadClass(assets.DefaultClassName); err != nil {
		result.add("class", checkError, "%v", err)
	} else {
		result.add("class", checkOK, "%s", assets.ClassFileName(assets.DefaultClassName))
	}
	if _, err := resolver.LoadTemplate(assets.DefaultLetterTemplate); err != nil {
		result.add("template", checkError, "%v", err)
	} else {
		result.add("template", checkOK, "%s", assets.DefaultLetterTemplate)
	}
}

// checkConfig reports which configuration is in effect and warns about
// missing default inputs.
func (a *app) checkConfig(result *doctorResult) {
	source := "built-in defaults"
	if a.flags.config != "" {
		source = a.flags.config
	} else if a.envCfg != nil && a.envCfg.ConfigPath != "" {
		source = a.envCfg.ConfigPath
	}
	result.add("config", checkOK, "%s", source)

	for _, in := range []string{a.cfg.Resume.Input, a.cfg.Letter.Input} {
		if !fileutil.FileExists(in) {
			result.add("input", checkWarn, "%s not found", in)
		}
	}
}

// checkTempDir verifies the temp directory is writable.
func checkTempDir(result *doctorResult) {
	f, err := os.CreateTemp("", "stitch-doctor-*")
	if err != nil {
		result.add("tempdir", checkError, "not writable: %s", os.TempDir())
		return
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	result.add("tempdir", checkOK, "writable")
}

// printDoctor outputs human-readable diagnostic results.
func (a *app) printDoctor(r *doctorResult) {
	a.printer.Heading("stitch doctor")
	a.printer.KeyValue("platform", r.OS+"/"+r.Arch)
	if r.Container {
		a.printer.KeyValue("container", "detected")
	}
	a.printer.Println()
	for _, c := range r.Checks {
		a.printer.Check(c.Status, c.Name+": "+c.Message)
	}
	a.printer.Println()
	switch r.Status {
	case checkOK:
		a.printer.Println("Status: ready")
	case checkWarn:
		a.printer.Println("Status: ready with warnings")
	default:
		a.printer.Println("Status: errors found")
	}
}
