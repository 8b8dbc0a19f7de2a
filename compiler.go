package stitchjob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/alnah/go-stitchjob/internal/fileutil"
	"github.com/alnah/go-stitchjob/internal/process"
)

// Compiler defaults.
const (
	DefaultCompileCommand = "pdflatex"
	DefaultCompileRuns    = 1
	DefaultCompileTimeout = 2 * time.Minute

	// logTailLines caps the compiler log excerpt carried by ErrCompile.
	logTailLines = 20
)

// CommandRunner abstracts command execution to enable testing without real subprocesses.
type CommandRunner interface {
	// Run executes name with args in dir and returns combined output.
	Run(ctx context.Context, dir, name string, args ...string) (output string, err error)
}

// ExecRunner implements CommandRunner using os/exec. The command runs in its
// own process group, killed as a whole when ctx is done.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- compiler command is user-configured
	cmd.Dir = dir
	process.Isolate(cmd)
	cmd.Cancel = func() error {
		process.KillProcessGroup(cmd.Process.Pid)
		return cmd.Process.Kill()
	}

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.String(), err
}

// Compiler turns an emitted .tex file into a PDF with an external LaTeX engine.
type Compiler struct {
	Command string        // engine binary, default pdflatex
	Runs    int           // passes, default 1; cross references need 2
	Timeout time.Duration // whole compile budget, zero means none
	Runner  CommandRunner
}

// NewCompiler creates a Compiler with default settings and a real runner.
func NewCompiler() *Compiler {
	return &Compiler{
		Command: DefaultCompileCommand,
		Runs:    DefaultCompileRuns,
		Timeout: DefaultCompileTimeout,
		Runner:  &ExecRunner{},
	}
}

// Compile runs the engine on texPath inside its directory and returns the
// path of the produced PDF. The class file, if any, must already be in place.
func (c *Compiler) Compile(ctx context.Context, texPath string) (string, error) {
	if texPath == "" {
		return "", fmt.Errorf("%w: %w", ErrCompile, fileutil.ErrEmptyPath)
	}
	command := c.Command
	if command == "" {
		command = DefaultCompileCommand
	}
	runs := c.Runs
	if runs <= 0 {
		runs = DefaultCompileRuns
	}
	runner := c.Runner
	if runner == nil {
		runner = &ExecRunner{}
	}
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	abs, err := filepath.Abs(texPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCompile, err)
	}
	dir, name := filepath.Split(abs)
	args := []string{"-interaction=nonstopmode", "-halt-on-error", "-output-directory=" + dir, name}

	for range runs {
		out, err := runner.Run(ctx, dir, command, args...)
		if err == nil {
			continue
		}
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", ErrCompilerNotFound, command)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrCompile, texPath, ctxErr)
		}
		logPath := fileutil.ReplaceExt(abs, ".log")
		return "", &CompileError{Source: texPath, Log: logPath, Tail: logTail(logPath, out), Err: err}
	}

	pdfPath := fileutil.ReplaceExt(texPath, ".pdf")
	if !fileutil.FileExists(pdfPath) {
		return "", fmt.Errorf("%w: %s: no PDF produced", ErrCompile, texPath)
	}
	return pdfPath, nil
}

// CompileError reports a failed engine run with the end of its log.
type CompileError struct {
	Source string // .tex file
	Log    string // engine log path
	Tail   string // last lines of the log, or of the output when no log exists
	Err    error  // runner error
}

func (e *CompileError) Error() string {
	msg := fmt.Sprintf("%s: %s: %v", ErrCompile, e.Source, e.Err)
	if e.Tail != "" {
		msg += "\n" + e.Tail
	}
	return msg
}

// Unwrap makes errors.Is(err, ErrCompile) hold and exposes the runner error.
func (e *CompileError) Unwrap() []error {
	return []error{ErrCompile, e.Err}
}

// logTail returns the excerpt starting at the first "!" error line of the
// log, or its last lines, falling back to the command output.
func logTail(logPath, output string) string {
	text := output
	if data, err := os.ReadFile(logPath); err == nil { // #nosec G304 -- derived from the output path
		text = string(data)
	}
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	start := max(len(lines)-logTailLines, 0)
	for i, line := range lines {
		if strings.HasPrefix(line, "!") {
			start = i
			break
		}
	}
	end := min(start+logTailLines, len(lines))
	return strings.TrimSpace(strings.Join(lines[start:end], "\n"))
}

// PageCount returns the number of pages in the PDF at path.
func PageCount(path string) (int, error) {
	f, r, err := pdflib.Open(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()
	return r.NumPage(), nil
}
