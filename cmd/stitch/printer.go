package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// ErrInvalidColor indicates an unknown --color value.
var ErrInvalidColor = errors.New("invalid color mode")

// Printer writes user-facing results. Logs go through slog instead.
type Printer struct {
	w      io.Writer
	errW   io.Writer
	quiet  bool
	styles *Styles
}

// Styles holds lipgloss styles for human-readable output.
type Styles struct {
	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Bold    lipgloss.Style
	Dim     lipgloss.Style
	Key     lipgloss.Style
}

// NewPrinter creates a Printer. Colors are enabled only when color is true.
func NewPrinter(w, errW io.Writer, quiet, color bool) *Printer {
	styles := &Styles{
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true), // Red
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),           // Green
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),           // Yellow
		Bold:    lipgloss.NewStyle().Bold(true),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Key:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")), // Cyan
	}

	if !color {
		plain := lipgloss.NewStyle()
		styles = &Styles{Error: plain, Success: plain, Warning: plain, Bold: plain, Dim: plain, Key: plain}
	}

	return &Printer{w: w, errW: errW, quiet: quiet, styles: styles}
}

// Created reports a written file. Suppressed in quiet mode.
func (p *Printer) Created(path string, d time.Duration, verbose bool) {
	if p.quiet {
		return
	}
	if verbose {
		fmt.Fprintf(p.w, "%s %s %s\n", p.styles.Success.Render("Created"), path, p.styles.Dim.Render("("+d.Round(time.Millisecond).String()+")"))
		return
	}
	fmt.Fprintf(p.w, "%s %s\n", p.styles.Success.Render("Created"), path)
}

// Failed reports a failed conversion on the error writer.
func (p *Printer) Failed(input string, err error) {
	fmt.Fprintf(p.errW, "%s %s: %v\n", p.styles.Error.Render("FAILED"), input, err)
}

// Warn writes a warning on the error writer.
func (p *Printer) Warn(format string, args ...any) {
	fmt.Fprintf(p.errW, "%s: %s\n", p.styles.Warning.Render("Warning"), fmt.Sprintf(format, args...))
}

// Summary reports batch totals. Suppressed in quiet mode.
func (p *Printer) Summary(succeeded, failed int) {
	if p.quiet {
		return
	}
	line := fmt.Sprintf("%d succeeded, %d failed", succeeded, failed)
	if failed > 0 {
		line = p.styles.Warning.Render(line)
	}
	fmt.Fprintf(p.w, "\n%s\n", line)
}

// Heading writes a bold line.
func (p *Printer) Heading(text string) {
	fmt.Fprintln(p.w, p.styles.Bold.Render(text))
}

// Check writes one doctor line tagged OK, WARN or ERROR.
func (p *Printer) Check(status, text string) {
	var tag string
	switch status {
	case checkOK:
		tag = p.styles.Success.Render("[OK]")
	case checkWarn:
		tag = p.styles.Warning.Render("[WARN]")
	default:
		tag = p.styles.Error.Render("[ERROR]")
	}
	fmt.Fprintf(p.w, "  %s %s\n", tag, text)
}

// KeyValue writes an indented "key: value" line.
func (p *Printer) KeyValue(key, value string) {
	fmt.Fprintf(p.w, "  %s %s\n", p.styles.Key.Render(key+":"), value)
}

// Println writes a line to the output.
func (p *Printer) Println(args ...any) {
	fmt.Fprintln(p.w, args...)
}

// WriteJSON encodes data as indented JSON.
func (p *Printer) WriteJSON(data any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// resolveColor determines whether colors are enabled from the --color flag
// and actual TTY detection:
//   - "never":  always disable colors
//   - "always": always enable colors
//   - "auto":   enable only on a terminal
func resolveColor(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "never":
		return false, nil
	case "always":
		return true, nil
	case "", "auto":
		return isTTY(w), nil
	default:
		return false, fmt.Errorf("%w: %q (must be auto, always, or never)", ErrInvalidColor, mode)
	}
}

// isTTY checks if a writer is a terminal.
// Returns true only for os.File that is a terminal.
func isTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	stat, err := file.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
