// Package main provides the stitch CLI, which converts XML resumes and
// Markdown cover letters to LaTeX and optionally compiles them.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(run(os.Args[1:], DefaultEnv()))
}

// run executes the CLI with args and returns the process exit code.
func run(args []string, env *Environment) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd(env)
	cmd.SetArgs(args)
	err := fang.Execute(ctx, cmd, fang.WithVersion(Version))
	return exitCodeFor(err)
}
