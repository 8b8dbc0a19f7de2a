package main

import (
	"io"
	"os"
	"os/exec"
	"time"

	stitchjob "github.com/alnah/go-stitchjob"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, environment lookup and the compiler runner.
type Environment struct {
	Now     func() time.Time
	Stdout  io.Writer
	Stderr  io.Writer
	Getenv  func(string) string
	Environ func() []string
	Runner  stitchjob.CommandRunner // compiler runner; nil = real subprocess

	LookPath func(string) (string, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		Environ: os.Environ,

		LookPath: exec.LookPath,
	}
}
