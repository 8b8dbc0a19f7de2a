package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Environment, runner and fixtures
// ---------------------------------------------------------------------------

const resumeXML = `<resume>
  <contact>
    <name>Riley K. Chen</name>
    <email>riley_chen@example.com</email>
  </contact>
  <section type="professional">
    <experience begin="2021" end="Present">
      <title>Digital Collections Coordinator</title>
      <organization>UC Berkeley Library</organization>
      <items><item>Cut backlog by 40%</item></items>
    </experience>
  </section>
  <section type="skills">
    <skills><skill>EAD</skill><skill>Dublin Core</skill></skills>
  </section>
</resume>`

const letterMD = `---
recipient: Hiring Team
company: R&D Labs
---
I am writing to apply for the archivist role.
`

// fakeRunner records compiler calls and writes a PDF next to the source.
type fakeRunner struct {
	mu     sync.Mutex
	calls  []string
	output string
	err    error
}

func (r *fakeRunner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	r.mu.Lock()
	r.calls = append(r.calls, name+" "+strings.Join(args, " "))
	r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if r.err != nil {
		return r.output, r.err
	}
	if len(args) > 0 && strings.HasSuffix(args[len(args)-1], ".tex") {
		stem := strings.TrimSuffix(args[len(args)-1], ".tex")
		if err := os.WriteFile(filepath.Join(dir, stem+".pdf"), []byte("%PDF-1.4\n"), 0o600); err != nil {
			return "", err
		}
	}
	return r.output, nil
}

// testEnv returns an Environment with captured output, a fixed clock and
// the given STITCH_* variables.
func testEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:     func() time.Time { return time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC) },
		Stdout:  &stdout,
		Stderr:  &stderr,
		Getenv:  func(k string) string { return vars[k] },
		Environ: func() []string { return nil },
		Runner:  &fakeRunner{},
		LookPath: func(name string) (string, error) {
			return "/usr/bin/" + name, nil
		},
	}
	return env, &stdout, &stderr
}

// execute runs the root command with args.
func execute(t *testing.T, env *Environment, args ...string) error {
	t.Helper()
	cmd := newRootCmd(env)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}

// writeFile writes content to dir/name, creating parents, and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// readFile returns the content of path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) // #nosec G304 -- test path
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}
