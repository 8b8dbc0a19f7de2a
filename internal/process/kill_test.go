package process

// Notes:
// - KillProcessGroup is only called with an invalid PID: PID 0 would target
//   the test's own process group. Real termination is covered by the
//   compiler cancellation test in the root package.

import (
	"os/exec"
	"testing"
)

func TestKillProcessGroup_InvalidPID(t *testing.T) {
	t.Parallel()

	KillProcessGroup(999999999)
}

func TestIsolate(t *testing.T) {
	t.Parallel()

	cmd := exec.Command("pdflatex", "--version")
	Isolate(cmd)
	if cmd.SysProcAttr == nil {
		t.Fatal("Isolate() left SysProcAttr nil")
	}

	// Calling twice keeps the existing attributes.
	attr := cmd.SysProcAttr
	Isolate(cmd)
	if cmd.SysProcAttr != attr {
		t.Error("Isolate() replaced existing SysProcAttr")
	}
}
