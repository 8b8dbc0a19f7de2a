//go:build !windows

// Package process manages the process group of external compiler runs so a
// cancelled compile leaves no orphaned children behind.
package process

import (
	"os/exec"
	"syscall"
)

// Isolate starts cmd in its own process group.
func Isolate(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
}

// KillProcessGroup kills a process and all its children by sending SIGKILL
// to the process group (negative PID).
func KillProcessGroup(pid int) {
	// Best-effort cleanup; the caller's own Process.Kill is the fallback.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
