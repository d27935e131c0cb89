//go:build windows

package proc

import (
	"os/exec"
	"syscall"
)

// SysProcAttr hides the console window of the child.
func SysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{CreationFlags: 0x08000000}
}

// Kill terminates cmd's process.
func Kill(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}
