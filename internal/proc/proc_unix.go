//go:build !windows

package proc

import (
	"os/exec"
	"syscall"
)

// SysProcAttr places the child in a new process group.
func SysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		Setpgid: true,
	}
}

// Kill terminates the whole process group of cmd.
// yt-dlp spawns ffmpeg for merges, and killing only the parent would orphan it.
func Kill(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	_ = syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	return cmd.Process.Kill()
}
