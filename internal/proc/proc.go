// Package proc starts child processes in their own group so teardown reaches grandchildren too.
package proc

import (
	"context"
	"os/exec"
)

// Command builds a context-bound command whose cancellation kills the whole group.
func Command(ctx context.Context, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.SysProcAttr = SysProcAttr()
	cmd.Cancel = func() error { return Kill(cmd) }
	return cmd
}
