// Package tui renders an interactive progress view for a single download.
package tui

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ytfetch-cli/ytfetch/strategy"
)

// ErrInterrupted is returned when the user aborts the download.
var ErrInterrupted = errors.New("download interrupted")

// Options describes the download to run.
type Options struct {
	// Label is shown while the request is being resolved.
	Label string
	// Retrieve produces the response to save.
	Retrieve func(ctx context.Context) (*strategy.Result, error)
	// Create opens the destination for filename and returns it with its final path.
	Create func(filename string) (io.WriteCloser, string, error)
}

// Run drives the download to completion and returns the written path.
func Run(ctx context.Context, options *Options) (string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	bubble := newBubble(ctx, cancel, options)
	if _, err := tea.NewProgram(bubble).Run(); err != nil {
		return "", err
	}

	return bubble.path, bubble.err
}
