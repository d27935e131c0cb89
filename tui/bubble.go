package tui

import (
	"context"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/mo"
	"github.com/ytfetch-cli/ytfetch/color"
	"github.com/ytfetch-cli/ytfetch/strategy"
)

const (
	tickInterval    = 100 * time.Millisecond
	notificationTTL = 3 * time.Second
)

type bubble struct {
	state   state
	keymap  *keymap
	options *Options

	ctx    context.Context
	cancel context.CancelFunc

	spinnerC  spinner.Model
	progressC progress.Model
	helpC     help.Model

	result   *strategy.Result
	filename string
	path     string
	total    mo.Option[int64]
	written  *atomic.Int64
	started  time.Time
	finished time.Time
	err      error

	// notification is a transient footer line; quitArmed is set by the first quit press.
	notification string
	quitArmed    bool

	width int
}

func newBubble(ctx context.Context, cancel context.CancelFunc, options *Options) *bubble {
	b := &bubble{
		state:   resolvingState,
		keymap:  newKeymap(),
		options: options,
		ctx:     ctx,
		cancel:  cancel,
		total:   mo.None[int64](),
		written: &atomic.Int64{},
	}

	b.spinnerC = spinner.New()
	b.spinnerC.Spinner = spinner.Dot
	b.spinnerC.Style = lipgloss.NewStyle().Foreground(color.Accent)

	b.progressC = progress.New(progress.WithDefaultGradient())
	b.helpC = help.New()

	return b
}

// countingWriter feeds the progress bar from the copy goroutine.
type countingWriter struct {
	w io.Writer
	n *atomic.Int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n.Add(int64(n))
	return n, err
}

func (b *bubble) percent() float64 {
	total, ok := b.total.Get()
	if !ok || total <= 0 {
		return 0
	}
	return min(1, float64(b.written.Load())/float64(total))
}
