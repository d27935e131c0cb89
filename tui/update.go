package tui

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ytfetch-cli/ytfetch/strategy"
)

type (
	resolvedMsg struct {
		result *strategy.Result
	}
	finishedMsg          struct{}
	clearNotificationMsg struct{}
	tickMsg              time.Time
	errorMsg             struct {
		err error
	}
)

func (b *bubble) Init() tea.Cmd {
	return tea.Batch(b.spinnerC.Tick, b.retrieve())
}

func (b *bubble) retrieve() tea.Cmd {
	return func() tea.Msg {
		result, err := b.options.Retrieve(b.ctx)
		if err != nil {
			return errorMsg{err}
		}
		if b.ctx.Err() != nil {
			if result.Body != nil {
				_ = result.Body.Close()
			}
			return errorMsg{b.ctx.Err()}
		}
		return resolvedMsg{result}
	}
}

func (b *bubble) copy(dst io.WriteCloser) tea.Cmd {
	return func() tea.Msg {
		defer b.result.Body.Close()

		_, err := io.Copy(&countingWriter{w: dst, n: b.written}, b.result.Body)
		closeErr := dst.Close()
		if err == nil {
			err = closeErr
		}
		if err != nil {
			return errorMsg{err}
		}
		return finishedMsg{}
	}
}

func clearNotification() tea.Cmd {
	return tea.Tick(notificationTTL, func(time.Time) tea.Msg { return clearNotificationMsg{} })
}

func (b *bubble) abort() (tea.Model, tea.Cmd) {
	b.cancel()
	if b.result != nil && b.result.Body != nil {
		_ = b.result.Body.Close()
	}
	b.err = ErrInterrupted
	b.state = errorState
	return b, tea.Quit
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (b *bubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.progressC.Width = max(10, min(msg.Width-4, 60))
		b.helpC.Width = msg.Width
		return b, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, b.keymap.forceQuit):
			return b.abort()
		case key.Matches(msg, b.keymap.quit):
			if b.quitArmed {
				return b.abort()
			}
			b.quitArmed = true
			b.notification = "Press q again to abort"
			return b, clearNotification()
		}
		return b, nil
	case clearNotificationMsg:
		b.notification = ""
		b.quitArmed = false
		return b, nil
	case resolvedMsg:
		return b.handleResolved(msg.result)
	case tickMsg:
		if b.state != downloadingState {
			return b, nil
		}
		return b, tick()
	case finishedMsg:
		b.state = doneState
		b.finished = time.Now()
		return b, tea.Quit
	case errorMsg:
		if b.err == nil {
			b.err = msg.err
		}
		if errors.Is(msg.err, context.Canceled) {
			b.err = ErrInterrupted
		}
		b.state = errorState
		return b, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, cmd
	}

	return b, nil
}

func (b *bubble) handleResolved(result *strategy.Result) (tea.Model, tea.Cmd) {
	b.result = result
	b.filename = result.Filename
	b.total = result.ContentLength

	if result.Body == nil {
		b.err = errors.New("response has no body")
		b.state = errorState
		return b, tea.Quit
	}

	dst, path, err := b.options.Create(result.Filename)
	if err != nil {
		_ = result.Body.Close()
		b.err = err
		b.state = errorState
		return b, tea.Quit
	}

	b.path = path
	b.state = downloadingState
	b.started = time.Now()
	return b, tea.Batch(b.copy(dst), tick())
}
