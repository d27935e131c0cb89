package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"
	"github.com/ytfetch-cli/ytfetch/color"
	"github.com/ytfetch-cli/ytfetch/icon"
	"github.com/ytfetch-cli/ytfetch/style"
)

var paddingStyle = lipgloss.NewStyle().Padding(1, 2)

func (b *bubble) View() string {
	var lines []string

	switch b.state {
	case resolvingState:
		lines = []string{
			style.Title("Resolving"),
			"",
			b.spinnerC.View() + " " + b.options.Label,
			"",
			b.viewFooter(),
		}
	case downloadingState:
		lines = []string{
			style.Title("Downloading"),
			"",
			b.fit(b.filename),
			"",
			b.viewProgress(),
			"",
			b.viewFooter(),
		}
	case doneState:
		lines = []string{
			fmt.Sprintf("%s %s", style.Fg(color.Green)(icon.Get(icon.Success)), b.fit(b.path)),
			style.Faint(b.viewSummary()),
		}
	case errorState:
		lines = []string{
			fmt.Sprintf("%s %s", style.Fg(color.Red)(icon.Get(icon.Fail)), b.err),
		}
	}

	return paddingStyle.Render(strings.Join(lines, "\n"))
}

func (b *bubble) viewProgress() string {
	written := uint64(b.written.Load())
	total, known := b.total.Get()

	if !known {
		return fmt.Sprintf("%s %s", b.spinnerC.View(), humanize.Bytes(written))
	}

	return fmt.Sprintf("%s\n%s / %s",
		b.progressC.ViewAs(b.percent()),
		humanize.Bytes(written),
		humanize.Bytes(uint64(total)),
	)
}

func (b *bubble) viewFooter() string {
	if b.notification != "" {
		return style.Fg(color.Yellow)(b.notification)
	}
	return b.helpC.View(b.keymap)
}

func (b *bubble) viewSummary() string {
	elapsed := b.finished.Sub(b.started).Round(time.Millisecond)
	return fmt.Sprintf("%s in %s", humanize.Bytes(uint64(b.written.Load())), elapsed)
}

func (b *bubble) fit(s string) string {
	if b.width <= 8 {
		return s
	}
	return truncate.StringWithTail(s, uint(b.width-4), "…")
}
