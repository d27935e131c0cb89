package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type keymap struct {
	quit, forceQuit key.Binding
}

func newKeymap() *keymap {
	return &keymap{
		quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "abort"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "abort"),
		),
	}
}

func (k *keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k *keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.quit, k.forceQuit}}
}
