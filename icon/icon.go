// Package icon renders status symbols in the variant selected by the icons.variant setting.
package icon

import (
	"github.com/spf13/viper"
	"github.com/ytfetch-cli/ytfetch/key"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	squares = "squares"
)

// AvailableVariants returns every supported icons.variant value.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, squares}
}

// Icon identifies a status symbol.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Warn
	Audio
	Video
)

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	squares string
}

var icons = map[Icon]*iconDef{
	Success:  {emoji: "✅", nerd: "", plain: "✓", squares: "🟩"},
	Fail:     {emoji: "❌", nerd: "", plain: "✗", squares: "🟥"},
	Progress: {emoji: "⏳", nerd: "", plain: "…", squares: "🟦"},
	Warn:     {emoji: "⚠️", nerd: "", plain: "!", squares: "🟨"},
	Audio:    {emoji: "🎵", nerd: "", plain: "♪", squares: "🟪"},
	Video:    {emoji: "🎬", nerd: "", plain: "▶", squares: "🟧"},
}

func (d *iconDef) get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case squares:
		return d.squares
	default:
		return ""
	}
}

// Get returns the rendered string for i in the configured variant.
func Get(i Icon) string {
	return icons[i].get()
}
