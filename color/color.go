// Package color provides the terminal palette shared by CLI output and the download progress view.
package color

import "github.com/charmbracelet/lipgloss"

// New initializes a lipgloss.Color from a string value.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// Standard ANSI colors.
var (
	Red    = New("1")
	Green  = New("2")
	Yellow = New("3")
	Blue   = New("4")
	Purple = New("5")
	Cyan   = New("6")
)

// High-intensity variants.
var (
	HiRed    = New("9")
	HiPurple = New("13")
	HiCyan   = New("14")
)

// Accent colors used for banners and the progress gradient.
var (
	Accent   = New("#ff4e45")
	AccentHi = New("#ffb703")
	Text     = New("#dddddd")
	Gray     = New("#808080")
)
