// Package util provides a collection of domain-agnostic utility functions and cross-platform helpers.
package util

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ytfetch-cli/ytfetch/filesystem"
	"golang.org/x/term"
)

var (
	illegalChars  = regexp.MustCompile(`[/?<>\\:*|"]`)
	controlChars  = regexp.MustCompile(`[\x00-\x1f\x{80}-\x{9f}]`)
	reservedNames = regexp.MustCompile(`^\.+$`)
	windowsNames  = regexp.MustCompile(`(?i)^(con|prn|aux|nul|com[0-9]|lpt[0-9])(\..*)?$`)
	trailingChars = regexp.MustCompile(`[. ]+$`)
)

// maxFilenameBytes is the common filesystem limit for a single path component.
const maxFilenameBytes = 255

// SanitizeFilename strips characters that are illegal in filenames on any major platform.
// Spaces and unicode letters are preserved; the result may be empty.
func SanitizeFilename(filename string) string {
	filename = illegalChars.ReplaceAllString(filename, "")
	filename = controlChars.ReplaceAllString(filename, "")
	filename = reservedNames.ReplaceAllString(filename, "")
	filename = windowsNames.ReplaceAllString(filename, "")
	filename = trailingChars.ReplaceAllString(filename, "")
	return truncateBytes(filename, maxFilenameBytes)
}

// FileName builds "<sanitized title>.<ext>", falling back to fallback when the title sanitizes to nothing.
func FileName(title, fallback, ext string) string {
	stem := SanitizeFilename(title)
	if stem == "" {
		stem = fallback
	}
	return truncateBytes(stem, maxFilenameBytes-len(ext)-1) + "." + ext
}

func truncateBytes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	s = s[:limit]
	for len(s) > 0 && !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}

// EncodeURIComponent percent-encodes s leaving only the characters a browser's encodeURIComponent keeps.
func EncodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isURIUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isURIUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}

// Quantify returns a pluralized string representation of a count and its associated labels.
func Quantify(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// Capitalize transforms the first rune of a string to its uppercase equivalent.
func Capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// IsTerminal reports whether both stdin and stdout are attached to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// TerminalSize retrieves the current character dimensions of the terminal window.
func TerminalSize() (width, height int, err error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// PrintErasable prints an ephemeral message to the terminal and returns a closure to clear it.
func PrintErasable(msg string) (eraser func()) {
	fmt.Fprintf(os.Stdout, "\r%s", msg)
	return func() {
		fmt.Fprintf(os.Stdout, "\r%s\r", strings.Repeat(" ", len(msg)))
	}
}

// Ignore executes a function and explicitly discards its error return value.
func Ignore(f func() error) {
	_ = f()
}

// Delete recursively removes a file or directory using the virtualized filesystem API.
func Delete(path string) error {
	fs := filesystem.API()
	stat, err := fs.Stat(path)
	if err != nil {
		return err
	}

	if stat.IsDir() {
		return fs.RemoveAll(path)
	}
	return fs.Remove(path)
}
