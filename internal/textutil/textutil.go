// Package textutil prepares file names and preview text for a terminal cell
// grid.
package textutil

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"
)

const (
	// DefaultTabWidth is used when expanding tabs in previews.
	DefaultTabWidth = 4

	ellipsis = "…"
)

// DisplayName normalizes a file name to NFC and makes it safe to print.
// Decomposed names (common on macOS volumes) would otherwise render as
// separate combining marks.
func DisplayName(name string) string {
	return Sanitize(norm.NFC.String(name))
}

// Sanitize replaces characters that could move the cursor or change the
// terminal state. Control characters become '?', line breaks and tabs become
// spaces and invisible format characters (bidi overrides, zero-width joiners)
// are shown as ⟪U+XXXX⟫.
func Sanitize(text string) string {
	if !needsSanitizing(text) {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			b.WriteByte(' ')
		case r < 0x20 || r == 0x7f:
			b.WriteByte('?')
		case unicode.Is(unicode.Cf, r):
			fmt.Fprintf(&b, "⟪U+%04X⟫", r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func needsSanitizing(text string) bool {
	for _, r := range text {
		if r < 0x20 || r == 0x7f || unicode.Is(unicode.Cf, r) {
			return true
		}
	}
	return false
}

// ExpandTabs replaces tab characters with spaces, honoring column width.
func ExpandTabs(text string, tabWidth int) string {
	if tabWidth <= 0 || !strings.ContainsRune(text, '\t') {
		return text
	}

	var b strings.Builder
	column := 0
	for _, r := range text {
		if r == '\t' {
			spaces := tabWidth - column%tabWidth
			b.WriteString(strings.Repeat(" ", spaces))
			column += spaces
			continue
		}
		b.WriteRune(r)
		column += RuneWidth(r)
	}
	return b.String()
}

// RuneWidth is the number of cells r occupies. Zero-width runes count as
// zero so combining marks attach to the previous cell.
func RuneWidth(r rune) int {
	w := runewidth.RuneWidth(r)
	if w < 0 {
		return 0
	}
	return w
}

// Width reports the printable width of text.
func Width(text string) int {
	return runewidth.StringWidth(text)
}

// Truncate shortens text to at most width cells, ending in an ellipsis when
// anything was cut.
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if Width(text) <= width {
		return text
	}
	if width <= runewidth.StringWidth(ellipsis) {
		return ellipsis
	}
	return runewidth.Truncate(text, width, ellipsis)
}
