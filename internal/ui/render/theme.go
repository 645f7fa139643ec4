package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/hop/internal/app"
)

// ColorTheme defines application colors.
type ColorTheme struct {
	AncestorFg  tcell.Color
	MarkedFg    tcell.Color
	HiddenFg    tcell.Color
	DirectoryFg tcell.Color
	FileFg      tcell.Color
	SelectionBg tcell.Color
	SelectionFg tcell.Color
	BorderFg    tcell.Color
	PreviewFg   tcell.Color
	FooterFg    tcell.Color
	PendingFg   tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		AncestorFg:  tcell.ColorRed,
		MarkedFg:    tcell.ColorYellow,
		HiddenFg:    tcell.ColorDarkGray,
		DirectoryFg: tcell.ColorDarkCyan,
		FileFg:      tcell.ColorBlue,
		SelectionBg: tcell.Color33,
		SelectionFg: tcell.ColorWhite,
		BorderFg:    tcell.ColorDarkGray,
		PreviewFg:   tcell.ColorDefault,
		FooterFg:    tcell.ColorDefault,
		PendingFg:   tcell.ColorYellow,
	}
}

// EntryStyle maps an entry's display class to a cell style.
func (t ColorTheme) EntryStyle(s app.EntryStyle) tcell.Style {
	base := tcell.StyleDefault
	switch s {
	case app.StyleAncestor:
		return base.Foreground(t.AncestorFg).Bold(true)
	case app.StyleMarked:
		return base.Foreground(t.MarkedFg)
	case app.StyleDotfile:
		return base.Foreground(t.HiddenFg)
	case app.StyleDir:
		return base.Foreground(t.DirectoryFg)
	default:
		return base.Foreground(t.FileFg)
	}
}

// SelectedStyle highlights the focused row while keeping its class color
// readable.
func (t ColorTheme) SelectedStyle() tcell.Style {
	return tcell.StyleDefault.Background(t.SelectionBg).Foreground(t.SelectionFg).Bold(true)
}
