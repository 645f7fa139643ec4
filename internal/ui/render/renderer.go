package render

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/hop/internal/app"
	"github.com/kk-code-lab/hop/internal/textutil"
)

// Renderer draws frames onto a tcell screen. It keeps no browsing state of
// its own; everything comes from the Frame.
type Renderer struct {
	screen tcell.Screen
	theme  ColorTheme
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
	}
}

// Render draws the entire UI for frame.
func (r *Renderer) Render(frame app.Frame) {
	r.screen.Clear()
	w, h := r.screen.Size()
	if w <= 0 || h <= 0 {
		r.screen.Show()
		return
	}

	bodyHeight := h - 1
	layout := computeLayout(w, len(frame.Parents))

	if layout.split {
		// Extra ancestors are dropped from the outside in when columns
		// could not be allotted.
		parents := frame.Parents[len(frame.Parents)-len(layout.parents):]
		for i, col := range layout.parents {
			r.drawPane(col, bodyHeight, parents[i], -1)
			r.drawSeparator(col.x+col.width, bodyHeight)
		}
		r.drawPane(layout.current, bodyHeight, frame.Current, frame.Selected)
		r.drawSeparator(layout.current.x+layout.current.width, bodyHeight)
		r.drawPane(layout.preview, bodyHeight, frame.Preview, -1)
	} else {
		r.drawPane(layout.current, bodyHeight, frame.Current, frame.Selected)
	}

	r.drawStatusLine(frame, w, h-1)
	r.screen.Show()
}

// RenderPrompt overlays the status row with label and the text typed so
// far, and parks the cursor after it.
func (r *Renderer) RenderPrompt(label, input string) {
	w, h := r.screen.Size()
	if w <= 0 || h <= 0 {
		return
	}
	y := h - 1
	style := tcell.StyleDefault.Foreground(r.theme.FooterFg)
	r.clearRow(y, 0, w, style)

	text := textutil.Sanitize(label) + textutil.Sanitize(input)
	if over := textutil.Width(text) - (w - 1); over > 0 {
		// Keep the tail visible while typing long input.
		runes := []rune(text)
		for over > 0 && len(runes) > 0 {
			over -= max(textutil.RuneWidth(runes[0]), 1)
			runes = runes[1:]
		}
		text = string(runes)
	}
	end := r.drawTextLine(0, y, w, text, style)
	r.screen.ShowCursor(min(end, w-1), y)
	r.screen.Show()
}

// HideCursor removes the prompt cursor.
func (r *Renderer) HideCursor() {
	r.screen.HideCursor()
}

func (r *Renderer) drawPane(col column, height int, pane app.PaneContent, selected int) {
	if col.width <= 0 || height <= 0 {
		return
	}
	switch pane.Kind {
	case app.PaneEntries:
		r.drawEntries(col, height, pane.Entries, selected)
	case app.PaneText:
		r.drawText(col, height, pane.Text)
	}
}

func (r *Renderer) drawEntries(col column, height int, entries []app.PaneEntry, selected int) {
	offset := scrollOffset(selected, height)
	for row := 0; row < height && offset+row < len(entries); row++ {
		idx := offset + row
		entry := entries[idx]
		style := r.theme.EntryStyle(entry.Style)
		marker := " "
		if idx == selected {
			style = r.theme.SelectedStyle()
			marker = ">"
			r.clearRow(row, col.x, col.width, style)
		}
		name := textutil.Truncate(textutil.DisplayName(entry.Name), col.width-1)
		r.drawTextLine(col.x, row, col.width, marker+name, style)
	}
}

func (r *Renderer) drawText(col column, height int, text string) {
	style := tcell.StyleDefault.Foreground(r.theme.PreviewFg)
	lines := strings.Split(text, "\n")
	for row := 0; row < height && row < len(lines); row++ {
		line := strings.TrimRight(lines[row], "\r")
		line = textutil.Sanitize(textutil.ExpandTabs(line, textutil.DefaultTabWidth))
		r.drawTextLine(col.x, row, col.width, line, style)
	}
}

func (r *Renderer) drawSeparator(x, height int) {
	w, _ := r.screen.Size()
	if x < 0 || x >= w {
		return
	}
	style := tcell.StyleDefault.Foreground(r.theme.BorderFg)
	for y := 0; y < height; y++ {
		r.screen.SetContent(x, y, tcell.RuneVLine, nil, style)
	}
}

func (r *Renderer) drawStatusLine(frame app.Frame, w, y int) {
	style := tcell.StyleDefault.Foreground(r.theme.FooterFg)
	r.clearRow(y, 0, w, style)

	available := w
	if frame.Pending > 0 {
		pending := strconv.Itoa(frame.Pending)
		pw := len(pending)
		if pw < w {
			r.drawTextLine(w-pw, y, pw, pending, style.Foreground(r.theme.PendingFg).Bold(true))
			available = w - pw - 1
		}
	}
	status := textutil.Truncate(textutil.Sanitize(frame.Status), available)
	r.drawTextLine(0, y, available, status, style)
}

func (r *Renderer) clearRow(y, x, width int, style tcell.Style) {
	for i := 0; i < width; i++ {
		r.screen.SetContent(x+i, y, ' ', nil, style)
	}
}

// drawTextLine writes text starting at startX, never past maxWidth cells.
// Zero-width runes are attached to the preceding cell. It returns the column
// after the last cell written.
func (r *Renderer) drawTextLine(startX, y, maxWidth int, text string, style tcell.Style) int {
	x := startX
	runes := []rune(text)
	i := 0

	for i < len(runes) {
		mainc := runes[i]
		w := textutil.RuneWidth(mainc)
		if w == 0 {
			w = 1
		}
		if x-startX+w > maxWidth {
			break
		}
		i++

		var combc []rune
		for i < len(runes) && textutil.RuneWidth(runes[i]) == 0 {
			combc = append(combc, runes[i])
			i++
		}

		r.screen.SetContent(x, y, mainc, combc, style)
		x += w
	}

	return x
}
