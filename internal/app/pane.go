package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	fsutil "github.com/kk-code-lab/hop/internal/fs"
	statepkg "github.com/kk-code-lab/hop/internal/state"
)

// PaneKind says which field of a PaneContent is meaningful.
type PaneKind int

const (
	PaneNone PaneKind = iota
	PaneEntries
	PaneText
)

// EntryStyle is how a listed entry should be drawn.
type EntryStyle int

const (
	StyleFile EntryStyle = iota
	StyleDir
	StyleDotfile
	StyleMarked
	StyleAncestor // the entry contains the working directory
)

func (s EntryStyle) String() string {
	switch s {
	case StyleDir:
		return "dir"
	case StyleDotfile:
		return "dotfile"
	case StyleMarked:
		return "marked"
	case StyleAncestor:
		return "ancestor"
	default:
		return "file"
	}
}

// PaneEntry is one row of an entries pane.
type PaneEntry struct {
	Path  string
	Name  string
	Style EntryStyle
}

// PaneContent is a list of entries, a block of text, or nothing.
type PaneContent struct {
	Kind    PaneKind
	Entries []PaneEntry
	Text    string
}

// NonePane is the empty pane.
func NonePane() PaneContent { return PaneContent{Kind: PaneNone} }

// TextPane wraps preview text.
func TextPane(text string) PaneContent {
	return PaneContent{Kind: PaneText, Text: text}
}

// EntriesPane styles list for display against the navigator's state.
func EntriesPane(nav *statepkg.Navigator, list []fsutil.Entry) PaneContent {
	pane := PaneContent{Kind: PaneEntries, Entries: make([]PaneEntry, len(list))}
	for i, e := range list {
		pane.Entries[i] = PaneEntry{Path: e.Path, Name: e.Name(), Style: styleFor(nav, e)}
	}
	return pane
}

// styleFor applies, highest first: ancestor, marked, dotfile, dir, file.
func styleFor(nav *statepkg.Navigator, e fsutil.Entry) EntryStyle {
	switch {
	case isAncestor(e.Path, nav.Dir()):
		return StyleAncestor
	case nav.IsMarked(e.Path):
		return StyleMarked
	case e.IsHidden():
		return StyleDotfile
	case e.IsDir():
		return StyleDir
	default:
		return StyleFile
	}
}

func isAncestor(path, dir string) bool {
	if path == dir {
		return true
	}
	prefix := path
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(dir, prefix)
}

// BuildFrame assembles everything the UI draws for the navigator's current
// state. parentPanes ancestor listings are included, outermost first.
func BuildFrame(nav *statepkg.Navigator, parentPanes, pending int) Frame {
	frame := Frame{
		Current:  EntriesPane(nav, nav.ListCurrent()),
		Preview:  previewPane(nav),
		Selected: -1,
		Status:   statusLine(nav),
		Pending:  pending,
	}
	if idx, ok := nav.FocusIndex(); ok {
		frame.Selected = idx
	}

	for depth := parentPanes; depth >= 1; depth-- {
		if _, ok := ancestorAt(nav.Dir(), depth); !ok {
			frame.Parents = append(frame.Parents, NonePane())
			continue
		}
		frame.Parents = append(frame.Parents, EntriesPane(nav, nav.ListSibling(depth)))
	}
	return frame
}

func ancestorAt(dir string, depth int) (string, bool) {
	for i := 0; i < depth; i++ {
		parent, ok := fsutil.Parent(dir)
		if !ok {
			return "", false
		}
		dir = parent
	}
	return dir, true
}

func previewPane(nav *statepkg.Navigator) PaneContent {
	focus, ok := nav.Focus()
	if !ok {
		return NonePane()
	}
	if fsutil.IsDir(focus) {
		return EntriesPane(nav, nav.ListNext())
	}
	if text, ok := fsutil.ReadPreview(focus, fsutil.PreviewLimit); ok {
		return TextPane(text)
	}
	return NonePane()
}

func statusLine(nav *statepkg.Navigator) string {
	var parts []string

	if focus, ok := nav.Focus(); ok {
		e := fsutil.NewEntry(focus)
		parts = append(parts, e.Name())
		if !e.IsDir() {
			if size, ok := e.Size(); ok {
				parts = append(parts, humanize.Bytes(uint64(size)))
			}
		}
		if mod, ok := e.ModTime(); ok {
			parts = append(parts, mod.Format("2006-01-02 15:04"))
		}
	} else {
		parts = append(parts, nav.Dir())
	}

	if n := len(nav.Marked()); n > 0 {
		parts = append(parts, fmt.Sprintf("%d marked", n))
	}
	if nav.SortOrder() != statepkg.SortLexical {
		parts = append(parts, "sort:"+nav.SortOrder().String())
	}
	return strings.Join(parts, "  ")
}
