package state

import (
	"os"
	"path/filepath"

	fsutil "github.com/kk-code-lab/hop/internal/fs"
)

// Options configure a Navigator at startup.
type Options struct {
	Sort       SortOrder
	ShowHidden bool
}

// Navigator owns the browsing session: working directory, focus, marks,
// filters and sort order. Every operation is total; filesystem trouble
// degrades to a no-op instead of an error.
type Navigator struct {
	dir     string
	focus   string // "" means no focus
	marks   markSet
	filters FilterSet
	sort    SortOrder
	exit    bool
}

// NewNavigator starts a session in start. An empty or unreadable start falls
// back to $HOME, then to the filesystem root.
func NewNavigator(start string, opts Options) *Navigator {
	n := &Navigator{
		dir:   resolveStartDir(start),
		marks: newMarkSet(),
		sort:  opts.Sort,
	}
	if !opts.ShowHidden {
		n.filters = FilterSet{DotfileFilter{}}
	}
	n.focusFirst()
	return n
}

func resolveStartDir(start string) string {
	candidates := []string{start, os.Getenv("HOME")}
	for _, c := range candidates {
		if c == "" {
			continue
		}
		abs, err := filepath.Abs(c)
		if err != nil {
			continue
		}
		if fsutil.IsDir(abs) {
			return abs
		}
	}
	return string(filepath.Separator)
}

// ===== ACCESSORS =====

// Dir returns the working directory.
func (n *Navigator) Dir() string { return n.dir }

// Focus returns the focused path, if any.
func (n *Navigator) Focus() (string, bool) {
	return n.focus, n.focus != ""
}

// Marked returns marked paths in the order they were marked.
func (n *Navigator) Marked() []string { return n.marks.paths() }

// IsMarked reports exact-path membership in the marked set.
func (n *Navigator) IsMarked(path string) bool { return n.marks.has(path) }

// SortOrder returns the active sort order.
func (n *Navigator) SortOrder() SortOrder { return n.sort }

// ===== LISTINGS =====

func (n *Navigator) order(raw []fsutil.Entry) []fsutil.Entry {
	return Order(raw, n.sort, n.filters)
}

// ListCurrent lists the working directory, sorted and filtered.
func (n *Navigator) ListCurrent() []fsutil.Entry {
	return n.order(fsutil.List(n.dir))
}

// ListSibling lists the ancestor depth levels above the working directory.
// Depth 0 is the working directory itself; going past the root is empty.
func (n *Navigator) ListSibling(depth int) []fsutil.Entry {
	if depth < 0 {
		return nil
	}
	dir := n.dir
	for i := 0; i < depth; i++ {
		parent, ok := fsutil.Parent(dir)
		if !ok {
			return nil
		}
		dir = parent
	}
	if !fsutil.IsDir(dir) {
		return nil
	}
	return n.order(fsutil.List(dir))
}

// ListNext lists the focused directory. Files and no focus give nothing.
func (n *Navigator) ListNext() []fsutil.Entry {
	if n.focus == "" || !fsutil.IsDir(n.focus) {
		return nil
	}
	return n.order(fsutil.List(n.focus))
}

// FocusIndex returns the position of the focus in ListCurrent.
func (n *Navigator) FocusIndex() (int, bool) {
	if n.focus == "" {
		return -1, false
	}
	return indexOf(n.ListCurrent(), n.focus)
}

func indexOf(list []fsutil.Entry, path string) (int, bool) {
	for i, e := range list {
		if e.Path == path {
			return i, true
		}
	}
	return -1, false
}

// ===== MOVEMENT =====

// MoveUp focuses the previous entry, wrapping from the first to the last.
func (n *Navigator) MoveUp() (int, bool) {
	return n.step(-1)
}

// MoveDown focuses the next entry, wrapping from the last to the first.
func (n *Navigator) MoveDown() (int, bool) {
	return n.step(1)
}

// step moves focus by delta with wrap-around. Without focus it selects the
// first entry; a focus missing from the listing is stale and blocks the move.
func (n *Navigator) step(delta int) (int, bool) {
	list := n.ListCurrent()
	if len(list) == 0 {
		return -1, false
	}

	next := 0
	if n.focus != "" {
		pos, ok := indexOf(list, n.focus)
		if !ok {
			return -1, false
		}
		next = ((pos+delta)%len(list) + len(list)) % len(list)
	}

	n.focus = list[next].Path
	return next, true
}

// MoveIn enters the focused directory and focuses its first entry.
func (n *Navigator) MoveIn() (int, bool) {
	if n.focus == "" || !fsutil.IsDir(n.focus) {
		return -1, false
	}
	n.dir = n.focus
	return n.focusFirst()
}

// MoveOut goes to the parent directory and focuses the directory just left.
// It does nothing at the filesystem root.
func (n *Navigator) MoveOut() (int, bool) {
	parent, ok := fsutil.Parent(n.dir)
	if !ok {
		return -1, false
	}
	n.focus = n.dir
	n.dir = parent
	return n.FocusIndex()
}

// JumpTo moves into path when it is a directory. Any other path is focused
// inside its parent; a path whose parent is not a directory is ignored.
// Relative paths resolve against the process working directory.
func (n *Navigator) JumpTo(path string) (int, bool) {
	if path == "" {
		return -1, false
	}
	path, err := filepath.Abs(path)
	if err != nil {
		return -1, false
	}
	if fsutil.IsDir(path) {
		n.dir = path
		return n.focusFirst()
	}

	parent, ok := fsutil.Parent(path)
	if !ok || !fsutil.IsDir(parent) {
		return -1, false
	}
	n.focus = path
	n.dir = parent
	return n.FocusIndex()
}

func (n *Navigator) focusFirst() (int, bool) {
	list := n.ListCurrent()
	if len(list) == 0 {
		n.focus = ""
		return -1, false
	}
	n.focus = list[0].Path
	return 0, true
}

// Select focuses the entry at idx in ListCurrent when it exists.
func (n *Navigator) Select(idx int) (int, bool) {
	list := n.ListCurrent()
	if idx < 0 || idx >= len(list) {
		return -1, false
	}
	n.focus = list[idx].Path
	return idx, true
}

// Settle restores the focus invariant after the listing changed underneath
// the focus (filter toggles, sort changes, files vanishing). A listed focus
// is kept; otherwise the entry nearest to hint is focused.
func (n *Navigator) Settle(hint int) (int, bool) {
	list := n.ListCurrent()
	if len(list) == 0 {
		n.focus = ""
		return -1, false
	}
	if n.focus != "" {
		if idx, ok := indexOf(list, n.focus); ok {
			return idx, true
		}
	}
	if hint < 0 {
		hint = 0
	}
	if hint >= len(list) {
		hint = len(list) - 1
	}
	return n.Select(hint)
}

// ===== MARKS =====

// MarkCurrent marks the focus and moves down.
func (n *Navigator) MarkCurrent() (int, bool) {
	if n.focus != "" {
		n.marks.add(n.focus)
	}
	return n.MoveDown()
}

// UnmarkCurrent unmarks the focus and moves down.
func (n *Navigator) UnmarkCurrent() (int, bool) {
	if n.focus != "" {
		n.marks.remove(n.focus)
	}
	return n.MoveDown()
}

// MarkAll marks every entry of the current listing.
func (n *Navigator) MarkAll() {
	for _, e := range n.ListCurrent() {
		n.marks.add(e.Path)
	}
}

// UnmarkAll clears the marked set.
func (n *Navigator) UnmarkAll() {
	n.marks.clear()
}

// ===== VIEW =====

// ToggleFilter activates f, or clears every filter when f is already active.
func (n *Navigator) ToggleFilter(f Filter) {
	if f == nil {
		return
	}
	n.filters = n.filters.Toggle(f)
}

// SetSortOrder replaces the sort order.
func (n *Navigator) SetSortOrder(s SortOrder) {
	n.sort = s
}

// ===== LIFECYCLE =====

// Exit latches the session closed.
func (n *Navigator) Exit() { n.exit = true }

// IsExit reports whether Exit was called.
func (n *Navigator) IsExit() bool { return n.exit }

// markSet keeps insertion order so command expansion is deterministic.
type markSet struct {
	order []string
	index map[string]struct{}
}

func newMarkSet() markSet {
	return markSet{index: make(map[string]struct{})}
}

func (m *markSet) has(path string) bool {
	_, ok := m.index[path]
	return ok
}

func (m *markSet) add(path string) {
	if m.has(path) {
		return
	}
	m.index[path] = struct{}{}
	m.order = append(m.order, path)
}

func (m *markSet) remove(path string) {
	if !m.has(path) {
		return
	}
	delete(m.index, path)
	for i, p := range m.order {
		if p == path {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

func (m *markSet) clear() {
	m.order = nil
	m.index = make(map[string]struct{})
}

func (m *markSet) paths() []string {
	return append([]string(nil), m.order...)
}
