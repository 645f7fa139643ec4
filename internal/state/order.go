package state

import (
	"sort"
	"time"

	fsutil "github.com/kk-code-lab/hop/internal/fs"
)

// SortOrder selects how listings are sorted. It is global, not per directory.
type SortOrder int

const (
	SortLexical  SortOrder = iota // path ascending
	SortReverse                   // path descending
	SortModified                  // most recently modified first
)

func (s SortOrder) String() string {
	switch s {
	case SortLexical:
		return "lexical"
	case SortReverse:
		return "reverse"
	case SortModified:
		return "modified"
	}
	return "unknown"
}

// ParseSortOrder maps a configuration name to a SortOrder.
func ParseSortOrder(name string) (SortOrder, bool) {
	switch name {
	case "", "lexical", "asc", "inc":
		return SortLexical, true
	case "reverse", "desc", "dec":
		return SortReverse, true
	case "modified", "new", "mtime":
		return SortModified, true
	}
	return SortLexical, false
}

// Order sorts raw by order and then drops entries excluded by filters.
// The result is a new slice; raw is left untouched.
func Order(raw []fsutil.Entry, order SortOrder, filters FilterSet) []fsutil.Entry {
	list := make([]fsutil.Entry, len(raw))
	copy(list, raw)

	switch order {
	case SortReverse:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Path > list[j].Path
		})
	case SortModified:
		sortByModTime(list)
	default:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Path < list[j].Path
		})
	}

	if len(filters) == 0 {
		return list
	}
	kept := list[:0]
	for _, e := range list {
		if !filters.Excludes(e) {
			kept = append(kept, e)
		}
	}
	return kept
}

// sortByModTime reads each entry's mtime once per call. Unreadable metadata
// counts as least recent; ties fall back to path order.
func sortByModTime(list []fsutil.Entry) {
	type keyed struct {
		entry fsutil.Entry
		mod   time.Time
		ok    bool
	}
	keys := make([]keyed, len(list))
	for i, e := range list {
		mod, ok := e.ModTime()
		keys[i] = keyed{entry: e, mod: mod, ok: ok}
	}
	sort.SliceStable(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.ok != b.ok {
			return a.ok
		}
		if a.ok && !a.mod.Equal(b.mod) {
			return a.mod.After(b.mod)
		}
		return a.entry.Path < b.entry.Path
	})
	for i := range keys {
		list[i] = keys[i].entry
	}
}
