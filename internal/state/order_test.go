package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	fsutil "github.com/kk-code-lab/hop/internal/fs"
)

func entryNames(list []fsutil.Entry) []string {
	out := make([]string, len(list))
	for i, e := range list {
		out[i] = e.Name()
	}
	return out
}

func equalNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestOrderSortsAndFilters(t *testing.T) {
	raw := []fsutil.Entry{
		fsutil.NewEntry("/x/b"),
		fsutil.NewEntry("/x/.c"),
		fsutil.NewEntry("/x/a"),
	}

	tests := []struct {
		name    string
		order   SortOrder
		filters FilterSet
		expect  []string
	}{
		{name: "lexical", order: SortLexical, expect: []string{".c", "a", "b"}},
		{name: "reverse", order: SortReverse, expect: []string{"b", "a", ".c"}},
		{name: "lexical without dotfiles", order: SortLexical, filters: FilterSet{DotfileFilter{}}, expect: []string{"a", "b"}},
		{name: "reverse without dotfiles", order: SortReverse, filters: FilterSet{DotfileFilter{}}, expect: []string{"b", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := entryNames(Order(raw, tt.order, tt.filters))
			if !equalNames(got, tt.expect) {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}

	if raw[0].Name() != "b" {
		t.Fatalf("Order must not reorder its input")
	}
}

func TestOrderIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"c", "a", ".h", "b"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	raw := fsutil.List(dir)

	for _, order := range []SortOrder{SortLexical, SortReverse, SortModified} {
		for _, filters := range []FilterSet{nil, {DotfileFilter{}}} {
			once := Order(raw, order, filters)
			twice := Order(once, order, filters)
			if !equalNames(entryNames(once), entryNames(twice)) {
				t.Fatalf("%s: order not idempotent: %v vs %v", order, entryNames(once), entryNames(twice))
			}
		}
	}
}

func TestOrderByModifiedTime(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"old", "newest", "middle"} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		var mod time.Time
		switch name {
		case "old":
			mod = base
		case "middle":
			mod = base.Add(time.Hour)
		case "newest":
			mod = base.Add(2 * time.Hour)
		}
		if err := os.Chtimes(path, mod, mod); err != nil {
			t.Fatalf("chtimes %d: %v", i, err)
		}
	}

	raw := append(fsutil.List(dir), fsutil.NewEntry(filepath.Join(dir, "ghost")))
	got := entryNames(Order(raw, SortModified, nil))
	want := []string{"newest", "middle", "old", "ghost"}
	if !equalNames(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestToggleFilterClearsWholeSet(t *testing.T) {
	ignored, err := NewPatternFilter([]string{"*.pyc"})
	if err != nil {
		t.Fatalf("pattern filter: %v", err)
	}

	var set FilterSet
	set = set.Toggle(DotfileFilter{})
	if !set.Active(DotfileFilter{}) || len(set) != 1 {
		t.Fatalf("first toggle should activate, got %v", set)
	}
	set = set.Toggle(ignored)
	if len(set) != 2 {
		t.Fatalf("second filter should be added, got %d", len(set))
	}

	set = set.Toggle(DotfileFilter{})
	if len(set) != 0 {
		t.Fatalf("toggling an active filter should clear everything, got %d", len(set))
	}
}

func TestToggleFilterThreeTimesFromEmpty(t *testing.T) {
	var set FilterSet
	states := []int{1, 0, 1}
	for i, want := range states {
		set = set.Toggle(DotfileFilter{})
		if len(set) != want {
			t.Fatalf("toggle %d: expected %d filters, got %d", i+1, want, len(set))
		}
	}
}

func TestPatternFilter(t *testing.T) {
	pf, err := NewPatternFilter([]string{"*.pyc", "__pycache__", " "})
	if err != nil {
		t.Fatalf("pattern filter: %v", err)
	}
	if got := pf.Patterns(); len(got) != 2 {
		t.Fatalf("blank patterns should be skipped, got %v", got)
	}

	tests := []struct {
		path    string
		exclude bool
	}{
		{path: "/src/mod.pyc", exclude: true},
		{path: "/src/__pycache__", exclude: true},
		{path: "/src/mod.py", exclude: false},
		{path: "/src.pyc/mod.py", exclude: false},
	}
	for _, tt := range tests {
		if got := pf.Excludes(fsutil.NewEntry(tt.path)); got != tt.exclude {
			t.Errorf("%s: expected exclude=%v, got %v", tt.path, tt.exclude, got)
		}
	}
}

func TestParseSortOrder(t *testing.T) {
	tests := map[string]SortOrder{
		"":         SortLexical,
		"lexical":  SortLexical,
		"reverse":  SortReverse,
		"modified": SortModified,
	}
	for name, want := range tests {
		got, ok := ParseSortOrder(name)
		if !ok || got != want {
			t.Errorf("%q: expected %v, got %v (ok=%v)", name, want, got, ok)
		}
	}
	if _, ok := ParseSortOrder("random"); ok {
		t.Fatalf("unknown sort order should be rejected")
	}
}
