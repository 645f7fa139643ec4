package state

import (
	"strings"

	"github.com/gobwas/glob"
	fsutil "github.com/kk-code-lab/hop/internal/fs"
)

// Filter removes entries from a listing. Filters in a FilterSet are OR'd:
// an entry is hidden as soon as one active filter excludes it.
type Filter interface {
	// Key identifies the filter for "already active" checks.
	Key() string
	// Excludes reports whether the entry should be removed from listings.
	Excludes(e fsutil.Entry) bool
}

// DotfileFilter hides entries whose name begins with a dot.
type DotfileFilter struct{}

func (DotfileFilter) Key() string { return "dotfiles" }

func (DotfileFilter) Excludes(e fsutil.Entry) bool {
	return e.IsHidden()
}

// PatternFilter hides entries whose base name matches any glob pattern.
type PatternFilter struct {
	patterns []string
	globs    []glob.Glob
}

// NewPatternFilter compiles patterns. Invalid patterns are reported as an
// error naming the first offender.
func NewPatternFilter(patterns []string) (*PatternFilter, error) {
	pf := &PatternFilter{}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		g, err := glob.Compile(p)
		if err != nil {
			return nil, &PatternError{Pattern: p, Err: err}
		}
		pf.patterns = append(pf.patterns, p)
		pf.globs = append(pf.globs, g)
	}
	return pf, nil
}

func (*PatternFilter) Key() string { return "ignored" }

func (pf *PatternFilter) Excludes(e fsutil.Entry) bool {
	if pf == nil {
		return false
	}
	name := e.Name()
	for _, g := range pf.globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// Patterns returns the source patterns.
func (pf *PatternFilter) Patterns() []string {
	if pf == nil {
		return nil
	}
	return append([]string(nil), pf.patterns...)
}

// PatternError reports a glob that failed to compile.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return "invalid ignore pattern " + e.Pattern + ": " + e.Err.Error()
}

func (e *PatternError) Unwrap() error { return e.Err }

// FilterSet is the ordered sequence of active filters.
type FilterSet []Filter

// Active reports whether a filter with the same key is in the set.
func (fs FilterSet) Active(f Filter) bool {
	for _, existing := range fs {
		if existing.Key() == f.Key() {
			return true
		}
	}
	return false
}

// Toggle adds f when inactive. Toggling an active filter clears the whole
// set, not just f.
func (fs FilterSet) Toggle(f Filter) FilterSet {
	if fs.Active(f) {
		return nil
	}
	return append(fs, f)
}

// Excludes reports whether any filter matches e.
func (fs FilterSet) Excludes(e fsutil.Entry) bool {
	for _, f := range fs {
		if f.Excludes(e) {
			return true
		}
	}
	return false
}
