package keys

import (
	statepkg "github.com/kk-code-lab/hop/internal/state"
)

// MaxRepeat caps the numeric prefix.
const MaxRepeat = 100000

// Binding ties a key sequence to an action.
type Binding struct {
	Keys   []Key
	Action statepkg.Action
}

// Resolver turns key presses into actions, tracking a numeric repeat prefix.
type Resolver struct {
	single   map[Key]statepkg.Action
	sequence []Binding // more than one key; never matched
	acc      int
}

// NewResolver indexes bindings. When two bindings share a key the later
// one wins.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{single: make(map[Key]statepkg.Action, len(bindings))}
	for _, b := range bindings {
		switch {
		case len(b.Keys) == 1 && b.Action != nil:
			r.single[b.Keys[0]] = b.Action
		case len(b.Keys) > 1:
			r.sequence = append(r.sequence, b)
		}
	}
	return r
}

// Press feeds one key. Digits grow the repeat prefix and emit nothing. Any
// other key emits its bound action max(prefix, 1) times and clears the
// prefix, bound or not.
func (r *Resolver) Press(k Key) []statepkg.Action {
	if d, ok := k.Digit(); ok {
		// A prefix of exactly 1 is not shifted before adding: "12" gives 3.
		if r.acc != 1 {
			r.acc *= 10
		}
		r.acc += d
		if r.acc > MaxRepeat {
			r.acc = MaxRepeat
		}
		return nil
	}

	count := max(r.acc, 1)
	r.acc = 0

	action, ok := r.single[k]
	if !ok {
		return nil
	}
	out := make([]statepkg.Action, count)
	for i := range out {
		out[i] = action
	}
	return out
}

// Pending returns the repeat prefix typed so far, 0 when none.
func (r *Resolver) Pending() int { return r.acc }

// Sequences returns bindings that need more than one key. They are accepted
// from configuration but never fire.
func (r *Resolver) Sequences() []Binding {
	return append([]Binding(nil), r.sequence...)
}
