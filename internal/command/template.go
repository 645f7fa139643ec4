package command

import (
	"errors"
	"path/filepath"
	"strings"
)

var (
	// ErrNoFocus means the template needs a focused entry and there is none.
	ErrNoFocus = errors.New("template needs a focused entry")
	// ErrNoMarks means the template fans out over marks and nothing is marked.
	ErrNoMarks = errors.New("template needs marked entries")
	// ErrNoInput means %i was requested but no line could be read.
	ErrNoInput = errors.New("template input cancelled")
)

// Source is the browsing state a template reads from. *state.Navigator
// satisfies it.
type Source interface {
	Focus() (string, bool)
	Dir() string
	Marked() []string
}

// Prompter reads one line of free text for %i.
type Prompter interface {
	Prompt(label string) (string, error)
}

// Expand instantiates a command template:
//
//	%f  focused entry's name       %a  focused entry's absolute path
//	%d  working directory          %i  one line read through p
//	%F  marked entry's name        %D  marked entry's parent directory
//	%%  a literal percent sign
//
// %F and %D produce one command per mark, in marking order. Other %x
// sequences are copied through. Substituted text is never expanded again.
func Expand(template string, src Source, p Prompter) ([]string, error) {
	segs := scan(template)
	uses := make(map[byte]bool)
	for _, s := range segs {
		if s.verb != 0 {
			uses[s.verb] = true
		}
	}

	focus, hasFocus := src.Focus()
	if (uses['f'] || uses['a'] || uses['d']) && !hasFocus {
		return nil, ErrNoFocus
	}

	perMark := uses['F'] || uses['D']
	marks := []string{""}
	if perMark {
		marks = src.Marked()
		if len(marks) == 0 {
			return nil, ErrNoMarks
		}
	}

	var input string
	if uses['i'] {
		if p == nil {
			return nil, ErrNoInput
		}
		line, err := p.Prompt(template)
		if err != nil {
			return nil, errors.Join(ErrNoInput, err)
		}
		input = line
	}

	vals := map[byte]string{
		'd': src.Dir(),
		'i': input,
	}
	if hasFocus {
		vals['f'] = filepath.Base(focus)
		vals['a'] = focus
	}

	out := make([]string, 0, len(marks))
	for _, mark := range marks {
		if perMark {
			vals['F'] = filepath.Base(mark)
			vals['D'] = filepath.Dir(mark)
		}
		var b strings.Builder
		for _, s := range segs {
			if s.verb == 0 {
				b.WriteString(s.text)
				continue
			}
			b.WriteString(vals[s.verb])
		}
		out = append(out, b.String())
	}
	return out, nil
}

// segment is either literal text or one substitution verb.
type segment struct {
	text string
	verb byte
}

func isVerb(c byte) bool {
	switch c {
	case 'f', 'a', 'd', 'i', 'F', 'D':
		return true
	}
	return false
}

func scan(template string) []segment {
	var segs []segment
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			segs = append(segs, segment{text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '%' || i+1 >= len(template) {
			lit.WriteByte(c)
			continue
		}
		next := template[i+1]
		switch {
		case next == '%':
			lit.WriteByte('%')
			i++
		case isVerb(next):
			flush()
			segs = append(segs, segment{verb: next})
			i++
		default:
			lit.WriteByte(c)
		}
	}
	flush()
	return segs
}
