package keys

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Key is one normalized key press. Printable input uses Code == tcell.KeyRune
// with Rune set; everything else is identified by Code alone. Mod only ever
// carries tcell.ModAlt since control keys are folded into their codes.
type Key struct {
	Code tcell.Key
	Rune rune
	Mod  tcell.ModMask
}

// Rune returns the key for a plain character.
func Rune(r rune) Key {
	return Key{Code: tcell.KeyRune, Rune: r}
}

// Alt returns the key for a character typed with the Alt modifier.
func Alt(r rune) Key {
	return Key{Code: tcell.KeyRune, Rune: r, Mod: tcell.ModAlt}
}

// Special returns the key for a non-character code such as tcell.KeyUp.
func Special(code tcell.Key) Key {
	return Key{Code: normalizeCode(code)}
}

// FromEvent converts a terminal key event into a Key.
func FromEvent(ev *tcell.EventKey) Key {
	if ev == nil {
		return Key{}
	}
	mod := ev.Modifiers() & tcell.ModAlt
	if ev.Key() == tcell.KeyRune {
		return Key{Code: tcell.KeyRune, Rune: ev.Rune(), Mod: mod}
	}
	return Key{Code: normalizeCode(ev.Key()), Mod: mod}
}

// Terminals disagree on whether backspace sends BS or DEL.
func normalizeCode(code tcell.Key) tcell.Key {
	if code == tcell.KeyBackspace2 {
		return tcell.KeyBackspace
	}
	return code
}

// Digit reports whether the key is a plain decimal digit and returns its value.
func (k Key) Digit() (int, bool) {
	if k.Code != tcell.KeyRune || k.Mod != 0 {
		return 0, false
	}
	if k.Rune < '0' || k.Rune > '9' {
		return 0, false
	}
	return int(k.Rune - '0'), true
}

func (k Key) String() string {
	var b strings.Builder
	if k.Mod&tcell.ModAlt != 0 {
		b.WriteString("M-")
	}
	switch {
	case k.Code == tcell.KeyRune && k.Rune == ' ':
		b.WriteString("space")
	case k.Code == tcell.KeyRune:
		b.WriteRune(k.Rune)
	case k.Code >= tcell.KeyCtrlA && k.Code <= tcell.KeyCtrlZ && !isTypeable(k.Code):
		b.WriteString("C-")
		b.WriteRune(rune('a' + k.Code - tcell.KeyCtrlA))
	default:
		if name, ok := codeNames[k.Code]; ok {
			b.WriteString(name)
		} else {
			fmt.Fprintf(&b, "key(%d)", k.Code)
		}
	}
	return b.String()
}

// Backspace, tab and enter share codes with Ctrl-H, Ctrl-I and Ctrl-M.
func isTypeable(code tcell.Key) bool {
	switch code {
	case tcell.KeyBackspace, tcell.KeyTab, tcell.KeyEnter:
		return true
	}
	return false
}
