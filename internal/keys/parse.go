package keys

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// ErrBadKey is returned for key expressions that name no key.
var ErrBadKey = errors.New("invalid key expression")

var namedKeys = map[string]tcell.Key{
	"backspace": tcell.KeyBackspace,
	"left":      tcell.KeyLeft,
	"right":     tcell.KeyRight,
	"up":        tcell.KeyUp,
	"down":      tcell.KeyDown,
	"pageup":    tcell.KeyPgUp,
	"pagedown":  tcell.KeyPgDn,
	"backtab":   tcell.KeyBacktab,
	"delete":    tcell.KeyDelete,
	"insert":    tcell.KeyInsert,
	"null":      tcell.KeyNUL,
	"esc":       tcell.KeyEscape,
	"enter":     tcell.KeyEnter,
	"tab":       tcell.KeyTab,
	"home":      tcell.KeyHome,
	"end":       tcell.KeyEnd,
	"f1":        tcell.KeyF1,
	"f2":        tcell.KeyF2,
	"f3":        tcell.KeyF3,
	"f4":        tcell.KeyF4,
	"f5":        tcell.KeyF5,
	"f6":        tcell.KeyF6,
	"f7":        tcell.KeyF7,
	"f8":        tcell.KeyF8,
	"f9":        tcell.KeyF9,
	"f10":       tcell.KeyF10,
	"f11":       tcell.KeyF11,
	"f12":       tcell.KeyF12,
}

// codeNames is the reverse of namedKeys, used by Key.String.
var codeNames = func() map[tcell.Key]string {
	out := make(map[tcell.Key]string, len(namedKeys))
	for name, code := range namedKeys {
		out[code] = name
	}
	return out
}()

// Control keys outside the letter range, keyed by the character after "C-".
var ctrlSymbols = map[rune]tcell.Key{
	' ':  tcell.KeyCtrlSpace,
	'@':  tcell.KeyCtrlSpace,
	'[':  tcell.KeyEscape,
	'\\': tcell.KeyCtrlBackslash,
	']':  tcell.KeyCtrlRightSq,
	'^':  tcell.KeyCtrlCarat,
	'_':  tcell.KeyCtrlUnderscore,
}

// Parse reads a whitespace-separated key sequence such as "g g" or "C-f".
// Each element is a single character, a C-x or M-x chord, or a key name
// ("enter", "pageup", "f5", ...). Names are case-insensitive.
func Parse(expr string) ([]Key, error) {
	fields := strings.Fields(expr)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrBadKey)
	}
	seq := make([]Key, 0, len(fields))
	for _, field := range fields {
		key, err := parseOne(field)
		if err != nil {
			return nil, err
		}
		seq = append(seq, key)
	}
	return seq, nil
}

func parseOne(field string) (Key, error) {
	if utf8.RuneCountInString(field) == 1 {
		r, _ := utf8.DecodeRuneInString(field)
		return Rune(r), nil
	}

	lower := strings.ToLower(field)
	if lower == "space" {
		return Rune(' '), nil
	}
	if code, ok := namedKeys[lower]; ok {
		return Special(code), nil
	}

	if len(field) > 2 && field[1] == '-' {
		rest := field[2:]
		if utf8.RuneCountInString(rest) != 1 {
			return Key{}, fmt.Errorf("%w: %q", ErrBadKey, field)
		}
		r, _ := utf8.DecodeRuneInString(rest)
		switch field[0] {
		case 'C':
			return ctrl(r, field)
		case 'M':
			return Alt(r), nil
		}
	}
	return Key{}, fmt.Errorf("%w: %q", ErrBadKey, field)
}

func ctrl(r rune, field string) (Key, error) {
	lr := r
	if lr >= 'A' && lr <= 'Z' {
		lr += 'a' - 'A'
	}
	if lr >= 'a' && lr <= 'z' {
		return Special(tcell.KeyCtrlA + tcell.Key(lr-'a')), nil
	}
	if code, ok := ctrlSymbols[r]; ok {
		return Special(code), nil
	}
	return Key{}, fmt.Errorf("%w: %q", ErrBadKey, field)
}
