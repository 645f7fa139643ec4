package terminal

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/hop/internal/app"
	"github.com/kk-code-lab/hop/internal/keys"
	renderui "github.com/kk-code-lab/hop/internal/ui/render"
)

var (
	// ErrClosed is returned once the screen has been finalized.
	ErrClosed = errors.New("terminal closed")
	// ErrPromptCancelled is returned when the user escapes out of a prompt.
	ErrPromptCancelled = errors.New("prompt cancelled")
)

var _ app.UI = (*Terminal)(nil)

// Terminal is the tcell-backed UI.
type Terminal struct {
	screen   tcell.Screen
	renderer *renderui.Renderer
	last     app.Frame
	drawn    bool
}

// New takes over the controlling terminal.
func New() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return NewWithScreen(screen), nil
}

// NewWithScreen wraps an already initialized screen.
func NewWithScreen(screen tcell.Screen) *Terminal {
	screen.HideCursor()
	return &Terminal{
		screen:   screen,
		renderer: renderui.NewRenderer(screen),
	}
}

// Close restores the terminal.
func (t *Terminal) Close() {
	t.screen.Fini()
}

// Render draws frame and remembers it for redraws after resizes and
// suspends.
func (t *Terminal) Render(frame app.Frame) error {
	t.last = frame
	t.drawn = true
	t.renderer.Render(frame)
	return nil
}

func (t *Terminal) redraw() {
	if t.drawn {
		t.renderer.Render(t.last)
	}
}

// NextKey blocks until a key is pressed. Resizes are handled here by
// redrawing the last frame.
func (t *Terminal) NextKey() (keys.Key, error) {
	ev, err := t.nextKeyEvent()
	if err != nil {
		return keys.Key{}, err
	}
	return keys.FromEvent(ev), nil
}

func (t *Terminal) nextKeyEvent() (*tcell.EventKey, error) {
	for {
		switch ev := t.screen.PollEvent().(type) {
		case nil:
			return nil, ErrClosed
		case *tcell.EventKey:
			return ev, nil
		case *tcell.EventResize:
			t.screen.Sync()
			t.redraw()
		}
	}
}

// Prompt reads a line on the status row. Enter accepts, Esc or Ctrl-C
// cancels.
func (t *Terminal) Prompt(label string) (string, error) {
	defer func() {
		t.renderer.HideCursor()
		t.redraw()
	}()

	prefix := label + ": "
	var input []rune
	for {
		t.renderer.RenderPrompt(prefix, string(input))

		ev, err := t.nextKeyEvent()
		if err != nil {
			return "", err
		}
		switch ev.Key() {
		case tcell.KeyEnter:
			return string(input), nil
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return "", ErrPromptCancelled
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			if len(input) > 0 {
				input = input[:len(input)-1]
			}
		case tcell.KeyCtrlU:
			input = input[:0]
		case tcell.KeyRune:
			input = append(input, ev.Rune())
		}
	}
}

// Suspend hands the terminal to run and takes it back afterwards with a
// full repaint.
func (t *Terminal) Suspend(run func() error) error {
	if err := t.screen.Suspend(); err != nil {
		return fmt.Errorf("failed to suspend screen: %w", err)
	}
	runErr := run()
	if err := t.screen.Resume(); err != nil {
		return errors.Join(runErr, fmt.Errorf("failed to resume screen: %w", err))
	}
	t.screen.Sync()
	t.redraw()
	return runErr
}
