package app

import "github.com/kk-code-lab/hop/internal/keys"

// UI is everything the browser needs from a front end. The terminal
// implementation lives in internal/ui/terminal; tests use a scripted fake.
type UI interface {
	// NextKey blocks until the next key press.
	NextKey() (keys.Key, error)
	// Prompt asks for one line of text. An error means the prompt was
	// cancelled.
	Prompt(label string) (string, error)
	// Render draws a frame. It must not call back into the browser.
	Render(Frame) error
	// Suspend releases the terminal, calls run, then takes the terminal
	// back and redraws from scratch.
	Suspend(run func() error) error
}

// Frame is one complete screen's worth of content.
type Frame struct {
	Parents  []PaneContent // outermost ancestor first
	Current  PaneContent
	Preview  PaneContent
	Selected int // index into Current, -1 for none
	Status   string
	Pending  int // repeat prefix typed so far
}
