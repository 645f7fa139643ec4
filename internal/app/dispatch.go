package app

import (
	"github.com/atotto/clipboard"
	"github.com/kk-code-lab/hop/internal/command"
	statepkg "github.com/kk-code-lab/hop/internal/state"
	"github.com/sirupsen/logrus"
)

// Runner executes expanded command lines. *command.Runner implements it.
type Runner interface {
	Run(line, dir string) error
	RunInteractive(line, dir string) error
}

// Dispatcher applies actions to a navigator.
type Dispatcher struct {
	nav    *statepkg.Navigator
	ui     UI
	runner Runner
	log    *logrus.Logger

	// copyText writes to the system clipboard.
	copyText func(string) error
}

// NewDispatcher wires a dispatcher. ui is used for %i prompts and to
// release the terminal around interactive commands.
func NewDispatcher(nav *statepkg.Navigator, ui UI, runner Runner, log *logrus.Logger) *Dispatcher {
	return &Dispatcher{
		nav:      nav,
		ui:       ui,
		runner:   runner,
		log:      log,
		copyText: clipboard.WriteAll,
	}
}

// Dispatch applies one action and returns the resulting focus index, with
// ok false when nothing is focused or the action did not move the focus.
func (d *Dispatcher) Dispatch(action statepkg.Action) (int, bool) {
	d.log.WithField("action", statepkg.ActionName(action)).Debug("dispatch")

	switch a := action.(type) {
	// ===== NAVIGATION =====
	case statepkg.MoveUpAction:
		return d.nav.MoveUp()
	case statepkg.MoveDownAction:
		return d.nav.MoveDown()
	case statepkg.MoveInAction:
		return d.nav.MoveIn()
	case statepkg.MoveOutAction:
		return d.nav.MoveOut()
	case statepkg.JumpAction:
		return d.nav.JumpTo(a.Path)

	// ===== MARKS =====
	case statepkg.MarkAction:
		return d.nav.MarkCurrent()
	case statepkg.UnmarkAction:
		return d.nav.UnmarkCurrent()
	case statepkg.MarkAllAction:
		d.nav.MarkAll()
		return d.nav.FocusIndex()
	case statepkg.UnmarkAllAction:
		d.nav.UnmarkAll()
		return d.nav.FocusIndex()

	// ===== VIEW =====
	case statepkg.ToggleFilterAction:
		hint := d.hint()
		d.nav.ToggleFilter(a.Filter)
		return d.nav.Settle(hint)
	case statepkg.SetSortAction:
		hint := d.hint()
		d.nav.SetSortOrder(a.Order)
		return d.nav.Settle(hint)

	// ===== COMMANDS =====
	case statepkg.ShellAction:
		hint := d.hint()
		d.runShell(a)
		return d.nav.Settle(hint)
	case statepkg.YankAction:
		d.yank()
		return d.nav.FocusIndex()

	// ===== APPLICATION =====
	case statepkg.QuitAction:
		d.nav.Exit()
		return -1, false
	}
	return -1, false
}

func (d *Dispatcher) hint() int {
	if idx, ok := d.nav.FocusIndex(); ok {
		return idx
	}
	return 0
}

func (d *Dispatcher) runShell(a statepkg.ShellAction) {
	lines, err := command.Expand(a.Template, d.nav, d.ui)
	if err != nil {
		d.log.WithError(err).WithField("template", a.Template).Debug("command not expanded")
		return
	}

	dir := d.nav.Dir()
	for _, line := range lines {
		var runErr error
		if a.Interactive {
			runErr = d.ui.Suspend(func() error {
				return d.runner.RunInteractive(line, dir)
			})
		} else {
			runErr = d.runner.Run(line, dir)
		}
		if runErr != nil {
			d.log.WithError(runErr).WithField("cmd", line).Warn("command failed")
		}
	}
}

func (d *Dispatcher) yank() {
	focus, ok := d.nav.Focus()
	if !ok {
		return
	}
	if err := d.copyText(focus); err != nil {
		d.log.WithError(err).Warn("clipboard unavailable")
		return
	}
	d.log.WithField("path", focus).Info("copied path to clipboard")
}
