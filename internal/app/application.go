package app

import (
	"fmt"

	"github.com/kk-code-lab/hop/internal/command"
	"github.com/kk-code-lab/hop/internal/keys"
	statepkg "github.com/kk-code-lab/hop/internal/state"
	"github.com/sirupsen/logrus"
)

// Application represents the running browser.
type Application struct {
	nav         *statepkg.Navigator
	ui          UI
	resolver    *keys.Resolver
	dispatcher  *Dispatcher
	log         *logrus.Logger
	parentPanes int
	selected    int
}

// Options carries the pieces an Application is built from.
type Options struct {
	Navigator   *statepkg.Navigator
	UI          UI
	Bindings    []keys.Binding
	Runner      Runner
	Logger      *logrus.Logger
	ParentPanes int
}

// NewApplication wires the navigator, key resolver and dispatcher to ui.
func NewApplication(opts Options) *Application {
	log := opts.Logger
	if log == nil {
		log = DiscardLogger()
	}
	runner := opts.Runner
	if runner == nil {
		runner = command.NewRunner(log)
	}
	app := &Application{
		nav:         opts.Navigator,
		ui:          opts.UI,
		resolver:    keys.NewResolver(opts.Bindings),
		log:         log,
		parentPanes: opts.ParentPanes,
	}
	app.dispatcher = NewDispatcher(opts.Navigator, opts.UI, runner, log)
	if idx, ok := opts.Navigator.FocusIndex(); ok {
		app.selected = idx
	}
	return app
}

// Run draws, waits for a key and applies the resulting actions one at a
// time until a quit action is seen. It only returns early when the UI fails.
func (app *Application) Run() error {
	for _, b := range app.resolver.Sequences() {
		app.log.WithField("keys", fmt.Sprint(b.Keys)).Warn("multi-key bindings are not supported; ignoring")
	}

	for !app.nav.IsExit() {
		if err := app.ui.Render(app.Frame()); err != nil {
			return fmt.Errorf("render: %w", err)
		}

		key, err := app.ui.NextKey()
		if err != nil {
			return fmt.Errorf("read key: %w", err)
		}

		for _, action := range app.resolver.Press(key) {
			app.apply(action)
			if app.nav.IsExit() {
				break
			}
		}
	}
	app.log.WithField("dir", app.nav.Dir()).Info("exit")
	return nil
}

// apply dispatches one action and repairs the focus before the next one
// observes it.
func (app *Application) apply(action statepkg.Action) {
	if idx, ok := app.dispatcher.Dispatch(action); ok {
		app.selected = idx
	}
	if idx, ok := app.nav.Settle(app.selected); ok {
		app.selected = idx
	} else {
		app.selected = 0
	}
}

// Frame returns what the UI should currently show.
func (app *Application) Frame() Frame {
	return BuildFrame(app.nav, app.parentPanes, app.resolver.Pending())
}

// Dir returns the working directory, for printing on exit.
func (app *Application) Dir() string {
	return app.nav.Dir()
}
