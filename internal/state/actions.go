package state

// Action is the closed set of things a key binding can trigger. The
// unexported marker keeps implementations inside this package so the
// dispatcher's type switch covers every variant.
type Action interface {
	isAction()
}

// ===== NAVIGATION ACTIONS =====

type MoveUpAction struct{}
type MoveDownAction struct{}
type MoveInAction struct{}
type MoveOutAction struct{}

// JumpAction moves to Path: into it when it is a directory, otherwise to
// its parent with the file focused.
type JumpAction struct {
	Path string
}

// ===== MARK ACTIONS =====

type MarkAction struct{}
type UnmarkAction struct{}
type MarkAllAction struct{}
type UnmarkAllAction struct{}

// ===== VIEW ACTIONS =====

type ToggleFilterAction struct {
	Filter Filter
}

type SetSortAction struct {
	Order SortOrder
}

// ===== COMMAND ACTIONS =====

// ShellAction runs Template after placeholder expansion. Interactive
// commands take over the terminal until they exit.
type ShellAction struct {
	Template    string
	Interactive bool
}

// YankAction copies the focused path to the system clipboard.
type YankAction struct{}

// ===== APPLICATION ACTIONS =====

type QuitAction struct{}

func (MoveUpAction) isAction()       {}
func (MoveDownAction) isAction()     {}
func (MoveInAction) isAction()       {}
func (MoveOutAction) isAction()      {}
func (JumpAction) isAction()         {}
func (MarkAction) isAction()         {}
func (UnmarkAction) isAction()       {}
func (MarkAllAction) isAction()      {}
func (UnmarkAllAction) isAction()    {}
func (ToggleFilterAction) isAction() {}
func (SetSortAction) isAction()      {}
func (ShellAction) isAction()        {}
func (YankAction) isAction()         {}
func (QuitAction) isAction()         {}

// ActionName returns the configuration name of a built-in action, or a short
// description for parameterised ones.
func ActionName(a Action) string {
	switch a := a.(type) {
	case MoveUpAction:
		return "up"
	case MoveDownAction:
		return "down"
	case MoveInAction:
		return "in"
	case MoveOutAction:
		return "out"
	case JumpAction:
		return "jump " + a.Path
	case MarkAction:
		return "mark"
	case UnmarkAction:
		return "unmark"
	case MarkAllAction:
		return "markall"
	case UnmarkAllAction:
		return "unmarkall"
	case ToggleFilterAction:
		return "toggle" + a.Filter.Key()
	case SetSortAction:
		return "sort " + a.Order.String()
	case ShellAction:
		return "shell " + a.Template
	case YankAction:
		return "yank"
	case QuitAction:
		return "quit"
	}
	return "unknown"
}
