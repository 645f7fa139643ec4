package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kk-code-lab/hop/internal/keys"
	statepkg "github.com/kk-code-lab/hop/internal/state"
)

var (
	// ErrNoTarget is returned for a binding that sets none, or more than
	// one, of action, shell and jump.
	ErrNoTarget = errors.New("binding needs exactly one of action, shell or jump")
	// ErrInteractiveTarget is returned when interactive is set on a binding
	// that does not run a shell command.
	ErrInteractiveTarget = errors.New("interactive applies only to shell bindings")
	// ErrUnknownAction is returned for an action name that is not built in.
	ErrUnknownAction = errors.New("unknown action")
	// ErrBadKey is returned for an unparseable key expression.
	ErrBadKey = keys.ErrBadKey
)

// DefaultParentPanes is used when the file leaves parent_panes unset.
const DefaultParentPanes = 1

// Config is the validated, ready-to-use configuration.
type Config struct {
	Path        string
	Sort        statepkg.SortOrder
	ShowHidden  bool
	ParentPanes int
	Ignore      *statepkg.PatternFilter
	LogFile     string
	Bindings    []keys.Binding
}

type fileOptions struct {
	Sort        string   `toml:"sort"`
	ShowHidden  bool     `toml:"show_hidden"`
	ParentPanes *int     `toml:"parent_panes"`
	Ignore      []string `toml:"ignore"`
	LogFile     string   `toml:"log_file"`
}

type fileBinding struct {
	Key         string `toml:"key"`
	Action      string `toml:"action"`
	Shell       string `toml:"shell"`
	Interactive bool   `toml:"interactive"`
	Jump        string `toml:"jump"`
}

type fileConfig struct {
	Options fileOptions   `toml:"options"`
	Bind    []fileBinding `toml:"bind"`
}

// Locate picks the config file: the explicit path when given, then
// $HOP_CONFIG, then hop/config.toml under $XDG_CONFIG_HOME or the user
// config directory.
func Locate(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if env := os.Getenv("HOP_CONFIG"); env != "" {
		return env, nil
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "hop", "config.toml"), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(dir, "hop", "config.toml"), nil
}

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse validates TOML config text.
func Parse(text string) (*Config, error) {
	var raw fileConfig
	meta, err := toml.Decode(text, &raw)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		names := make([]string, len(undecoded))
		for i, k := range undecoded {
			names[i] = k.String()
		}
		sort.Strings(names)
		return nil, fmt.Errorf("unknown config keys: %s", strings.Join(names, ", "))
	}

	cfg := &Config{
		ShowHidden:  raw.Options.ShowHidden,
		ParentPanes: DefaultParentPanes,
		LogFile:     ExpandHome(raw.Options.LogFile),
	}

	order, ok := statepkg.ParseSortOrder(strings.ToLower(raw.Options.Sort))
	if !ok {
		return nil, fmt.Errorf("options.sort: unknown order %q", raw.Options.Sort)
	}
	cfg.Sort = order

	if raw.Options.ParentPanes != nil {
		if *raw.Options.ParentPanes < 0 {
			return nil, fmt.Errorf("options.parent_panes: must not be negative, got %d", *raw.Options.ParentPanes)
		}
		cfg.ParentPanes = *raw.Options.ParentPanes
	}

	cfg.Ignore, err = statepkg.NewPatternFilter(raw.Options.Ignore)
	if err != nil {
		return nil, fmt.Errorf("options.ignore: %w", err)
	}

	for i, b := range raw.Bind {
		binding, err := cfg.binding(b)
		if err != nil {
			return nil, fmt.Errorf("bind #%d (%q): %w", i+1, b.Key, err)
		}
		cfg.Bindings = append(cfg.Bindings, binding)
	}
	return cfg, nil
}

func (c *Config) binding(b fileBinding) (keys.Binding, error) {
	seq, err := keys.Parse(b.Key)
	if err != nil {
		return keys.Binding{}, err
	}

	targets := 0
	for _, s := range []string{b.Action, b.Shell, b.Jump} {
		if s != "" {
			targets++
		}
	}
	if targets != 1 {
		return keys.Binding{}, ErrNoTarget
	}
	if b.Interactive && b.Shell == "" {
		return keys.Binding{}, ErrInteractiveTarget
	}

	var action statepkg.Action
	switch {
	case b.Action != "":
		action, err = c.builtin(b.Action)
		if err != nil {
			return keys.Binding{}, err
		}
	case b.Shell != "":
		action = statepkg.ShellAction{Template: b.Shell, Interactive: b.Interactive}
	default:
		action = statepkg.JumpAction{Path: ExpandHome(b.Jump)}
	}
	return keys.Binding{Keys: seq, Action: action}, nil
}

func (c *Config) builtin(name string) (statepkg.Action, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "up":
		return statepkg.MoveUpAction{}, nil
	case "down":
		return statepkg.MoveDownAction{}, nil
	case "in":
		return statepkg.MoveInAction{}, nil
	case "out":
		return statepkg.MoveOutAction{}, nil
	case "quit":
		return statepkg.QuitAction{}, nil
	case "mark":
		return statepkg.MarkAction{}, nil
	case "unmark":
		return statepkg.UnmarkAction{}, nil
	case "markall":
		return statepkg.MarkAllAction{}, nil
	case "unmarkall":
		return statepkg.UnmarkAllAction{}, nil
	case "toggledotfiles":
		return statepkg.ToggleFilterAction{Filter: statepkg.DotfileFilter{}}, nil
	case "toggleignored":
		return statepkg.ToggleFilterAction{Filter: c.Ignore}, nil
	case "sortbyinc":
		return statepkg.SetSortAction{Order: statepkg.SortLexical}, nil
	case "sortbydec":
		return statepkg.SetSortAction{Order: statepkg.SortReverse}, nil
	case "sortbynew":
		return statepkg.SetSortAction{Order: statepkg.SortModified}, nil
	case "yank":
		return statepkg.YankAction{}, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownAction, name)
}

// ExpandHome replaces "$HOME" and a leading "~" with the HOME environment
// variable. Paths are otherwise returned unchanged.
func ExpandHome(path string) string {
	if path == "" {
		return path
	}
	home := os.Getenv("HOME")
	path = strings.ReplaceAll(path, "$HOME", home)
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
