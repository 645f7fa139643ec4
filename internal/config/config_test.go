package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kk-code-lab/hop/internal/keys"
	statepkg "github.com/kk-code-lab/hop/internal/state"
)

const sampleConfig = `
[options]
sort = "modified"
show_hidden = true
parent_panes = 2
ignore = ["*.pyc", "__pycache__"]
log_file = "~/hop.log"

[[bind]]
key = "j"
action = "down"

[[bind]]
key = "e"
shell = "vim %f"
interactive = true

[[bind]]
key = "H"
jump = "~/"

[[bind]]
key = "C-h"
action = "ToggleIgnored"

[[bind]]
key = "g g"
jump = "$HOME/src"
`

func TestParseSample(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	cfg, err := Parse(sampleConfig)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Sort != statepkg.SortModified || !cfg.ShowHidden || cfg.ParentPanes != 2 {
		t.Fatalf("unexpected options: %+v", cfg)
	}
	if cfg.LogFile != "/home/tester/hop.log" {
		t.Fatalf("expected log file under HOME, got %q", cfg.LogFile)
	}
	if got := cfg.Ignore.Patterns(); len(got) != 2 {
		t.Fatalf("expected two ignore patterns, got %v", got)
	}
	if len(cfg.Bindings) != 5 {
		t.Fatalf("expected 5 bindings, got %d", len(cfg.Bindings))
	}

	if b := cfg.Bindings[0]; b.Keys[0] != keys.Rune('j') {
		t.Fatalf("unexpected key %v", b.Keys)
	} else if _, ok := b.Action.(statepkg.MoveDownAction); !ok {
		t.Fatalf("expected MoveDownAction, got %T", b.Action)
	}

	shell, ok := cfg.Bindings[1].Action.(statepkg.ShellAction)
	if !ok || shell.Template != "vim %f" || !shell.Interactive {
		t.Fatalf("unexpected shell binding %+v", cfg.Bindings[1].Action)
	}

	jump, ok := cfg.Bindings[2].Action.(statepkg.JumpAction)
	if !ok || jump.Path != "/home/tester" {
		t.Fatalf("expected jump to HOME, got %+v", cfg.Bindings[2].Action)
	}

	toggle, ok := cfg.Bindings[3].Action.(statepkg.ToggleFilterAction)
	if !ok || toggle.Filter != statepkg.Filter(cfg.Ignore) {
		t.Fatalf("toggleignored should reference the configured patterns, got %+v", cfg.Bindings[3].Action)
	}

	seq := cfg.Bindings[4]
	if len(seq.Keys) != 2 {
		t.Fatalf("expected a two-key sequence, got %v", seq.Keys)
	}
	if jump := seq.Action.(statepkg.JumpAction); jump.Path != "/home/tester/src" {
		t.Fatalf("expected $HOME expansion, got %q", jump.Path)
	}
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse("")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Sort != statepkg.SortLexical || cfg.ShowHidden || cfg.ParentPanes != DefaultParentPanes {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if len(cfg.Bindings) != 0 {
		t.Fatalf("expected no bindings")
	}
}

func TestParseRejectsInvalidBindings(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{name: "unknown action", text: "[[bind]]\nkey = \"x\"\naction = \"explode\"\n", want: ErrUnknownAction},
		{name: "no target", text: "[[bind]]\nkey = \"x\"\n", want: ErrNoTarget},
		{name: "two targets", text: "[[bind]]\nkey = \"x\"\naction = \"up\"\njump = \"/\"\n", want: ErrNoTarget},
		{name: "interactive action", text: "[[bind]]\nkey = \"x\"\naction = \"up\"\ninteractive = true\n", want: ErrInteractiveTarget},
		{name: "interactive jump", text: "[[bind]]\nkey = \"x\"\njump = \"/\"\ninteractive = true\n", want: ErrInteractiveTarget},
		{name: "bad key", text: "[[bind]]\nkey = \"C-long\"\naction = \"up\"\n", want: ErrBadKey},
		{name: "missing key", text: "[[bind]]\naction = \"up\"\n", want: ErrBadKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.text); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestParseRejectsBadOptions(t *testing.T) {
	for _, text := range []string{
		"[options]\nsort = \"random\"\n",
		"[options]\nparent_panes = -1\n",
		"[options]\ncolour = \"red\"\n",
		"[options\n",
	} {
		if _, err := Parse(text); err == nil {
			t.Errorf("expected error for %q", text)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[[bind]]\nkey = \"q\"\naction = \"quit\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Path != path || len(cfg.Bindings) != 1 {
		t.Fatalf("unexpected config %+v", cfg)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file should be a load error, got %v", err)
	}
}

func TestLocate(t *testing.T) {
	t.Setenv("HOP_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")

	if got, _ := Locate("/explicit.toml"); got != "/explicit.toml" {
		t.Fatalf("explicit path should win, got %q", got)
	}
	if got, _ := Locate(""); got != filepath.Join("/xdg", "hop", "config.toml") {
		t.Fatalf("expected XDG path, got %q", got)
	}
	t.Setenv("HOP_CONFIG", "/env.toml")
	if got, _ := Locate(""); got != "/env.toml" {
		t.Fatalf("HOP_CONFIG should beat XDG, got %q", got)
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	tests := map[string]string{
		"":             "",
		"~":            "/home/tester",
		"~/docs":       "/home/tester/docs",
		"$HOME/docs":   "/home/tester/docs",
		"/etc/~/x":     "/etc/~/x",
		"relative/dir": "relative/dir",
	}
	for in, want := range tests {
		if got := ExpandHome(in); got != want {
			t.Errorf("%q: expected %q, got %q", in, want, got)
		}
	}
}
