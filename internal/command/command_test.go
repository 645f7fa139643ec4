package command

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

type fakeSource struct {
	focus  string
	dir    string
	marked []string
}

func (s fakeSource) Focus() (string, bool) { return s.focus, s.focus != "" }
func (s fakeSource) Dir() string           { return s.dir }
func (s fakeSource) Marked() []string      { return s.marked }

type fakePrompter struct {
	answer string
	err    error
	calls  []string
}

func (p *fakePrompter) Prompt(label string) (string, error) {
	p.calls = append(p.calls, label)
	return p.answer, p.err
}

func TestExpand(t *testing.T) {
	focused := fakeSource{focus: "/tmp/a.txt", dir: "/tmp"}
	marked := fakeSource{focus: "/tmp/a.txt", dir: "/tmp", marked: []string{"/tmp/a.txt", "/srv/b.txt"}}

	tests := []struct {
		name     string
		template string
		src      fakeSource
		want     []string
		wantErr  error
	}{
		{name: "name", template: "open %f", src: focused, want: []string{"open a.txt"}},
		{name: "absolute path", template: "cat %a", src: focused, want: []string{"cat /tmp/a.txt"}},
		{name: "directory", template: "ls %d", src: focused, want: []string{"ls /tmp"}},
		{name: "no placeholders", template: "make", src: fakeSource{dir: "/tmp"}, want: []string{"make"}},
		{name: "name without focus", template: "open %f", src: fakeSource{dir: "/tmp"}, wantErr: ErrNoFocus},
		{name: "directory without focus", template: "ls %d", src: fakeSource{dir: "/tmp"}, wantErr: ErrNoFocus},
		{name: "per mark name", template: "tag %F", src: marked, want: []string{"tag a.txt", "tag b.txt"}},
		{name: "per mark dir", template: "cd %D", src: marked, want: []string{"cd /tmp", "cd /srv"}},
		{name: "marks mixed with focus", template: "cp %F %d", src: marked, want: []string{"cp a.txt /tmp", "cp b.txt /tmp"}},
		{name: "marks required", template: "tag %F", src: focused, wantErr: ErrNoMarks},
		{name: "escaped percent", template: "echo 100%% %%f", src: fakeSource{dir: "/"}, want: []string{"echo 100% %f"}},
		{name: "unknown verb passes through", template: "date +%s %", src: fakeSource{dir: "/"}, want: []string{"date +%s %"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expand(tt.template, tt.src, nil)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if len(got) != 0 {
					t.Fatalf("failed expansion should produce no commands, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("expand: %v", err)
			}
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestExpandDoesNotReexpandSubstitutions(t *testing.T) {
	src := fakeSource{focus: "/tmp/%d", dir: "/tmp"}
	got, err := Expand("rm %f", src, nil)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(got) != 1 || got[0] != "rm %d" {
		t.Fatalf("expected the name to be substituted literally, got %q", got)
	}
}

func TestExpandPromptsOnce(t *testing.T) {
	src := fakeSource{focus: "/tmp/a.txt", dir: "/tmp", marked: []string{"/tmp/a", "/tmp/b"}}
	p := &fakePrompter{answer: "msg %f"}

	got, err := Expand("note %i %F %i", src, p)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(p.calls) != 1 {
		t.Fatalf("expected exactly one prompt, got %d", len(p.calls))
	}
	want := []string{"note msg %f a msg %f", "note msg %f b msg %f"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestExpandSkipsPromptWithoutInputVerb(t *testing.T) {
	p := &fakePrompter{answer: "unused"}
	if _, err := Expand("ls %d", fakeSource{focus: "/x/y", dir: "/x"}, p); err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(p.calls) != 0 {
		t.Fatalf("prompt should not be issued, got %d calls", len(p.calls))
	}
}

func TestExpandPromptFailures(t *testing.T) {
	src := fakeSource{dir: "/tmp"}

	p := &fakePrompter{err: errors.New("cancelled")}
	if got, err := Expand("grep %i", src, p); !errors.Is(err, ErrNoInput) || len(got) != 0 {
		t.Fatalf("cancelled prompt: expected ErrNoInput and no commands, got %q %v", got, err)
	}
	if _, err := Expand("grep %i", src, nil); !errors.Is(err, ErrNoInput) {
		t.Fatalf("missing prompter: expected ErrNoInput, got %v", err)
	}

	// Selection checks run before the prompt.
	p = &fakePrompter{answer: "x"}
	if _, err := Expand("mv %f %i", src, p); !errors.Is(err, ErrNoFocus) {
		t.Fatalf("expected ErrNoFocus, got %v", err)
	}
	if len(p.calls) != 0 {
		t.Fatalf("prompt should not run when expansion already failed")
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{line: "ls -la /tmp", want: []string{"ls", "-la", "/tmp"}},
		{line: "  vim\tnotes.txt  ", want: []string{"vim", "notes.txt"}},
		{line: `echo "a b"`, want: []string{"echo", `"a`, `b"`}},
		{line: "   ", want: nil},
	}
	for _, tt := range tests {
		got := Split(tt.line)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
			t.Errorf("%q: expected %q, got %q", tt.line, tt.want, got)
		}
	}
}

// TestHelperProcess stands in for spawned programs. It prints its working
// directory and arguments, then exits with HELPER_PROCESS_EXIT.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	args := os.Args
	for i, arg := range args {
		if arg == "--" {
			args = args[i+1:]
			break
		}
	}
	wd, _ := os.Getwd()
	fmt.Printf("%s\n%s\n", wd, strings.Join(args, " "))
	code, _ := strconv.Atoi(os.Getenv("HELPER_PROCESS_EXIT"))
	os.Exit(code)
}

func helperRunner(t *testing.T, exitCode int, recorded *[]string) *Runner {
	t.Helper()
	r := NewRunner(nil)
	r.build = func(name string, args ...string) *exec.Cmd {
		*recorded = append([]string{name}, args...)
		cmdArgs := append([]string{"-test.run=TestHelperProcess", "--", name}, args...)
		cmd := exec.Command(os.Args[0], cmdArgs...)
		cmd.Env = append(os.Environ(),
			"GO_WANT_HELPER_PROCESS=1",
			"HELPER_PROCESS_EXIT="+strconv.Itoa(exitCode),
		)
		return cmd
	}
	return r
}

func TestRunnerRun(t *testing.T) {
	dir := t.TempDir()
	var recorded []string
	r := helperRunner(t, 0, &recorded)

	if err := r.Run("touch  a.txt b.txt", dir); err != nil {
		t.Fatalf("run: %v", err)
	}
	want := []string{"touch", "a.txt", "b.txt"}
	if strings.Join(recorded, "|") != strings.Join(want, "|") {
		t.Fatalf("expected %v, got %v", want, recorded)
	}
}

func TestRunnerRunReportsFailure(t *testing.T) {
	var recorded []string
	r := helperRunner(t, 3, &recorded)

	err := r.Run("false", t.TempDir())
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 3 {
		t.Fatalf("expected exit status 3, got %v", err)
	}
}

func TestRunnerEmptyCommand(t *testing.T) {
	r := NewRunner(nil)
	if err := r.Run("   ", t.TempDir()); !errors.Is(err, ErrEmptyCommand) {
		t.Fatalf("expected ErrEmptyCommand, got %v", err)
	}
	if err := r.RunInteractive("", t.TempDir()); !errors.Is(err, ErrEmptyCommand) {
		t.Fatalf("expected ErrEmptyCommand, got %v", err)
	}
}

func TestRunnerRunInteractiveUsesTerminal(t *testing.T) {
	dir := t.TempDir()
	ttyPath := filepath.Join(t.TempDir(), "tty")
	var recorded []string
	r := helperRunner(t, 0, &recorded)
	r.openTTY = func() (*os.File, error) {
		return os.OpenFile(ttyPath, os.O_RDWR|os.O_CREATE, 0o600)
	}

	if err := r.RunInteractive("vim notes.txt", dir); err != nil {
		t.Fatalf("run interactive: %v", err)
	}

	out, err := os.ReadFile(ttyPath)
	if err != nil {
		t.Fatalf("read tty: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected working dir and args on the terminal, got %q", out)
	}
	wantDir, _ := filepath.EvalSymlinks(dir)
	gotDir, _ := filepath.EvalSymlinks(lines[0])
	if gotDir != wantDir {
		t.Fatalf("expected command to run in %s, got %s", wantDir, gotDir)
	}
	if lines[1] != "vim notes.txt" {
		t.Fatalf("expected args %q, got %q", "vim notes.txt", lines[1])
	}
}
