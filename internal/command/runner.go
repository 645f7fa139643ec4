package command

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// ErrEmptyCommand is returned for a command line with no program name.
var ErrEmptyCommand = errors.New("empty command")

// Runner spawns expanded command lines and waits for them.
type Runner struct {
	log     *logrus.Logger
	build   func(name string, args ...string) *exec.Cmd
	openTTY func() (*os.File, error)
}

// NewRunner returns a Runner that logs through log. A nil logger discards.
func NewRunner(log *logrus.Logger) *Runner {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Runner{
		log:   log,
		build: exec.Command,
		openTTY: func() (*os.File, error) {
			return os.OpenFile("/dev/tty", os.O_RDWR, 0)
		},
	}
}

func (r *Runner) command(line, dir string) (*exec.Cmd, error) {
	args := Split(line)
	if len(args) == 0 {
		return nil, ErrEmptyCommand
	}
	cmd := r.build(args[0], args[1:]...)
	cmd.Dir = dir
	return cmd, nil
}

// Run executes line in dir without a terminal and logs what it printed.
func (r *Runner) Run(line, dir string) error {
	cmd, err := r.command(line, dir)
	if err != nil {
		return err
	}
	cmd.Stdin = nil

	out, runErr := cmd.CombinedOutput()
	entry := r.log.WithFields(logrus.Fields{"cmd": line, "dir": dir})
	if text := strings.TrimSpace(string(out)); text != "" {
		entry.WithField("output", text).Debug("command output")
	}
	if runErr != nil {
		return fmt.Errorf("run %q: %w", line, runErr)
	}
	entry.Debug("command finished")
	return nil
}

// RunInteractive executes line in dir attached to the controlling terminal,
// falling back to the process's own stdio when /dev/tty is unavailable. The
// caller is responsible for releasing the screen first.
func (r *Runner) RunInteractive(line, dir string) error {
	cmd, err := r.command(line, dir)
	if err != nil {
		return err
	}

	tty, ttyErr := r.openTTY()
	if ttyErr != nil {
		r.log.WithError(ttyErr).Debug("no controlling terminal, using stdio")
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	} else {
		defer func() {
			_ = tty.Close()
		}()
		cmd.Stdin = tty
		cmd.Stdout = tty
		cmd.Stderr = tty
	}

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run %q: %w", line, err)
	}
	r.log.WithFields(logrus.Fields{"cmd": line, "dir": dir}).Debug("interactive command finished")
	return nil
}
