package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	apppkg "github.com/kk-code-lab/hop/internal/app"
	"github.com/kk-code-lab/hop/internal/command"
	"github.com/kk-code-lab/hop/internal/config"
	"github.com/kk-code-lab/hop/internal/shellsetup"
	statepkg "github.com/kk-code-lab/hop/internal/state"
	"github.com/kk-code-lab/hop/internal/ui/terminal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var version = "dev"

type rootOptions struct {
	configPath string
	logFile    string
	debug      bool
	printDir   bool
}

func main() {
	// Set UTF-8 as fallback encoding so non-ASCII names display correctly.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "hop: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "hop [directory]",
		Short:         "Keyboard-driven directory browser",
		Long:          "hop browses directories in three panes and runs configurable commands on the focused or marked entries.",
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := ""
			if len(args) > 0 {
				start = args[0]
			}
			dir, err := run(opts, start)
			if err != nil {
				return err
			}
			if opts.printDir {
				fmt.Fprintln(cmd.OutOrStdout(), dir)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default $HOP_CONFIG or $XDG_CONFIG_HOME/hop/config.toml)")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this file (overrides options.log_file)")
	flags.BoolVar(&opts.debug, "debug", false, "log at debug level")
	flags.BoolVar(&opts.printDir, "print-dir", false, "print the final directory on exit")

	cmd.AddCommand(newSetupCmd())
	return cmd
}

func newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup [shell]",
		Short: "Print a shell function that cds to the last directory on exit",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := ""
			if len(args) > 0 {
				shell = args[0]
			}
			exe, err := os.Executable()
			if err != nil {
				exe = "hop"
			}
			return shellsetup.Print(cmd.OutOrStdout(), shell, exe, os.Getenv)
		},
	}
}

// run loads configuration, takes over the terminal and browses until quit.
// It returns the directory the session ended in.
func run(opts *rootOptions, start string) (string, error) {
	path, err := config.Locate(opts.configPath)
	if err != nil {
		return "", err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return "", err
	}

	logFile := cfg.LogFile
	if opts.logFile != "" {
		logFile = config.ExpandHome(opts.logFile)
	}
	log, closeLog, err := apppkg.NewLogger(logFile, opts.debug)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = closeLog()
	}()
	log.WithFields(logrus.Fields{
		"config": cfg.Path,
		"ignore": cfg.Ignore.Patterns(),
	}).Info("starting")

	nav := statepkg.NewNavigator(start, statepkg.Options{
		Sort:       cfg.Sort,
		ShowHidden: cfg.ShowHidden,
	})

	term, err := terminal.New()
	if err != nil {
		return "", fmt.Errorf("error initializing terminal: %w", err)
	}
	defer term.Close()

	application := apppkg.NewApplication(apppkg.Options{
		Navigator:   nav,
		UI:          term,
		Bindings:    cfg.Bindings,
		Runner:      command.NewRunner(log),
		Logger:      log,
		ParentPanes: cfg.ParentPanes,
	})
	if err := application.Run(); err != nil {
		return "", err
	}
	return application.Dir(), nil
}
