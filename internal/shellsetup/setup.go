// Package shellsetup prints shell functions that let hop change the calling
// shell's directory on exit.
package shellsetup

import (
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
)

// Snippet returns the integration function for shell. The function runs
// exe with --print-dir, which draws on /dev/tty and prints the final
// directory on stdout, then cds there.
func Snippet(shell, exe string) (string, error) {
	quoted := strconv.Quote(exe)

	switch canonicalShellName(normalizeShellName(shell)) {
	case "bash", "zsh", "sh", "ksh", "dash":
		return fmt.Sprintf(`hop() {
    dest=$(command %s --print-dir "$@") || return $?
    if [ -n "$dest" ] && [ -d "$dest" ]; then
        cd "$dest" || return
    fi
}
`, quoted), nil
	case "fish":
		return fmt.Sprintf(`function hop
    set -l dest (command %s --print-dir $argv)
    or return $status
    if test -n "$dest" -a -d "$dest"
        builtin cd "$dest"
    end
end
`, quoted), nil
	case "tcsh", "csh":
		return fmt.Sprintf("alias hop 'cd \"`%s --print-dir`\"'\n", exe), nil
	}
	return "", fmt.Errorf("unsupported shell %q", shell)
}

// Print writes the snippet for shell, or for $SHELL (via getenv) when shell
// is empty. An unrecognized $SHELL gets the POSIX function; an explicitly
// named shell must be supported.
func Print(w io.Writer, shell, exe string, getenv func(string) string) error {
	if shell == "" {
		shell = DetectShell(getenv)
	}
	snippet, err := Snippet(shell, exe)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, snippet)
	return err
}

// DetectShell names the user's login shell, defaulting to bash.
func DetectShell(getenv func(string) string) string {
	if getenv != nil {
		if shell := canonicalShellName(normalizeShellName(getenv("SHELL"))); shell != "" {
			if _, err := Snippet(shell, "hop"); err == nil {
				return shell
			}
		}
	}
	return "bash"
}

func canonicalShellName(name string) string {
	switch name {
	case "-bash", "-zsh":
		return strings.TrimPrefix(name, "-")
	default:
		return name
	}
}

// normalizeShellName turns "/usr/local/bin/zsh -l" into "zsh".
func normalizeShellName(value string) string {
	value = extractExecutable(value)
	if value == "" {
		return ""
	}
	value = strings.Trim(value, `"'`)
	return strings.ToLower(path.Base(value))
}

func extractExecutable(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	for _, q := range []string{`"`, `'`} {
		if rest, ok := strings.CutPrefix(value, q); ok {
			if idx := strings.Index(rest, q); idx >= 0 {
				return rest[:idx]
			}
			return rest
		}
	}

	if idx := strings.IndexAny(value, " \t"); idx >= 0 {
		return value[:idx]
	}
	return value
}
