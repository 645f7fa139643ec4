package command

import "strings"

// Split breaks a command line on whitespace into a program and its
// arguments. Quotes and escapes are not interpreted, so an argument can never
// contain a space.
func Split(line string) []string {
	return strings.Fields(line)
}
