package ui

import "regexp"

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

// stripANSI removes ANSI escape sequences so assertions see plain text.
func stripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}
