package testutil

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes escape sequences and trailing spaces from each line of a
// rendered view.
func StripANSI(s string) string {
	lines := strings.Split(ansi.Strip(s), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}
