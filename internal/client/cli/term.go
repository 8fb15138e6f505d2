package cli

import (
	"os"

	"golang.org/x/term"
)

const defaultWidth = 80

// terminalWidth reports the stdout width, or defaultWidth when stdout is not
// a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

// barWidth sizes a progress bar for a terminal of the given width.
func barWidth(termWidth int) int {
	return max(10, min(40, termWidth-50))
}
