package ui

import (
	"os"

	"golang.org/x/term"
)

// TerminalWidth returns stdout's width, or fallback when stdout is not a
// terminal or its size cannot be determined.
func TerminalWidth(fallback int) int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return fallback
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width < 1 {
		return fallback
	}
	return width
}

// ANSIEnabled reports whether escape sequences should be emitted on stdout.
func ANSIEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
