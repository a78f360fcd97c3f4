package main

import (
	"os"

	"golang.org/x/term"
)

// isInteractive reports whether stdin is a terminal, the same check the
// survey prompts rely on to behave sensibly when the CLI is piped or run
// in CI rather than typed into directly.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
