// Package detector inspects the environment to decide how external tool output is captured.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents how tool output is captured.
type OutputMode int

const (
	// ModeTerminal runs tools on a pseudo-terminal so they keep colour.
	ModeTerminal OutputMode = iota
	// ModePlain runs tools on plain pipes.
	ModePlain
)

// DetectEnvironment returns the recommended output mode based on the environment.
// It checks if stdout is a TTY and if CI environment variables are set.
func DetectEnvironment() OutputMode {
	return detect(term.IsTerminal(int(os.Stdout.Fd())), os.Getenv("CI"), os.Getenv("NO_COLOR"))
}

func detect(isTTY bool, ci, noColor string) OutputMode {
	isCI := ci == "true" || ci == "1"
	if !isTTY || isCI || noColor != "" {
		return ModePlain
	}
	return ModeTerminal
}

// UsePTY reports whether tools should run on a pseudo-terminal.
func (m OutputMode) UsePTY() bool {
	return m == ModeTerminal
}

func (m OutputMode) String() string {
	if m == ModeTerminal {
		return "terminal"
	}
	return "plain"
}
