package tui

import (
	"os"

	"github.com/charmbracelet/huh/spinner"
)

// Spin runs action behind a terminal spinner. When show is false, or
// stdout is not a terminal, the action runs directly so piped and
// machine-readable output stays clean.
//
// The spinner can return before action finishes (on interrupt), so
// callers that read results written by action must synchronize on their
// own.
func Spin(show bool, title string, action func()) error {
	if !show || !isTerminal(os.Stdout) {
		action()
		return nil
	}
	return spinner.New().
		Title(title).
		Action(action).
		Run()
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
