package ui

import (
	"os"

	"github.com/charmbracelet/huh/spinner"
	"github.com/mattn/go-isatty"
)

// WithSpinner runs a function with a spinner. In CI mode or when stdout is
// not a terminal, runs without spinner.
func WithSpinner(title string, fn func() error) error {
	if IsCI() || !Interactive() {
		return fn()
	}
	var actionErr error
	err := spinner.New().
		Title(title).
		Action(func() {
			actionErr = fn()
		}).
		Run()
	if err != nil {
		return err
	}
	return actionErr
}

// Interactive reports whether stdout is attached to a terminal.
func Interactive() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
