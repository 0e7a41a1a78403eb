package ui

import (
	"os"

	"github.com/charmbracelet/huh"
)

// IsCI returns true if running in a CI environment.
// gitlab-ci-local sets GITLAB_CI=false, which should not be treated as CI.
func IsCI() bool {
	return isTruthy(os.Getenv("CI")) ||
		isTruthy(os.Getenv("RECLAIM_CI")) ||
		isTruthy(os.Getenv("GITHUB_ACTIONS")) ||
		isTruthy(os.Getenv("GITLAB_CI"))
}

func isTruthy(v string) bool {
	return v != "" && v != "false" && v != "0"
}

// PickOption is one selectable row in a multi-select prompt. Index is the
// caller's handle for the row.
type PickOption struct {
	Label    string
	Index    int
	Selected bool
}

// Pick prompts the user to select a subset of options and returns the chosen
// indexes.
func Pick(title string, options []PickOption) ([]int, error) {
	opts := make([]huh.Option[int], 0, len(options))
	var selected []int
	for _, o := range options {
		opts = append(opts, huh.NewOption(o.Label, o.Index))
		if o.Selected {
			selected = append(selected, o.Index)
		}
	}

	err := huh.NewMultiSelect[int]().
		Title(title).
		Options(opts...).
		Value(&selected).
		Run()
	return selected, err
}

// PickStrings prompts the user to select a subset of string values, with the
// preselected ones already marked.
func PickStrings(title string, values, preselected []string) ([]string, error) {
	opts := make([]huh.Option[string], 0, len(values))
	for _, v := range values {
		opts = append(opts, huh.NewOption(v, v))
	}

	selected := append([]string(nil), preselected...)
	err := huh.NewMultiSelect[string]().
		Title(title).
		Options(opts...).
		Value(&selected).
		Run()
	return selected, err
}

// Confirm prompts the user for a yes/no confirmation.
func Confirm(title string) (bool, error) {
	var confirmed bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed).
		Run()
	return confirmed, err
}
