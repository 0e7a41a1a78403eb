package cli

import (
	"strings"

	"github.com/reclaimtools/reclaim/internal/scan"
	"github.com/spf13/cobra"
)

func (a *App) newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Show the built-in detection rules",
		Long:  "Lists the well-known cache locations matched under the home directory and the directory names matched inside project trees.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRules()
		},
	}
}

func (a *App) runRules() error {
	// Anchored at a literal ~ so the table reads the same on every machine.
	catalog := scan.DefaultCatalog("~")

	headers := []string{"Category", "Policy", "Match", "Reason"}
	var rows [][]string
	for _, rule := range catalog.Locations() {
		rows = append(rows, []string{
			rule.Category.Label(),
			rule.Category.Policy().String(),
			rule.Path(),
			rule.Reason,
		})
	}
	for _, rule := range catalog.NameRules() {
		match := rule.Name
		if rule.Suffix != "" {
			match = "*" + rule.Suffix
		}
		rows = append(rows, []string{
			scan.CategoryProject.Label(),
			scan.CategoryProject.Policy().String(),
			match,
			"Stale build or cache",
		})
	}
	a.output.Table(headers, rows)

	a.output.Println("")
	a.output.Info("Never entered: %s", strings.Join(catalog.SkipNames(), ", "))
	return nil
}
