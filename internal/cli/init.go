package cli

import (
	"fmt"

	"github.com/reclaimtools/reclaim/internal/config"
	"github.com/reclaimtools/reclaim/internal/exitcodes"
	"github.com/reclaimtools/reclaim/internal/scan"
	"github.com/reclaimtools/reclaim/internal/ui"
	"github.com/spf13/cobra"
)

func (a *App) newInitCmd() *cobra.Command {
	var force, yes bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		Long:  "Creates the config file with the default limits and asks which categories to clean.\nEverything else is edited by hand.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(force, yes)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "accept the defaults without prompting")
	return cmd
}

func (a *App) runInit(force, yes bool) error {
	path, err := a.configFile()
	if err != nil {
		return &ExitError{Code: exitcodes.ConfigError, Message: err.Error()}
	}

	if config.Exists(path) && !force {
		return &ExitError{
			Code:    exitcodes.ConfigError,
			Message: fmt.Sprintf("%s already exists (use --force to overwrite)", path),
		}
	}

	cfg := config.Default()
	if !yes && !ui.IsCI() && ui.Interactive() {
		labels := scan.Labels()
		selected, pickErr := ui.PickStrings("Categories to clean", labels, labels)
		if pickErr != nil {
			return pickErr
		}
		// All categories selected means no restriction; leave the field out.
		if len(selected) > 0 && len(selected) < len(labels) {
			cfg.Categories = selected
		}
	}

	if err := config.Save(path, cfg); err != nil {
		return err
	}

	a.output.Success("Wrote %s", path)
	a.output.Info("\nEdit it to pin roots, excludes and age limits:")
	a.output.Info("  roots: directories to scan (default: working directory plus ~/Projects)")
	a.output.Info("  excludes: paths that must never match")
	a.output.Info("  min_age_days: %d, max_depth: %d by default", config.DefaultMinAgeDays, config.DefaultMaxDepth)
	return nil
}
