package cli

import (
	"context"
	"os"

	"github.com/reclaimtools/reclaim/internal/exitcodes"
	"github.com/reclaimtools/reclaim/internal/scan"
	"github.com/reclaimtools/reclaim/internal/ui"
	"github.com/spf13/cobra"
)

func (a *App) newScanCmd() *cobra.Command {
	flags := &scanFlags{}
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "scan [root...]",
		Short: "Find reclaimable directories without deleting anything",
		Long:  "Walks the given roots (or the configured ones) for build outputs and caches that have not been used recently and prints what could be reclaimed.\nNever deletes anything.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runScan(cmd.Context(), cmd, flags, args, jsonOut)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "write the plan as JSON to stdout")
	return cmd
}

func (a *App) runScan(ctx context.Context, cmd *cobra.Command, flags *scanFlags, args []string, jsonOut bool) error {
	cfg, err := a.scanConfig(cmd, flags, args)
	if err != nil {
		return err
	}

	plan, warnings, err := a.scan(ctx, cfg)
	if err != nil {
		return err
	}

	if jsonOut {
		return writePlanJSON(os.Stdout, plan, warnings)
	}

	a.reportPlan(plan)
	a.reportWarnings(warnings)
	return nil
}

// scan runs the scanner behind a spinner and collects its warnings.
func (a *App) scan(ctx context.Context, cfg scan.Config) (*scan.Plan, []string, error) {
	s, err := scan.New(cfg)
	if err != nil {
		return nil, nil, &ExitError{Code: exitcodes.UsageError, Message: err.Error()}
	}

	var plan *scan.Plan
	err = ui.WithSpinner("Scanning for cleanup candidates", func() error {
		var scanErr error
		plan, scanErr = s.Scan(ctx)
		return scanErr
	})
	if err != nil {
		return nil, nil, err
	}
	return plan, s.Warnings(), nil
}
