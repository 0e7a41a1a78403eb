package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/reclaimtools/reclaim/internal/clean"
	"github.com/reclaimtools/reclaim/internal/exitcodes"
	"github.com/reclaimtools/reclaim/internal/scan"
	"github.com/reclaimtools/reclaim/internal/tui"
	"github.com/reclaimtools/reclaim/internal/ui"
	"github.com/spf13/cobra"
)

func (a *App) newReviewCmd() *cobra.Command {
	flags := &scanFlags{}
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "review [root...]",
		Short: "Review and clean candidates interactively",
		Long:  "Opens a full-screen view of the scan results. Toggle or filter the candidates, then delete the selection with live progress.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runReview(cmd.Context(), cmd, flags, args, dryRun)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "start with dry-run enabled")
	return cmd
}

func (a *App) runReview(ctx context.Context, cmd *cobra.Command, flags *scanFlags, args []string, dryRun bool) error {
	if ui.IsCI() || !ui.Interactive() {
		return &ExitError{
			Code:    exitcodes.UsageError,
			Message: "review needs an interactive terminal; use 'reclaim scan' or 'reclaim clean'",
		}
	}

	cfg, err := a.scanConfig(cmd, flags, args)
	if err != nil {
		return err
	}

	scanFn := func(ctx context.Context, onVisit func(string)) (*scan.Plan, []string, error) {
		s, err := scan.New(cfg, scan.WithProgress(onVisit))
		if err != nil {
			return nil, nil, err
		}
		plan, err := s.Scan(ctx)
		return plan, s.Warnings(), err
	}
	cleanFn := func(ctx context.Context, candidates []scan.Candidate, onResult func(scan.Candidate, error)) []clean.Result {
		return clean.Run(ctx, candidates, 0, onResult)
	}

	startedAt := time.Now()
	prog := tea.NewProgram(tui.New(scanFn, cleanFn, dryRun), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := prog.Run()
	if err != nil {
		return fmt.Errorf("running review: %w", err)
	}

	m, ok := final.(tui.Model)
	if !ok {
		return nil
	}
	if err := m.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	results := m.Results()
	if len(results) == 0 {
		return nil
	}
	a.recordHistory(startedAt, results)

	freed := clean.Freed(results)
	failures := clean.Failures(results)
	a.output.Success("Reclaimed %s (%d of %d directories)",
		ui.FormatSize(freed), len(results)-len(failures), len(results))
	for _, f := range failures {
		a.output.Warning("Could not remove %s: %v", f.Candidate.Path, f.Err)
	}
	if len(failures) > 0 {
		return &ExitError{
			Code:    exitcodes.CleanupError,
			Message: fmt.Sprintf("%d of %d removals failed", len(failures), len(results)),
		}
	}
	return nil
}
