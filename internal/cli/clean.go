package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/reclaimtools/reclaim/internal/clean"
	"github.com/reclaimtools/reclaim/internal/exitcodes"
	"github.com/reclaimtools/reclaim/internal/scan"
	"github.com/reclaimtools/reclaim/internal/ui"
	"github.com/spf13/cobra"
)

func (a *App) newCleanCmd() *cobra.Command {
	flags := &scanFlags{}
	var yes, dryRun, pick bool

	cmd := &cobra.Command{
		Use:   "clean [root...]",
		Short: "Remove stale build and cache directories",
		Long:  "Scans like 'reclaim scan', then deletes the candidates after a confirmation.\nDeletion is permanent; nothing is moved to the trash.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runClean(cmd.Context(), cmd, flags, args, yes, dryRun, pick)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be deleted, delete nothing")
	cmd.Flags().BoolVarP(&pick, "pick", "p", false, "choose a subset before deleting")
	return cmd
}

func (a *App) runClean(ctx context.Context, cmd *cobra.Command, flags *scanFlags, args []string, yes, dryRun, pick bool) error {
	cfg, err := a.scanConfig(cmd, flags, args)
	if err != nil {
		return err
	}

	plan, warnings, err := a.scan(ctx, cfg)
	if err != nil {
		return err
	}

	a.reportPlan(plan)
	a.reportWarnings(warnings)
	if len(plan.Candidates) == 0 {
		return nil
	}

	candidates := plan.Candidates
	if pick && !ui.IsCI() && ui.Interactive() {
		candidates, err = a.pickCandidates(candidates)
		if err != nil {
			return err
		}
		if len(candidates) == 0 {
			a.output.Info("Nothing selected")
			return nil
		}
	}

	var total int64
	for _, c := range candidates {
		total += c.Size
	}

	a.output.Println("")
	if dryRun {
		a.output.Info("Dry run: would remove %d directories and reclaim %s",
			len(candidates), ui.FormatSize(total))
		return nil
	}

	confirmed := yes
	if !confirmed {
		if ui.IsCI() || !ui.Interactive() {
			return &ExitError{
				Code:    exitcodes.UsageError,
				Message: "refusing to delete without confirmation; pass --yes",
			}
		}
		var promptErr error
		confirmed, promptErr = ui.Confirm(fmt.Sprintf("Delete %d directories and reclaim %s?",
			len(candidates), ui.FormatSize(total)))
		if promptErr != nil {
			return promptErr
		}
	}
	if !confirmed {
		a.output.Info("Aborted, nothing deleted")
		return nil
	}

	startedAt := time.Now()
	results := clean.Run(ctx, candidates, 0, func(c scan.Candidate, err error) {
		if err != nil {
			a.output.Warning("Could not remove %s: %v", c.Path, err)
			return
		}
		a.output.Println("  - %s (%s)", c.Path, ui.FormatSize(c.Size))
	})

	a.recordHistory(startedAt, results)

	freed := clean.Freed(results)
	failures := clean.Failures(results)
	a.output.Println("")
	a.output.Success("Removed %d directories; reclaimed approximately %s",
		len(results)-len(failures), ui.FormatSize(freed))

	if len(failures) > 0 {
		return &ExitError{
			Code:    exitcodes.CleanupError,
			Message: fmt.Sprintf("%d of %d removals failed", len(failures), len(results)),
		}
	}
	return nil
}

// pickCandidates narrows the plan to the rows chosen in a multi-select
// prompt. Plan order is preserved.
func (a *App) pickCandidates(candidates []scan.Candidate) ([]scan.Candidate, error) {
	options := make([]ui.PickOption, 0, len(candidates))
	for i, c := range candidates {
		options = append(options, ui.PickOption{
			Label:    fmt.Sprintf("%s  %s  %s", ui.FormatSize(c.Size), c.Category.Label(), c.Path),
			Index:    i,
			Selected: true,
		})
	}

	picked, err := ui.Pick("Directories to delete", options)
	if err != nil {
		return nil, err
	}

	chosen := make(map[int]bool, len(picked))
	for _, idx := range picked {
		chosen[idx] = true
	}
	out := make([]scan.Candidate, 0, len(picked))
	for i, c := range candidates {
		if chosen[i] {
			out = append(out, c)
		}
	}
	return out, nil
}
