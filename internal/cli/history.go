package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/reclaimtools/reclaim/internal/clean"
	"github.com/reclaimtools/reclaim/internal/config"
	"github.com/reclaimtools/reclaim/internal/exitcodes"
	"github.com/reclaimtools/reclaim/internal/history"
	"github.com/reclaimtools/reclaim/internal/ui"
	"github.com/spf13/cobra"
)

func (a *App) newHistoryCmd() *cobra.Command {
	var limit int
	var verbose bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past cleanup runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runHistory(limit, verbose)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "runs to show, newest first")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "list every path per run")
	return cmd
}

func (a *App) runHistory(limit int, verbose bool) error {
	path, err := a.historyFile()
	if err != nil {
		return &ExitError{Code: exitcodes.ConfigError, Message: err.Error()}
	}

	records, err := history.Load(path)
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}
	if len(records) == 0 {
		a.output.Info("No cleanup runs recorded")
		return nil
	}

	recent := history.Latest(records, limit)

	if verbose {
		for _, rec := range recent {
			a.output.Info("%s  freed %s", ui.FormatTime(rec.StartedAt.Local()), ui.FormatSize(rec.FreedBytes))
			for _, item := range rec.Items {
				if item.Status == history.StatusRemoved {
					a.output.Println("  - %s (%s)", item.Path, ui.FormatSize(item.Size))
				} else {
					a.output.Println("  ! %s: %s", item.Path, item.Error)
				}
			}
			a.output.Println("")
		}
		return nil
	}

	headers := []string{"When", "Removed", "Failed", "Freed"}
	rows := make([][]string, 0, len(recent))
	for _, rec := range recent {
		removed, failed := 0, 0
		for _, item := range rec.Items {
			if item.Status == history.StatusRemoved {
				removed++
			} else {
				failed++
			}
		}
		failedCell := fmt.Sprintf("%d", failed)
		if failed > 0 {
			failedCell = a.output.Red(failedCell)
		}
		rows = append(rows, []string{
			ui.FormatTime(rec.StartedAt.Local()),
			fmt.Sprintf("%d", removed),
			failedCell,
			ui.FormatSize(rec.FreedBytes),
		})
	}
	a.output.Table(headers, rows)
	return nil
}

// historyFile returns the history path, kept next to the config file so a
// --config override relocates both.
func (a *App) historyFile() (string, error) {
	if a.configPath != "" {
		return filepath.Join(filepath.Dir(a.configPath), history.FileName), nil
	}
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, history.FileName), nil
}

// recordHistory appends the run outcome. History is advisory; failures only
// warn.
func (a *App) recordHistory(startedAt time.Time, results []clean.Result) {
	if len(results) == 0 {
		return
	}
	path, err := a.historyFile()
	if err != nil {
		a.output.Warning("recording history: %v", err)
		return
	}
	if err := history.Append(path, history.NewRecord(startedAt, results)); err != nil {
		a.output.Warning("recording history: %v", err)
	}
}
