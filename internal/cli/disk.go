package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/reclaimtools/reclaim/internal/scan"
	"github.com/reclaimtools/reclaim/internal/ui"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/spf13/cobra"
)

func (a *App) newDiskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disk [path...]",
		Short: "Show free space on the volumes behind the scan roots",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDisk(cmd.Context(), args)
		},
	}
}

func (a *App) runDisk(ctx context.Context, args []string) error {
	paths := args
	if len(paths) == 0 {
		home, err := os.UserHomeDir()
		if err != nil {
			home = ""
		}
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolving working directory: %w", err)
		}
		paths = scan.DefaultRoots(cwd, home, nil, nil)
	}

	partitions, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		a.debugf("partitions: %v", err)
	}

	headers := []string{"Mount", "Size", "Used", "Free", "Use%"}
	var rows [][]string
	seen := make(map[string]bool)
	for _, path := range paths {
		target := mountpointFor(path, partitions)
		if target == "" {
			target = path
		}
		if seen[target] {
			continue
		}
		seen[target] = true

		usage, err := disk.UsageWithContext(ctx, target)
		if err != nil {
			a.output.Warning("Could not stat %s: %v", target, err)
			continue
		}
		rows = append(rows, []string{
			target,
			ui.FormatSize(int64(usage.Total)),
			ui.FormatSize(int64(usage.Used)),
			ui.FormatSize(int64(usage.Free)),
			a.percentCell(usage.UsedPercent),
		})
	}
	a.output.Table(headers, rows)
	return nil
}

// percentCell formats a used-percentage colored by pressure.
func (a *App) percentCell(pct float64) string {
	s := fmt.Sprintf("%.0f%%", pct)
	switch {
	case pct >= 90:
		return a.output.Red(s)
	case pct >= 75:
		return a.output.Yellow(s)
	default:
		return s
	}
}

// mountpointFor returns the mountpoint of the longest-matching partition
// containing path.
func mountpointFor(path string, partitions []disk.PartitionStat) string {
	resolved := path
	if abs, err := filepath.Abs(path); err == nil {
		resolved = abs
	}
	best := ""
	for _, part := range partitions {
		mp := part.Mountpoint
		if resolved == mp || strings.HasPrefix(resolved, strings.TrimSuffix(mp, "/")+"/") {
			if len(mp) > len(best) {
				best = mp
			}
		}
	}
	return best
}
