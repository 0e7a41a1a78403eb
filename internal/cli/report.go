package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/reclaimtools/reclaim/internal/scan"
	"github.com/reclaimtools/reclaim/internal/ui"
)

// reportPlan prints the ranked candidate table and the total.
func (a *App) reportPlan(plan *scan.Plan) {
	if len(plan.Candidates) == 0 {
		a.output.Success("Nothing to clean up")
		return
	}

	headers := []string{"#", "Category", "Size", "Last used", "Reason", "Path"}
	rows := make([][]string, 0, len(plan.Candidates))
	for i, c := range plan.Candidates {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			c.Category.Label(),
			a.sizeCell(c.Size),
			ui.FormatTime(c.ModTime),
			c.Reason,
			c.Path,
		})
	}
	a.output.Table(headers, rows)

	a.output.Println("")
	a.output.Info("Total: %s across %d directories",
		a.output.Bold(ui.FormatSize(plan.Total)), len(plan.Candidates))
}

// sizeCell formats a byte count colored by magnitude.
func (a *App) sizeCell(n int64) string {
	s := ui.FormatSize(n)
	switch {
	case n >= 1<<30:
		return a.output.Red(s)
	case n >= 100<<20:
		return a.output.Yellow(s)
	default:
		return s
	}
}

// reportWarnings prints a warning summary. With --debug every warning is
// shown.
func (a *App) reportWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}
	for _, w := range warnings {
		a.debugf("%s", w)
	}
	a.output.Warning("%d path(s) could not be read", len(warnings))
}

// planItem is the JSON shape of one candidate.
type planItem struct {
	Path     string    `json:"path"`
	Category string    `json:"category"`
	Size     int64     `json:"size"`
	ModTime  time.Time `json:"mod_time"`
	Reason   string    `json:"reason"`
}

// planReport is the JSON shape of a scan, written by scan --json.
type planReport struct {
	GeneratedAt time.Time  `json:"generated_at"`
	Items       []planItem `json:"items"`
	TotalBytes  int64      `json:"total_bytes"`
	Warnings    []string   `json:"warnings,omitempty"`
}

// writePlanJSON writes the plan as indented JSON.
func writePlanJSON(w io.Writer, plan *scan.Plan, warnings []string) error {
	rep := planReport{
		GeneratedAt: time.Now().UTC(),
		Items:       make([]planItem, 0, len(plan.Candidates)),
		TotalBytes:  plan.Total,
		Warnings:    warnings,
	}
	for _, c := range plan.Candidates {
		rep.Items = append(rep.Items, planItem{
			Path:     c.Path,
			Category: c.Category.Label(),
			Size:     c.Size,
			ModTime:  c.ModTime.UTC(),
			Reason:   c.Reason,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
