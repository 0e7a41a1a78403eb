package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/reclaimtools/reclaim/internal/ui"
)

var (
	colorAccent = lipgloss.Color("12")
	colorOK     = lipgloss.Color("10")
	colorWarn   = lipgloss.Color("11")
	colorErr    = lipgloss.Color("9")
	colorMuted  = lipgloss.Color("8")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	okStyle     = lipgloss.NewStyle().Foreground(colorOK)
	warnStyle   = lipgloss.NewStyle().Foreground(colorWarn)
	errStyle    = lipgloss.NewStyle().Foreground(colorErr)
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	tagStyle    = lipgloss.NewStyle().Foreground(colorAccent)
	hintStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent).Padding(0, 1)
)

func (m Model) viewScanning() string {
	var s strings.Builder
	s.WriteString("\n  " + m.spinner.View() + titleStyle.Render("Scanning for reclaimable space"))
	s.WriteString("\n\n")
	if m.visiting != "" {
		s.WriteString(mutedStyle.Render("  " + truncateLeft(m.visiting, m.lineWidth()-4)))
		s.WriteString("\n")
	}
	s.WriteString("\n" + hintStyle.Render("  q cancel"))
	return s.String()
}

func (m Model) viewReview() string {
	var s strings.Builder
	s.WriteString(m.reviewHeader())
	s.WriteString("\n")

	items := m.visible()
	if len(items) == 0 {
		s.WriteString(mutedStyle.Italic(true).Render("  Nothing to clean up."))
		s.WriteString("\n")
	} else {
		vh := m.viewportHeight()
		for i := m.offset; i < len(items) && i < m.offset+vh; i++ {
			s.WriteString(m.reviewRow(items[i], i == m.cursor))
			s.WriteString("\n")
		}
		if len(items) > vh {
			s.WriteString(mutedStyle.Render(fmt.Sprintf("  %d/%d shown", min(m.offset+vh, len(items)), len(items))))
			s.WriteString("\n")
		}
	}

	s.WriteString("\n" + m.reviewFooter())
	return s.String()
}

func (m Model) reviewHeader() string {
	total := "nothing found"
	if m.plan != nil && len(m.plan.Candidates) > 0 {
		total = fmt.Sprintf("%d candidates, %s total", len(m.plan.Candidates), ui.FormatSize(m.plan.Total))
	}
	chosen := m.chosen()
	line := titleStyle.Render("  reclaim") + mutedStyle.Render("  "+total)
	sel := fmt.Sprintf("  selected: %d (%s)", len(chosen), ui.FormatSize(m.chosenSize()))
	return line + "\n" + okStyle.Render(sel) + "\n"
}

func (m Model) reviewRow(idx int, current bool) string {
	c := m.plan.Candidates[idx]

	marker := "  "
	if current {
		marker = cursorStyle.Render("> ")
	}
	check := mutedStyle.Render("[ ]")
	if m.selected[idx] {
		check = okStyle.Render("[x]")
	}
	size := m.sizeCell(c.Size)
	tag := tagStyle.Render(fmt.Sprintf("%-10s", c.Category.Label()))
	age := mutedStyle.Render(fmt.Sprintf("%-15s", ui.FormatAge(c.ModTime)))

	pathWidth := m.lineWidth() - 46
	if pathWidth < 16 {
		pathWidth = 16
	}
	path := truncateLeft(c.Path, pathWidth)
	if !m.selected[idx] {
		path = mutedStyle.Render(path)
	}

	return marker + check + " " + size + "  " + tag + " " + age + " " + path
}

// sizeCell right-aligns and colors a size by how much it would reclaim.
func (m Model) sizeCell(n int64) string {
	cell := fmt.Sprintf("%10s", ui.FormatSize(n))
	switch {
	case n >= 1<<30:
		return errStyle.Render(cell)
	case n >= 100*(1<<20):
		return warnStyle.Render(cell)
	default:
		return cell
	}
}

func (m Model) reviewFooter() string {
	var badges []string
	if m.filter != "" {
		badges = append(badges, warnStyle.Render(" filter: "+m.filter+" "))
	}
	if m.dryRun {
		badges = append(badges, warnStyle.Render(" dry-run "))
	}
	if len(m.warnings) > 0 {
		badges = append(badges, mutedStyle.Render(fmt.Sprintf(" %d warnings ", len(m.warnings))))
	}

	hints := "  space toggle, a all, n none, tab filter, d dry-run, r rescan, enter clean, q quit"
	if len(badges) == 0 {
		return hintStyle.Render(hints)
	}
	return " " + strings.Join(badges, " ") + "\n" + hintStyle.Render(hints)
}

func (m Model) viewConfirm() string {
	chosen := m.chosen()
	action := fmt.Sprintf("Delete %d directories and reclaim %s?", len(chosen), ui.FormatSize(m.chosenSize()))
	if m.dryRun {
		action = fmt.Sprintf("Dry run: show what deleting %d directories (%s) would do?", len(chosen), ui.FormatSize(m.chosenSize()))
	}
	body := titleStyle.Render(action) + "\n\n" + hintStyle.Render("enter confirm, esc back")
	return "\n" + boxStyle.Width(m.lineWidth()-4).Render(body) + "\n"
}

func (m Model) viewCleaning() string {
	total := len(m.cleaning)
	pct := 0.0
	if total > 0 {
		pct = float64(m.done) / float64(total)
	}

	var s strings.Builder
	s.WriteString("\n  " + titleStyle.Render("Cleaning") + "\n\n")
	s.WriteString("  " + m.progress.ViewAs(pct) + "\n\n")
	s.WriteString(mutedStyle.Render(fmt.Sprintf("  %d/%d  %s", m.done, total, truncateLeft(m.visiting, m.lineWidth()-18))))
	s.WriteString("\n\n" + hintStyle.Render("  q cancel remaining"))
	return s.String()
}

func (m Model) viewDone() string {
	var s strings.Builder
	s.WriteString("\n")

	switch {
	case m.err != nil:
		s.WriteString(errStyle.Render("  ✗ scan failed: " + m.err.Error()))
	case m.dryRun:
		s.WriteString(warnStyle.Render(fmt.Sprintf("  Dry run: would reclaim %s (%d directories)", ui.FormatSize(m.freed), len(m.chosen()))))
	default:
		removed := 0
		for _, r := range m.results {
			if r.Err == nil {
				removed++
			}
		}
		s.WriteString(okStyle.Render(fmt.Sprintf("  ✓ Reclaimed %s (%d of %d directories)", ui.FormatSize(m.freed), removed, len(m.results))))
		for _, r := range m.results {
			if r.Err != nil {
				s.WriteString("\n" + errStyle.Render("  ✗ "+r.Candidate.Path+": "+r.Err.Error()))
			}
		}
	}

	if len(m.warnings) > 0 {
		s.WriteString("\n" + mutedStyle.Render(fmt.Sprintf("  %d paths could not be read", len(m.warnings))))
	}
	s.WriteString("\n\n" + hintStyle.Render("  q quit"))
	return s.String()
}

func (m Model) lineWidth() int {
	if m.width < 40 {
		return 40
	}
	return m.width
}

// truncateLeft keeps the tail of the path.
func truncateLeft(s string, max int) string {
	if max < 4 {
		max = 4
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return "…" + string(runes[len(runes)-max+1:])
}
