// Package tui implements the interactive review screen.
package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/reclaimtools/reclaim/internal/clean"
	"github.com/reclaimtools/reclaim/internal/scan"
)

// ScanFunc produces a plan, streaming visited paths through onVisit. The
// model never touches the filesystem itself.
type ScanFunc func(ctx context.Context, onVisit func(string)) (*scan.Plan, []string, error)

// CleanFunc removes the given candidates, reporting each outcome through
// onResult.
type CleanFunc func(ctx context.Context, candidates []scan.Candidate, onResult func(scan.Candidate, error)) []clean.Result

type phase int

const (
	phaseScanning phase = iota
	phaseReview
	phaseConfirm
	phaseCleaning
	phaseDone
)

type startScanMsg struct{}

type visitMsg string

type scanDoneMsg struct {
	plan     *scan.Plan
	warnings []string
	err      error
}

type itemMsg struct {
	candidate scan.Candidate
	err       error
}

type cleanDoneMsg struct {
	results []clean.Result
}

// Model drives the review flow: scan, select, confirm, clean, summarize.
type Model struct {
	scanFn  ScanFunc
	cleanFn CleanFunc

	phase    phase
	spinner  spinner.Model
	progress progress.Model
	width    int
	height   int

	visiting string
	plan     *scan.Plan
	warnings []string
	err      error

	cursor   int
	offset   int
	selected map[int]bool
	filter   string
	labels   []string
	dryRun   bool

	cleaning []scan.Candidate
	results  []clean.Result
	done     int
	freed    int64

	msgs   chan tea.Msg
	cancel context.CancelFunc

	quitting bool
}

// New builds a review model around the injected scan and clean capabilities.
func New(scanFn ScanFunc, cleanFn CleanFunc, dryRun bool) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorAccent)

	return Model{
		scanFn:   scanFn,
		cleanFn:  cleanFn,
		dryRun:   dryRun,
		spinner:  sp,
		progress: progress.New(progress.WithDefaultGradient()),
		width:    80,
		height:   24,
		selected: make(map[int]bool),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, func() tea.Msg { return startScanMsg{} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = m.width - 12
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case startScanMsg:
		cmd := m.beginScan()
		return m, cmd

	case visitMsg:
		m.visiting = string(msg)
		return m, m.listen()

	case scanDoneMsg:
		m.plan = msg.plan
		m.warnings = msg.warnings
		m.err = msg.err
		if m.err != nil {
			// A cancelled scan still yields the candidates found so far.
			if errors.Is(m.err, context.Canceled) && m.plan != nil {
				m.err = nil
				m.enterReview()
				return m, nil
			}
			m.phase = phaseDone
			return m, nil
		}
		m.enterReview()
		return m, nil

	case itemMsg:
		m.done++
		if msg.err == nil {
			m.freed += msg.candidate.Size
		}
		m.visiting = msg.candidate.Path
		return m, m.listen()

	case cleanDoneMsg:
		m.results = msg.results
		m.freed = clean.Freed(msg.results)
		m.phase = phaseDone
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	switch m.phase {
	case phaseScanning:
		return m.viewScanning()
	case phaseReview:
		return m.viewReview()
	case phaseConfirm:
		return m.viewConfirm()
	case phaseCleaning:
		return m.viewCleaning()
	default:
		return m.viewDone()
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m.quit()
	}

	switch m.phase {

	case phaseScanning:
		if key == "q" || key == "esc" {
			// Stop the walk; the partial results land in the review phase.
			if m.cancel != nil {
				m.cancel()
			}
		}

	case phaseReview:
		switch key {
		case "q", "esc":
			return m.quit()
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.ensureVisible()
			}
		case "down", "j":
			if m.cursor < len(m.visible())-1 {
				m.cursor++
				m.ensureVisible()
			}
		case " ":
			if items := m.visible(); m.cursor < len(items) {
				idx := items[m.cursor]
				m.selected[idx] = !m.selected[idx]
			}
		case "a":
			for _, idx := range m.visible() {
				m.selected[idx] = true
			}
		case "n":
			for _, idx := range m.visible() {
				m.selected[idx] = false
			}
		case "tab":
			m.cycleFilter()
		case "d":
			m.dryRun = !m.dryRun
		case "r":
			return m, func() tea.Msg { return startScanMsg{} }
		case "enter":
			if len(m.chosen()) > 0 {
				m.phase = phaseConfirm
			}
		}

	case phaseConfirm:
		switch key {
		case "esc", "n", "q":
			m.phase = phaseReview
		case "enter", "y":
			if m.dryRun {
				m.phase = phaseDone
				m.freed = m.chosenSize()
				return m, nil
			}
			m.cleaning = m.chosen()
			m.done = 0
			m.freed = 0
			m.phase = phaseCleaning
			cmd := m.beginClean(m.cleaning)
			return m, cmd
		}

	case phaseCleaning:
		// Removals in flight; only cancellation is allowed.
		if key == "q" || key == "esc" {
			if m.cancel != nil {
				m.cancel()
			}
		}

	case phaseDone:
		switch key {
		case "q", "esc", "enter":
			return m.quit()
		}
	}

	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.cancel != nil {
		m.cancel()
	}
	m.quitting = true
	return m, tea.Quit
}

// beginScan launches the scan worker. Progress and completion arrive as
// messages through m.msgs.
func (m *Model) beginScan() tea.Cmd {
	if m.cancel != nil {
		m.cancel()
	}
	m.phase = phaseScanning
	m.plan = nil
	m.err = nil
	m.visiting = ""
	m.cursor = 0
	m.offset = 0
	m.selected = make(map[int]bool)
	m.filter = ""

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	msgs := make(chan tea.Msg, 64)
	m.msgs = msgs

	scanFn := m.scanFn
	go func() {
		defer close(msgs)
		plan, warnings, err := scanFn(ctx, func(path string) {
			select {
			case msgs <- visitMsg(path):
			default:
			}
		})
		msgs <- scanDoneMsg{plan: plan, warnings: warnings, err: err}
	}()

	return m.listen()
}

// beginClean launches the removal worker for the chosen candidates.
func (m *Model) beginClean(items []scan.Candidate) tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	msgs := make(chan tea.Msg, 64)
	m.msgs = msgs

	cleanFn := m.cleanFn
	go func() {
		defer close(msgs)
		results := cleanFn(ctx, items, func(c scan.Candidate, err error) {
			select {
			case msgs <- itemMsg{candidate: c, err: err}:
			default:
			}
		})
		msgs <- cleanDoneMsg{results: results}
	}()

	return m.listen()
}

// listen waits for the next worker message.
func (m Model) listen() tea.Cmd {
	msgs := m.msgs
	return func() tea.Msg {
		msg, ok := <-msgs
		if !ok {
			return nil
		}
		return msg
	}
}

// enterReview moves to the review phase with everything preselected.
func (m *Model) enterReview() {
	m.phase = phaseReview
	m.cursor = 0
	m.offset = 0
	m.selected = make(map[int]bool)
	m.labels = nil
	if m.plan == nil {
		return
	}
	seen := make(map[string]bool)
	for i, c := range m.plan.Candidates {
		m.selected[i] = true
		if label := c.Category.Label(); !seen[label] {
			seen[label] = true
			m.labels = append(m.labels, label)
		}
	}
}

// visible returns the plan indexes matching the active category filter.
func (m Model) visible() []int {
	if m.plan == nil {
		return nil
	}
	var out []int
	for i, c := range m.plan.Candidates {
		if m.filter == "" || c.Category.Label() == m.filter {
			out = append(out, i)
		}
	}
	return out
}

// cycleFilter advances the category filter through the labels present in the
// plan, ending back at no filter.
func (m *Model) cycleFilter() {
	m.cursor = 0
	m.offset = 0
	if m.filter == "" {
		if len(m.labels) > 0 {
			m.filter = m.labels[0]
		}
		return
	}
	for i, label := range m.labels {
		if label == m.filter {
			if i+1 < len(m.labels) {
				m.filter = m.labels[i+1]
			} else {
				m.filter = ""
			}
			return
		}
	}
	m.filter = ""
}

// chosen returns the selected candidates in plan order.
func (m Model) chosen() []scan.Candidate {
	if m.plan == nil {
		return nil
	}
	var out []scan.Candidate
	for i, c := range m.plan.Candidates {
		if m.selected[i] {
			out = append(out, c)
		}
	}
	return out
}

func (m Model) chosenSize() int64 {
	var total int64
	for _, c := range m.chosen() {
		total += c.Size
	}
	return total
}

func (m *Model) ensureVisible() {
	vh := m.viewportHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+vh {
		m.offset = m.cursor - vh + 1
	}
}

func (m Model) viewportHeight() int {
	h := m.height - 9
	if h < 1 {
		h = 1
	}
	return h
}

// Results returns the removal outcomes, if a clean ran.
func (m Model) Results() []clean.Result {
	return m.results
}

// Plan returns the reviewed plan, if the scan finished.
func (m Model) Plan() *scan.Plan {
	return m.plan
}

// Warnings returns the scan warnings.
func (m Model) Warnings() []string {
	return m.warnings
}

// DryRun reports whether the run ended in dry-run mode.
func (m Model) DryRun() bool {
	return m.dryRun
}

// Err returns the scan error, if the scan failed.
func (m Model) Err() error {
	return m.err
}
