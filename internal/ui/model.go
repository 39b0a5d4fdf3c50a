// ABOUTME: Bubbletea model for the conformance run TUI
// ABOUTME: Defines run state and update logic
package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iamf-tools/iamf-conformance/internal/report"
)

const maxRecentProblems = 5

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Model represents the TUI state
type Model struct {
	runID string

	// Files
	currentFile string
	fileIndex   int
	fileTotal   int

	// Results
	counts   map[report.Status]int
	problems []report.Result

	done     bool
	quitting bool
	quitChan chan struct{}

	// Dimensions
	width  int
	height int
}

// FileStartedMsg reports that a descriptor file is being evaluated
type FileStartedMsg struct {
	Path  string
	Index int
	Total int
}

// CaseFinishedMsg carries one classified result
type CaseFinishedMsg struct {
	Result report.Result
}

// DoneMsg marks the end of the run
type DoneMsg struct{}

// NewModel creates a new TUI model
func NewModel(runID string, quitChan chan struct{}) Model {
	counts := make(map[report.Status]int)
	for _, s := range report.Statuses() {
		counts[s] = 0
	}
	return Model{
		runID:    runID,
		counts:   counts,
		quitChan: quitChan,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case FileStartedMsg:
		m.currentFile = filepath.Base(msg.Path)
		m.fileIndex = msg.Index
		m.fileTotal = msg.Total
	case CaseFinishedMsg:
		m.applyResult(msg.Result)
	case DoneMsg:
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("IAMF Decoder Conformance"))
	b.WriteString(mutedStyle.Render("  run " + m.runID))
	b.WriteString("\n\n")
	b.WriteString(m.renderProgress())
	b.WriteString(m.renderCounts())
	b.WriteString(m.renderProblems())
	b.WriteString(mutedStyle.Render("q: abort run"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderProgress() string {
	if m.fileTotal == 0 {
		return "Waiting for test vectors...\n\n"
	}
	// fileIndex is zero-based and the current file is still running
	return fmt.Sprintf("File %d/%d: %s\n[%s]\n\n",
		m.fileIndex+1, m.fileTotal, m.currentFile, renderBar(m.fileIndex, m.fileTotal, 40))
}

func (m Model) renderCounts() string {
	var b strings.Builder
	for _, s := range report.Statuses() {
		line := fmt.Sprintf("%-8s %d", s, m.counts[s])
		switch s {
		case report.StatusSuccess:
			line = successStyle.Render(line)
		case report.StatusFailure, report.StatusCrash:
			if m.counts[s] > 0 {
				line = failureStyle.Render(line)
			}
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderProblems() string {
	if len(m.problems) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Recent problems:\n")
	for _, r := range m.problems {
		line := fmt.Sprintf("  %s %s mix %d sub-mix %d layout %d: %s",
			r.Status, r.TestPrefix, r.MixPresentationID, r.SubMixIndex, r.LayoutIndex, r.Reason)
		if m.width > 0 {
			line = truncate(line, m.width)
		}
		b.WriteString(failureStyle.Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		select {
		case m.quitChan <- struct{}{}:
		default:
		}
		return m, tea.Quit
	}

	return m, nil
}

// applyResult counts r and remembers the most recent failures and crashes
func (m *Model) applyResult(r report.Result) {
	m.counts[r.Status]++
	if r.Status != report.StatusFailure && r.Status != report.StatusCrash {
		return
	}
	m.problems = append(m.problems, r)
	if len(m.problems) > maxRecentProblems {
		m.problems = m.problems[len(m.problems)-maxRecentProblems:]
	}
}

// Utility functions
func renderBar(value, max, width int) string {
	if max <= 0 {
		return strings.Repeat("░", width)
	}
	filled := (value * width) / max
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	if length <= 3 {
		return s[:length]
	}
	return s[:length-3] + "..."
}
