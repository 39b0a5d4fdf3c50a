// ABOUTME: TUI initialization and control
// ABOUTME: Wraps the bubbletea program as a harness observer
package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iamf-tools/iamf-conformance/internal/report"
)

// TUI displays a running conformance run
type TUI struct {
	program  *tea.Program
	quitChan chan struct{}
}

// NewTUI creates the TUI program; call Start to show it
func NewTUI(runID string, opts ...tea.ProgramOption) *TUI {
	quitChan := make(chan struct{}, 1)
	return &TUI{
		program:  tea.NewProgram(NewModel(runID, quitChan), opts...),
		quitChan: quitChan,
	}
}

// Start runs the TUI until Stop is called or the user quits. It blocks.
func (t *TUI) Start() error {
	_, err := t.program.Run()
	return err
}

// Stop ends the TUI
func (t *TUI) Stop() {
	t.program.Send(DoneMsg{})
}

// QuitChan returns the channel that signals when the user aborts the run
func (t *TUI) QuitChan() <-chan struct{} {
	return t.quitChan
}

func (t *TUI) FileStarted(path string, index, total int) {
	t.program.Send(FileStartedMsg{Path: path, Index: index, Total: total})
}

func (t *TUI) CaseFinished(r report.Result) {
	t.program.Send(CaseFinishedMsg{Result: r})
}

func (t *TUI) FileFinished(string) {}
