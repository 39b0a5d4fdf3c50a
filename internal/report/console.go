// ABOUTME: Console rendering of the test summary
// ABOUTME: Per-status counts and optional per-case details, styled with lipgloss
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var statusColors = map[Status]lipgloss.Color{
	StatusSuccess: lipgloss.Color("#00CC66"),
	StatusFailure: lipgloss.Color("#FF0000"),
	StatusCrash:   lipgloss.Color("#FF8800"),
	StatusSkipped: lipgloss.Color("#666666"),
}

// WriteConsole prints per-status counts. Colour is only emitted when w is a
// terminal that supports it.
func (s *Summary) WriteConsole(w io.Writer) error {
	r := lipgloss.NewRenderer(w)
	muted := r.NewStyle().Foreground(statusColors[StatusSkipped])

	if _, err := fmt.Fprintln(w, "\n-----------------SUMMARY-----------------"); err != nil {
		return err
	}
	if s.RunID != "" {
		fmt.Fprintln(w, muted.Render("run "+s.RunID))
	}
	for _, st := range Statuses() {
		style := r.NewStyle().Foreground(statusColors[st])
		fmt.Fprintln(w, style.Render(fmt.Sprintf("%s: %d", st, s.Count(st))))
	}
	_, err := fmt.Fprintln(w, "-----------------------------------------")
	return err
}

// WriteDetails prints one line per result that did not succeed
func (s *Summary) WriteDetails(w io.Writer) error {
	for _, st := range []Status{StatusFailure, StatusCrash, StatusSkipped} {
		for _, res := range s.Results(st) {
			line := fmt.Sprintf("%s %s mix %d sub-mix %d layout %d (%s)",
				st, res.TestPrefix, res.MixPresentationID, res.SubMixIndex, res.LayoutIndex, res.LossyLabel())
			if res.PSNR != nil {
				line += fmt.Sprintf(" psnr=%.3f", *res.PSNR)
			}
			if res.Reason != "" {
				line += ": " + res.Reason
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
			if res.Command != "" {
				fmt.Fprintf(w, "    %s\n", res.Command)
			}
		}
	}
	return nil
}
