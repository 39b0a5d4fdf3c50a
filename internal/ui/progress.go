// ABOUTME: Progress bar observer for non-interactive runs
// ABOUTME: Advances once per descriptor file, described by the file name
package ui

import (
	"io"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/iamf-tools/iamf-conformance/internal/report"
)

// Progress renders one bar step per descriptor file
type Progress struct {
	bar  *progressbar.ProgressBar
	done int
}

// NewProgress creates a progress bar over total files writing to w
func NewProgress(w io.Writer, total int) *Progress {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Running tests"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "",
			BarEnd:        "",
		}),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
	return &Progress{bar: bar}
}

func (p *Progress) FileStarted(path string, _, _ int) {
	p.bar.Describe(filepath.Base(path))
}

func (p *Progress) CaseFinished(report.Result) {}

func (p *Progress) FileFinished(string) {
	p.done++
	_ = p.bar.Add(1)
}

// Finish completes and clears the bar
func (p *Progress) Finish() error {
	return p.bar.Finish()
}

// Done returns the number of files completed
func (p *Progress) Done() int {
	return p.done
}
