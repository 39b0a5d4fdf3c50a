// ABOUTME: Run loop over descriptor files
// ABOUTME: Expands each file and evaluates its cases into one Summary
package harness

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/iamf-tools/iamf-conformance/internal/metadata"
	"github.com/iamf-tools/iamf-conformance/internal/report"
)

// ErrSetup marks errors that indicate a broken test environment. They abort
// the run; decoder defects never do.
var ErrSetup = errors.New("setup error")

// Observer is notified of run progress. Calls are made from the goroutine
// that called Run.
type Observer interface {
	FileStarted(path string, index, total int)
	CaseFinished(r report.Result)
	FileFinished(path string)
}

// Harness drives the evaluator over a list of descriptor files
type Harness struct {
	Evaluator *Evaluator
	RunID     string

	// Jobs bounds concurrent case evaluation within one file. Values below
	// 2 evaluate sequentially.
	Jobs int

	Observer Observer
}

// Run evaluates every case of every file in order. The returned summary holds
// all results recorded so far, also when a setup error or cancellation stops
// the run early.
func (h *Harness) Run(ctx context.Context, files []string) (*report.Summary, error) {
	summary := report.NewSummary(h.RunID)
	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if h.Observer != nil {
			h.Observer.FileStarted(path, i, len(files))
		}
		if err := h.runFile(ctx, path, summary); err != nil {
			return summary, err
		}
		if h.Observer != nil {
			h.Observer.FileFinished(path)
		}
	}
	return summary, nil
}

func (h *Harness) runFile(ctx context.Context, path string, summary *report.Summary) error {
	desc, err := metadata.ParseFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSetup, err)
	}

	cases, err := metadata.Expand(desc, h.Evaluator.TestFileDir)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSetup, path, err)
	}

	if h.Jobs < 2 {
		for _, tc := range cases {
			if err := ctx.Err(); err != nil {
				return err
			}
			r := h.Evaluator.Evaluate(ctx, tc)
			// A decoder killed by cancellation is not a decoder crash
			if err := ctx.Err(); err != nil {
				return err
			}
			h.record(summary, r)
		}
		return nil
	}

	return h.runParallel(ctx, cases, summary)
}

// runParallel evaluates cases with at most Jobs decoders running at once and
// records the results in descriptor order. Generated file names are unique
// per case, so concurrent decodes never share an output path.
func (h *Harness) runParallel(ctx context.Context, cases []metadata.TestCase, summary *report.Summary) error {
	results := make([]report.Result, len(cases))
	done := make([]bool, len(cases))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.Jobs)
	for i, tc := range cases {
		i, tc := i, tc
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r := h.Evaluator.Evaluate(gctx, tc)
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r
			done[i] = true
			return nil
		})
	}
	err := g.Wait()

	for i, r := range results {
		if done[i] {
			h.record(summary, r)
		}
	}
	if err != nil {
		return err
	}
	return ctx.Err()
}

func (h *Harness) record(summary *report.Summary, r report.Result) {
	summary.Add(r)
	if h.Evaluator.Verbose {
		r.Log()
	}
	if h.Observer != nil {
		h.Observer.CaseFinished(r)
	}
}
