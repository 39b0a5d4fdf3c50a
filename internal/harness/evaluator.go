// ABOUTME: Per-case decode, compare and classify state machine
// ABOUTME: Every case yields exactly one Result; nothing here aborts the run
package harness

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/iamf-tools/iamf-conformance/internal/decoder"
	"github.com/iamf-tools/iamf-conformance/internal/exclusion"
	"github.com/iamf-tools/iamf-conformance/internal/metadata"
	"github.com/iamf-tools/iamf-conformance/internal/report"
	"github.com/iamf-tools/iamf-conformance/pkg/audio"
	"github.com/iamf-tools/iamf-conformance/pkg/audio/decode"
	"github.com/iamf-tools/iamf-conformance/pkg/psnr"
)

const (
	// LossyThreshold is the minimum passing PSNR for Opus and AAC vectors
	LossyThreshold = 30.0
	// LosslessThreshold is the minimum passing PSNR for every other codec
	LosslessThreshold = 80.0

	ReasonDecoderCrash   = "decoder crash"
	ReasonBelowThreshold = "PSNR score below threshold."
)

// Thresholds holds the inclusive pass thresholds in dB
type Thresholds struct {
	Lossy    float64 `yaml:"lossy"`
	Lossless float64 `yaml:"lossless"`
}

// DefaultThresholds returns 30 dB lossy and 80 dB lossless
func DefaultThresholds() Thresholds {
	return Thresholds{Lossy: LossyThreshold, Lossless: LosslessThreshold}
}

// For returns the threshold that applies to a lossy or lossless case
func (t Thresholds) For(lossy bool) float64 {
	if lossy {
		return t.Lossy
	}
	return t.Lossless
}

// Pass reports whether score meets the threshold; equality passes
func (t Thresholds) Pass(score float64, lossy bool) bool {
	return score >= t.For(lossy)
}

// Decoder renders one test case to its generated file
type Decoder interface {
	Run(ctx context.Context, tc metadata.TestCase) decoder.Outcome
}

// Evaluator classifies single test cases
type Evaluator struct {
	Exclusions     *exclusion.Filter
	Decoder        Decoder
	TestFileDir    string
	WorkDir        string
	PreserveOutput bool
	Thresholds     Thresholds
	Verbose        bool

	// Load reads a PCM file; defaults to decode.Load
	Load func(path string) (*audio.Buffer, error)
}

// Evaluate runs tc through exclusion, decode and scoring:
//
//	excluded              -> SKIPPED
//	decoder failed        -> CRASH "decoder crash"
//	unreadable/mismatched -> CRASH with the specific error
//	score >= threshold    -> SUCCESS, else FAILURE
//
// A generated file that did not exist before the decode is removed on every
// exit path unless PreserveOutput is set.
func (e *Evaluator) Evaluate(ctx context.Context, tc metadata.TestCase) report.Result {
	res := report.Result{
		TestPrefix:        tc.TestPrefix,
		MixPresentationID: tc.MixPresentationID,
		SubMixIndex:       tc.SubMixIndex,
		LayoutIndex:       tc.LayoutIndex,
		Lossy:             tc.Lossy,
	}

	if reason, ok := e.Exclusions.Reason(tc); ok {
		res.Status = report.StatusSkipped
		res.Reason = reason
		return res
	}

	generated := filepath.Join(e.WorkDir, tc.GeneratedFile)
	if _, err := os.Stat(generated); errors.Is(err, fs.ErrNotExist) && !e.PreserveOutput {
		defer removeGenerated(generated)
	}

	outcome := e.Decoder.Run(ctx, tc)
	res.Command = outcome.Command
	if !outcome.OK {
		res.Status = report.StatusCrash
		res.Reason = ReasonDecoderCrash
		return res
	}

	score, err := e.score(tc, generated)
	if err != nil {
		log.Printf("Failed to calculate PSNR for %s: %v", tc, err)
		res.Status = report.StatusCrash
		res.Reason = err.Error()
		return res
	}

	res = res.WithScore(score)
	if e.Thresholds.Pass(score, tc.Lossy) {
		res.Status = report.StatusSuccess
	} else {
		res.Status = report.StatusFailure
		res.Reason = ReasonBelowThreshold
	}
	return res
}

// score loads both renderings and returns the thresholdable PSNR
func (e *Evaluator) score(tc metadata.TestCase, generated string) (float64, error) {
	load := e.Load
	if load == nil {
		load = decode.Load
	}

	refPath := filepath.Join(e.TestFileDir, tc.GoldenFile)
	if e.Verbose {
		log.Printf("ref_file: %s", refPath)
		log.Printf("test_file: %s", generated)
	}

	ref, err := load(refPath)
	if err != nil {
		return 0, err
	}
	cand, err := load(generated)
	if err != nil {
		return 0, err
	}

	raw, err := psnr.Buffers(ref, cand)
	if err != nil {
		return 0, err
	}

	if e.Verbose {
		channels, _ := psnr.PerChannel(ref.Samples, cand.Samples, ref.Format.Channels, ref.Format.BytesPerSample())
		for ch, v := range channels {
			log.Printf("ch#%d PSNR: %s", ch, psnr.FormatChannel(v))
		}
		log.Printf("psnr score: %f", psnr.Score(raw))
	}
	return psnr.Score(raw), nil
}

func removeGenerated(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: failed to remove %s: %v", path, err)
	}
}
