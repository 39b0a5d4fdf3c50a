// ABOUTME: Test outcome types
// ABOUTME: Defines the closed status set and the per-case Result record
package report

import (
	"log"
	"strconv"
)

// Status classifies the outcome of one test case
type Status int

const (
	StatusSuccess Status = iota
	StatusFailure
	StatusCrash
	StatusSkipped
)

// Statuses returns every status in reporting order
func Statuses() []Status {
	return []Status{StatusSuccess, StatusFailure, StatusCrash, StatusSkipped}
}

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "SUCCESS"
	case StatusFailure:
		return "FAILURE"
	case StatusCrash:
		return "CRASH"
	case StatusSkipped:
		return "SKIPPED"
	default:
		return "Status(" + strconv.Itoa(int(s)) + ")"
	}
}

// Result is the single outcome recorded for a test case. Empty Reason and
// Command mean absent; a nil PSNR means no score was computed.
type Result struct {
	TestPrefix        string
	MixPresentationID uint32
	SubMixIndex       int
	LayoutIndex       int
	Lossy             bool
	Status            Status
	PSNR              *float64
	Reason            string
	Command           string
}

// WithScore returns a copy of r carrying score
func (r Result) WithScore(score float64) Result {
	r.PSNR = &score
	return r
}

// LossyLabel returns "lossy" or "lossless"
func (r Result) LossyLabel() string {
	if r.Lossy {
		return "lossy"
	}
	return "lossless"
}

// PSNRString formats the score with full precision, or "" when absent
func (r Result) PSNRString() string {
	if r.PSNR == nil {
		return ""
	}
	return strconv.FormatFloat(*r.PSNR, 'f', -1, 64)
}

// Log writes a debug line for the result
func (r Result) Log() {
	log.Printf("%s: %s >= %s for %s mix %d sub-mix %d layout %d",
		r.Status, r.PSNRString(), r.LossyLabel(), r.TestPrefix, r.MixPresentationID, r.SubMixIndex, r.LayoutIndex)
}
