// ABOUTME: Peak signal-to-noise ratio between PCM buffers
// ABOUTME: Averages per-channel PSNR, excluding bit-identical channels
package psnr

import (
	"errors"
	"fmt"
	"math"

	"github.com/iamf-tools/iamf-conformance/pkg/audio"
)

const (
	// Identical is returned when every channel matches exactly
	Identical = -1.0

	// IdenticalScore stands in for Identical when comparing against thresholds
	IdenticalScore = 100.0
)

var (
	// ErrInvalidFormat is returned for sample widths below 16 bits
	ErrInvalidFormat = errors.New("supports sample format: [pcm_s16le, pcm_s24le, pcm_s32le]")

	// ErrShapeMismatch is returned when the buffers cannot be paired sample by sample
	ErrShapeMismatch = errors.New("reference and candidate differ in shape")
)

// PerChannel returns the PSNR of each channel in dB. Bit-identical channels
// are reported as +Inf. Samples are interleaved; channels < 1 means mono.
func PerChannel(ref, cand []int32, channels, bitDepthBytes int) ([]float64, error) {
	if bitDepthBytes <= 1 {
		return nil, fmt.Errorf("%w: %d bytes per sample", ErrInvalidFormat, bitDepthBytes)
	}
	if channels < 1 {
		channels = 1
	}
	if len(ref) != len(cand) || len(ref)%channels != 0 {
		return nil, fmt.Errorf("%w: %d vs %d samples over %d channels", ErrShapeMismatch, len(ref), len(cand), channels)
	}

	maxValue := math.Exp2(float64(8*bitDepthBytes)) - 1
	peak := maxValue * maxValue
	frames := len(ref) / channels

	// Differences are taken in int64 and squared in float64 so that full
	// scale 32-bit swings cannot overflow.
	sums := make([]float64, channels)
	for i := range ref {
		diff := float64(int64(ref[i]) - int64(cand[i]))
		sums[i%channels] += diff * diff
	}

	out := make([]float64, channels)
	for ch, sum := range sums {
		if sum == 0 {
			out[ch] = math.Inf(1)
			continue
		}
		mse := sum / float64(frames)
		out[ch] = 10 * math.Log10(peak/mse)
	}
	return out, nil
}

// AverageChannel returns the mean PSNR over all channels that differ, or
// Identical when none do.
func AverageChannel(ref, cand []int32, channels, bitDepthBytes int) (float64, error) {
	values, err := PerChannel(ref, cand, channels, bitDepthBytes)
	if err != nil {
		return 0, err
	}
	return average(values), nil
}

// Buffers checks that ref and cand are comparable and returns their
// average channel PSNR.
func Buffers(ref, cand *audio.Buffer) (float64, error) {
	if err := audio.CheckComparable(ref, cand); err != nil {
		return 0, err
	}
	return AverageChannel(ref.Samples, cand.Samples, ref.Format.Channels, ref.Format.BytesPerSample())
}

// Score maps the Identical sentinel to IdenticalScore and passes every other
// value through unchanged.
func Score(raw float64) float64 {
	if raw == Identical {
		return IdenticalScore
	}
	return raw
}

// FormatChannel renders a per-channel PSNR for logging. Bit-identical
// channels print as "inf".
func FormatChannel(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	return fmt.Sprintf("%f dB", v)
}

func average(values []float64) float64 {
	var sum float64
	var n int
	for _, v := range values {
		if math.IsInf(v, 1) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return Identical
	}
	return sum / float64(n)
}
