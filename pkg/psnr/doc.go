// ABOUTME: Signal fidelity metric package
// ABOUTME: Average-channel PSNR between integer PCM buffers
// Package psnr computes the peak signal-to-noise ratio between a reference
// and a candidate PCM signal.
//
// PSNR is computed per channel against the full-scale peak of the sample
// width, then averaged over every channel that is not bit-identical. When all
// channels match exactly the result is the Identical sentinel; callers that
// need a number to compare against a threshold should pass it through Score.
//
// Example:
//
//	raw, err := psnr.Buffers(ref, cand)
//	if err != nil {
//	    return err
//	}
//	if psnr.Score(raw) >= 80 {
//	    // lossless pass
//	}
package psnr
