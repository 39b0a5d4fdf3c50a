// ABOUTME: Audio fundamentals package providing core PCM types
// ABOUTME: Defines Format, Buffer and the buffer comparability rules
// Package audio provides the PCM types shared by the conformance tools.
//
// A Buffer carries interleaved signed integer samples at their native bit
// depth together with the Format they were read with. Two buffers may only be
// scored against each other when CheckComparable returns nil:
//
//	if err := audio.CheckComparable(ref, cand); err != nil {
//	    var mismatch *audio.MismatchError
//	    if errors.As(err, &mismatch) {
//	        log.Printf("cannot compare: %v", mismatch)
//	    }
//	}
package audio
