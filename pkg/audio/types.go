// ABOUTME: PCM format and buffer types
// ABOUTME: Defines multi-channel integer audio and the comparability check
package audio

import "fmt"

// Format describes a PCM stream
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// BytesPerSample returns the container width of one sample
func (f Format) BytesPerSample() int {
	return (f.BitDepth + 7) / 8
}

func (f Format) String() string {
	return fmt.Sprintf("%dHz %dch %d-bit", f.SampleRate, f.Channels, f.BitDepth)
}

// Buffer holds decoded PCM audio. Samples are interleaved by frame and kept
// in their native range (int32 covers 16, 24 and 32-bit signed PCM).
type Buffer struct {
	Format  Format
	Samples []int32
}

// channels treats an absent channel dimension as mono.
func (b *Buffer) channels() int {
	if b.Format.Channels < 1 {
		return 1
	}
	return b.Format.Channels
}

// Frames returns the number of sample frames in the buffer
func (b *Buffer) Frames() int {
	return len(b.Samples) / b.channels()
}

// Channel extracts one channel as a new slice
func (b *Buffer) Channel(ch int) []int32 {
	n := b.channels()
	if ch < 0 || ch >= n {
		return nil
	}
	out := make([]int32, 0, b.Frames())
	for i := ch; i < len(b.Samples); i += n {
		out = append(out, b.Samples[i])
	}
	return out
}

// MismatchError reports why two buffers cannot be compared sample by sample
type MismatchError struct {
	Property  string
	Reference int
	Candidate int
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s of reference file and comparison file are different: %d vs %d",
		e.Property, e.Reference, e.Candidate)
}

// CheckComparable verifies that ref and cand agree on sample rate, channel
// count, frame count and bit depth, in that order.
func CheckComparable(ref, cand *Buffer) error {
	if ref.Format.SampleRate != cand.Format.SampleRate {
		return &MismatchError{"Sampling rate", ref.Format.SampleRate, cand.Format.SampleRate}
	}
	if ref.channels() != cand.channels() {
		return &MismatchError{"Number of channels", ref.channels(), cand.channels()}
	}
	if ref.Frames() != cand.Frames() || len(ref.Samples) != len(cand.Samples) {
		return &MismatchError{"Number of samples", ref.Frames(), cand.Frames()}
	}
	if ref.Format.BitDepth != cand.Format.BitDepth {
		return &MismatchError{"Bit depth", ref.Format.BitDepth, cand.Format.BitDepth}
	}
	return nil
}
