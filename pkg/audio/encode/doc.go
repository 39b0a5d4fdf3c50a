// ABOUTME: Audio encoder package for writing PCM containers
// ABOUTME: Provides the Encoder interface and a WAV implementation
// Package encode writes PCM audio to container files.
//
// It is used to produce reference fixtures and to materialise buffers
// that were generated in memory.
//
// Example:
//
//	err := encode.WriteWAV("out.wav", buf)
package encode
