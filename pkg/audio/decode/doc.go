// ABOUTME: Audio container decoders for reference and rendered files
// ABOUTME: Provides the Decoder interface and WAV/FLAC implementations
// Package decode reads PCM audio from container files.
//
// Supports: WAV (16, 24 and 32-bit integer PCM) and FLAC.
//
// Decoders keep samples at their native bit depth so that signal
// comparisons are made on exactly what the container stores.
//
// Example:
//
//	buf, err := decode.Load("test_000002_rendered_id_42_sub_mix_0_layout_0.wav")
//	format, err := decode.ReadFormat(path) // header only
package decode
