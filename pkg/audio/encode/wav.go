// ABOUTME: WAV encoder
// ABOUTME: Writes 16, 24 and 32-bit integer PCM WAV files through go-audio/wav
package encode

import (
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/iamf-tools/iamf-conformance/pkg/audio"
)

// WAVEncoder encodes integer PCM to RIFF/WAVE
type WAVEncoder struct {
	encoder *wav.Encoder
	format  audio.Format
}

// NewWAV creates a WAV encoder writing to w
func NewWAV(w io.WriteSeeker, format audio.Format) (*WAVEncoder, error) {
	switch format.BitDepth {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 16, 24, 32)", format.BitDepth)
	}
	if format.Channels < 1 {
		return nil, fmt.Errorf("invalid channel count: %d", format.Channels)
	}

	return &WAVEncoder{
		encoder: wav.NewEncoder(w, format.SampleRate, format.BitDepth, format.Channels, 1),
		format:  format,
	}, nil
}

// Write encodes buf, which must match the encoder format
func (e *WAVEncoder) Write(buf *audio.Buffer) error {
	if buf.Format != e.format {
		return fmt.Errorf("buffer format %s does not match encoder format %s", buf.Format, e.format)
	}

	data := make([]int, len(buf.Samples))
	for i, s := range buf.Samples {
		data[i] = int(s)
	}

	return e.encoder.Write(&goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: e.format.Channels,
			SampleRate:  e.format.SampleRate,
		},
		Data:           data,
		SourceBitDepth: e.format.BitDepth,
	})
}

func (e *WAVEncoder) Close() error {
	return e.encoder.Close()
}

// WriteWAV writes buf to a new file at path
func WriteWAV(path string, buf *audio.Buffer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create WAV file: %w", err)
	}

	enc, err := NewWAV(f, buf.Format)
	if err != nil {
		f.Close()
		return err
	}

	if err := enc.Write(buf); err != nil {
		f.Close()
		return fmt.Errorf("failed to write WAV samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("failed to finalise WAV file: %w", err)
	}
	return f.Close()
}
