// ABOUTME: WAV decoder
// ABOUTME: Reads integer PCM WAV files through go-audio/wav
package decode

import (
	"fmt"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/iamf-tools/iamf-conformance/pkg/audio"
)

// WAV format tags that carry integer PCM
const (
	wavFormatPCM        = 1
	wavFormatExtensible = 0xFFFE
)

// WAVDecoder decodes RIFF/WAVE files
type WAVDecoder struct {
	file    *os.File
	decoder *wav.Decoder
	format  audio.Format
}

// NewWAV opens path and parses its header
func NewWAV(path string) (*WAVDecoder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open WAV file: %w", err)
	}

	d := wav.NewDecoder(f)
	d.ReadInfo()
	if err := d.Err(); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to read WAV header %s: %w", path, err)
	}

	if d.WavAudioFormat != wavFormatPCM && d.WavAudioFormat != wavFormatExtensible {
		f.Close()
		return nil, fmt.Errorf("%w: WAV format tag %d in %s", ErrUnsupportedEncoding, d.WavAudioFormat, path)
	}
	if d.NumChans < 1 || d.BitDepth < 8 {
		f.Close()
		return nil, fmt.Errorf("%w: %d channels at %d bits in %s", ErrUnsupportedEncoding, d.NumChans, d.BitDepth, path)
	}

	return &WAVDecoder{
		file:    f,
		decoder: d,
		format: audio.Format{
			SampleRate: int(d.SampleRate),
			Channels:   int(d.NumChans),
			BitDepth:   int(d.BitDepth),
		},
	}, nil
}

func (d *WAVDecoder) Format() audio.Format { return d.format }

// Decode reads every frame of the data chunk
func (d *WAVDecoder) Decode() (*audio.Buffer, error) {
	intBuf, err := d.decoder.FullPCMBuffer()
	if err != nil {
		return nil, err
	}
	return fromIntBuffer(intBuf, d.format), nil
}

func (d *WAVDecoder) Close() error {
	return d.file.Close()
}

func fromIntBuffer(buf *goaudio.IntBuffer, format audio.Format) *audio.Buffer {
	samples := make([]int32, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = int32(v)
	}
	return &audio.Buffer{Format: format, Samples: samples}
}
