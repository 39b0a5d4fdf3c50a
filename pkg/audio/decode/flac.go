// ABOUTME: FLAC decoder
// ABOUTME: Decodes FLAC reference files to interleaved int32 samples
package decode

import (
	"fmt"
	"io"
	"os"

	"github.com/mewkiz/flac"

	"github.com/iamf-tools/iamf-conformance/pkg/audio"
)

// FLACDecoder decodes FLAC streams
type FLACDecoder struct {
	file   *os.File
	stream *flac.Stream
	format audio.Format
}

// NewFLAC opens path and parses its STREAMINFO block
func NewFLAC(path string) (*FLACDecoder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open FLAC file: %w", err)
	}

	stream, err := flac.New(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to decode FLAC: %w", err)
	}

	info := stream.Info
	return &FLACDecoder{
		file:   f,
		stream: stream,
		format: audio.Format{
			SampleRate: int(info.SampleRate),
			Channels:   int(info.NChannels),
			BitDepth:   int(info.BitsPerSample),
		},
	}, nil
}

func (d *FLACDecoder) Format() audio.Format { return d.format }

// Decode parses every remaining frame. FLAC samples are already signed
// integers at the stream bit depth, so no rescaling happens here.
func (d *FLACDecoder) Decode() (*audio.Buffer, error) {
	channels := d.format.Channels
	samples := make([]int32, 0, int(d.stream.Info.NSamples)*channels)

	for {
		frame, err := d.stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(frame.Subframes) != channels {
			return nil, fmt.Errorf("%w: frame has %d subframes, stream has %d channels",
				ErrUnsupportedEncoding, len(frame.Subframes), channels)
		}

		for i := 0; i < int(frame.BlockSize); i++ {
			for ch := 0; ch < channels; ch++ {
				samples = append(samples, frame.Subframes[ch].Samples[i])
			}
		}
	}

	return &audio.Buffer{Format: d.format, Samples: samples}, nil
}

func (d *FLACDecoder) Close() error {
	return d.file.Close()
}
