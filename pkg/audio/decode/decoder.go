// ABOUTME: Decoder interface definition
// ABOUTME: Dispatches container files to WAV or FLAC decoders by extension
package decode

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/iamf-tools/iamf-conformance/pkg/audio"
)

var (
	// ErrUnsupportedContainer is returned for file extensions with no decoder
	ErrUnsupportedContainer = errors.New("unsupported audio container")

	// ErrUnsupportedEncoding is returned for non-integer or malformed PCM
	ErrUnsupportedEncoding = errors.New("unsupported sample encoding")
)

// Decoder reads PCM audio from a container file
type Decoder interface {
	// Format returns the stream format parsed from the container header
	Format() audio.Format

	// Decode reads the full PCM payload
	Decode() (*audio.Buffer, error)

	// Close releases the underlying file
	Close() error
}

// Open creates a decoder for path based on its extension
func Open(path string) (Decoder, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		return NewWAV(path)
	case ".flac":
		return NewFLAC(path)
	default:
		return nil, fmt.Errorf("%w: %s (supported: .wav, .flac)", ErrUnsupportedContainer, ext)
	}
}

// Load decodes the whole file at path
func Load(path string) (*audio.Buffer, error) {
	d, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = d.Close() }()

	buf, err := d.Decode()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return buf, nil
}

// ReadFormat parses only the container header of path
func ReadFormat(path string) (audio.Format, error) {
	d, err := Open(path)
	if err != nil {
		return audio.Format{}, err
	}
	defer func() { _ = d.Close() }()

	return d.Format(), nil
}
