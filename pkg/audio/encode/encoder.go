// ABOUTME: Encoder interface definition
// ABOUTME: Common interface for PCM container writers
package encode

import "github.com/iamf-tools/iamf-conformance/pkg/audio"

// Encoder writes PCM buffers to a container
type Encoder interface {
	// Write appends the samples of buf
	Write(buf *audio.Buffer) error

	// Close finalises the container headers
	Close() error
}
