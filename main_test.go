// ABOUTME: Tests for the conformance command wiring
// ABOUTME: Covers how flags and configuration reach the decoder runner
package main

import (
	"testing"

	"github.com/iamf-tools/iamf-conformance/internal/config"
)

func TestDecoderOptionsCapture(t *testing.T) {
	tests := []struct {
		name    string
		flag    bool
		verbose bool
		want    bool
	}{
		{"default", false, false, false},
		{"flag", true, false, true},
		{"verbose", false, true, true},
		{"both", true, true, true},
	}

	saved := captureOutput
	t.Cleanup(func() { captureOutput = saved })

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureOutput = tt.flag
			cfg := &config.Config{Verbose: tt.verbose}
			if got := decoderOptions(cfg).CaptureOutput; got != tt.want {
				t.Errorf("expected CaptureOutput %v, got %v", tt.want, got)
			}
		})
	}
}
