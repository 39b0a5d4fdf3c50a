package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iamf-tools/iamf-conformance/pkg/audio"
	"github.com/iamf-tools/iamf-conformance/pkg/audio/encode"
)

func writeStereo(t *testing.T, dir, name string, frames int, offset int32) {
	t.Helper()
	buf := &audio.Buffer{
		Format:  audio.Format{SampleRate: 48000, Channels: 2, BitDepth: 16},
		Samples: make([]int32, frames*2),
	}
	for i := range buf.Samples {
		buf.Samples[i] = int32(i%500) - 250
		if i%2 == 1 {
			buf.Samples[i] += offset
		}
	}
	if err := encode.WriteWAV(filepath.Join(dir, name), buf); err != nil {
		t.Fatal(err)
	}
}

func TestRunPrintsTable(t *testing.T) {
	dir := t.TempDir()
	writeStereo(t, dir, "ref.wav", 100, 0)
	writeStereo(t, dir, "same.wav", 100, 0)
	writeStereo(t, dir, "off.wav", 100, 1)
	writeStereo(t, dir, "short.wav", 50, 0)

	var out bytes.Buffer
	err := run(&out, dir,
		[]string{"same.wav", "off.wav", "short.wav"},
		[]string{"ref.wav", "ref.wav", "ref.wav"})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	got := out.String()
	want := []string{
		"[0] PSNR evaluation: compare same.wav with ref.wav\naverage PSNR: 100.000000000000000\n",
		"[1] PSNR evaluation: compare off.wav with ref.wav\naverage PSNR: 96.32",
		"[2] PSNR evaluation: compare short.wav with ref.wav\nNumber of samples of reference file and comparison file are different: 100 vs 50\n",
		"[Result] - (If the OPUS or AAC codec has a over avgPSNR 30, it is considered PASS. Other codecs must be over avgPSNR 80.)",
		"TC#0 : 100.000 (compare same.wav with ref.wav)",
		"TC#1 : 96.329 (compare off.wav with ref.wav)",
		"TC#2 : 0.000 (compare short.wav with ref.wav)",
	}
	for _, w := range want {
		if !strings.Contains(got, w) {
			t.Errorf("expected output to contain %q, got:\n%s", w, got)
		}
	}
}

func TestRunMissingFileScoresZero(t *testing.T) {
	dir := t.TempDir()
	writeStereo(t, dir, "ref.wav", 10, 0)

	var out bytes.Buffer
	if err := run(&out, dir, []string{"missing.wav"}, []string{"ref.wav"}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out.String(), "TC#0 : 0.000 (compare missing.wav with ref.wav)") {
		t.Errorf("expected zero score, got:\n%s", out.String())
	}
}

func TestRunListLengthMismatch(t *testing.T) {
	var out bytes.Buffer
	err := run(&out, t.TempDir(), []string{"a.wav", "b.wav"}, []string{"a.wav"})
	if !errors.Is(err, errListLength) {
		t.Fatalf("expected list length error, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}

func TestRound3(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{96.3294, 96.329},
		{96.3296, 96.33},
		{100, 100},
		{0.0004, 0},
	}
	for _, tt := range tests {
		if got := round3(tt.in); got != tt.want {
			t.Errorf("round3(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
