package metadata

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/iamf-tools/iamf-conformance/pkg/audio"
	"github.com/iamf-tools/iamf-conformance/pkg/audio/encode"
)

func stereo() Layout {
	return Layout{Type: LayoutTypeLoudspeakersSSConvention, SoundSystem: SoundSystemA_0_2_0}
}

func writeGolden(t *testing.T, dir, name string, format audio.Format) {
	t.Helper()
	buf := &audio.Buffer{Format: format, Samples: make([]int32, 4*format.Channels)}
	if err := encode.WriteWAV(filepath.Join(dir, name), buf); err != nil {
		t.Fatalf("failed to write golden %s: %v", name, err)
	}
}

func twoByTwo() Descriptor {
	return Descriptor{
		FileNamePrefix: "test_000100",
		ValidToDecode:  true,
		CodecConfigs:   []CodecConfig{{ID: 1, CodecID: CodecLPCM}},
		MixPresentations: []MixPresentation{
			{ID: 1, SubMixes: []SubMix{{Layouts: []Layout{stereo()}}, {Layouts: []Layout{stereo()}}}},
			{ID: 2, SubMixes: []SubMix{{Layouts: []Layout{stereo()}}, {Layouts: []Layout{stereo()}}}},
		},
	}
}

func TestGoldenAndGeneratedNames(t *testing.T) {
	golden := GoldenName("test_000002", 42, 1, 3)
	if golden != "test_000002_rendered_id_42_sub_mix_1_layout_3.wav" {
		t.Errorf("unexpected golden name %q", golden)
	}
	if got := GeneratedName(golden); got != "test_000002_rendered_id_42_sub_mix_1_layout_3_generated.wav" {
		t.Errorf("unexpected generated name %q", got)
	}
}

func TestExpandAllGoldensPresent(t *testing.T) {
	dir := t.TempDir()
	format := audio.Format{SampleRate: 48000, Channels: 2, BitDepth: 16}
	for _, mix := range []uint32{1, 2} {
		for sub := 0; sub < 2; sub++ {
			writeGolden(t, dir, GoldenName("test_000100", mix, sub, 0), format)
		}
	}

	cases, err := Expand(twoByTwo(), dir)
	if err != nil {
		t.Fatalf("expand failed: %v", err)
	}
	if len(cases) != 4 {
		t.Fatalf("expected 4 cases, got %d", len(cases))
	}

	want := []struct {
		mix uint32
		sub int
	}{{1, 0}, {1, 1}, {2, 0}, {2, 1}}
	for i, tc := range cases {
		if tc.MixPresentationID != want[i].mix || tc.SubMixIndex != want[i].sub || tc.LayoutIndex != 0 {
			t.Errorf("case %d: expected mix %d sub-mix %d, got %s", i, want[i].mix, want[i].sub, tc)
		}
		if tc.LayoutToken != "0" {
			t.Errorf("case %d: expected token 0, got %q", i, tc.LayoutToken)
		}
		if tc.Lossy {
			t.Errorf("case %d: LPCM must not be lossy", i)
		}
	}
}

func TestExpandDropsMixWithoutGoldens(t *testing.T) {
	dir := t.TempDir()
	format := audio.Format{SampleRate: 48000, Channels: 2, BitDepth: 16}
	writeGolden(t, dir, GoldenName("test_000100", 1, 0, 0), format)
	writeGolden(t, dir, GoldenName("test_000100", 1, 1, 0), format)

	cases, err := Expand(twoByTwo(), dir)
	if err != nil {
		t.Fatalf("expand failed: %v", err)
	}
	if len(cases) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(cases))
	}
	for _, tc := range cases {
		if tc.MixPresentationID == 2 {
			t.Errorf("mix 2 has no goldens and must be dropped, got %s", tc)
		}
	}
}

func TestExpandNothingToTest(t *testing.T) {
	noPrefix := twoByTwo()
	noPrefix.FileNamePrefix = ""

	invalid := twoByTwo()
	invalid.ValidToDecode = false

	for name, desc := range map[string]Descriptor{"no prefix": noPrefix, "not valid": invalid} {
		t.Run(name, func(t *testing.T) {
			cases, err := Expand(desc, t.TempDir())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(cases) != 0 {
				t.Errorf("expected no cases, got %d", len(cases))
			}
		})
	}
}

func TestExpandCodecConfigCount(t *testing.T) {
	for _, n := range []int{0, 2} {
		desc := twoByTwo()
		desc.CodecConfigs = make([]CodecConfig, n)
		if _, err := Expand(desc, t.TempDir()); !errors.Is(err, ErrCodecConfigCount) {
			t.Errorf("%d configs: expected ErrCodecConfigCount, got %v", n, err)
		}
	}
}

func TestExpandLossyAndTokens(t *testing.T) {
	dir := t.TempDir()
	format := audio.Format{SampleRate: 48000, Channels: 2, BitDepth: 16}

	desc := Descriptor{
		FileNamePrefix: "test_opus",
		ValidToDecode:  true,
		CodecConfigs:   []CodecConfig{{CodecID: CodecOpus}},
		MixPresentations: []MixPresentation{{
			ID: 5,
			SubMixes: []SubMix{{Layouts: []Layout{
				{Type: LayoutTypeBinaural, SoundSystem: SoundSystemUnknown},
				{Type: LayoutTypeLoudspeakersSSConvention, SoundSystem: SoundSystem13_6_9_0},
				{Type: LayoutTypeLoudspeakersSSConvention, SoundSystem: SoundSystem(14)},
				{Type: LayoutTypeReserved1, SoundSystem: SoundSystemUnknown},
			}}},
		}},
	}
	for i := 0; i < 4; i++ {
		writeGolden(t, dir, GoldenName("test_opus", 5, 0, i), format)
	}

	cases, err := Expand(desc, dir)
	if err != nil {
		t.Fatalf("expand failed: %v", err)
	}
	if len(cases) != 2 {
		t.Fatalf("expected unmappable layouts to be omitted, got %d cases", len(cases))
	}
	if cases[0].LayoutToken != BinauralToken {
		t.Errorf("expected binaural token, got %q", cases[0].LayoutToken)
	}
	if cases[1].LayoutToken != "13" || cases[1].LayoutIndex != 1 {
		t.Errorf("expected token 13 at layout 1, got %q at %d", cases[1].LayoutToken, cases[1].LayoutIndex)
	}
	for _, tc := range cases {
		if !tc.Lossy {
			t.Errorf("expected Opus case %s to be lossy", tc)
		}
	}
}

func TestExpandReadsGoldenHeader(t *testing.T) {
	dir := t.TempDir()
	desc := Descriptor{
		FileNamePrefix:   "test_hdr",
		ValidToDecode:    true,
		CodecConfigs:     []CodecConfig{{CodecID: CodecFLAC}},
		MixPresentations: []MixPresentation{{ID: 1, SubMixes: []SubMix{{Layouts: []Layout{stereo(), stereo()}}}}},
	}
	writeGolden(t, dir, GoldenName("test_hdr", 1, 0, 0), audio.Format{SampleRate: 44100, Channels: 2, BitDepth: 24})

	// An unreadable header keeps the defaults rather than dropping the case.
	bad := filepath.Join(dir, GoldenName("test_hdr", 1, 0, 1))
	if err := os.WriteFile(bad, []byte("junk"), 0o644); err != nil {
		t.Fatal(err)
	}

	cases, err := Expand(desc, dir)
	if err != nil {
		t.Fatalf("expand failed: %v", err)
	}
	if len(cases) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(cases))
	}
	if cases[0].BitDepth != 24 || cases[0].SampleRate != 44100 {
		t.Errorf("expected 24-bit 44100Hz from header, got %d-bit %dHz", cases[0].BitDepth, cases[0].SampleRate)
	}
	if cases[1].BitDepth != DefaultBitDepth || cases[1].SampleRate != DefaultSampleRate {
		t.Errorf("expected defaults, got %d-bit %dHz", cases[1].BitDepth, cases[1].SampleRate)
	}
}

func TestLayoutToken(t *testing.T) {
	tests := []struct {
		name   string
		layout Layout
		token  string
		ok     bool
	}{
		{"stereo", stereo(), "0", true},
		{"7.1.4", Layout{LayoutTypeLoudspeakersSSConvention, SoundSystemJ_4_7_0}, "9", true},
		{"9.1.6", Layout{LayoutTypeLoudspeakersSSConvention, SoundSystem13_6_9_0}, "13", true},
		{"binaural", Layout{LayoutTypeBinaural, SoundSystemUnknown}, "b", true},
		{"reserved sound system", Layout{LayoutTypeLoudspeakersSSConvention, SoundSystem(15)}, "", false},
		{"reserved layout type", Layout{LayoutTypeReserved0, SoundSystemA_0_2_0}, "", false},
		{"unknown layout type", Layout{LayoutTypeUnknown, SoundSystemUnknown}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, ok := LayoutToken(tt.layout)
			if token != tt.token || ok != tt.ok {
				t.Errorf("expected (%q, %v), got (%q, %v)", tt.token, tt.ok, token, ok)
			}
		})
	}
}
