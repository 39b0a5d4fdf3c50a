// ABOUTME: Test matrix expansion
// ABOUTME: Turns one descriptor into per-layout decode and compare cases
package metadata

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/iamf-tools/iamf-conformance/pkg/audio/decode"
)

const (
	// DefaultBitDepth applies when the golden file header cannot be read
	DefaultBitDepth = 16
	// DefaultSampleRate applies when the golden file header cannot be read
	DefaultSampleRate = 48000

	// BinauralToken is the decoder layout token for binaural output
	BinauralToken = "b"
)

// ErrCodecConfigCount is returned for descriptors without exactly one codec config
var ErrCodecConfigCount = errors.New("descriptor must have exactly one codec config")

// soundSystemTokens maps each sound system to the decoder's -s argument.
var soundSystemTokens = map[SoundSystem]string{
	SoundSystemA_0_2_0:  "0",
	SoundSystemB_0_5_0:  "1",
	SoundSystemC_2_5_0:  "2",
	SoundSystemD_4_5_0:  "3",
	SoundSystemE_4_5_1:  "4",
	SoundSystemF_3_7_0:  "5",
	SoundSystemG_4_9_0:  "6",
	SoundSystemH_9_10_3: "7",
	SoundSystemI_0_7_0:  "8",
	SoundSystemJ_4_7_0:  "9",
	SoundSystem10_2_7_0: "10",
	SoundSystem11_2_3_0: "11",
	SoundSystem12_0_1_0: "12",
	SoundSystem13_6_9_0: "13",
}

// TestCase is one (mix presentation, sub-mix, layout) combination to decode
// and score.
type TestCase struct {
	TestPrefix        string
	MixPresentationID uint32
	SubMixIndex       int
	LayoutIndex       int
	Lossy             bool
	Layout            Layout

	// LayoutToken is the decoder -s argument for Layout
	LayoutToken string

	GoldenFile    string
	GeneratedFile string
	BitDepth      int
	SampleRate    int
}

func (tc TestCase) String() string {
	return fmt.Sprintf("%s mix %d sub-mix %d layout %d",
		tc.TestPrefix, tc.MixPresentationID, tc.SubMixIndex, tc.LayoutIndex)
}

// GoldenName returns the file name of the reference rendering
func GoldenName(prefix string, mixID uint32, subMixIndex, layoutIndex int) string {
	return fmt.Sprintf("%s_rendered_id_%d_sub_mix_%d_layout_%d.wav", prefix, mixID, subMixIndex, layoutIndex)
}

// GeneratedName returns the file name the decoder writes for a golden file
func GeneratedName(golden string) string {
	return strings.TrimSuffix(golden, ".wav") + "_generated.wav"
}

// LayoutToken resolves the decoder -s argument for a layout. Reserved layout
// types and unmapped sound systems have no token.
func LayoutToken(l Layout) (string, bool) {
	switch l.Type {
	case LayoutTypeBinaural:
		return BinauralToken, true
	case LayoutTypeLoudspeakersSSConvention:
		token, ok := soundSystemTokens[l.SoundSystem]
		return token, ok
	default:
		return "", false
	}
}

// Expand enumerates the test cases of desc. Cases whose golden file is missing
// from testFileDir, or whose layout has no decoder token, are omitted with a
// warning; they are not evaluated and produce no result.
func Expand(desc Descriptor, testFileDir string) ([]TestCase, error) {
	if desc.FileNamePrefix == "" || !desc.ValidToDecode {
		return nil, nil
	}
	if len(desc.CodecConfigs) != 1 {
		return nil, fmt.Errorf("%w: %s has %d", ErrCodecConfigCount, desc.FileNamePrefix, len(desc.CodecConfigs))
	}
	lossy := desc.CodecConfigs[0].CodecID.IsLossy()

	var cases []TestCase
	for _, mp := range desc.MixPresentations {
		for subMixIdx, subMix := range mp.SubMixes {
			for layoutIdx, layout := range subMix.Layouts {
				golden := GoldenName(desc.FileNamePrefix, mp.ID, subMixIdx, layoutIdx)
				goldenPath := filepath.Join(testFileDir, golden)

				if _, err := os.Stat(goldenPath); errors.Is(err, fs.ErrNotExist) {
					log.Printf("Warning: golden wav file not found, sometimes this is because"+
						" the mix presentation is invalid to decode: %s", goldenPath)
					continue
				}

				token, ok := LayoutToken(layout)
				if !ok {
					log.Printf("Warning: could not map layout to decoder -s flag: %s (%s omitted)",
						layout, golden)
					continue
				}

				tc := TestCase{
					TestPrefix:        desc.FileNamePrefix,
					MixPresentationID: mp.ID,
					SubMixIndex:       subMixIdx,
					LayoutIndex:       layoutIdx,
					Lossy:             lossy,
					Layout:            layout,
					LayoutToken:       token,
					GoldenFile:        golden,
					GeneratedFile:     GeneratedName(golden),
					BitDepth:          DefaultBitDepth,
					SampleRate:        DefaultSampleRate,
				}

				if format, err := decode.ReadFormat(goldenPath); err != nil {
					log.Printf("Warning: could not read golden header, using %d-bit %dHz: %v",
						DefaultBitDepth, DefaultSampleRate, err)
				} else {
					tc.BitDepth = format.BitDepth
					tc.SampleRate = format.SampleRate
				}

				cases = append(cases, tc)
			}
		}
	}
	return cases, nil
}
