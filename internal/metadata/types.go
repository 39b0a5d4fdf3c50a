// ABOUTME: Test vector descriptor types
// ABOUTME: Codec, layout and sound system enums read from user metadata
package metadata

import (
	"fmt"
	"strconv"
)

// CodecID identifies the codec of a test vector's audio substreams
type CodecID string

const (
	CodecOpus  CodecID = "CODEC_ID_OPUS"
	CodecAACLC CodecID = "CODEC_ID_AAC_LC"
	CodecFLAC  CodecID = "CODEC_ID_FLAC"
	CodecLPCM  CodecID = "CODEC_ID_LPCM"
)

// Numeric codec ids are the IAMF four-character codes.
var codecIDsByValue = map[uint64]CodecID{
	0x4f707573: CodecOpus,  // "Opus"
	0x6d703461: CodecAACLC, // "mp4a"
	0x664c6143: CodecFLAC,  // "fLaC"
	0x6970636d: CodecLPCM,  // "ipcm"
}

// IsLossy reports whether the codec is a perceptual coder
func (c CodecID) IsLossy() bool {
	return c == CodecOpus || c == CodecAACLC
}

// LayoutType is the loudness layout type of a sub-mix output
type LayoutType int

const LayoutTypeUnknown LayoutType = -1

const (
	LayoutTypeReserved0 LayoutType = iota
	LayoutTypeReserved1
	LayoutTypeLoudspeakersSSConvention
	LayoutTypeBinaural
)

var layoutTypeNames = map[string]LayoutType{
	"LAYOUT_TYPE_RESERVED_0":                 LayoutTypeReserved0,
	"LAYOUT_TYPE_RESERVED_1":                 LayoutTypeReserved1,
	"LAYOUT_TYPE_LOUDSPEAKERS_SS_CONVENTION": LayoutTypeLoudspeakersSSConvention,
	"LAYOUT_TYPE_BINAURAL":                   LayoutTypeBinaural,
}

func (t LayoutType) String() string {
	for name, v := range layoutTypeNames {
		if v == t {
			return name
		}
	}
	return "LAYOUT_TYPE_" + strconv.Itoa(int(t))
}

// SoundSystem is a loudspeaker configuration defined by ITU-R BS.2051
type SoundSystem int

const SoundSystemUnknown SoundSystem = -1

const (
	SoundSystemA_0_2_0 SoundSystem = iota
	SoundSystemB_0_5_0
	SoundSystemC_2_5_0
	SoundSystemD_4_5_0
	SoundSystemE_4_5_1
	SoundSystemF_3_7_0
	SoundSystemG_4_9_0
	SoundSystemH_9_10_3
	SoundSystemI_0_7_0
	SoundSystemJ_4_7_0
	SoundSystem10_2_7_0
	SoundSystem11_2_3_0
	SoundSystem12_0_1_0
	SoundSystem13_6_9_0
)

var soundSystemNames = map[string]SoundSystem{
	"SOUND_SYSTEM_A_0_2_0":  SoundSystemA_0_2_0,
	"SOUND_SYSTEM_B_0_5_0":  SoundSystemB_0_5_0,
	"SOUND_SYSTEM_C_2_5_0":  SoundSystemC_2_5_0,
	"SOUND_SYSTEM_D_4_5_0":  SoundSystemD_4_5_0,
	"SOUND_SYSTEM_E_4_5_1":  SoundSystemE_4_5_1,
	"SOUND_SYSTEM_F_3_7_0":  SoundSystemF_3_7_0,
	"SOUND_SYSTEM_G_4_9_0":  SoundSystemG_4_9_0,
	"SOUND_SYSTEM_H_9_10_3": SoundSystemH_9_10_3,
	"SOUND_SYSTEM_I_0_7_0":  SoundSystemI_0_7_0,
	"SOUND_SYSTEM_J_4_7_0":  SoundSystemJ_4_7_0,
	"SOUND_SYSTEM_10_2_7_0": SoundSystem10_2_7_0,
	"SOUND_SYSTEM_11_2_3_0": SoundSystem11_2_3_0,
	"SOUND_SYSTEM_12_0_1_0": SoundSystem12_0_1_0,
	"SOUND_SYSTEM_13_6_9_0": SoundSystem13_6_9_0,
}

func (s SoundSystem) String() string {
	for name, v := range soundSystemNames {
		if v == s {
			return name
		}
	}
	return "SOUND_SYSTEM_" + strconv.Itoa(int(s))
}

// Layout is one rendering target of a sub-mix
type Layout struct {
	Type LayoutType
	// SoundSystem is only meaningful for loudspeaker layouts
	SoundSystem SoundSystem
}

func (l Layout) String() string {
	if l.Type == LayoutTypeLoudspeakersSSConvention {
		return fmt.Sprintf("%s(%s)", l.Type, l.SoundSystem)
	}
	return l.Type.String()
}

// SubMix groups the layouts a sub-mix can be rendered to
type SubMix struct {
	Layouts []Layout
}

// MixPresentation is one selectable mix of a test vector
type MixPresentation struct {
	ID       uint32
	SubMixes []SubMix
}

// CodecConfig is the codec configuration shared by a test vector's substreams
type CodecConfig struct {
	ID      uint32
	CodecID CodecID
}

// Descriptor is the parsed user metadata of one test vector. It is built once
// by Parse and treated as read-only afterwards.
type Descriptor struct {
	FileNamePrefix   string
	ValidToDecode    bool
	CodecConfigs     []CodecConfig
	MixPresentations []MixPresentation
}
