// ABOUTME: Textproto user metadata parsing
// ABOUTME: Builds a Descriptor from the fields the harness needs
package metadata

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/protocolbuffers/txtpbfmt/ast"
	"github.com/protocolbuffers/txtpbfmt/parser"
)

// ParseFile reads and parses a .textproto user metadata file
func ParseFile(path string) (Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Descriptor{}, fmt.Errorf("failed to read descriptor: %w", err)
	}

	desc, err := Parse(data)
	if err != nil {
		return Descriptor{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return desc, nil
}

// Parse builds a Descriptor from textproto user metadata. Fields the harness
// does not use are ignored.
func Parse(data []byte) (Descriptor, error) {
	nodes, err := parser.Parse(data)
	if err != nil {
		return Descriptor{}, err
	}

	// is_valid_to_decode is a proto2 bool, so an absent field reads false.
	var desc Descriptor
	for _, n := range nodes {
		switch n.Name {
		case "test_vector_metadata":
			desc.FileNamePrefix = stringField(n, "file_name_prefix")
			if v, ok := scalar(n, "is_valid_to_decode"); ok {
				desc.ValidToDecode = parseBool(v)
			}

		case "codec_config_metadata":
			cc, err := parseCodecConfig(n)
			if err != nil {
				return Descriptor{}, err
			}
			desc.CodecConfigs = append(desc.CodecConfigs, cc)

		case "mix_presentation_metadata":
			mp, err := parseMixPresentation(n)
			if err != nil {
				return Descriptor{}, err
			}
			desc.MixPresentations = append(desc.MixPresentations, mp)
		}
	}

	return desc, nil
}

func parseCodecConfig(n *ast.Node) (CodecConfig, error) {
	var cc CodecConfig
	if v, ok := scalar(n, "codec_config_id"); ok {
		id, err := strconv.ParseUint(v, 0, 32)
		if err != nil {
			return cc, fmt.Errorf("codec_config_id %q: %w", v, err)
		}
		cc.ID = uint32(id)
	}

	inner := children(n, "codec_config")
	if len(inner) == 0 {
		return cc, nil
	}
	if v, ok := scalar(inner[0], "codec_id"); ok {
		cc.CodecID = parseCodecID(v)
	}
	return cc, nil
}

func parseMixPresentation(n *ast.Node) (MixPresentation, error) {
	var mp MixPresentation
	if v, ok := scalar(n, "mix_presentation_id"); ok {
		id, err := strconv.ParseUint(v, 0, 32)
		if err != nil {
			return mp, fmt.Errorf("mix_presentation_id %q: %w", v, err)
		}
		mp.ID = uint32(id)
	}

	for _, sm := range children(n, "sub_mixes") {
		var subMix SubMix
		for _, l := range children(sm, "layouts") {
			subMix.Layouts = append(subMix.Layouts, parseLayout(l))
		}
		mp.SubMixes = append(mp.SubMixes, subMix)
	}
	return mp, nil
}

func parseLayout(n *ast.Node) Layout {
	layout := Layout{Type: LayoutTypeUnknown, SoundSystem: SoundSystemUnknown}

	loudness := children(n, "loudness_layout")
	if len(loudness) == 0 {
		return layout
	}
	if v, ok := scalar(loudness[0], "layout_type"); ok {
		layout.Type = parseLayoutType(v)
	}
	if ss := children(loudness[0], "ss_layout"); len(ss) > 0 {
		if v, ok := scalar(ss[0], "sound_system"); ok {
			layout.SoundSystem = parseSoundSystem(v)
		}
	}
	// sound_system is an enum with no explicit default, so an unset field
	// reads as its first value.
	if layout.Type == LayoutTypeLoudspeakersSSConvention && layout.SoundSystem == SoundSystemUnknown {
		layout.SoundSystem = SoundSystemA_0_2_0
	}
	return layout
}

func parseCodecID(v string) CodecID {
	if n, err := strconv.ParseUint(v, 0, 32); err == nil {
		if id, ok := codecIDsByValue[n]; ok {
			return id
		}
	}
	return CodecID(v)
}

func parseLayoutType(v string) LayoutType {
	if t, ok := layoutTypeNames[v]; ok {
		return t
	}
	if n, err := strconv.Atoi(v); err == nil && n >= int(LayoutTypeReserved0) && n <= int(LayoutTypeBinaural) {
		return LayoutType(n)
	}
	return LayoutTypeUnknown
}

func parseSoundSystem(v string) SoundSystem {
	if s, ok := soundSystemNames[v]; ok {
		return s
	}
	// Numeric values outside the named range stay numeric so the
	// expander can report them; they never map to a decoder token.
	if n, err := strconv.Atoi(v); err == nil && n >= 0 {
		return SoundSystem(n)
	}
	return SoundSystemUnknown
}

func parseBool(v string) bool {
	switch v {
	case "true", "True", "t", "1":
		return true
	}
	return false
}

// children returns the message-valued fields of n named name. A list field
// such as `layouts: [ {...}, {...} ]` contributes one node per element.
func children(n *ast.Node, name string) []*ast.Node {
	var out []*ast.Node
	for _, c := range n.Children {
		if c.Name != name {
			continue
		}
		if !c.ChildrenAsList {
			out = append(out, c)
			continue
		}
		for _, elem := range c.Children {
			if !elem.IsCommentOnly() {
				out = append(out, elem)
			}
		}
	}
	return out
}

// scalar returns the first scalar value of field name, unquoted
func scalar(n *ast.Node, name string) (string, bool) {
	for _, c := range n.Children {
		if c.Name != name || len(c.Values) == 0 {
			continue
		}
		// Adjacent string literals concatenate, as in protobuf text format.
		if isQuoted(c.Values[0].Value) {
			var sb strings.Builder
			for _, v := range c.Values {
				sb.WriteString(unquote(v.Value))
			}
			return sb.String(), true
		}
		return c.Values[0].Value, true
	}
	return "", false
}

func stringField(n *ast.Node, name string) string {
	v, _ := scalar(n, name)
	return v
}

func isQuoted(s string) bool {
	return len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0]
}

func unquote(s string) string {
	if !isQuoted(s) {
		return s
	}
	if s[0] == '\'' {
		s = `"` + strings.ReplaceAll(s[1:len(s)-1], `"`, `\"`) + `"`
	}
	if u, err := strconv.Unquote(s); err == nil {
		return u
	}
	return s[1 : len(s)-1]
}
