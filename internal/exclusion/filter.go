// ABOUTME: Test case deny-list
// ABOUTME: Marks cases that are intentionally not decoded
package exclusion

import (
	"log"

	"github.com/iamf-tools/iamf-conformance/internal/metadata"
)

// Rule excludes one layout of one mix presentation of a test vector
type Rule struct {
	FileNamePrefix    string `yaml:"file_name_prefix"`
	MixPresentationID uint32 `yaml:"mix_presentation_id"`
	LayoutIndex       int    `yaml:"layout_index"`
	Reason            string `yaml:"reason"`
}

// Matches reports whether the rule applies to tc
func (r Rule) Matches(tc metadata.TestCase) bool {
	return r.FileNamePrefix == tc.TestPrefix &&
		r.MixPresentationID == tc.MixPresentationID &&
		r.LayoutIndex == tc.LayoutIndex
}

// Defaults returns the rules for vectors known to be outside what the
// reference decoder supports.
func Defaults() []Rule {
	return []Rule{
		{
			FileNamePrefix:    "test_000710",
			MixPresentationID: 42,
			LayoutIndex:       0,
			Reason:            "Mix surpasses base-enhanced profile limits",
		},
		{
			FileNamePrefix:    "test_000711",
			MixPresentationID: 42,
			LayoutIndex:       0,
			Reason:            "Mix surpasses base-enhanced profile limits",
		},
		{
			FileNamePrefix:    "test_000126",
			MixPresentationID: 42,
			LayoutIndex:       1,
			Reason:            "Extension layouts cannot be decoded.",
		},
	}
}

// Filter holds an immutable, ordered list of rules
type Filter struct {
	rules []Rule
}

// NewFilter copies rules into a new filter
func NewFilter(rules []Rule) *Filter {
	return &Filter{rules: append([]Rule(nil), rules...)}
}

// Rules returns a copy of the filter's rules
func (f *Filter) Rules() []Rule {
	if f == nil {
		return nil
	}
	return append([]Rule(nil), f.rules...)
}

// Match returns the first rule that applies to tc
func (f *Filter) Match(tc metadata.TestCase) (Rule, bool) {
	if f == nil {
		return Rule{}, false
	}
	for _, r := range f.rules {
		if r.Matches(tc) {
			return r, true
		}
	}
	return Rule{}, false
}

// Reason returns the exclusion reason for tc and logs which rule matched
func (f *Filter) Reason(tc metadata.TestCase) (string, bool) {
	r, ok := f.Match(tc)
	if !ok {
		return "", false
	}
	log.Printf("Skipping %s layout %d for mix ID %d because (%s)",
		tc.TestPrefix, tc.LayoutIndex, tc.MixPresentationID, r.Reason)
	return r.Reason, true
}
