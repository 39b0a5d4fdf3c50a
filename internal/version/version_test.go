// ABOUTME: Tests for version constants
// ABOUTME: Ensures version information is properly defined
package version

import (
	"strings"
	"testing"
)

func TestVersionDefined(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"Version", Version},
		{"Product", Product},
		{"Manufacturer", Manufacturer},
	}

	for _, tt := range tests {
		if tt.value == "" {
			t.Errorf("%s should not be empty", tt.name)
		}
		if len(tt.value) > 100 {
			t.Errorf("%s is unreasonably long", tt.name)
		}
		for _, placeholder := range []string{"TODO", "FIXME", "XXX", "placeholder"} {
			if tt.value == placeholder {
				t.Errorf("%s should not be placeholder value: %s", tt.name, placeholder)
			}
		}
	}
}

func TestString(t *testing.T) {
	s := String()
	if !strings.HasPrefix(s, Product+" "+Version) {
		t.Errorf("expected banner to start with product and version, got %q", s)
	}
	if !strings.Contains(s, Manufacturer) {
		t.Errorf("expected banner to name the manufacturer, got %q", s)
	}
}
