// ABOUTME: Version information for the conformance tools
// ABOUTME: Version can be overridden at link time with -ldflags -X
package version

import "fmt"

// Version is the release of the conformance tools
var Version = "0.3.0"

const (
	Product      = "iamf-conformance"
	Manufacturer = "IAMF Tools"
)

// String returns the banner printed by --version
func String() string {
	return fmt.Sprintf("%s %s (%s)", Product, Version, Manufacturer)
}
