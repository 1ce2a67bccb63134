// ABOUTME: Version information for soundexample
// ABOUTME: Single source of truth for product name and version
package version

const (
	// Version is the current release
	Version = "0.1.0"

	// Product is the binary name
	Product = "soundexample"

	// Manufacturer is the project owner
	Manufacturer = "justinhj"
)
