// ABOUTME: Version information for wavplay
// ABOUTME: Reported by the version subcommand
package version

const (
	// Version is the release version
	Version = "0.3.0"

	// Product is the program name
	Product = "wavplay"

	// Manufacturer identifies the maintainers
	Manufacturer = "gtRZync"
)
