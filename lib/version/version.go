package version

import "regexp"

// Pre-built binaries will have version set correctly during build time.
var Version = "v0.3.0-HEAD"

var semver = regexp.MustCompile(`[0-9]+\.[0-9]+\.[0-9]+`)

// OnlyNumbers strips prefixes and build suffixes, e.g. v0.3.0-HEAD becomes 0.3.0.
func OnlyNumbers() string {
	return semver.FindString(Version)
}
