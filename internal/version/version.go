// Package version carries build metadata stamped in with -ldflags.
package version

import "fmt"

var (
	// Version is the release tag of the hinge binary
	Version = "dev"
	// GitSHA is the commit the binary was built from
	GitSHA = "unknown"
	// BuildTime is when the binary was built
	BuildTime = "unknown"
)

// String renders the build metadata on one line for -version.
func String() string {
	return fmt.Sprintf("hinge %s (commit %s, built %s)", Version, GitSHA, BuildTime)
}
