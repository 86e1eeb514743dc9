// Package version holds the relnotes build information and reads the project
// version declared in a CMake build file.
// It has no dependencies on other internal packages and can be imported from anywhere.
package version

import "fmt"

var (
	// Version information - set via ldflags during build
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// IsDevBuild returns true if running a development build (not a release).
func IsDevBuild() bool {
	return Version == "dev"
}

// String returns a one-line summary of the build for --version output.
// Development builds have no build date, so only the commit is shown.
func String() string {
	if IsDevBuild() {
		return fmt.Sprintf("%s (development build, commit %s)", Version, Commit)
	}
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate)
}
