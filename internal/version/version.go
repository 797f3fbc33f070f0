// Package version holds build metadata injected at link time:
//
//	go build -ldflags "-X git.home.luguber.info/inful/mdhtml/internal/version.Version=v0.3.0"
package version

import "fmt"

// Version is the release tag, or "unknown" for local builds.
var Version = "unknown"

// Build metadata, also set via ldflags.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version line printed by --version and `mdhtml info`.
func String() string {
	return fmt.Sprintf("mdhtml %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
