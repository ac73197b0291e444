// Package version records build metadata injected at link time.
package version

import "fmt"

// Set via -ldflags "-X github.com/cobra91/better-ccusage/internal/version.Version=..."
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info returns a one-line human-readable version string.
func Info() string {
	return fmt.Sprintf("better-ccusage %s (commit %s, built %s)", Version, Commit, Date)
}
