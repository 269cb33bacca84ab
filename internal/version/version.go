// Package version holds build metadata injected via ldflags:
//
//	go build -ldflags "-X github.com/cmarsiglia/habitai/internal/version.Version=1.0.0"
package version

import "fmt"

//nolint:revive // Set via ldflags at build time.
var (
	Version = "1.0.0-dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String formats the metadata as "1.0.0 (commit abc123, built 2024-01-01)".
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}
