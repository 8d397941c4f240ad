// Package buildinfo holds version metadata stamped in at link time.
package buildinfo

// Set with -ldflags "-X github.com/cleared-dev/cashflow/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
