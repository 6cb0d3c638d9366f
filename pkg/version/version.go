// Package version holds build identification, overridden at link time via
// -ldflags "-X".
package version

var (
	Version   = "dev"
	GitCommit = "unknown"
)
