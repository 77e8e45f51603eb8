// Package cmd holds the build metadata of the lognerd binary.
package cmd

import "runtime/debug"

// Set via -ldflags "-X github.com/thoreinstein/lognerd/cmd.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// ResolvedVersion returns Version, or the module version recorded by
// `go install` when no version was injected at link time.
func ResolvedVersion() string {
	if Version != "dev" {
		return Version
	}
	info, ok := readBuildInfo()
	if !ok || info.Main.Version == "" || info.Main.Version == "(devel)" {
		return Version
	}
	return info.Main.Version
}
