package version

import "fmt"

// Build metadata, set with -ldflags "-X crypto-price/internal/version.Version=...".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// String formats the build metadata for display.
func String() string {
	return fmt.Sprintf("cryptoprice %s\ncommit: %s\nbuilt: %s", Version, Commit, BuildDate)
}
