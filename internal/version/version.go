// Package version holds build metadata set through -ldflags.
package version

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String formats the build metadata for the version subcommand.
func String() string {
	return Version + " (" + Commit + ", built " + Date + ")"
}
