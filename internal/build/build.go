// Package build holds values stamped into the binary at link time.
package build

// Version, Commit and Date are set with -ldflags "-X".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info returns a one-line description of the build.
func Info() string {
	return Version + " (commit " + Commit + ", built " + Date + ")"
}
