// Package version reports the build version. Release builds set it with
//
//	go build -ldflags "-X github.com/ramonehamilton/pokeparty/internal/version.Version=v0.3.0"
package version

// Version is "dev" unless overridden at link time.
var Version = "dev"

// GetVersion returns the current application version.
func GetVersion() string {
	return Version
}
