// Package version holds build metadata, set with -ldflags at release time.
package version

import "strings"

var (
	Version   = "0.3.0.dev1"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Environment is "development" for dev builds and "production" otherwise.
func Environment() string {
	if strings.Contains(Version, "dev") {
		return "development"
	}
	return "production"
}
