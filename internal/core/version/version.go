// Package version reports the build stamped into the binary
package version

import "runtime"

// BuildInfo holds version information about the service build
type BuildInfo struct {
	Service   string `json:"service"    example:"wildwatch-api"`
	Version   string `json:"version"    example:"v0.3.0"`
	Commit    string `json:"commit"     example:"9f2c1ab"`
	Date      string `json:"date"       example:"2025-06-01"`
	GoVersion string `json:"go_version" example:"go1.25.0"`
}

// Set via -ldflags "-X 'wildwatch/internal/core/version.version=v0.3.0'
// -X 'wildwatch/internal/core/version.commit=9f2c1ab' -X 'wildwatch/internal/core/version.date=2025-06-01'"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Info returns the build information for service
func Info(service string) BuildInfo {
	return BuildInfo{
		Service:   service,
		Version:   version,
		Commit:    commit,
		Date:      date,
		GoVersion: runtime.Version(),
	}
}
