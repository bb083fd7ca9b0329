// Package version exposes build metadata stamped at link time, served by the
// /version endpoint.
package version

import "runtime"

// Overridden by the release build:
//
//	-ldflags "-X .../internal/version.Version=v1.2.3 -X .../internal/version.Commit=abc1234 -X .../internal/version.Date=2026-01-02T15:04:05Z"
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// BuildInfo is the JSON payload of the /version endpoint.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
}

func Get() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
	}
}
