// Package version provides centralized version management for QueryDesk.
// It supports semantic versioning and build-time injection.
package version

import (
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"
)

// Build information that can be set at compile time via -ldflags
var (
	// Version is the semantic version of the application
	Version = "0.1.0"

	// GitCommit is the git commit hash when the binary was built
	GitCommit = "unknown"

	// BuildDate is the date when the binary was built
	BuildDate = "unknown"
)

// Info represents comprehensive version information
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// GetVersion returns the current version string
func GetVersion() string {
	return Version
}

// GetInfo returns comprehensive version information
func GetInfo() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// Validate checks that the compiled-in version string parses as semver.
func Validate() error {
	if _, err := semver.NewVersion(Version); err != nil {
		return fmt.Errorf("invalid version %q: %w", Version, err)
	}
	return nil
}

// IsPrerelease reports whether the current version carries a prerelease tag.
func IsPrerelease() bool {
	v, err := semver.NewVersion(Version)
	if err != nil {
		return false
	}
	return v.Prerelease() != ""
}

// String returns a human-readable version banner.
func (i Info) String() string {
	return fmt.Sprintf("QueryDesk v%s (%s, built %s, %s, %s)",
		i.Version, i.GitCommit, i.BuildDate, i.GoVersion, i.Platform)
}
