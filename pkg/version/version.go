// Package version exposes the build version injected at link time.
package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Set via -ldflags "-X github.com/rshade/ecoshare/pkg/version.version=..." at build time.
//
//nolint:gochecknoglobals // Populated by the linker.
var (
	version   = "0.0.0-dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// GetVersion returns the build version without a leading "v".
func GetVersion() string {
	return strings.TrimPrefix(version, "v")
}

// GetGitCommit returns the commit the binary was built from.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return buildDate
}

// IsDevelopment reports whether the version is unparseable, a prerelease
// or 0.0.0.
func IsDevelopment() bool {
	return isDevelopment(GetVersion())
}

func isDevelopment(raw string) bool {
	v, err := semver.NewVersion(raw)
	if err != nil {
		return true
	}
	return v.Prerelease() != "" || v.Equal(semver.MustParse("0.0.0"))
}
