// Package version reports the build version of the binary.
package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// Normalize ensures version string has "v" prefix for semver compatibility.
func Normalize(version string) string {
	if version == "" {
		return ""
	}
	version = strings.TrimSpace(version)
	if !strings.HasPrefix(version, "v") {
		return "v" + version
	}
	return version
}

// Current returns the normalized build version, or "dev" for local builds.
func Current() string {
	if !IsRelease(Version) {
		return "dev"
	}
	return Normalize(Version)
}

// IsRelease reports whether v is a valid semantic version.
func IsRelease(v string) bool {
	return semver.IsValid(Normalize(v))
}
