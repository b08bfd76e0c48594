// Package popover holds release metadata. The completion popup is in package
// popup.
package popover

import (
	_ "embed"
	"regexp"
	"strings"
)

//go:embed VERSION
var release string

// semver 2.0.0: major.minor.patch, optional -prerelease and +build.
var releasePattern = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?(?:\+[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?$`)

// Version is the release this build was cut from, e.g. "0.1.0".
func Version() string {
	return strings.TrimSpace(release)
}

// Tag is Version as it appears on the git tag, e.g. "v0.1.0".
func Tag() string { return "v" + Version() }

// IsSemver reports whether v is usable as a release number. A leading "v"
// is rejected; tags are derived, not stored.
func IsSemver(v string) bool {
	return releasePattern.MatchString(strings.TrimSpace(v))
}
