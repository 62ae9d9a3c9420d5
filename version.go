package steamworkshop

import (
	"strconv"

	"github.com/Masterminds/semver/v3"
)

// Version is the current SDK version.
//
// This version follows semantic versioning (https://semver.org/).
// The version is incremented according to the following rules:
//   - MAJOR: Breaking changes to the public API
//   - MINOR: New features, backwards compatible
//   - PATCH: Bug fixes, backwards compatible
const Version = "0.3.0"

// DefaultUserAgent is sent with every request unless [WithUserAgent] is used.
const DefaultUserAgent = "steamworkshop-go/v" + Version

// IsCompatible reports whether Steam serving e at the given method version
// is compatible with this SDK.
//
// Steam method versions are plain integers ("1", "2"). They are read as
// semantic versions, so "2" becomes 2.0.0 and is checked against the
// endpoint's [Endpoint.VersionRange].
//
// Example:
//
//	steamworkshop.IsCompatible(steamworkshop.EndpointQueryFiles, "1") // true
//	steamworkshop.IsCompatible(steamworkshop.EndpointQueryFiles, "2") // false
func IsCompatible(e Endpoint, version string) bool {
	if version == "" {
		return false
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return false
	}
	c, err := semver.NewConstraint(e.VersionRange)
	if err != nil {
		return false
	}
	return c.Check(v)
}

func isCompatibleInt(e Endpoint, version int) bool {
	return IsCompatible(e, strconv.Itoa(version))
}
