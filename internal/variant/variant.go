// Package variant implements runtime feature-availability detection: a
// version check against the test runner produces a variant identifier plus
// a map of which code forms the renderer may emit.
package variant

import (
	"fmt"
	"strconv"
	"strings"
)

// Feature names the renderer consults before emitting a version-gated code
// form.
type Feature string

const (
	FeatureAriaSnapshots Feature = "ariaSnapshots"
	FeatureClockAPI      Feature = "clockApi"
	FeatureTopLevelAwait Feature = "topLevelAwait"
	FeaturePromiseAny    Feature = "promiseAny"
)

// Variant is a runner-version-derived feature-availability descriptor.
type Variant struct {
	ID       string
	Version  string
	Features map[Feature]bool
}

// Supports reports whether f is available in v. An unknown feature name is
// treated as unsupported rather than panicking, since the renderer only
// ever probes the four Feature constants above.
func (v Variant) Supports(f Feature) bool {
	if v.Features == nil {
		return false
	}
	return v.Features[f]
}

// minVersions is the lowest runner version (major, minor) at which each
// feature became available.
var minVersions = map[Feature][2]int{
	FeatureAriaSnapshots: {1, 30},
	FeatureClockAPI:      {1, 45},
	FeatureTopLevelAwait: {1, 0},
	FeaturePromiseAny:    {1, 0},
}

// Detect builds a Variant from a runner version string ("1.42.0"-style).
// An unparseable version yields a Variant with every feature unsupported
// rather than an error, so the renderer uses its non-gated forms.
func Detect(runnerVersion string) Variant {
	major, minor, ok := parseVersion(runnerVersion)
	v := Variant{
		ID:      fmt.Sprintf("runner-%s", runnerVersion),
		Version: runnerVersion,
		Features: map[Feature]bool{
			FeatureAriaSnapshots: false,
			FeatureClockAPI:      false,
			FeatureTopLevelAwait: false,
			FeaturePromiseAny:    false,
		},
	}
	if !ok {
		return v
	}
	for feat, min := range minVersions {
		if major > min[0] || (major == min[0] && minor >= min[1]) {
			v.Features[feat] = true
		}
	}
	return v
}

// Latest returns the variant with every feature enabled, used as the
// default when no runner version is known.
func Latest() Variant {
	return Variant{
		ID:      "latest",
		Version: "latest",
		Features: map[Feature]bool{
			FeatureAriaSnapshots: true,
			FeatureClockAPI:      true,
			FeatureTopLevelAwait: true,
			FeaturePromiseAny:    true,
		},
	}
}

func parseVersion(s string) (major, minor int, ok bool) {
	parts := strings.SplitN(strings.TrimPrefix(s, "v"), ".", 3)
	if len(parts) < 2 {
		return 0, 0, false
	}
	maj, err1 := strconv.Atoi(parts[0])
	min, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return maj, min, true
}
