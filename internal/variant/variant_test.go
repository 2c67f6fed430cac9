package variant

import "testing"

func TestDetectOldVersionDisablesNewerFeatures(t *testing.T) {
	v := Detect("1.20.0")
	if v.Supports(FeatureClockAPI) {
		t.Fatal("expected clock API unsupported at 1.20")
	}
	if !v.Supports(FeatureTopLevelAwait) {
		t.Fatal("expected top-level await supported since 1.0")
	}
}

func TestDetectNewVersionEnablesEverything(t *testing.T) {
	v := Detect("1.50.3")
	for _, f := range []Feature{FeatureAriaSnapshots, FeatureClockAPI, FeatureTopLevelAwait, FeaturePromiseAny} {
		if !v.Supports(f) {
			t.Fatalf("expected %s supported at 1.50", f)
		}
	}
}

func TestDetectUnparseableVersionDisablesEverything(t *testing.T) {
	v := Detect("not-a-version")
	if v.Supports(FeatureClockAPI) || v.Supports(FeatureTopLevelAwait) {
		t.Fatal("expected every feature unsupported for an unparseable version")
	}
}

func TestLatestEnablesEverything(t *testing.T) {
	v := Latest()
	if !v.Supports(FeatureClockAPI) || !v.Supports(FeatureAriaSnapshots) {
		t.Fatal("expected Latest to support every feature")
	}
}

func TestSupportsZeroValueIsFalse(t *testing.T) {
	var v Variant
	if v.Supports(FeatureClockAPI) {
		t.Fatal("expected zero-value Variant to support nothing")
	}
}

func TestDetectBoundaryVersionExact(t *testing.T) {
	v := Detect("1.30.0")
	if !v.Supports(FeatureAriaSnapshots) {
		t.Fatal("expected aria snapshots supported exactly at the minimum version 1.30")
	}
}
