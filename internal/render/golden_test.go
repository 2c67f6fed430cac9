package render

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/journeyc/compiler/internal/ir"
)

// Golden-file coverage for the two code-generation entry points. Unlike the
// substring checks in render_test.go, these pin the full byte-for-byte
// output so an unintended template drift shows up as a diff against
// testdata/golden rather than silently passing a `strings.Contains`.
//
// Regenerate with: go test ./internal/render -update

func TestGenerateTestGoldenFull(t *testing.T) {
	res, err := GenerateTest(simpleJourney(), Options{Strategy: StrategyFull})
	if err != nil {
		t.Fatalf("GenerateTest: %v", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "generate_test_full", []byte(res.Code))
}

func TestGenerateModuleGoldenWithMethod(t *testing.T) {
	j := simpleJourney()
	j.Steps[0].Actions = append(j.Steps[0].Actions, ir.CallModule{Module: "auth", Method: "loginAs"})

	res, err := GenerateModule(j, Options{Strategy: StrategyFull})
	if err != nil {
		t.Fatalf("GenerateModule: %v", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "generate_module_with_method", []byte(res.Code))
}
