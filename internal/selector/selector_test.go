package selector

import (
	"strings"
	"testing"

	"github.com/journeyc/compiler/internal/ir"
)

func TestSelectBestLocatorPrefersRoleOverText(t *testing.T) {
	p := Default()
	best, ok := p.SelectBestLocator([]ir.Locator{
		{Strategy: ir.StrategyText, Value: "Sign In"},
		{Strategy: ir.StrategyRole, Value: "button", Options: &ir.LocatorOptions{Name: "Sign In"}},
		{Strategy: ir.StrategyCSS, Value: "#submit"},
	})
	if !ok {
		t.Fatal("expected a candidate")
	}
	if best.Strategy != ir.StrategyRole {
		t.Fatalf("expected role to win, got %v", best.Strategy)
	}
}

func TestSelectBestLocatorFiltersForbidden(t *testing.T) {
	p := Default()
	best, ok := p.SelectBestLocator([]ir.Locator{
		{Strategy: ir.StrategyCSS, Value: "div:nth-child(3)"},
		{Strategy: ir.StrategyCSS, Value: "#container12345"},
	})
	if ok {
		t.Fatalf("expected no allowed candidate, got %+v", best)
	}
}

func TestSelectBestLocatorEmptyCandidates(t *testing.T) {
	p := Default()
	if _, ok := p.SelectBestLocator(nil); ok {
		t.Fatal("expected false for no candidates")
	}
}

func TestValidateLocatorFlagsXPathLookingCSS(t *testing.T) {
	warnings := ValidateLocator(ir.Locator{Strategy: ir.StrategyCSS, Value: "//div[@id='x']"})
	if len(warnings) == 0 {
		t.Fatal("expected a warning for xpath-looking css value")
	}
}

func TestValidateLocatorNoWarningsForRole(t *testing.T) {
	warnings := ValidateLocator(ir.Locator{Strategy: ir.StrategyRole, Value: "button", Options: &ir.LocatorOptions{Name: "Sign In"}})
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
}

func TestToPlaywrightLocatorRoleWithOptions(t *testing.T) {
	out := ToPlaywrightLocator(ir.Locator{
		Strategy: ir.StrategyRole, Value: "button",
		Options: &ir.LocatorOptions{Name: "Sign In", Exact: true},
	})
	want := `page.getByRole("button", { name: "Sign In", exact: true })`
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestToPlaywrightLocatorHeadingLevel(t *testing.T) {
	out := ToPlaywrightLocator(ir.Locator{
		Strategy: ir.StrategyRole, Value: "heading",
		Options: &ir.LocatorOptions{Name: "Settings", Level: 2},
	})
	want := `page.getByRole("heading", { name: "Settings", level: 2 })`
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestToPlaywrightLocatorEscapesQuotes(t *testing.T) {
	out := ToPlaywrightLocator(ir.Locator{Strategy: ir.StrategyText, Value: `Say "hi"`})
	if !strings.Contains(out, `\"hi\"`) {
		t.Fatalf("expected escaped quotes in %q", out)
	}
}

func TestToPlaywrightLocatorTestID(t *testing.T) {
	out := ToPlaywrightLocator(ir.Locator{Strategy: ir.StrategyTestID, Value: "submit-btn"})
	if out != `page.getByTestId("submit-btn")` {
		t.Fatalf("unexpected output: %q", out)
	}
}
