package catalog

import (
	"testing"

	"github.com/journeyc/compiler/internal/ir"
)

func TestClickOnWinsOverClickBase(t *testing.T) {
	c := Default()
	result, ok := c.MatchPattern(`Clicks on the "Sign In" button.`)
	if !ok {
		t.Fatal("expected a match")
	}
	if result.Pattern.Name != "click-on-extended" {
		t.Fatalf("expected extended pattern to win, got %q", result.Pattern.Name)
	}
	click, ok := result.Primitive.(ir.Click)
	if !ok {
		t.Fatalf("expected ir.Click, got %T", result.Primitive)
	}
	if click.Locator.Strategy != ir.StrategyRole || click.Locator.Value != "button" {
		t.Fatalf("unexpected locator: %+v", click.Locator)
	}
	if click.Locator.Options == nil || click.Locator.Options.Name != "Sign In" {
		t.Fatalf("unexpected locator options: %+v", click.Locator.Options)
	}
}

func TestPlainClickFallsThrough(t *testing.T) {
	c := Default()
	result, ok := c.MatchPattern(`Clicks the submit button.`)
	if !ok {
		t.Fatal("expected a match")
	}
	if result.Pattern.Name != "click-base" {
		t.Fatalf("expected base click pattern, got %q", result.Pattern.Name)
	}
}

func TestFillWithExtendedWinsOverFillBase(t *testing.T) {
	c := Default()
	result, ok := c.MatchPattern(`Fills the email field with "user@example.com".`)
	if !ok {
		t.Fatal("expected a match")
	}
	if result.Pattern.Name != "fill-with-extended" {
		t.Fatalf("expected fill-with-extended, got %q", result.Pattern.Name)
	}
	fill, ok := result.Primitive.(ir.Fill)
	if !ok {
		t.Fatalf("expected ir.Fill, got %T", result.Primitive)
	}
	if fill.Value != ir.Literal("user@example.com") {
		t.Fatalf("unexpected fill value: %+v", fill.Value)
	}
}

func TestStructuredActionPrefixWinsFirst(t *testing.T) {
	c := Default()
	result, ok := c.MatchPattern(`**Navigate**: /dashboard`)
	if !ok {
		t.Fatal("expected a match")
	}
	if result.Pattern.Name != "structured-action" {
		t.Fatalf("expected structured-action to win, got %q", result.Pattern.Name)
	}
	goTo, ok := result.Primitive.(ir.Goto)
	if !ok || goTo.URL != "/dashboard" {
		t.Fatalf("unexpected primitive: %+v", result.Primitive)
	}
}

func TestGotoPattern(t *testing.T) {
	c := Default()
	result, ok := c.MatchPattern(`Navigate to /login`)
	if !ok {
		t.Fatal("expected a match")
	}
	goTo, ok := result.Primitive.(ir.Goto)
	if !ok {
		t.Fatalf("expected ir.Goto, got %T", result.Primitive)
	}
	if goTo.URL != "/login" || !goTo.WaitForLoad {
		t.Fatalf("unexpected goto: %+v", goTo)
	}
}

func TestExpectVisibleFromSeesText(t *testing.T) {
	c := Default()
	result, ok := c.MatchPattern(`User sees "Welcome"`)
	if !ok {
		t.Fatal("expected a match")
	}
	// A bare `sees "X"` with no locator and no "text" keyword asserts
	// visibility of the string itself, not the text content of some
	// other located element.
	if result.Pattern.Name != "expect-visible" {
		t.Fatalf("expected expect-visible, got %q", result.Pattern.Name)
	}
	ev, ok := result.Primitive.(ir.ExpectVisible)
	if !ok || ev.Locator.Value != "Welcome" {
		t.Fatalf("unexpected primitive: %+v", result.Primitive)
	}
}

func TestExpectTextRequiresTextKeyword(t *testing.T) {
	c := Default()
	result, ok := c.MatchPattern(`Sees the text "Total: 3 items"`)
	if !ok {
		t.Fatal("expected a match")
	}
	if result.Pattern.Name != "expect-text" {
		t.Fatalf("expected expect-text, got %q", result.Pattern.Name)
	}
	et, ok := result.Primitive.(ir.ExpectText)
	if !ok || et.Value != "Total: 3 items" {
		t.Fatalf("unexpected primitive: %+v", result.Primitive)
	}
}

func TestNoMatchReturnsFalse(t *testing.T) {
	c := Default()
	_, ok := c.MatchPattern(`Do the thing`)
	if ok {
		t.Fatal("expected no match for an ambiguous step")
	}
}

func TestWaitForTimeoutConvertsSeconds(t *testing.T) {
	c := Default()
	result, ok := c.MatchPattern(`Waits 2 seconds`)
	if !ok {
		t.Fatal("expected a match")
	}
	wft, ok := result.Primitive.(ir.WaitForTimeout)
	if !ok {
		t.Fatalf("expected ir.WaitForTimeout, got %T", result.Primitive)
	}
	if wft.MS != 2000 {
		t.Fatalf("expected 2000ms, got %d", wft.MS)
	}
}

func TestLoginAsExtractsActor(t *testing.T) {
	c := Default()
	result, ok := c.MatchPattern(`Logs in as an admin user`)
	if !ok {
		t.Fatal("expected a match")
	}
	cm, ok := result.Primitive.(ir.CallModule)
	if !ok || cm.Module != "auth" || cm.Method != "loginAs" {
		t.Fatalf("unexpected primitive: %+v", result.Primitive)
	}
}
