package mapper

import (
	"path/filepath"
	"testing"

	"github.com/journeyc/compiler/internal/catalog"
	"github.com/journeyc/compiler/internal/fuzzy"
	"github.com/journeyc/compiler/internal/glossary"
	"github.com/journeyc/compiler/internal/ir"
	"github.com/journeyc/compiler/internal/llkb"
)

func baseCtx() Context {
	return Context{
		Glossary: glossary.Default(),
		Catalog:  catalog.Default(),
	}
}

func TestMapStepClickThroughCatalog(t *testing.T) {
	r := MapStep(`Click "Sign In" button`, baseCtx())
	click, ok := r.Primitive.(ir.Click)
	if !ok {
		t.Fatalf("expected ir.Click, got %T", r.Primitive)
	}
	if r.MatchSource != SourcePattern {
		t.Fatalf("expected SourcePattern, got %v", r.MatchSource)
	}
	if click.Locator.Strategy != ir.StrategyRole || click.Locator.Options.Name != "Sign In" {
		t.Fatalf("unexpected locator: %+v", click.Locator)
	}
}

func TestMapStepSeesQuotedMapsToExpectVisible(t *testing.T) {
	r := MapStep(`User sees "Welcome"`, baseCtx())
	ev, ok := r.Primitive.(ir.ExpectVisible)
	if !ok {
		t.Fatalf("expected ir.ExpectVisible, got %T", r.Primitive)
	}
	if !r.IsAssertion {
		t.Fatal("expected IsAssertion true")
	}
	if ev.Locator.Value != "Welcome" {
		t.Fatalf("unexpected locator: %+v", ev.Locator)
	}
}

func TestMapStepGlossarySynonymNormalizesBeforeCatalog(t *testing.T) {
	r := MapStep(`Tap the "Continue" button`, baseCtx())
	if _, ok := r.Primitive.(ir.Click); !ok {
		t.Fatalf("expected ir.Click after tap->click normalization, got %T", r.Primitive)
	}
}

func TestMapStepUnmatchedReturnsBlocked(t *testing.T) {
	r := MapStep("Do the thing", baseCtx())
	blocked, ok := r.Primitive.(ir.Blocked)
	if !ok {
		t.Fatalf("expected ir.Blocked, got %T", r.Primitive)
	}
	if r.MatchSource != SourceNone {
		t.Fatalf("expected SourceNone, got %v", r.MatchSource)
	}
	if blocked.SourceText == "" {
		t.Fatal("expected SourceText to be preserved")
	}
}

func TestMapStepHintsOverrideCatalogLocator(t *testing.T) {
	r := MapStep(`Click the button (testid=submit-btn)`, baseCtx())
	click, ok := r.Primitive.(ir.Click)
	if !ok {
		t.Fatalf("expected ir.Click, got %T", r.Primitive)
	}
	if click.Locator.Strategy != ir.StrategyTestID || click.Locator.Value != "submit-btn" {
		t.Fatalf("expected hint-driven testid locator, got %+v", click.Locator)
	}
}

func TestMapStepFallsBackToHintConstructionWhenUnmatched(t *testing.T) {
	ctx := baseCtx()
	ctx.Catalog = catalog.New(nil)
	r := MapStep(`Frobnicate the widget (testid=widget-1)`, ctx)
	if r.MatchSource != SourceHints {
		t.Fatalf("expected SourceHints, got %v", r.MatchSource)
	}
	click, ok := r.Primitive.(ir.Click)
	if !ok || click.Locator.Value != "widget-1" {
		t.Fatalf("unexpected primitive: %+v", r.Primitive)
	}
}

func TestMapStepLLKBStageFiresBeforeFuzzy(t *testing.T) {
	dir := t.TempDir()
	store := llkb.Open(filepath.Join(dir, "llkb.json"))
	seeded := ir.Click{Locator: ir.Locator{Strategy: ir.StrategyTestID, Value: "gizmo-frobnicator"}}
	for i := 0; i < 3; i++ {
		journeyID := "JRN-000" + string(rune('1'+i))
		if _, err := store.RecordPatternSuccess("Frobnicate the gizmo", "frobnicate the gizmo", seeded, journeyID); err != nil {
			t.Fatalf("RecordPatternSuccess: %v", err)
		}
	}

	ctx := baseCtx()
	ctx.Catalog = catalog.New(nil)
	ctx.LLKB = store
	ctx.Fuzzy = fuzzy.Default()
	ctx.MinLLKBConfidence = 0.1

	r := MapStep("Frobnicate the gizmo", ctx)
	if r.MatchSource != SourceLLKB {
		t.Fatalf("expected SourceLLKB, got %v (primitive %+v)", r.MatchSource, r.Primitive)
	}
	click, ok := r.Primitive.(ir.Click)
	if !ok {
		t.Fatalf("expected ir.Click reconstructed from LLKB record, got %T", r.Primitive)
	}
	if click != seeded {
		t.Fatalf("expected the exact learned primitive back, got %+v want %+v", click, seeded)
	}
}

func TestMapStepLLKBHitReturnsSeededPrimitive(t *testing.T) {
	dir := t.TempDir()
	store := llkb.Open(filepath.Join(dir, "llkb.json"))
	seeded := ir.Click{Locator: ir.Locator{Strategy: ir.StrategyLabel, Value: "Accept"}}
	for i := 0; i < 5; i++ {
		journeyID := "JRN-000" + string(rune('1'+i))
		if _, err := store.RecordPatternSuccess("User accepts terms", "user accepts terms", seeded, journeyID); err != nil {
			t.Fatalf("RecordPatternSuccess: %v", err)
		}
	}

	ctx := baseCtx()
	ctx.Catalog = catalog.New(nil)
	ctx.LLKB = store
	ctx.MinLLKBConfidence = 0.5

	r := MapStep("User accepts terms", ctx)
	if r.MatchSource != SourceLLKB {
		t.Fatalf("expected SourceLLKB, got %v (primitive %+v)", r.MatchSource, r.Primitive)
	}
	click, ok := r.Primitive.(ir.Click)
	if !ok {
		t.Fatalf("expected ir.Click, got %T", r.Primitive)
	}
	if click != seeded {
		t.Fatalf("expected click(label=Accept) exactly as seeded, got %+v", click)
	}
	if r.LLKBConfidence < 0.5 {
		t.Fatalf("expected the hit to surface the pattern's confidence, got %v", r.LLKBConfidence)
	}
}

func TestMapStepFuzzyStageConstructsAboveThreshold(t *testing.T) {
	ctx := baseCtx()
	ctx.Catalog = catalog.New(nil)
	ctx.Fuzzy = fuzzy.Default()

	r := MapStep("clicks the submit button", ctx)
	if r.MatchSource != SourcePattern {
		t.Fatalf("expected SourcePattern (fuzzy path reuses this tag), got %v", r.MatchSource)
	}
	if _, ok := r.Primitive.(ir.Click); !ok {
		t.Fatalf("expected ir.Click from fuzzy construction, got %T", r.Primitive)
	}
}

func TestRecordOutcomeSkippedWithoutJourneyID(t *testing.T) {
	dir := t.TempDir()
	store := llkb.Open(filepath.Join(dir, "llkb.json"))
	r := MatchResult{Primitive: ir.Click{}, MatchSource: SourcePattern}
	if err := RecordOutcome(store, "Click X", "click x", r, ""); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	all, err := store.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected no patterns recorded without a journey id, got %d", len(all))
	}
}

func TestRecordOutcomeRecordsFailureWhenUnmatched(t *testing.T) {
	dir := t.TempDir()
	store := llkb.Open(filepath.Join(dir, "llkb.json"))
	r := MatchResult{Primitive: ir.Blocked{Reason: "x"}, MatchSource: SourceNone}
	if err := RecordOutcome(store, "Do the thing", "do the thing", r, "JRN-0009"); err != nil {
		t.Fatalf("RecordOutcome: %v", err)
	}
}
