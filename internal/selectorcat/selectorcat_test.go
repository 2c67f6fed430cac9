package selectorcat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/journeyc/compiler/internal/ir"
)

func TestScanFindsTestIDsAndCSSDebt(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "LoginForm.tsx"), `
export function LoginForm() {
  return (
    <button data-testid="submit-btn">Sign In</button>
  )
}
`)
	writeFile(t, filepath.Join(dir, "legacy.ts"), `
page.locator("div.card.active > span:nth-child(2)").click()
`)

	cat, err := Scan(dir, ScanOptions{})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(cat.TestIDs) != 1 || cat.TestIDs[0] != "submit-btn" {
		t.Fatalf("expected 1 test id, got %v", cat.TestIDs)
	}
	entry, ok := cat.Selectors["submit-btn"]
	if !ok || entry.Strategy != "testid" {
		t.Fatalf("expected testid entry, got %+v", entry)
	}
	if len(cat.CSSDebt) != 1 {
		t.Fatalf("expected 1 css debt entry, got %d: %+v", len(cat.CSSDebt), cat.CSSDebt)
	}
	if cat.CSSDebt[0].Priority != "high" {
		t.Fatalf("expected high priority for nth-child selector, got %q", cat.CSSDebt[0].Priority)
	}
}

func TestScanCachesByRoot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.tsx"), `data-testid="alpha"`)

	first, err := Scan(dir, ScanOptions{})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	writeFile(t, filepath.Join(dir, "b.tsx"), `data-testid="beta"`)
	second, err := Scan(dir, ScanOptions{})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(second.TestIDs) != len(first.TestIDs) {
		t.Fatal("expected cached result to ignore the new file")
	}

	InvalidateCache(dir)
	third, err := Scan(dir, ScanOptions{})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(third.TestIDs) != 2 {
		t.Fatalf("expected rescan to pick up both test ids, got %v", third.TestIDs)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	cat := empty()
	cat.TestIDs = append(cat.TestIDs, "submit-btn")
	cat.Selectors["submit-btn"] = Entry{ID: "submit-btn", Strategy: "testid", Value: "submit-btn"}

	if err := Save(cat, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.TestIDs) != 1 || loaded.TestIDs[0] != "submit-btn" {
		t.Fatalf("unexpected round trip: %+v", loaded)
	}
}

func TestLoadMissingFileReturnsEmpty(t *testing.T) {
	cat, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cat.Selectors) != 0 {
		t.Fatalf("expected empty catalog, got %+v", cat)
	}
}

func TestInferSelectorWithCatalogPrefersKnownTestID(t *testing.T) {
	cat := empty()
	cat.TestIDs = []string{"login-submit-btn"}

	loc, ok := InferSelectorWithCatalog(cat, `Click the "login submit" button`)
	if !ok {
		t.Fatal("expected a match")
	}
	if loc.Strategy != ir.StrategyTestID || loc.Value != "login-submit-btn" {
		t.Fatalf("unexpected locator: %+v", loc)
	}
}

func TestInferSelectorWithCatalogFallsBackToRole(t *testing.T) {
	loc, ok := InferSelectorWithCatalog(empty(), `Click the "Sign In" button`)
	if !ok {
		t.Fatal("expected a match")
	}
	if loc.Strategy != ir.StrategyRole || loc.Value != "button" || loc.Options.Name != "Sign In" {
		t.Fatalf("unexpected locator: %+v", loc)
	}
}

func TestInferSelectorWithCatalogFallsBackToText(t *testing.T) {
	loc, ok := InferSelectorWithCatalog(nil, `User sees "Welcome"`)
	if !ok {
		t.Fatal("expected a match")
	}
	if loc.Strategy != ir.StrategyText || loc.Value != "Welcome" {
		t.Fatalf("unexpected locator: %+v", loc)
	}
}

func TestInferSelectorWithCatalogNoMatch(t *testing.T) {
	_, ok := InferSelectorWithCatalog(nil, "Waits 2 seconds")
	if ok {
		t.Fatal("expected no match for a selector-free step")
	}
}

func TestRenderCSSDebtMarkdownEmpty(t *testing.T) {
	out := RenderCSSDebtMarkdown(empty())
	if out == "" {
		t.Fatal("expected non-empty output")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}
