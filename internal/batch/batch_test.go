package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/journeyc/compiler/internal/catalog"
	"github.com/journeyc/compiler/internal/glossary"
	"github.com/journeyc/compiler/internal/mapper"
)

const journeyOne = `---
id: JRN-0001
title: User can log in
status: clarified
tier: smoke
scope: login
actor: user
completion:
  - type: url
    value: /dashboard
---

## Acceptance Criteria

### AC-1: User can log in

- Navigate to /login
- Click "Sign In" button
- User sees "Welcome"
`

const journeyTwoWithBlocked = `---
id: JRN-0002
title: Ambiguous journey
status: clarified
tier: regression
scope: misc
actor: user
completion:
  - type: toast
    value: Something happened
---

## Acceptance Criteria

### AC-1: Something unclear happens

- Do the thing
`

func baseCtx() mapper.Context {
	return mapper.Context{Glossary: glossary.Default(), Catalog: catalog.Default()}
}

func TestCompileDirAggregatesAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a-journey.md"), []byte(journeyOne), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b-journey.md"), []byte(journeyTwoWithBlocked), 0o644); err != nil {
		t.Fatal(err)
	}

	report, err := CompileDir(dir, baseCtx())
	if err != nil {
		t.Fatalf("CompileDir: %v", err)
	}
	if report.TotalJourneys != 2 {
		t.Fatalf("expected 2 journeys compiled, got %d", report.TotalJourneys)
	}
	if report.TotalBlocked == 0 {
		t.Fatalf("expected at least one blocked step from the ambiguous journey, got 0")
	}
	if len(report.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(report.Results))
	}
	// Filenames sort deterministically: a-journey.md before b-journey.md.
	if report.Results[0].Journey.ID != "JRN-0001" {
		t.Fatalf("expected JRN-0001 first in filename order, got %s", report.Results[0].Journey.ID)
	}
}

func TestCompileDirSkipsUnparseableFileWithoutAbortingBatch(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.md"), []byte("not a journey at all"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "good.md"), []byte(journeyOne), 0o644); err != nil {
		t.Fatal(err)
	}

	report, err := CompileDir(dir, baseCtx())
	if err != nil {
		t.Fatalf("CompileDir: %v", err)
	}
	if report.TotalJourneys != 1 {
		t.Fatalf("expected only the parseable journey to be counted, got %d", report.TotalJourneys)
	}
	var sawErr bool
	for _, r := range report.Results {
		if r.Err != nil {
			sawErr = true
		}
	}
	if !sawErr {
		t.Fatal("expected the broken file's parse error to be recorded in Results, not to abort the batch")
	}
}

func TestCompileDirEmptyDirYieldsZeroAverage(t *testing.T) {
	dir := t.TempDir()
	report, err := CompileDir(dir, baseCtx())
	if err != nil {
		t.Fatalf("CompileDir: %v", err)
	}
	if report.TotalJourneys != 0 || report.AverageCoverage != 0 {
		t.Fatalf("expected zero journeys/coverage for an empty dir, got %+v", report)
	}
}
