package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/journeyc/compiler/internal/heal"
	"github.com/journeyc/compiler/internal/runner"
)

func writeReport(t *testing.T, path string, r runner.Report) {
	t.Helper()
	data, err := json.Marshal(r)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestNewHealCommandWritesHealLogOnSuccess(t *testing.T) {
	dir := t.TempDir()
	testFile := filepath.Join(dir, "JRN-0001.spec.ts")
	require.NoError(t, os.WriteFile(testFile, []byte(`await page.getByText("Welcome").isVisible();`), 0o644))

	reportPath := filepath.Join(dir, "report.json")
	writeReport(t, reportPath, runner.Report{Suites: []runner.Suite{{Tests: []runner.TestResult{
		{Title: "t", Status: "failed", Errors: []string{`strict mode violation: locator("button") resolved to 2 elements`}},
	}}}})

	cmd := newHealCommand(&RootOptions{Format: "text"})
	cmd.SetArgs([]string{testFile, "--report", reportPath})
	require.NoError(t, cmd.Execute())

	outPath := filepath.Join(dir, "JRN-0001.heal-log.json")
	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var log heal.Log
	require.NoError(t, json.Unmarshal(data, &log))
	if log.JourneyID != "JRN-0001" {
		t.Fatalf("expected journey ID derived from test file basename, got %q", log.JourneyID)
	}
	if len(log.Attempts) != 1 || log.Attempts[0].FixType != "selector-refine" {
		t.Fatalf("expected a single selector-refine attempt, got %+v", log.Attempts)
	}
}

func TestNewHealCommandExitsNonZeroWhenExhausted(t *testing.T) {
	dir := t.TempDir()
	testFile := filepath.Join(dir, "JRN-0002.spec.ts")
	require.NoError(t, os.WriteFile(testFile, []byte(`await page.goto('/login');`), 0o644))

	reportPath := filepath.Join(dir, "report.json")
	writeReport(t, reportPath, runner.Report{Suites: []runner.Suite{{Tests: []runner.TestResult{
		{Title: "t", Status: "failed", Errors: []string{"401 unauthorized: session expired"}},
	}}}})

	cmd := newHealCommand(&RootOptions{Format: "text"})
	cmd.SetArgs([]string{testFile, "--report", reportPath})
	err := cmd.Execute()
	require.Error(t, err)

	outPath := filepath.Join(dir, "JRN-0002.heal-log.json")
	_, statErr := os.Stat(outPath)
	require.NoError(t, statErr, "expected a heal log to be written even for a non-healable outcome")
}
