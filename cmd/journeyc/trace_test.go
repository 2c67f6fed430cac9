package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHealThenTraceProducesAMergedTimeline(t *testing.T) {
	dir := t.TempDir()
	testFile := filepath.Join(dir, "JRN-0001.spec.ts")
	require.NoError(t, os.WriteFile(testFile, []byte(`await page.getByText("Welcome").isVisible();`), 0o644))

	reportPath := filepath.Join(dir, "report.json")
	require.NoError(t, os.WriteFile(reportPath, []byte(`{"suites":[{"tests":[{"title":"t","status":"failed","errors":["strict mode violation: locator(\"button\") resolved to 2 elements"]}]}]}`), 0o644))

	healCmd := newHealCommand(&RootOptions{Format: "text"})
	healCmd.SetArgs([]string{testFile, "--report", reportPath})
	require.NoError(t, healCmd.Execute())

	traceCmd := newTraceCommand(&RootOptions{Format: "text"})
	traceCmd.SetArgs([]string{
		"JRN-0001",
		"--state", filepath.Join(dir, "JRN-0001.pipeline-state.json"),
		"--heal-log", filepath.Join(dir, "JRN-0001.heal-log.json"),
	})
	require.NoError(t, traceCmd.Execute())
}
