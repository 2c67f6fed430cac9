// Package runner defines the black-box test runner report shape consumed
// by the verify summarizer and the healing loop. This module never shells
// out to a real Playwright process: a caller supplies a Report (typically
// parsed from the runner's JSON output) or implements Invoker to drive the
// heal loop's re-verification step.
package runner

import "context"

// TestResult is one leaf test's outcome.
type TestResult struct {
	Title      string   `json:"title"`
	FullTitle  string   `json:"fullTitle"`
	Status     string   `json:"status"` // "passed", "failed", "skipped", "flaky"
	DurationMS int      `json:"duration_ms"`
	Errors     []string `json:"errors,omitempty"`
	RetryCount int      `json:"retry_count,omitempty"`
	FilePath   string   `json:"file_path,omitempty"`
}

// FullTitleOrTitle returns FullTitle when set, falling back to Title.
func (t TestResult) FullTitleOrTitle() string {
	if t.FullTitle != "" {
		return t.FullTitle
	}
	return t.Title
}

// Suite is one nested group of tests/suites, mirroring the runner's JSON
// reporter shape (spec tree of describe blocks).
type Suite struct {
	Title  string       `json:"title"`
	Suites []Suite      `json:"suites,omitempty"`
	Tests  []TestResult `json:"tests,omitempty"`
}

// Report is the top-level parsed runner output.
type Report struct {
	Suites        []Suite `json:"suites"`
	Stats         Stats   `json:"stats"`
	RunnerVersion string  `json:"runner_version,omitempty"`
}

// Stats is the runner's summary counters.
type Stats struct {
	Total      int `json:"total"`
	Passed     int `json:"passed"`
	Failed     int `json:"failed"`
	Flaky      int `json:"flaky"`
	Skipped    int `json:"skipped"`
	DurationMS int `json:"duration_ms"`
}

// AllTests flattens the suite tree into a single ordered slice of
// TestResult, depth-first.
func (r Report) AllTests() []TestResult {
	var out []TestResult
	var walk func(suites []Suite)
	walk = func(suites []Suite) {
		for _, s := range suites {
			out = append(out, s.Tests...)
			walk(s.Suites)
		}
	}
	walk(r.Suites)
	return out
}

// Invoker runs the test runner against a given test file and returns its
// parsed Report. The healing loop calls this between mutation attempts;
// this package supplies only the interface, never an implementation, since
// actually invoking Playwright is explicitly out of this module's scope.
type Invoker interface {
	Run(ctx context.Context, testFilePath string) (Report, error)
}
