// Package verify implements the verify summarizer: it extracts per-test
// results from a runner.Report, classifies failures, and produces a
// Summary with a derived recommendation list.
package verify

import (
	"github.com/journeyc/compiler/internal/classify"
	"github.com/journeyc/compiler/internal/runner"
)

// Status is the summary's overall verdict.
type Status string

const (
	StatusPassed Status = "passed"
	StatusFailed Status = "failed"
	StatusFlaky  Status = "flaky"
	StatusError  Status = "error"
)

// ClassifiedFailure pairs one failed test with its classification.
type ClassifiedFailure struct {
	TestName       string                  `json:"test_name"`
	Classification classify.Classification `json:"classification"`
}

// Summary is verify's output.
type Summary struct {
	Status          Status                    `json:"status"`
	FailedTests     []string                  `json:"failed_tests"`
	Classifications []ClassifiedFailure       `json:"classifications"`
	ClassHistogram  map[classify.Category]int `json:"class_histogram"`
	FlakyTests      []string                  `json:"flaky_tests,omitempty"`
	Recommendations []string                  `json:"recommendations"`
}

// Summarize builds a Summary from a runner report. An empty report (no
// tests ran at all) is treated as StatusError rather than StatusPassed,
// since a pipeline stage that produced no test results is itself a failure
// worth surfacing distinctly.
func Summarize(r runner.Report) Summary {
	tests := r.AllTests()
	s := Summary{
		ClassHistogram: map[classify.Category]int{},
	}

	if len(tests) == 0 {
		s.Status = StatusError
		s.Recommendations = []string{"no test results were reported; verify the runner executed successfully"}
		return s
	}

	var hasFailed, hasFlaky bool
	for _, t := range tests {
		switch t.Status {
		case "failed":
			hasFailed = true
			s.FailedTests = append(s.FailedTests, t.FullTitleOrTitle())
			cls := classifyTest(t)
			s.Classifications = append(s.Classifications, ClassifiedFailure{TestName: t.FullTitleOrTitle(), Classification: cls})
			s.ClassHistogram[cls.Category]++
		case "flaky":
			hasFlaky = true
			s.FlakyTests = append(s.FlakyTests, t.FullTitleOrTitle())
		}
	}

	switch {
	case hasFailed:
		s.Status = StatusFailed
	case hasFlaky:
		s.Status = StatusFlaky
	default:
		s.Status = StatusPassed
	}

	s.Recommendations = recommendations(s)
	return s
}

func classifyTest(t runner.TestResult) classify.Classification {
	if len(t.Errors) == 0 {
		return classify.Classify("")
	}
	best := classify.Classify(t.Errors[0])
	for _, e := range t.Errors[1:] {
		c := classify.Classify(e)
		if c.Matches > best.Matches {
			best = c
		}
	}
	return best
}

// categoryOrder fixes the recommendation ordering; ranging over the
// histogram map directly would vary it run to run for identical input.
var categoryOrder = []classify.Category{
	classify.CategorySelector,
	classify.CategoryTiming,
	classify.CategoryNavigation,
	classify.CategoryData,
	classify.CategoryAuth,
	classify.CategoryEnv,
	classify.CategoryScript,
	classify.CategoryUnknown,
}

func recommendations(s Summary) []string {
	if s.Status == StatusPassed {
		return nil
	}
	var recs []string
	for _, cat := range categoryOrder {
		if count := s.ClassHistogram[cat]; count > 0 {
			recs = append(recs, recommendationFor(cat, count))
		}
	}
	if s.Status == StatusFlaky {
		recs = append(recs, "investigate flaky tests for timing or isolation issues before trusting this run")
	}
	return recs
}

func recommendationFor(cat classify.Category, count int) string {
	switch cat {
	case classify.CategorySelector:
		return "selector failures dominate; consider re-running the healing engine"
	case classify.CategoryTiming:
		return "timing failures detected; consider increasing wait budgets or adding explicit signals"
	case classify.CategoryNavigation:
		return "navigation failures detected; verify target URLs and app availability"
	case classify.CategoryData:
		return "data failures detected; verify fixture/seed state"
	case classify.CategoryAuth:
		return "authentication failures are not auto-healable; check credentials and session setup"
	case classify.CategoryEnv:
		return "environment failures are not auto-healable; check target environment health"
	case classify.CategoryScript:
		return "generated test code has a scripting defect; inspect the rendered primitives"
	default:
		return "unclassified failures present; manual triage required"
	}
}
