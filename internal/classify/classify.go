// Package classify implements the failure classification taxonomy: each
// runner-reported error is scored against a fixed keyword catalog, and the
// best-scoring category (ties broken by declaration order) determines
// whether the failure is healable.
package classify

import "strings"

// Category names a failure class.
type Category string

const (
	CategorySelector   Category = "selector"
	CategoryTiming     Category = "timing"
	CategoryNavigation Category = "navigation"
	CategoryData       Category = "data"
	CategoryAuth       Category = "auth"
	CategoryEnv        Category = "env"
	CategoryScript     Category = "script"
	CategoryUnknown    Category = "unknown"
)

// rule is one catalog entry: a category, its keyword set, and metadata
// surfaced in the classification result.
type rule struct {
	category    Category
	keywords    []string
	explanation string
	suggestion  string
	healable    bool
}

// catalog is declaration-ordered; ScoreAndClassify's tie-break relies on
// this order, so do not alphabetize it.
var catalog = []rule{
	{
		category:    CategorySelector,
		keywords:    []string{"locator", "selector", "no element", "not found", "strict mode violation", "resolved to 0 elements", "resolved to", "did not find"},
		explanation: "the locator did not resolve to exactly one element",
		suggestion:  "refine the locator or verify the element still exists with that role/text/test id",
		healable:    true,
	},
	{
		category:    CategoryTiming,
		keywords:    []string{"timeout", "timed out", "exceeded", "waiting for", "deadline"},
		explanation: "an operation exceeded its timeout before the expected state appeared",
		suggestion:  "wait on a more specific signal or increase the timeout",
		healable:    true,
	},
	{
		category:    CategoryNavigation,
		keywords:    []string{"navigation", "net::err", "failed to navigate", "page crashed", "frame was detached", "redirect"},
		explanation: "the page failed to navigate or load as expected",
		suggestion:  "verify the target URL and add a navigation wait",
		healable:    true,
	},
	{
		category:    CategoryData,
		keywords:    []string{"unique constraint", "duplicate", "not found in database", "seed", "fixture", "stale data"},
		explanation: "test data was missing, stale, or conflicted with existing state",
		suggestion:  "re-seed the fixture or scope the data to the run id",
		healable:    true,
	},
	{
		category:    CategoryAuth,
		keywords:    []string{"401", "403", "unauthorized", "forbidden", "session expired", "login failed", "authentication"},
		explanation: "the session was unauthenticated or lacked permission",
		suggestion:  "refresh the auth fixture or verify the actor's role",
		healable:    false,
	},
	{
		category:    CategoryEnv,
		keywords:    []string{"econnrefused", "enotfound", "dns", "certificate", "connection reset", "service unavailable", "503"},
		explanation: "the target environment was unreachable or unhealthy",
		suggestion:  "check environment health before re-running",
		healable:    false,
	},
	{
		category:    CategoryScript,
		keywords:    []string{"is not a function", "undefined is not", "cannot read propert", "typeerror", "referenceerror", "syntaxerror"},
		explanation: "the generated test code itself has a scripting defect",
		suggestion:  "inspect and fix the generated primitive rendering",
		healable:    true,
	},
}

// Classification is one error record's classified result.
type Classification struct {
	Category    Category
	Confidence  float64
	Explanation string
	Suggestion  string
	Healable    bool
	Matches     int
}

// Classify scores errorText against the fixed catalog and returns the
// best-scoring category. A score of zero across every rule yields
// CategoryUnknown with zero confidence, which is never healable.
func Classify(errorText string) Classification {
	lower := strings.ToLower(errorText)

	best := -1
	bestScore := 0
	for i, r := range catalog {
		score := 0
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = i
		}
	}

	if best < 0 {
		return Classification{Category: CategoryUnknown, Confidence: 0, Explanation: "no known failure pattern matched", Suggestion: "inspect the raw error manually", Healable: false}
	}

	r := catalog[best]
	conf := float64(bestScore) / 3
	if conf > 1 {
		conf = 1
	}
	return Classification{
		Category:    r.category,
		Confidence:  conf,
		Explanation: r.explanation,
		Suggestion:  r.suggestion,
		Healable:    r.healable,
		Matches:     bestScore,
	}
}
