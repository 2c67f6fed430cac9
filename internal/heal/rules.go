// Package heal implements the bounded rule-based healing engine: an
// ordered fix-rule list, each exposing Applies/Apply, run against a
// healable classification until verification passes, every rule has been
// attempted, or maxAttempts is reached.
package heal

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/journeyc/compiler/internal/classify"
)

// FixType names one rule in the ordered rule list.
type FixType string

const (
	FixMissingAwait      FixType = "missing-await"
	FixSelectorRefine    FixType = "selector-refine"
	FixAddExact          FixType = "add-exact"
	FixNavigationWait    FixType = "navigation-wait"
	FixWebFirstAssertion FixType = "web-first-assertion"
	FixTimeoutIncrease   FixType = "timeout-increase"
)

// ForbiddenFixes are never selectable even when present in a config's
// enabled-rules list.
var ForbiddenFixes = map[string]bool{
	"add-sleep":        true,
	"remove-assertion": true,
	"force-click":      true,
	"bypass-auth":      true,
}

// ApplyResult is one rule application's outcome.
type ApplyResult struct {
	Applied     bool
	Code        string
	Description string
	Confidence  float64
}

// Rule is one ordered fix rule.
type Rule struct {
	Type    FixType
	Applies func(c classify.Classification) bool
	Apply   func(code string, c classify.Classification) ApplyResult
}

var missingAwaitRe = regexp.MustCompile(`(?m)^(\s*)(page\.|expect\([^)]*\)\.)([a-zA-Z][\w.]*\()`)

// DefaultRules is the fixed, ordered rule list the engine walks.
var DefaultRules = []Rule{
	{
		Type:    FixMissingAwait,
		Applies: func(c classify.Classification) bool { return c.Category == classify.CategoryScript },
		Apply: func(code string, c classify.Classification) ApplyResult {
			fixed := missingAwaitRe.ReplaceAllStringFunc(code, func(m string) string {
				sub := missingAwaitRe.FindStringSubmatch(m)
				if strings.Contains(sub[0], "await") {
					return m
				}
				return sub[1] + "await " + sub[2] + sub[3]
			})
			return ApplyResult{
				Applied:     fixed != code,
				Code:        fixed,
				Description: "inserted missing await on action/assertion calls",
				Confidence:  0.7,
			}
		},
	},
	{
		Type:    FixSelectorRefine,
		Applies: func(c classify.Classification) bool { return c.Category == classify.CategorySelector },
		Apply: func(code string, c classify.Classification) ApplyResult {
			re := regexp.MustCompile(`getByText\(("[^"]*")\)`)
			fixed := re.ReplaceAllString(code, `getByText($1, { exact: false })`)
			return ApplyResult{
				Applied:     fixed != code,
				Code:        fixed,
				Description: "relaxed text locator to a substring match",
				Confidence:  0.5,
			}
		},
	},
	{
		Type:    FixAddExact,
		Applies: func(c classify.Classification) bool { return c.Category == classify.CategorySelector },
		Apply: func(code string, c classify.Classification) ApplyResult {
			re := regexp.MustCompile(`getByRole\(("[^"]*"),\s*\{\s*name:\s*("[^"]*")\s*\}\)`)
			fixed := re.ReplaceAllString(code, `getByRole($1, { name: $2, exact: true })`)
			return ApplyResult{
				Applied:     fixed != code,
				Code:        fixed,
				Description: "added exact:true to disambiguate a role locator with a name",
				Confidence:  0.4,
			}
		},
	},
	{
		Type:    FixNavigationWait,
		Applies: func(c classify.Classification) bool { return c.Category == classify.CategoryNavigation },
		Apply: func(code string, c classify.Classification) ApplyResult {
			re := regexp.MustCompile(`(await page\.goto\([^)]*\);)`)
			fixed := re.ReplaceAllString(code, "$1\n    await page.waitForLoadState('networkidle');")
			return ApplyResult{
				Applied:     fixed != code,
				Code:        fixed,
				Description: "added a network-idle wait after navigation",
				Confidence:  0.6,
			}
		},
	},
	{
		Type:    FixWebFirstAssertion,
		Applies: func(c classify.Classification) bool {
			return c.Category == classify.CategoryTiming || c.Category == classify.CategorySelector
		},
		Apply: func(code string, c classify.Classification) ApplyResult {
			re := regexp.MustCompile(`(?:await\s+)?(?:page\.)?waitForTimeout\(\s*\d+\s*\);?\s*\n(\s*)(await expect\()`)
			fixed := re.ReplaceAllString(code, "$2")
			return ApplyResult{
				Applied:     fixed != code,
				Code:        fixed,
				Description: "replaced a fixed wait preceding an assertion with the assertion's own auto-wait",
				Confidence:  0.5,
			}
		},
	},
	{
		Type:    FixTimeoutIncrease,
		Applies: func(c classify.Classification) bool { return c.Category == classify.CategoryTiming },
		Apply: func(code string, c classify.Classification) ApplyResult {
			re := regexp.MustCompile(`timeout:\s*(\d+)`)
			fixed := re.ReplaceAllStringFunc(code, func(m string) string {
				sub := re.FindStringSubmatch(m)
				return "timeout: " + doubled(sub[1])
			})
			return ApplyResult{
				Applied:     fixed != code,
				Code:        fixed,
				Description: "doubled explicit timeout values",
				Confidence:  0.3,
			}
		},
	},
}

func doubled(numStr string) string {
	n, err := strconv.Atoi(numStr)
	if err != nil || n == 0 {
		return numStr
	}
	return strconv.Itoa(n * 2)
}
