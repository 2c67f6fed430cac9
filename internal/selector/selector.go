// Package selector implements the selector policy: strategy priority,
// forbidden-pattern filtering, locator scoring, and rendering a Locator
// into the test runner's syntax.
package selector

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/journeyc/compiler/internal/ir"
)

// DefaultPriority is the strategy priority order: role > label >
// placeholder > text > testid > css.
var DefaultPriority = []ir.LocatorStrategy{
	ir.StrategyRole,
	ir.StrategyLabel,
	ir.StrategyPlaceholder,
	ir.StrategyText,
	ir.StrategyTestID,
	ir.StrategyCSS,
}

// DefaultForbiddenPatterns flags locator values that should never be
// selected regardless of strategy: fragile CSS selectors and XPath leaking
// into a CSS-strategy locator.
var DefaultForbiddenPatterns = []*regexp.Regexp{
	regexp.MustCompile(`nth-child`),
	regexp.MustCompile(`^//`), // XPath-looking value used with css strategy
	regexp.MustCompile(`#[a-zA-Z_-]*\d{3,}`), // numeric-ID heuristic, e.g. "#12345" or "#container12345"
}

// Policy is the selector policy: a priority order plus forbidden-pattern
// filters. The zero value is not usable; use Default().
type Policy struct {
	Priority  []ir.LocatorStrategy
	Forbidden []*regexp.Regexp
}

// Default returns the standard policy: the full priority order plus the
// built-in forbidden-pattern list.
func Default() Policy {
	return Policy{Priority: append([]ir.LocatorStrategy(nil), DefaultPriority...), Forbidden: DefaultForbiddenPatterns}
}

func (p Policy) rank(s ir.LocatorStrategy) int {
	for i, strat := range p.Priority {
		if strat == s {
			return i
		}
	}
	return len(p.Priority) // unranked strategies sort last
}

func (p Policy) isForbidden(loc ir.Locator) bool {
	for _, re := range p.Forbidden {
		if re.MatchString(loc.Value) {
			return true
		}
	}
	return false
}

// SelectBestLocator filters candidates by the forbidden-pattern list, then
// returns the remaining candidate with the highest-priority strategy. It
// never returns a forbidden candidate even if that leaves the field empty.
func (p Policy) SelectBestLocator(candidates []ir.Locator) (ir.Locator, bool) {
	var allowed []ir.Locator
	for _, c := range candidates {
		if !p.isForbidden(c) {
			allowed = append(allowed, c)
		}
	}
	if len(allowed) == 0 {
		return ir.Locator{}, false
	}
	best := allowed[0]
	for _, c := range allowed[1:] {
		if p.rank(c.Strategy) < p.rank(best.Strategy) {
			best = c
		}
	}
	return best, true
}

var numericIDPattern = regexp.MustCompile(`#[a-zA-Z_-]*\d{3,}`)

// ValidateLocator emits warnings for common selector smells: CSS syntax
// issues, an XPath-looking string used with the css strategy, nth-child
// usage, and numeric-ID heuristics that suggest a generated, unstable ID.
func ValidateLocator(loc ir.Locator) []string {
	var warnings []string
	if loc.Strategy == ir.StrategyCSS {
		if strings.HasPrefix(loc.Value, "//") {
			warnings = append(warnings, "css locator looks like an XPath expression: "+loc.Value)
		}
		if strings.Contains(loc.Value, "nth-child") {
			warnings = append(warnings, "css locator uses nth-child, which is position-fragile: "+loc.Value)
		}
		if numericIDPattern.MatchString(loc.Value) {
			warnings = append(warnings, "css locator looks like a generated numeric ID: "+loc.Value)
		}
	}
	return warnings
}

// ToPlaywrightLocator renders a Locator spec into Playwright locator-builder
// syntax, escaping quotes and newlines in values.
func ToPlaywrightLocator(loc ir.Locator) string {
	switch loc.Strategy {
	case ir.StrategyRole:
		if loc.Options != nil && (loc.Options.Name != "" || loc.Options.Level > 0) {
			var parts []string
			if loc.Options.Name != "" {
				parts = append(parts, "name: "+escapeString(loc.Options.Name))
				if loc.Options.Exact {
					parts = append(parts, "exact: true")
				}
			}
			if loc.Options.Level > 0 {
				parts = append(parts, fmt.Sprintf("level: %d", loc.Options.Level))
			}
			return fmt.Sprintf("page.getByRole(%s, { %s })", escapeString(loc.Value), strings.Join(parts, ", "))
		}
		return fmt.Sprintf("page.getByRole(%s)", escapeString(loc.Value))
	case ir.StrategyLabel:
		return fmt.Sprintf("page.getByLabel(%s)", escapeString(loc.Value))
	case ir.StrategyPlaceholder:
		return fmt.Sprintf("page.getByPlaceholder(%s)", escapeString(loc.Value))
	case ir.StrategyText:
		return fmt.Sprintf("page.getByText(%s)", escapeString(loc.Value))
	case ir.StrategyTestID:
		return fmt.Sprintf("page.getByTestId(%s)", escapeString(loc.Value))
	case ir.StrategyCSS:
		return fmt.Sprintf("page.locator(%s)", escapeString(loc.Value))
	default:
		return fmt.Sprintf("page.locator(%s)", escapeString(loc.Value))
	}
}

// escapeString renders s as a double-quoted JS string literal with quotes
// and newlines escaped.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return `"` + s + `"`
}
