// Package catalog implements the ordered pattern catalog: a fixed list of
// regex-driven extractors that turn a normalized step-text string into an
// IR primitive. Order is significant — see DefaultCatalog's comment.
package catalog

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/journeyc/compiler/internal/ir"
)

// PatternVersion is the version of this compiled-in catalog, echoed into
// provenance reports alongside ir.PatternVersion.
const PatternVersion = ir.PatternVersion

// Pattern is one ordered regex → primitive extractor.
type Pattern struct {
	Name          string
	Regex         *regexp.Regexp
	PrimitiveType ir.PrimitiveType
	Extract       func(text string, m []string) (ir.Primitive, bool)
}

// Catalog is an ordered, immutable list of Patterns.
type Catalog struct {
	patterns []Pattern
}

// MatchResult is the outcome of a successful catalog match.
type MatchResult struct {
	Pattern   Pattern
	Primitive ir.Primitive
}

// New builds a Catalog from an explicit pattern list, in order.
func New(patterns []Pattern) *Catalog {
	return &Catalog{patterns: patterns}
}

// Default returns the compiled-in catalog in its specified priority order:
// structured "**Action**:"-prefixed patterns first, then auth/toast
// assertions, then every extended variant immediately before its base
// variant (e.g. "click on" before "click", since extended patterns are
// strict supersets in specificity and must win the race), then fills,
// selects, checks, remaining assertions, URL waits, generic waits, hovers,
// and focuses last.
func Default() *Catalog {
	return New(defaultPatterns())
}

// MatchPattern returns the first pattern in the catalog whose regex
// accepts text and whose Extract returns a non-nil primitive.
func (c *Catalog) MatchPattern(text string) (*MatchResult, bool) {
	for _, p := range c.patterns {
		m := p.Regex.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		prim, ok := p.Extract(text, m)
		if !ok || prim == nil {
			continue
		}
		return &MatchResult{Pattern: p, Primitive: prim}, true
	}
	return nil, false
}

// Patterns returns the catalog's ordered pattern list (read-only use; the
// healing engine inspects PrimitiveType by name for provenance).
func (c *Catalog) Patterns() []Pattern {
	return c.patterns
}

// --- locator inference shared by extractors ---

var quoted = regexp.MustCompile(`["“]([^"”]+)["”]|'([^']+)'`)

// firstQuoted returns the first quoted substring in text, unquoted.
func firstQuoted(text string) (string, bool) {
	m := quoted.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	if m[1] != "" {
		return m[1], true
	}
	return m[2], true
}

// roleKeyword maps a noun appearing near a quoted name to an ARIA role.
var roleKeyword = map[string]string{
	"button": "button", "btn": "button", "link": "link", "tab": "tab",
	"checkbox": "checkbox", "radio": "radio", "menu item": "menuitem",
	"menuitem": "menuitem", "option": "option", "heading": "heading",
	"dialog": "dialog", "field": "textbox", "input": "textbox",
	"textbox": "textbox", "dropdown": "combobox", "combobox": "combobox",
}

// inferLocator builds a best-effort Locator for a quoted target, preferring
// role inference from a nearby keyword, falling back to a text locator.
func inferLocator(text, target string) ir.Locator {
	lower := strings.ToLower(text)
	for kw, role := range roleKeyword {
		if strings.Contains(lower, kw) {
			return ir.Locator{
				Strategy: ir.StrategyRole,
				Value:    role,
				Options:  &ir.LocatorOptions{Name: target},
			}
		}
	}
	return ir.Locator{Strategy: ir.StrategyText, Value: target}
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return n
}

// defaultPatterns builds the ordered list.
func defaultPatterns() []Pattern {
	var p []Pattern

	// --- structured **Action**: prefixed patterns (highest priority) ---
	p = append(p, Pattern{
		Name:          "structured-action",
		PrimitiveType: ir.PrimCallModule,
		Regex:         regexp.MustCompile(`(?i)^\*\*([A-Za-z][A-Za-z0-9 ]*)\*\*\s*:\s*(.+)$`),
		Extract: func(text string, m []string) (ir.Primitive, bool) {
			action := strings.ToLower(strings.TrimSpace(m[1]))
			rest := strings.TrimSpace(m[2])
			switch action {
			case "navigate", "goto", "go to":
				return ir.Goto{URL: rest, WaitForLoad: true}, true
			case "click":
				if target, ok := firstQuoted(rest); ok {
					return ir.Click{Locator: inferLocator(rest, target)}, true
				}
				return ir.Click{Locator: ir.Locator{Strategy: ir.StrategyText, Value: rest}}, true
			case "verify", "assert", "expect":
				if target, ok := firstQuoted(rest); ok {
					return ir.ExpectVisible{Locator: inferLocator(rest, target)}, true
				}
				return nil, false
			case "module":
				fields := strings.SplitN(rest, ".", 2)
				if len(fields) == 2 {
					return ir.CallModule{Module: strings.TrimSpace(fields[0]), Method: strings.TrimSpace(fields[1])}, true
				}
				return nil, false
			}
			return nil, false
		},
	})

	// --- auth/toast ---
	p = append(p, Pattern{
		Name:          "login-as",
		PrimitiveType: ir.PrimCallModule,
		Regex:         regexp.MustCompile(`(?i)log(?:s|ged)?\s*in\s+as\s+(?:an?\s+)?["']?([A-Za-z0-9_\- ]+)["']?`),
		Extract: func(text string, m []string) (ir.Primitive, bool) {
			return ir.CallModule{
				Module: "auth",
				Method: "loginAs",
				Args:   ir.IRObject{"actor": ir.IRString(strings.TrimSpace(m[1]))},
			}, true
		},
	})
	p = append(p, Pattern{
		Name:          "logs-out",
		PrimitiveType: ir.PrimCallModule,
		Regex:         regexp.MustCompile(`(?i)\blog(?:s|ged)?\s*out\b`),
		Extract: func(text string, m []string) (ir.Primitive, bool) {
			return ir.CallModule{Module: "auth", Method: "logout"}, true
		},
	})
	p = append(p, Pattern{
		Name:          "expect-toast",
		PrimitiveType: ir.PrimExpectToast,
		Regex:         regexp.MustCompile(`(?i)(?:sees?|shows?|displays?)\s+an?\s+(success|error|warning|info)\s+(?:toast|notification|message)(?:\s+(?:saying|with|reading)\s+["']?([^"']+)["']?)?`),
		Extract: func(text string, m []string) (ir.Primitive, bool) {
			return ir.ExpectToast{ToastType: strings.ToLower(m[1]), Message: strings.TrimSpace(m[2])}, true
		},
	})

	// --- extended variants before base variants ---
	p = append(p, clickOnPattern(), clickPattern())
	p = append(p, dblClickPattern(), rightClickPattern())

	// --- fills ---
	p = append(p, fillWithPattern(), fillPattern())

	// --- selects ---
	p = append(p, selectOptionPattern(), selectPattern())

	// --- checks ---
	p = append(p, checkPattern(), uncheckPattern())

	// --- press / upload ---
	p = append(p, pressPattern(), uploadPattern())

	// --- navigation ---
	p = append(p, gotoPattern(), reloadPattern(), goBackPattern(), goForwardPattern())

	// --- assertions (non-visibility handled above: toast) ---
	p = append(p, expectCountPattern(), expectValuePattern(), expectContainsTextPattern(), expectTextPattern())
	p = append(p, expectCheckedPattern(), expectEnabledPattern(), expectDisabledPattern())
	p = append(p, expectHiddenPattern(), expectNotVisiblePattern(), expectVisiblePattern())
	p = append(p, expectTitlePattern(), expectURLPattern())

	// --- URL / waits ---
	p = append(p, waitForURLPattern(), waitForResponsePattern(), waitForLoadingCompletePattern())
	p = append(p, waitForNetworkIdlePattern(), waitForTimeoutPattern())
	p = append(p, waitForHiddenPattern(), waitForVisiblePattern())

	// --- hovers, focuses ---
	p = append(p, hoverPattern(), focusPattern())

	return p
}

func clickOnPattern() Pattern {
	return Pattern{
		Name:          "click-on-extended",
		PrimitiveType: ir.PrimClick,
		Regex:         regexp.MustCompile(`(?i)\bclicks?\s+on\s+(?:the\s+)?["']?([^"'.]+?)["']?(?:\s+(button|link|tab|icon))?\s*[.]?$`),
		Extract: func(text string, m []string) (ir.Primitive, bool) {
			target := strings.TrimSpace(m[1])
			ctx := text
			if m[2] != "" {
				ctx = m[2] + " " + ctx
			}
			return ir.Click{Locator: inferLocator(ctx, target)}, true
		},
	}
}

func clickPattern() Pattern {
	return Pattern{
		Name:          "click-base",
		PrimitiveType: ir.PrimClick,
		Regex:         regexp.MustCompile(`(?i)\bclicks?\s+(?:the\s+)?["']?([^"'.]+?)["']?(?:\s+(button|link|tab|icon))?\s*[.]?$`),
		Extract: func(text string, m []string) (ir.Primitive, bool) {
			target := strings.TrimSpace(m[1])
			ctx := text
			if m[2] != "" {
				ctx = m[2] + " " + ctx
			}
			return ir.Click{Locator: inferLocator(ctx, target)}, true
		},
	}
}

func dblClickPattern() Pattern {
	return Pattern{
		Name:          "dblclick",
		PrimitiveType: ir.PrimDblClick,
		Regex:         regexp.MustCompile(`(?i)\bdouble[- ]?clicks?\s+(?:the\s+)?["']?([^"'.]+?)["']?\s*[.]?$`),
		Extract: func(text string, m []string) (ir.Primitive, bool) {
			return ir.DblClick{Locator: inferLocator(text, strings.TrimSpace(m[1]))}, true
		},
	}
}

func rightClickPattern() Pattern {
	return Pattern{
		Name:          "right-click",
		PrimitiveType: ir.PrimRightClick,
		Regex:         regexp.MustCompile(`(?i)\bright[- ]?clicks?\s+(?:the\s+)?["']?([^"'.]+?)["']?\s*[.]?$`),
		Extract: func(text string, m []string) (ir.Primitive, bool) {
			return ir.RightClick{Locator: inferLocator(text, strings.TrimSpace(m[1]))}, true
		},
	}
}

func hoverPattern() Pattern {
	return Pattern{
		Name:          "hover",
		PrimitiveType: ir.PrimHover,
		Regex:         regexp.MustCompile(`(?i)\bhovers?\s+(?:over\s+)?(?:the\s+)?["']?([^"'.]+?)["']?\s*[.]?$`),
		Extract: func(text string, m []string) (ir.Primitive, bool) {
			return ir.Hover{Locator: inferLocator(text, strings.TrimSpace(m[1]))}, true
		},
	}
}

func focusPattern() Pattern {
	return Pattern{
		Name:          "focus",
		PrimitiveType: ir.PrimFocus,
		Regex:         regexp.MustCompile(`(?i)\bfocuses?\s+(?:on\s+)?(?:the\s+)?["']?([^"'.]+?)["']?\s*[.]?$`),
		Extract: func(text string, m []string) (ir.Primitive, bool) {
			return ir.Focus{Locator: inferLocator(text, strings.TrimSpace(m[1]))}, true
		},
	}
}

func fillWithPattern() Pattern {
	return Pattern{
		Name:          "fill-with-extended",
		PrimitiveType: ir.PrimFill,
		Regex:         regexp.MustCompile(`(?i)\bfills?\s+(?:in\s+)?(?:the\s+)?["']?([^"']+?)["']?\s+with\s+["']?([^"']+?)["']?\s*[.]?$`),
		Extract: func(text string, m []string) (ir.Primitive, bool) {
			loc := inferLocator(text, strings.TrimSpace(m[1]))
			if loc.Strategy == ir.StrategyText {
				loc.Strategy = ir.StrategyLabel
			}
			return ir.Fill{Locator: loc, Value: ir.Literal(strings.TrimSpace(m[2]))}, true
		},
	}
}

func fillPattern() Pattern {
	return Pattern{
		Name:          "fill-base",
		PrimitiveType: ir.PrimFill,
		Regex:         regexp.MustCompile(`(?i)\bfills?\s+(?:in\s+)?(?:the\s+)?["']?([^"'.]+?)["']?\s*[.]?$`),
		Extract: func(text string, m []string) (ir.Primitive, bool) {
			loc := inferLocator(text, strings.TrimSpace(m[1]))
			if loc.Strategy == ir.StrategyText {
				loc.Strategy = ir.StrategyLabel
			}
			return ir.Fill{Locator: loc, Value: ir.Literal("")}, true
		},
	}
}

func selectOptionPattern() Pattern {
	return Pattern{
		Name:          "select-option-extended",
		PrimitiveType: ir.PrimSelect,
		Regex:         regexp.MustCompile(`(?i)\bselects?\s+["']?([^"']+?)["']?\s+(?:from|in)\s+(?:the\s+)?["']?([^"'.]+?)["']?\s*[.]?$`),
		Extract: func(text string, m []string) (ir.Primitive, bool) {
			loc := inferLocator(text, strings.TrimSpace(m[2]))
			if loc.Strategy == ir.StrategyText {
				loc.Strategy = ir.StrategyLabel
			}
			return ir.Select{Locator: loc, Option: ir.Literal(strings.TrimSpace(m[1]))}, true
		},
	}
}

func selectPattern() Pattern {
	return Pattern{
		Name:          "select-base",
		PrimitiveType: ir.PrimSelect,
		Regex:         regexp.MustCompile(`(?i)\bselects?\s+(?:the\s+)?["']?([^"'.]+?)["']?\s*[.]?$`),
		Extract: func(text string, m []string) (ir.Primitive, bool) {
			loc := inferLocator(text, strings.TrimSpace(m[1]))
			if loc.Strategy == ir.StrategyText {
				loc.Strategy = ir.StrategyLabel
			}
			return ir.Select{Locator: loc, Option: ir.Literal("")}, true
		},
	}
}

func checkPattern() Pattern {
	return Pattern{
		Name:          "check",
		PrimitiveType: ir.PrimCheck,
		Regex:         regexp.MustCompile(`(?i)\bchecks?\s+(?:the\s+)?["']?([^"'.]+?)["']?\s*[.]?$`),
		Extract: func(text string, m []string) (ir.Primitive, bool) {
			return ir.Check{Locator: inferLocator(text, strings.TrimSpace(m[1]))}, true
		},
	}
}

func uncheckPattern() Pattern {
	return Pattern{
		Name:          "uncheck",
		PrimitiveType: ir.PrimUncheck,
		Regex:         regexp.MustCompile(`(?i)\bunchecks?\s+(?:the\s+)?["']?([^"'.]+?)["']?\s*[.]?$`),
		Extract: func(text string, m []string) (ir.Primitive, bool) {
			return ir.Uncheck{Locator: inferLocator(text, strings.TrimSpace(m[1]))}, true
		},
	}
}

func pressPattern() Pattern {
	return Pattern{
		Name:          "press",
		PrimitiveType: ir.PrimPress,
		Regex:         regexp.MustCompile(`(?i)\bpresses?\s+(?:the\s+)?["']?([A-Za-z0-9+]+)["']?\s*(?:key)?\s*[.]?$`),
		Extract: func(text string, m []string) (ir.Primitive, bool) {
			return ir.Press{Key: strings.TrimSpace(m[1])}, true
		},
	}
}

func uploadPattern() Pattern {
	return Pattern{
		Name:          "upload",
		PrimitiveType: ir.PrimUpload,
		Regex:         regexp.MustCompile(`(?i)\buploads?\s+["']?([^"'.]+?)["']?\s+(?:to|into)\s+(?:the\s+)?["']?([^"'.]+?)["']?\s*[.]?$`),
		Extract: func(text string, m []string) (ir.Primitive, bool) {
			return ir.Upload{
				Locator: inferLocator(text, strings.TrimSpace(m[2])),
				Files:   []string{strings.TrimSpace(m[1])},
			}, true
		},
	}
}

func gotoPattern() Pattern {
	return Pattern{
		Name:          "goto",
		PrimitiveType: ir.PrimGoto,
		Regex:         regexp.MustCompile(`(?i)\b(?:navigates?\s+to|go(?:es)?\s+to|visits?)\s+["']?(/[^\s"']*|https?://\S+)["']?`),
		Extract: func(text string, m []string) (ir.Primitive, bool) {
			return ir.Goto{URL: strings.TrimSpace(m[1]), WaitForLoad: true}, true
		},
	}
}

func reloadPattern() Pattern {
	return Pattern{
		Name:          "reload",
		PrimitiveType: ir.PrimReload,
		Regex:         regexp.MustCompile(`(?i)\breloads?\s+the\s+page|\brefreshes?\s+the\s+page`),
		Extract: func(text string, m []string) (ir.Primitive, bool) {
			return ir.Reload{}, true
		},
	}
}

func goBackPattern() Pattern {
	return Pattern{
		Name:          "go-back",
		PrimitiveType: ir.PrimGoBack,
		Regex:         regexp.MustCompile(`(?i)\bgoes?\s+back\b`),
		Extract: func(text string, m []string) (ir.Primitive, bool) {
			return ir.GoBack{}, true
		},
	}
}

func goForwardPattern() Pattern {
	return Pattern{
		Name:          "go-forward",
		PrimitiveType: ir.PrimGoForward,
		Regex:         regexp.MustCompile(`(?i)\bgoes?\s+forward\b`),
		Extract: func(text string, m []string) (ir.Primitive, bool) {
			return ir.GoForward{}, true
		},
	}
}

func expectCountPattern() Pattern {
	return Pattern{
		Name:          "expect-count",
		PrimitiveType: ir.PrimExpectCount,
		Regex:         regexp.MustCompile(`(?i)\bsees?\s+(\d+)\s+["']?([^"'.]+?)["']?\s*[.]?$`),
		Extract: func(text string, m []string) (ir.Primitive, bool) {
			return ir.ExpectCount{Locator: inferLocator(text, strings.TrimSpace(m[2])), Count: atoiOr(m[1], 0)}, true
		},
	}
}

func expectValuePattern() Pattern {
	return Pattern{
		Name:          "expect-value",
		PrimitiveType: ir.PrimExpectValue,
		Regex:         regexp.MustCompile(`(?i)\b["']?([^"'.]+?)["']?\s+has\s+value\s+["']?([^"'.]+?)["']?\s*[.]?$`),
		Extract: func(text string, m []string) (ir.Primitive, bool) {
			return ir.ExpectValue{Locator: inferLocator(text, strings.TrimSpace(m[1])), Value: strings.TrimSpace(m[2])}, true
		},
	}
}

func expectContainsTextPattern() Pattern {
	return Pattern{
		Name:          "expect-contains-text",
		PrimitiveType: ir.PrimExpectContainsText,
		Regex:         regexp.MustCompile(`(?i)\bsees?\s+(?:text\s+)?(?:containing|with)\s+["']?([^"'.]+?)["']?\s+(?:in|on)\s+(?:the\s+)?["']?([^"'.]+?)["']?\s*[.]?$`),
		Extract: func(text string, m []string) (ir.Primitive, bool) {
			return ir.ExpectContainsText{Locator: inferLocator(text, strings.TrimSpace(m[2])), Value: strings.TrimSpace(m[1])}, true
		},
	}
}

func expectTextPattern() Pattern {
	return Pattern{
		Name:          "expect-text",
		PrimitiveType: ir.PrimExpectText,
		// Requires an explicit "text" keyword so a bare `sees "X"` (no
		// locator, no "text") falls through to expect-visible instead —
		// that bare form asserts visibility of the string, not the text
		// content of some other located element.
		Regex: regexp.MustCompile(`(?i)\bsees?\s+(?:the\s+)?text\s+["']([^"']+)["']\s*$`),
		Extract: func(text string, m []string) (ir.Primitive, bool) {
			target := strings.TrimSpace(m[1])
			return ir.ExpectText{Locator: ir.Locator{Strategy: ir.StrategyText, Value: target}, Value: target}, true
		},
	}
}

func expectCheckedPattern() Pattern {
	return Pattern{
		Name:          "expect-checked",
		PrimitiveType: ir.PrimExpectChecked,
		Regex:         regexp.MustCompile(`(?i)["']?([^"'.]+?)["']?\s+is\s+checked\s*[.]?$`),
		Extract: func(text string, m []string) (ir.Primitive, bool) {
			return ir.ExpectChecked{Locator: inferLocator(text, strings.TrimSpace(m[1]))}, true
		},
	}
}

func expectEnabledPattern() Pattern {
	return Pattern{
		Name:          "expect-enabled",
		PrimitiveType: ir.PrimExpectEnabled,
		Regex:         regexp.MustCompile(`(?i)["']?([^"'.]+?)["']?\s+is\s+enabled\s*[.]?$`),
		Extract: func(text string, m []string) (ir.Primitive, bool) {
			return ir.ExpectEnabled{Locator: inferLocator(text, strings.TrimSpace(m[1]))}, true
		},
	}
}

func expectDisabledPattern() Pattern {
	return Pattern{
		Name:          "expect-disabled",
		PrimitiveType: ir.PrimExpectDisabled,
		Regex:         regexp.MustCompile(`(?i)["']?([^"'.]+?)["']?\s+is\s+disabled\s*[.]?$`),
		Extract: func(text string, m []string) (ir.Primitive, bool) {
			return ir.ExpectDisabled{Locator: inferLocator(text, strings.TrimSpace(m[1]))}, true
		},
	}
}

func expectHiddenPattern() Pattern {
	return Pattern{
		Name:          "expect-hidden",
		PrimitiveType: ir.PrimExpectHidden,
		Regex:         regexp.MustCompile(`(?i)(?:no\s+longer\s+sees?|does\s+not\s+see)\s+(?:the\s+)?["']?([^"'.]+?)["']?\s+(?:in\s+the\s+dom|at\s+all)\s*[.]?$`),
		Extract: func(text string, m []string) (ir.Primitive, bool) {
			return ir.ExpectHidden{Locator: inferLocator(text, strings.TrimSpace(m[1]))}, true
		},
	}
}

func expectNotVisiblePattern() Pattern {
	return Pattern{
		Name:          "expect-not-visible",
		PrimitiveType: ir.PrimExpectNotVisible,
		Regex:         regexp.MustCompile(`(?i)(?:does\s+not\s+see|no\s+longer\s+sees?|should\s+not\s+see)\s+(?:the\s+)?["']?([^"'.]+?)["']?\s*[.]?$`),
		Extract: func(text string, m []string) (ir.Primitive, bool) {
			return ir.ExpectNotVisible{Locator: inferLocator(text, strings.TrimSpace(m[1]))}, true
		},
	}
}

func expectVisiblePattern() Pattern {
	return Pattern{
		Name:          "expect-visible",
		PrimitiveType: ir.PrimExpectVisible,
		Regex:         regexp.MustCompile(`(?i)(?:sees?|should\s+see|observes?)\s+(?:the\s+)?["']?([^"'.]+?)["']?\s*[.]?$`),
		Extract: func(text string, m []string) (ir.Primitive, bool) {
			return ir.ExpectVisible{Locator: inferLocator(text, strings.TrimSpace(m[1]))}, true
		},
	}
}

func expectTitlePattern() Pattern {
	return Pattern{
		Name:          "expect-title",
		PrimitiveType: ir.PrimExpectTitle,
		Regex:         regexp.MustCompile(`(?i)page\s+title\s+is\s+["']?([^"'.]+?)["']?\s*[.]?$`),
		Extract: func(text string, m []string) (ir.Primitive, bool) {
			return ir.ExpectTitle{Title: strings.TrimSpace(m[1])}, true
		},
	}
}

func expectURLPattern() Pattern {
	return Pattern{
		Name:          "expect-url",
		PrimitiveType: ir.PrimExpectURL,
		Regex:         regexp.MustCompile(`(?i)url\s+is\s+["']?(/[^\s"']*|https?://\S+)["']?`),
		Extract: func(text string, m []string) (ir.Primitive, bool) {
			return ir.ExpectURL{Pattern: strings.TrimSpace(m[1])}, true
		},
	}
}

func waitForURLPattern() Pattern {
	return Pattern{
		Name:          "wait-for-url",
		PrimitiveType: ir.PrimWaitForURL,
		Regex:         regexp.MustCompile(`(?i)\bwaits?\s+for\s+(?:the\s+)?url\s+["']?(/[^\s"']*|https?://\S+)["']?`),
		Extract: func(text string, m []string) (ir.Primitive, bool) {
			return ir.WaitForURL{Pattern: strings.TrimSpace(m[1])}, true
		},
	}
}

func waitForResponsePattern() Pattern {
	return Pattern{
		Name:          "wait-for-response",
		PrimitiveType: ir.PrimWaitForResponse,
		Regex:         regexp.MustCompile(`(?i)\bwaits?\s+for\s+(?:the\s+)?(?:api\s+)?response\s+(?:from\s+)?["']?(/[^\s"']*|https?://\S+)["']?`),
		Extract: func(text string, m []string) (ir.Primitive, bool) {
			return ir.WaitForResponse{URLPattern: strings.TrimSpace(m[1])}, true
		},
	}
}

func waitForLoadingCompletePattern() Pattern {
	return Pattern{
		Name:          "wait-for-loading-complete",
		PrimitiveType: ir.PrimWaitForLoadingComplete,
		Regex:         regexp.MustCompile(`(?i)\bwaits?\s+for\s+(?:the\s+)?(?:loading|spinner|page)\s+to\s+(?:complete|finish|disappear)`),
		Extract: func(text string, m []string) (ir.Primitive, bool) {
			return ir.WaitForLoadingComplete{}, true
		},
	}
}

func waitForNetworkIdlePattern() Pattern {
	return Pattern{
		Name:          "wait-for-network-idle",
		PrimitiveType: ir.PrimWaitForNetworkIdle,
		Regex:         regexp.MustCompile(`(?i)\bwaits?\s+for\s+(?:the\s+)?network\s+(?:to\s+go\s+)?idle`),
		Extract: func(text string, m []string) (ir.Primitive, bool) {
			return ir.WaitForNetworkIdle{}, true
		},
	}
}

func waitForTimeoutPattern() Pattern {
	return Pattern{
		Name:          "wait-for-timeout",
		PrimitiveType: ir.PrimWaitForTimeout,
		Regex:         regexp.MustCompile(`(?i)\bwaits?\s+(\d+)\s*(?:ms|milliseconds|seconds?|s)\b`),
		Extract: func(text string, m []string) (ir.Primitive, bool) {
			n := atoiOr(m[1], 0)
			if strings.Contains(strings.ToLower(text), "second") {
				n *= 1000
			}
			return ir.WaitForTimeout{MS: n}, true
		},
	}
}

func waitForHiddenPattern() Pattern {
	return Pattern{
		Name:          "wait-for-hidden",
		PrimitiveType: ir.PrimWaitForHidden,
		Regex:         regexp.MustCompile(`(?i)\bwaits?\s+for\s+(?:the\s+)?["']?([^"'.]+?)["']?\s+to\s+(?:be\s+)?(?:hide|disappear|hidden)`),
		Extract: func(text string, m []string) (ir.Primitive, bool) {
			return ir.WaitForHidden{Locator: inferLocator(text, strings.TrimSpace(m[1]))}, true
		},
	}
}

func waitForVisiblePattern() Pattern {
	return Pattern{
		Name:          "wait-for-visible",
		PrimitiveType: ir.PrimWaitForVisible,
		Regex:         regexp.MustCompile(`(?i)\bwaits?\s+for\s+(?:the\s+)?["']?([^"'.]+?)["']?\s+to\s+(?:be\s+)?(?:appear|show|become\s+visible|be\s+visible)`),
		Extract: func(text string, m []string) (ir.Primitive, bool) {
			return ir.WaitForVisible{Locator: inferLocator(text, strings.TrimSpace(m[1]))}, true
		},
	}
}
