// Package mapper implements the step mapper waterfall: hints → normalize →
// pattern → LLKB → fuzzy → hint-only construction → blocked. Each stage is
// a strategy with a uniform "try(text, ctx) -> (result, matched)" shape so
// a new stage (e.g. an LLM bridge) can be added without touching the
// existing ones.
package mapper

import (
	"regexp"
	"strings"

	"github.com/journeyc/compiler/internal/catalog"
	"github.com/journeyc/compiler/internal/fuzzy"
	"github.com/journeyc/compiler/internal/glossary"
	"github.com/journeyc/compiler/internal/hints"
	"github.com/journeyc/compiler/internal/ir"
	"github.com/journeyc/compiler/internal/llkb"
)

// MatchSource identifies which waterfall stage produced a MatchResult.
type MatchSource string

const (
	SourcePattern MatchSource = "pattern"
	SourceLLKB    MatchSource = "llkb"
	SourceHints   MatchSource = "hints"
	SourceNone    MatchSource = "none"
)

// MatchResult is the mapper's verdict for one step-text string.
type MatchResult struct {
	Primitive      ir.Primitive
	MatchSource    MatchSource
	IsAssertion    bool
	LLKBPatternID  string
	LLKBConfidence float64
	Message        string
	Warnings       []string
}

// Context bundles the dependencies the mapper waterfall consults. A nil
// field disables that stage (e.g. a nil LLKB store skips the LLKB lookup
// entirely rather than erroring).
type Context struct {
	Glossary *glossary.Glossary
	Catalog  *catalog.Catalog
	LLKB     *llkb.Store
	Fuzzy    *fuzzy.Matcher

	// MinLLKBConfidence gates the LLKB stage; defaults to 0.7 if zero.
	MinLLKBConfidence float64
	// FuzzyOptions overrides the fuzzy matcher's thresholds; zero value
	// uses fuzzy.DefaultOptions().
	FuzzyOptions fuzzy.Options

	// JourneyID, when non-empty, is recorded against successful LLKB
	// writes and failed mappings for provenance. Recording itself is the
	// caller's responsibility (see RecordOutcome) — MapStep never writes.
	JourneyID string
}

// MapStep runs the full waterfall against one step's source text.
func MapStep(text string, ctx Context) MatchResult {
	h, clean, hintWarnings := hints.ParseHints(text)

	normalized := clean
	if ctx.Glossary != nil {
		if gm, ok := ctx.Glossary.LookupGlossary(clean); ok {
			prim := ir.CallModule{Module: gm.Module, Method: gm.Method}
			return applyHints(MatchResult{
				Primitive:   prim,
				MatchSource: SourcePattern,
				Warnings:    hintWarnings,
			}, h)
		}
		normalized = ctx.Glossary.NormalizeStepText(clean)
	}

	if ctx.Catalog != nil {
		if m, ok := ctx.Catalog.MatchPattern(normalized); ok {
			return applyHints(MatchResult{
				Primitive:   m.Primitive,
				MatchSource: SourcePattern,
				IsAssertion: m.Pattern.PrimitiveType.IsAssertion(),
				Warnings:    hintWarnings,
			}, h)
		}
	}

	minConf := ctx.MinLLKBConfidence
	if minConf == 0 {
		minConf = 0.7
	}
	if ctx.LLKB != nil {
		if p, err := ctx.LLKB.MatchLLKBPattern(normalized, llkbMatchOptions(minConf)); err == nil && p != nil {
			prim := decodePrimitive(p, normalized)
			if prim != nil {
				return applyHints(MatchResult{
					Primitive:      prim,
					MatchSource:    SourceLLKB,
					IsAssertion:    prim.Kind().IsAssertion(),
					LLKBPatternID:  p.ID,
					LLKBConfidence: p.Confidence,
					Warnings:       hintWarnings,
				}, h)
			}
		}
	}

	if ctx.Fuzzy != nil {
		opts := ctx.FuzzyOptions
		if opts == (fuzzy.Options{}) {
			opts = fuzzy.DefaultOptions()
		}
		if fm, ok := ctx.Fuzzy.FuzzyMatch(normalized, opts); ok && fm.Primitive != nil {
			return applyHints(MatchResult{
				Primitive:   fm.Primitive,
				MatchSource: SourcePattern,
				IsAssertion: fm.Primitive.Kind().IsAssertion(),
				Warnings:    hintWarnings,
				Message:     "matched via fuzzy similarity to: " + fm.Example.Text,
			}, h)
		}
	}

	if h.HasAny() {
		if prim, isAssertion, ok := constructFromHints(h, normalized); ok {
			return MatchResult{
				Primitive:   prim,
				MatchSource: SourceHints,
				IsAssertion: isAssertion,
				Warnings:    hintWarnings,
			}
		}
	}

	return MatchResult{
		Primitive:   ir.Blocked{Reason: "no pattern, LLKB entry, or fuzzy match above threshold", SourceText: text},
		MatchSource: SourceNone,
		Warnings:    hintWarnings,
		Message:     "unable to compile step",
	}
}

func llkbMatchOptions(minConf float64) llkb.MatchOptions {
	return llkb.MatchOptions{MinConfidence: minConf}
}

// applyHints overrides or augments the primitive's locator/behavior from
// parsed hints, when the matched primitive type supports them.
func applyHints(r MatchResult, h hints.Hints) MatchResult {
	if !h.HasAny() {
		return r
	}
	override := locatorFromHints(h)
	if override == nil {
		return r
	}
	r.Primitive = withLocator(r.Primitive, *override)
	return r
}

func locatorFromHints(h hints.Hints) *ir.Locator {
	switch {
	case h.TestID != "":
		return &ir.Locator{Strategy: ir.StrategyTestID, Value: h.TestID}
	case h.Role != "":
		opts := &ir.LocatorOptions{}
		if h.Exact != nil {
			opts.Exact = *h.Exact
		}
		if h.Level != nil {
			opts.Level = *h.Level
		}
		return &ir.Locator{Strategy: ir.StrategyRole, Value: h.Role, Options: opts}
	case h.Label != "":
		return &ir.Locator{Strategy: ir.StrategyLabel, Value: h.Label}
	case h.Text != "":
		return &ir.Locator{Strategy: ir.StrategyText, Value: h.Text}
	default:
		return nil
	}
}

// withLocator rewrites the locator-bearing field of prim, leaving other
// primitive kinds untouched.
func withLocator(prim ir.Primitive, loc ir.Locator) ir.Primitive {
	switch p := prim.(type) {
	case ir.Click:
		p.Locator = loc
		return p
	case ir.DblClick:
		p.Locator = loc
		return p
	case ir.RightClick:
		p.Locator = loc
		return p
	case ir.Hover:
		p.Locator = loc
		return p
	case ir.Focus:
		p.Locator = loc
		return p
	case ir.Clear:
		p.Locator = loc
		return p
	case ir.Fill:
		p.Locator = loc
		return p
	case ir.Select:
		p.Locator = loc
		return p
	case ir.Check:
		p.Locator = loc
		return p
	case ir.Uncheck:
		p.Locator = loc
		return p
	case ir.Upload:
		p.Locator = loc
		return p
	case ir.WaitForVisible:
		p.Locator = loc
		return p
	case ir.WaitForHidden:
		p.Locator = loc
		return p
	case ir.ExpectVisible:
		p.Locator = loc
		return p
	case ir.ExpectNotVisible:
		p.Locator = loc
		return p
	case ir.ExpectHidden:
		p.Locator = loc
		return p
	case ir.ExpectEnabled:
		p.Locator = loc
		return p
	case ir.ExpectDisabled:
		p.Locator = loc
		return p
	case ir.ExpectChecked:
		p.Locator = loc
		return p
	case ir.ExpectText:
		p.Locator = loc
		return p
	case ir.ExpectValue:
		p.Locator = loc
		return p
	case ir.ExpectContainsText:
		p.Locator = loc
		return p
	case ir.ExpectCount:
		p.Locator = loc
		return p
	default:
		return prim
	}
}

var verbWord = regexp.MustCompile(`(?i)^\s*(\w+)`)

// constructFromHints synthesizes a primitive purely from hint locators and a
// verb heuristic on the clean text, used when every upstream strategy
// missed but the author supplied explicit locator hints.
func constructFromHints(h hints.Hints, cleanText string) (ir.Primitive, bool, bool) {
	loc := locatorFromHints(h)
	if loc == nil {
		return nil, false, false
	}
	verb := strings.ToLower(verbWord.FindString(cleanText))
	verb = strings.TrimSpace(verb)
	switch {
	case strings.HasPrefix(verb, "click"), strings.HasPrefix(verb, "tap"), strings.HasPrefix(verb, "press"):
		return ir.Click{Locator: *loc}, false, true
	case strings.HasPrefix(verb, "fill"), strings.HasPrefix(verb, "type"), strings.HasPrefix(verb, "enter"):
		return ir.Fill{Locator: *loc, Value: ir.Literal("")}, false, true
	case strings.HasPrefix(verb, "select"), strings.HasPrefix(verb, "choose"):
		return ir.Select{Locator: *loc, Option: ir.Literal("")}, false, true
	case strings.HasPrefix(verb, "check"):
		return ir.Check{Locator: *loc}, false, true
	case strings.HasPrefix(verb, "hover"):
		return ir.Hover{Locator: *loc}, false, true
	case strings.HasPrefix(verb, "see"), strings.HasPrefix(verb, "expect"), strings.HasPrefix(verb, "verif"):
		return ir.ExpectVisible{Locator: *loc}, true, true
	default:
		return ir.Click{Locator: *loc}, false, true
	}
}

// decodePrimitive reconstructs the primitive an LLKB pattern learned. The
// stored payload is authoritative: a hit reproduces the exact locator and
// value that compiled, not a stand-in derived from the new step's text.
// Records written before payloads were stored fall back to a generic
// reconstruction from the primitive's type tag; kinds with no generic form
// (e.g. blocked) yield nil, letting the caller continue the waterfall.
func decodePrimitive(p *llkb.LearnedPattern, normalizedText string) ir.Primitive {
	if prim, ok := p.Primitive(); ok {
		return prim
	}
	t := ir.PrimitiveType(p.MappedPrimitive)
	loc := ir.Locator{Strategy: ir.StrategyText, Value: normalizedText}
	switch t {
	case ir.PrimClick:
		return ir.Click{Locator: loc}
	case ir.PrimFill:
		return ir.Fill{Locator: loc, Value: ir.Literal("")}
	case ir.PrimSelect:
		return ir.Select{Locator: loc, Option: ir.Literal("")}
	case ir.PrimCheck:
		return ir.Check{Locator: loc}
	case ir.PrimUncheck:
		return ir.Uncheck{Locator: loc}
	case ir.PrimHover:
		return ir.Hover{Locator: loc}
	case ir.PrimExpectVisible:
		return ir.ExpectVisible{Locator: loc}
	case ir.PrimExpectNotVisible:
		return ir.ExpectNotVisible{Locator: loc}
	case ir.PrimCallModule:
		return ir.CallModule{Module: "unknown", Method: "unknown"}
	default:
		return nil
	}
}

// RecordOutcome feeds a successful or failed mapping back into the LLKB
// store. Callers invoke this after MapStep when ctx.JourneyID is
// non-empty; MapStep itself never writes.
func RecordOutcome(store *llkb.Store, sourceText, normalizedText string, result MatchResult, journeyID string) error {
	if store == nil || journeyID == "" {
		return nil
	}
	if result.MatchSource == SourceNone {
		_, err := store.RecordPatternFailure(normalizedText, journeyID)
		return err
	}
	_, err := store.RecordPatternSuccess(sourceText, normalizedText, result.Primitive, journeyID)
	return err
}
