// Package normalizer maps a parsed Journey into the canonical IR Journey:
// acceptance criteria (or, absent those, procedural steps) become IR
// steps, completion signals become IR assertions, and tags are synthesized
// deterministically.
package normalizer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/journeyc/compiler/internal/ir"
	"github.com/journeyc/compiler/internal/journey"
	"github.com/journeyc/compiler/internal/mapper"
)

// Options controls normalization behavior.
type Options struct {
	Mapper mapper.Context
	Strict bool // if true, unmapped sub-steps are dropped instead of kept as blocked
}

// Stats summarizes one normalization run.
type Stats struct {
	TotalSubsteps   int
	MappedSubsteps  int
	BlockedSubsteps int
}

// Result is Normalize's output.
type Result struct {
	Journey      ir.Journey
	BlockedSteps []string
	Warnings     []string
	Stats        Stats
}

// Normalize converts pj into an IR Journey.
func Normalize(pj *journey.ParsedJourney, opts Options) Result {
	fm := pj.Frontmatter
	j := ir.Journey{
		ID:       fm.ID,
		Title:    fm.Title,
		Tier:     ir.Tier(fm.Tier),
		Scope:    fm.Scope,
		Actor:    fm.Actor,
		Revision: fm.Revision,
	}
	if fm.ModuleDependencies != nil {
		j.ModuleDependencies = ir.ModuleDependencies{
			Foundation: fm.ModuleDependencies.Foundation,
			Feature:    fm.ModuleDependencies.Feature,
		}
	}
	if fm.Data != nil {
		j.Data = ir.DataPolicy{Strategy: ir.DataStrategy(fm.Data.Strategy), Cleanup: ir.CleanupPolicy(fm.Data.Cleanup)}
	}
	j.Prerequisites = fm.Prerequisites
	j.VisualRegression = fm.VisualRegression
	j.Accessibility = fm.Accessibility

	res := Result{}

	proceduralByAC := map[string][]journey.ProceduralStep{}
	var unreferenced []journey.ProceduralStep
	for _, ps := range pj.ProceduralSteps {
		if ps.ACRef != "" {
			proceduralByAC[ps.ACRef] = append(proceduralByAC[ps.ACRef], ps)
		} else {
			unreferenced = append(unreferenced, ps)
		}
	}

	if len(pj.AcceptanceCriteria) > 0 {
		for _, ac := range pj.AcceptanceCriteria {
			step := buildStepFromAC(ac, proceduralByAC[ac.ID], opts, &res)
			j.Steps = append(j.Steps, step)
		}
		for _, ps := range unreferenced {
			step := buildStepFromProcedural(ps, opts, &res)
			j.Steps = append(j.Steps, step)
		}
	} else {
		for _, ps := range pj.ProceduralSteps {
			step := buildStepFromProcedural(ps, opts, &res)
			j.Steps = append(j.Steps, step)
		}
	}

	j.Completion = fm.ToCompletionSignals()
	if len(j.Steps) > 0 {
		last := &j.Steps[len(j.Steps)-1]
		for _, sig := range j.Completion {
			last.Assertions = append(last.Assertions, completionToAssertion(sig))
		}
	}

	j.Tags = synthesizeTags(fm)

	res.Journey = j
	return res
}

func buildStepFromAC(ac journey.ACEntry, extra []journey.ProceduralStep, opts Options, res *Result) ir.Step {
	step := ir.Step{
		ID:          ac.ID,
		Description: ac.Title,
	}
	for _, bullet := range ac.Bullets {
		addMapped(&step, bullet, opts, res)
	}
	for _, ps := range extra {
		addMapped(&step, ps.Text, opts, res)
	}
	return step
}

func buildStepFromProcedural(ps journey.ProceduralStep, opts Options, res *Result) ir.Step {
	step := ir.Step{
		ID:          fmt.Sprintf("STEP-%d", ps.Index),
		Description: ps.Text,
	}
	addMapped(&step, ps.Text, opts, res)
	return step
}

func addMapped(step *ir.Step, text string, opts Options, res *Result) {
	res.Stats.TotalSubsteps++
	mr := mapper.MapStep(text, opts.Mapper)
	res.Warnings = append(res.Warnings, mr.Warnings...)

	if mr.MatchSource == mapper.SourceNone {
		res.Stats.BlockedSubsteps++
		res.BlockedSteps = append(res.BlockedSteps, text)
		if opts.Strict {
			return
		}
		step.Actions = append(step.Actions, mr.Primitive)
		return
	}

	res.Stats.MappedSubsteps++
	if mr.IsAssertion {
		step.Assertions = append(step.Assertions, mr.Primitive)
	} else {
		step.Actions = append(step.Actions, mr.Primitive)
	}
}

var nonWord = regexp.MustCompile(`[^a-zA-Z0-9]+`)

func slugify(s string) string {
	s = nonWord.ReplaceAllString(s, "-")
	return strings.Trim(strings.ToLower(s), "-")
}

// completionToAssertion converts one frontmatter-declared completion
// signal into the IR assertion it implies:
//   - url: exact match -> expectURL(literal string, which the runner
//     matches exactly); inexact -> unanchored escaped regex so any URL
//     containing the value passes
//   - toast: expectToast, subtype inferred from message keywords when the
//     signal doesn't name one explicitly
//   - element/text: expectVisible or expectNotVisible depending on
//     options["state"]
//   - title: expectTitle
//   - api: waitForResponse
func completionToAssertion(sig ir.CompletionSignal) ir.Primitive {
	switch sig.Type {
	case ir.CompletionURL:
		if sig.Options["exact"] == "true" {
			return ir.ExpectURL{Pattern: sig.Value}
		}
		return ir.ExpectURL{Pattern: ".*" + regexp.QuoteMeta(sig.Value)}
	case ir.CompletionToast:
		toastType := sig.Options["toastType"]
		if toastType == "" {
			toastType = inferToastType(sig.Value)
		}
		return ir.ExpectToast{ToastType: toastType, Message: sig.Value}
	case ir.CompletionElement, ir.CompletionText:
		loc := ir.Locator{Strategy: ir.StrategyText, Value: sig.Value}
		if sig.Options["state"] == "hidden" {
			return ir.ExpectNotVisible{Locator: loc}
		}
		return ir.ExpectVisible{Locator: loc}
	case ir.CompletionTitle:
		return ir.ExpectTitle{Title: sig.Value}
	case ir.CompletionAPI:
		return ir.WaitForResponse{URLPattern: sig.Value}
	default:
		return ir.Blocked{Reason: "unknown completion signal type: " + string(sig.Type), SourceText: sig.Value}
	}
}

func inferToastType(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "error"), strings.Contains(lower, "fail"):
		return "error"
	case strings.Contains(lower, "warn"):
		return "warning"
	default:
		return "success"
	}
}

// synthesizeTags deterministically builds the journey's standard tag set
// plus any author-supplied tags, in the order: @artk, @journey, @<id>,
// @tier-<tier>, @scope-<scope>, @actor-<actor>, author tags.
func synthesizeTags(fm journey.Frontmatter) []string {
	tags := []string{
		"@artk",
		"@journey",
		"@" + fm.ID,
		"@tier-" + fm.Tier,
		"@scope-" + slugify(fm.Scope),
		"@actor-" + slugify(fm.Actor),
	}
	for _, t := range fm.Tags {
		if !strings.HasPrefix(t, "@") {
			t = "@" + t
		}
		tags = append(tags, t)
	}
	return tags
}
