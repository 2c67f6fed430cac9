package normalizer

import (
	"testing"

	"github.com/journeyc/compiler/internal/catalog"
	"github.com/journeyc/compiler/internal/glossary"
	"github.com/journeyc/compiler/internal/ir"
	"github.com/journeyc/compiler/internal/journey"
	"github.com/journeyc/compiler/internal/mapper"
)

func baseOptions() Options {
	return Options{Mapper: mapper.Context{
		Glossary: glossary.Default(),
		Catalog:  catalog.Default(),
	}}
}

func TestNormalizeSimpleClickJourney(t *testing.T) {
	pj := &journey.ParsedJourney{
		Frontmatter: journey.Frontmatter{
			ID: "JRN-0001", Title: "User can log in", Status: journey.StatusClarified,
			Tier: "smoke", Scope: "login", Actor: "user",
		},
		AcceptanceCriteria: []journey.ACEntry{
			{
				ID:    "AC-1",
				Title: "User can log in",
				Bullets: []string{
					"Navigate to /login",
					`Click "Sign In" button`,
					`User sees "Welcome"`,
				},
			},
		},
	}

	res := Normalize(pj, baseOptions())
	if len(res.BlockedSteps) != 0 {
		t.Fatalf("expected zero blocked steps, got %v", res.BlockedSteps)
	}
	if len(res.Journey.Steps) != 1 {
		t.Fatalf("expected 1 step, got %d", len(res.Journey.Steps))
	}
	step := res.Journey.Steps[0]
	if len(step.Actions) != 2 {
		t.Fatalf("expected 2 actions, got %d: %+v", len(step.Actions), step.Actions)
	}
	if _, ok := step.Actions[0].(ir.Goto); !ok {
		t.Fatalf("expected first action to be Goto, got %T", step.Actions[0])
	}
	if _, ok := step.Actions[1].(ir.Click); !ok {
		t.Fatalf("expected second action to be Click, got %T", step.Actions[1])
	}
	if len(step.Assertions) != 1 {
		t.Fatalf("expected 1 assertion, got %d", len(step.Assertions))
	}

	for _, want := range []string{"@artk", "@journey", "@JRN-0001", "@tier-smoke", "@scope-login", "@actor-user"} {
		found := false
		for _, tag := range res.Journey.Tags {
			if tag == want {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected tag %q in %v", want, res.Journey.Tags)
		}
	}
}

func TestNormalizeAmbiguousStepBecomesBlocked(t *testing.T) {
	pj := &journey.ParsedJourney{
		Frontmatter: journey.Frontmatter{
			ID: "JRN-0002", Title: "Ambiguous", Status: journey.StatusDraft,
			Tier: "smoke", Scope: "misc", Actor: "user",
		},
		AcceptanceCriteria: []journey.ACEntry{
			{ID: "AC-1", Title: "Ambiguous", Bullets: []string{"Do the thing"}},
		},
	}

	res := Normalize(pj, baseOptions())
	if len(res.BlockedSteps) != 1 {
		t.Fatalf("expected 1 blocked step, got %d", len(res.BlockedSteps))
	}
	if res.Stats.BlockedSubsteps != 1 || res.Stats.MappedSubsteps != 0 {
		t.Fatalf("unexpected stats: %+v", res.Stats)
	}
	step := res.Journey.Steps[0]
	if len(step.Actions) != 1 {
		t.Fatalf("expected the blocked primitive kept as an action, got %+v", step.Actions)
	}
	if _, ok := step.Actions[0].(ir.Blocked); !ok {
		t.Fatalf("expected ir.Blocked, got %T", step.Actions[0])
	}
}

func TestNormalizeStrictDropsBlockedSteps(t *testing.T) {
	pj := &journey.ParsedJourney{
		Frontmatter: journey.Frontmatter{
			ID: "JRN-0003", Title: "Ambiguous", Status: journey.StatusDraft,
			Tier: "smoke", Scope: "misc", Actor: "user",
		},
		AcceptanceCriteria: []journey.ACEntry{
			{ID: "AC-1", Title: "Ambiguous", Bullets: []string{"Do the thing"}},
		},
	}
	opts := baseOptions()
	opts.Strict = true
	res := Normalize(pj, opts)
	if len(res.Journey.Steps[0].Actions) != 0 {
		t.Fatalf("expected strict mode to drop the blocked action, got %+v", res.Journey.Steps[0].Actions)
	}
	if len(res.BlockedSteps) != 1 {
		t.Fatalf("expected blocked step still reported, got %v", res.BlockedSteps)
	}
}

func TestNormalizeFallsBackToProceduralStepsWithoutAC(t *testing.T) {
	pj := &journey.ParsedJourney{
		Frontmatter: journey.Frontmatter{
			ID: "JRN-0004", Title: "No AC", Status: journey.StatusDraft,
			Tier: "smoke", Scope: "misc", Actor: "user",
		},
		ProceduralSteps: []journey.ProceduralStep{
			{Index: 1, Text: "Navigate to /home"},
			{Index: 2, Text: `Click "Continue"`},
		},
	}
	res := Normalize(pj, baseOptions())
	if len(res.Journey.Steps) != 2 {
		t.Fatalf("expected one IR step per procedural step, got %d", len(res.Journey.Steps))
	}
}

func TestCompletionSignalsAppendToLastStep(t *testing.T) {
	pj := &journey.ParsedJourney{
		Frontmatter: journey.Frontmatter{
			ID: "JRN-0005", Title: "Completion", Status: journey.StatusClarified,
			Tier: "smoke", Scope: "misc", Actor: "user",
			Completion: []journey.CompletionSignalYAML{
				{Type: "url", Value: "/dashboard"},
				{Type: "title", Value: "Dashboard"},
			},
		},
		AcceptanceCriteria: []journey.ACEntry{
			{ID: "AC-1", Title: "Logs in", Bullets: []string{"Navigate to /login"}},
		},
	}
	res := Normalize(pj, baseOptions())
	last := res.Journey.Steps[len(res.Journey.Steps)-1]
	if len(last.Assertions) != 2 {
		t.Fatalf("expected 2 completion assertions appended, got %d", len(last.Assertions))
	}
	if _, ok := last.Assertions[0].(ir.ExpectURL); !ok {
		t.Fatalf("expected ExpectURL, got %T", last.Assertions[0])
	}
	if _, ok := last.Assertions[1].(ir.ExpectTitle); !ok {
		t.Fatalf("expected ExpectTitle, got %T", last.Assertions[1])
	}
}
