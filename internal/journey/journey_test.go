package journey

import "testing"

const simpleJourney = `---
id: JRN-0001
title: User can log in
status: clarified
tier: smoke
scope: login
actor: user
completion:
  - type: text
    value: Welcome
---

## Acceptance Criteria

### AC-1: User can log in

- Navigate to /login
- Click "Sign In" button
- User sees "Welcome"

## Procedural Steps

1. Open the login page (AC-1)
2. Enter valid credentials (AC-1)

## Data/Environment Notes

- Uses seeded fixture account
`

func TestParseContentSimpleJourney(t *testing.T) {
	pj, err := ParseContent(simpleJourney, "simple.md")
	if err != nil {
		t.Fatalf("ParseContent: %v", err)
	}
	if pj.Frontmatter.ID != "JRN-0001" {
		t.Fatalf("unexpected id: %q", pj.Frontmatter.ID)
	}
	if len(pj.AcceptanceCriteria) != 1 {
		t.Fatalf("expected 1 AC entry, got %d", len(pj.AcceptanceCriteria))
	}
	ac := pj.AcceptanceCriteria[0]
	if ac.ID != "AC-1" || len(ac.Bullets) != 3 {
		t.Fatalf("unexpected AC entry: %+v", ac)
	}
	if len(pj.ProceduralSteps) != 2 {
		t.Fatalf("expected 2 procedural steps, got %d", len(pj.ProceduralSteps))
	}
	if pj.ProceduralSteps[0].ACRef != "AC-1" {
		t.Fatalf("expected AC-1 back-reference, got %q", pj.ProceduralSteps[0].ACRef)
	}
	if len(pj.DataNotes) != 1 {
		t.Fatalf("expected 1 data note, got %d", len(pj.DataNotes))
	}
}

func TestParseContentMissingFrontmatterFence(t *testing.T) {
	_, err := ParseContent("no frontmatter here", "bad.md")
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestParseContentInvalidYAML(t *testing.T) {
	text := "---\nid: [unterminated\n---\nbody\n"
	_, err := ParseContent(text, "bad.md")
	if err == nil {
		t.Fatal("expected a YAML parse error")
	}
}

func TestValidateRequiresCompletionWhenClarified(t *testing.T) {
	fm := Frontmatter{
		ID: "JRN-0002", Title: "t", Status: StatusClarified, Tier: "smoke",
		Scope: "s", Actor: "a",
	}
	issues := Validate(fm)
	if len(issues) == 0 {
		t.Fatal("expected a validation issue for missing completion signal")
	}
}

func TestValidateQuarantinedRequiresOwnerReasonAndIssue(t *testing.T) {
	fm := Frontmatter{
		ID: "JRN-0003", Title: "t", Status: StatusQuarantined, Tier: "smoke",
		Scope: "s", Actor: "a",
	}
	issues := Validate(fm)
	if len(issues) < 3 {
		t.Fatalf("expected issues for owner, statusReason, and linkedIssues, got %d: %+v", len(issues), issues)
	}
}

func TestValidateAcceptsWellFormedImplemented(t *testing.T) {
	fm := Frontmatter{
		ID: "JRN-0004", Title: "t", Status: StatusImplemented, Tier: "release",
		Scope: "s", Actor: "a", TestRefs: []string{"tests/foo.spec.ts"},
	}
	issues := Validate(fm)
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %+v", issues)
	}
}

func TestValidateRejectsInvalidTier(t *testing.T) {
	fm := Frontmatter{
		ID: "JRN-0005", Title: "t", Status: StatusDraft, Tier: "urgent",
		Scope: "s", Actor: "a",
	}
	issues := Validate(fm)
	if len(issues) == 0 {
		t.Fatal("expected a schema validation issue for an out-of-enum tier")
	}
}

func TestValidateRejectsMalformedID(t *testing.T) {
	fm := Frontmatter{
		ID: "NOT-VALID", Title: "t", Status: StatusDraft, Tier: "smoke",
		Scope: "s", Actor: "a",
	}
	issues := Validate(fm)
	if len(issues) == 0 {
		t.Fatal("expected an issue for malformed id")
	}
}
