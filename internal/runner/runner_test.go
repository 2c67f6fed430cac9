package runner

import "testing"

func TestAllTestsFlattensNestedSuites(t *testing.T) {
	r := Report{
		Suites: []Suite{
			{
				Title: "login.spec.ts",
				Tests: []TestResult{{Title: "smoke test", Status: "passed"}},
				Suites: []Suite{
					{
						Title: "nested describe",
						Tests: []TestResult{
							{Title: "can log in", Status: "failed", Errors: []string{"boom"}},
							{Title: "can log out", Status: "passed"},
						},
					},
				},
			},
		},
	}
	all := r.AllTests()
	if len(all) != 3 {
		t.Fatalf("expected 3 flattened tests, got %d", len(all))
	}
	if all[0].Title != "smoke test" || all[1].Title != "can log in" || all[2].Title != "can log out" {
		t.Fatalf("expected depth-first order, got %+v", all)
	}
}

func TestFullTitleOrTitleFallsBack(t *testing.T) {
	withFull := TestResult{Title: "short", FullTitle: "suite > short"}
	if withFull.FullTitleOrTitle() != "suite > short" {
		t.Fatalf("expected FullTitle to win, got %q", withFull.FullTitleOrTitle())
	}
	withoutFull := TestResult{Title: "short"}
	if withoutFull.FullTitleOrTitle() != "short" {
		t.Fatalf("expected fallback to Title, got %q", withoutFull.FullTitleOrTitle())
	}
}
