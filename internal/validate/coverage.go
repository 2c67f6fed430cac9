package validate

import "github.com/journeyc/compiler/internal/ir"

// StepCoverage is one step's (typically one acceptance criterion's) share
// of the journey total.
type StepCoverage struct {
	Total    int      `json:"total"`
	Mapped   int      `json:"mapped"`
	Blocked  int      `json:"blocked"`
	Percent  float64  `json:"percent"`
	Unmapped []string `json:"unmapped,omitempty"`
}

// Coverage reports how many of a journey's steps compiled to a real
// primitive versus a Blocked placeholder, overall and per step.
type Coverage struct {
	Total    int      `json:"total"`
	Mapped   int      `json:"mapped"`
	Blocked  int      `json:"blocked"`
	Percent  float64  `json:"percent"`
	Unmapped []string `json:"unmapped,omitempty"`

	PerStep map[string]StepCoverage `json:"per_step,omitempty"`
}

// ComputeCoverage walks every step's actions and assertions, counting
// Blocked primitives against the total, with a per-step breakdown keyed by
// step ID (an AC's ID when the journey was built from acceptance criteria).
func ComputeCoverage(j ir.Journey) Coverage {
	c := Coverage{PerStep: map[string]StepCoverage{}}
	for _, s := range j.Steps {
		var sc StepCoverage
		for _, p := range append(append([]ir.Primitive{}, s.Actions...), s.Assertions...) {
			sc.Total++
			if b, ok := p.(ir.Blocked); ok {
				sc.Blocked++
				sc.Unmapped = append(sc.Unmapped, b.SourceText)
				continue
			}
			sc.Mapped++
		}
		if sc.Total > 0 {
			sc.Percent = float64(sc.Mapped) / float64(sc.Total) * 100
		}
		c.PerStep[s.ID] = sc
		c.Total += sc.Total
		c.Mapped += sc.Mapped
		c.Blocked += sc.Blocked
		c.Unmapped = append(c.Unmapped, sc.Unmapped...)
	}
	if c.Total > 0 {
		c.Percent = float64(c.Mapped) / float64(c.Total) * 100
	}
	return c
}
