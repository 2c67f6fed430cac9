package trace

import (
	"testing"
	"time"

	"github.com/journeyc/compiler/internal/heal"
	"github.com/journeyc/compiler/internal/pipeline"
	"github.com/journeyc/compiler/internal/testutil"
)

func TestAssembleOrdersTransitionsAndHealAttemptsChronologically(t *testing.T) {
	m := pipeline.NewMachine()
	m.Advance(pipeline.StateAnalyzed, testutil.NewFrozenClock(time.Unix(0, 0)))
	m.Advance(pipeline.StatePlanned, testutil.NewFrozenClock(time.Unix(10, 0)))
	m.Advance(pipeline.StateTested, testutil.NewFrozenClock(time.Unix(20, 0)))
	m.Advance(pipeline.StateRefining, testutil.NewFrozenClock(time.Unix(30, 0)))

	log := &heal.Log{
		JourneyID: "JRN-0001",
		Outcome:   heal.OutcomeSuccess,
		Attempts: []heal.Attempt{
			{AttemptNumber: 1, FixType: "selector-refine", At: time.Unix(35, 0), Applied: true, VerifyPassed: true},
		},
	}
	m.Advance(pipeline.StateTested, testutil.NewFrozenClock(time.Unix(40, 0)))

	result := Assemble("JRN-0001", m, log)
	if result.Stats.Transitions != 5 || result.Stats.HealAttempts != 1 {
		t.Fatalf("unexpected stats: %+v", result.Stats)
	}
	if len(result.Timeline) != 6 {
		t.Fatalf("expected 6 merged timeline events, got %d", len(result.Timeline))
	}
	// The heal attempt at t=35 must sort between the refining (t=30) and
	// the second tested (t=40) transitions.
	if result.Timeline[4].Kind != EventHealAttempt {
		t.Fatalf("expected heal attempt at position 4, got %+v", result.Timeline[4])
	}
	if result.Timeline[3].Transition == nil || result.Timeline[3].Transition.To != pipeline.StateRefining {
		t.Fatalf("expected refining transition immediately before the heal attempt, got %+v", result.Timeline[3])
	}
	if result.Timeline[5].Transition == nil || result.Timeline[5].Transition.To != pipeline.StateTested {
		t.Fatalf("expected final tested transition last, got %+v", result.Timeline[5])
	}
	for i, ev := range result.Timeline {
		if ev.Seq != i+1 {
			t.Fatalf("expected 1-based sequential Seq, got %+v at index %d", ev, i)
		}
	}
}

func TestAssembleWithNilLogOmitsHealStats(t *testing.T) {
	m := pipeline.NewMachine()
	m.Advance(pipeline.StateAnalyzed, testutil.NewFrozenClock(time.Unix(0, 0)))

	result := Assemble("JRN-0002", m, nil)
	if result.Stats.HealAttempts != 0 || result.Stats.Outcome != "" {
		t.Fatalf("expected zero-value heal stats with a nil log, got %+v", result.Stats)
	}
	if len(result.Timeline) != 1 || result.Timeline[0].Kind != EventTransition {
		t.Fatalf("expected a single transition event, got %+v", result.Timeline)
	}
}
