// Package trace assembles a single chronological timeline out of a
// journey's pipeline stage transitions and heal attempts: a discriminated
// per-kind event list, ordered by sequence, plus summary stats, so a run's
// history can be replayed and inspected after the fact.
package trace

import (
	"sort"

	"github.com/journeyc/compiler/internal/heal"
	"github.com/journeyc/compiler/internal/pipeline"
)

// EventKind discriminates a timeline entry.
type EventKind string

const (
	EventTransition  EventKind = "transition"
	EventHealAttempt EventKind = "heal_attempt"
)

// Event is one timeline entry: either a pipeline stage transition or a
// heal attempt, never both.
type Event struct {
	Seq        int                  `json:"seq"`
	Kind       EventKind            `json:"kind"`
	Transition *pipeline.Transition `json:"transition,omitempty"`
	Attempt    *heal.Attempt        `json:"heal_attempt,omitempty"`
}

// Stats summarizes a Result's timeline.
type Stats struct {
	TotalEvents  int            `json:"total_events"`
	Transitions  int            `json:"transitions"`
	HealAttempts int            `json:"heal_attempts"`
	FinalState   pipeline.State `json:"final_state"`
	Outcome      heal.Outcome   `json:"outcome,omitempty"`
}

// Result is the complete assembled trace for one journey.
type Result struct {
	JourneyID string  `json:"journey_id"`
	Timeline  []Event `json:"timeline"`
	Stats     Stats   `json:"stats"`
}

// Assemble merges a pipeline Machine's transition history with a heal
// Log's attempts into one chronological timeline. log may be nil when no
// healing ever ran for this journey. Ties between a transition and an
// attempt recorded at the identical instant keep the transition first,
// since a transition into "refining"/"blocked" always brackets the heal
// attempts it provoked.
func Assemble(journeyID string, m *pipeline.Machine, log *heal.Log) Result {
	type merged struct {
		at   int64
		kind EventKind
		idx  int
	}
	var items []merged
	for i, t := range m.History {
		items = append(items, merged{at: t.At.UnixNano(), kind: EventTransition, idx: i})
	}
	if log != nil {
		for i, a := range log.Attempts {
			items = append(items, merged{at: a.At.UnixNano(), kind: EventHealAttempt, idx: i})
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].at != items[j].at {
			return items[i].at < items[j].at
		}
		return items[i].kind == EventTransition && items[j].kind != EventTransition
	})

	timeline := make([]Event, 0, len(items))
	for seq, it := range items {
		ev := Event{Seq: seq + 1, Kind: it.kind}
		switch it.kind {
		case EventTransition:
			tr := m.History[it.idx]
			ev.Transition = &tr
		case EventHealAttempt:
			a := log.Attempts[it.idx]
			ev.Attempt = &a
		}
		timeline = append(timeline, ev)
	}

	stats := Stats{
		TotalEvents: len(timeline),
		Transitions: len(m.History),
		FinalState:  m.Current,
	}
	if log != nil {
		stats.HealAttempts = len(log.Attempts)
		stats.Outcome = log.Outcome
	}

	return Result{JourneyID: journeyID, Timeline: timeline, Stats: stats}
}
