package pipeline

import (
	"testing"
	"time"

	"github.com/journeyc/compiler/internal/testutil"
)

func TestCanProceedToFollowsStateGraph(t *testing.T) {
	cases := []struct {
		from, to State
		want     bool
	}{
		{StateInitial, StateAnalyzed, true},
		{StateInitial, StatePlanned, false},
		{StateAnalyzed, StatePlanned, true},
		{StatePlanned, StateTested, true},
		{StateTested, StateRefining, true},
		{StateTested, StateCompleted, true},
		{StateRefining, StateTested, true},
		{StateRefining, StateBlocked, true},
		{StateBlocked, StateTested, true},
		{StateBlocked, StateCompleted, false},
		{StateCompleted, StateTested, false},
	}
	for _, c := range cases {
		if got := CanProceedTo(c.from, c.to); got != c.want {
			t.Errorf("CanProceedTo(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestAdvanceRejectsIllegalTransition(t *testing.T) {
	m := NewMachine()
	clock := testutil.NewFrozenClock(time.Unix(0, 0))
	if m.Advance(StatePlanned, clock) {
		t.Fatal("expected illegal transition initial->planned to be rejected")
	}
	if m.Current != StateInitial {
		t.Fatalf("expected state to remain initial, got %v", m.Current)
	}
	if len(m.History) != 0 {
		t.Fatalf("expected no history recorded for a rejected transition, got %d entries", len(m.History))
	}
}

func TestAdvanceRecordsLegalTransition(t *testing.T) {
	m := NewMachine()
	wantTime := time.Unix(100, 0)
	clock := testutil.NewFrozenClock(wantTime)
	if !m.Advance(StateAnalyzed, clock) {
		t.Fatal("expected legal transition to succeed")
	}
	if m.Current != StateAnalyzed {
		t.Fatalf("expected current state analyzed, got %v", m.Current)
	}
	if len(m.History) != 1 || m.History[0].Forced {
		t.Fatalf("expected one unforced transition recorded, got %+v", m.History)
	}
	if !m.History[0].At.Equal(wantTime) {
		t.Fatalf("expected transition timestamp from injected clock")
	}
}

func TestForceAdvanceBypassesGateButIsAudited(t *testing.T) {
	m := NewMachine()
	clock := testutil.NewFrozenClock(time.Unix(200, 0))
	m.ForceAdvance(StateCompleted, "operator override", clock)
	if m.Current != StateCompleted {
		t.Fatalf("expected forced transition to take effect, got %v", m.Current)
	}
	if len(m.History) != 1 || !m.History[0].Forced || m.History[0].Reason != "operator override" {
		t.Fatalf("expected one forced+reasoned transition recorded, got %+v", m.History)
	}
}

func TestStateFileFieldsTrackBlockingAndArtifacts(t *testing.T) {
	m := NewMachine()
	clock := testutil.NewFrozenClock(time.Unix(400, 0))
	m.RecordCommand("heal")
	m.ForceAdvance(StateBlocked, "selector drift", clock)
	if !m.IsBlocked || m.BlockedReason != "selector drift" {
		t.Fatalf("expected blocked state with reason, got %+v", m)
	}
	if m.LastCommand != "heal" {
		t.Fatalf("expected lastCommand heal, got %q", m.LastCommand)
	}
	if !m.LastUpdated.Equal(time.Unix(400, 0)) {
		t.Fatalf("expected lastUpdated from injected clock, got %v", m.LastUpdated)
	}

	m.Advance(StateTested, clock)
	if m.IsBlocked || m.BlockedReason != "" {
		t.Fatalf("expected unblocking to clear the blocked fields, got %+v", m)
	}

	m.AddArtifact("JRN-0001.heal-log.json")
	m.AddArtifact("JRN-0001.heal-log.json")
	if len(m.Artifacts) != 1 {
		t.Fatalf("expected artifact registration to deduplicate, got %v", m.Artifacts)
	}
}

func TestBlockedIsAbsorbingUntilHealed(t *testing.T) {
	m := &Machine{Current: StateBlocked}
	clock := testutil.NewFrozenClock(time.Unix(300, 0))
	if m.Advance(StateCompleted, clock) {
		t.Fatal("blocked must not advance directly to completed")
	}
	if !m.Advance(StateTested, clock) {
		t.Fatal("blocked must be able to return to tested once healed")
	}
}
