package gacha

import (
	"math"
	"testing"
)

func testPool() *PoolConfig {
	return &PoolConfig{
		Game: "test", Pool: "character",
		BaseRate: 0.006, SoftPityStart: 73, RampRate: 0.06, HardPity: 90,
		HasFiftyFifty: true, UpRate: 0.5,
		Mechanic: MechanicStreakBonus, StreakLimit: 3, BonusRate: 0.00018,
		Trials: 10000, MaxTrials: 100000, MaxPullsPerTrial: 10000,
	}
}

func TestHitProbabilityRamp(t *testing.T) {
	c := testPool()
	cases := []struct {
		pity int
		want float64
	}{
		{0, 0.006},
		{72, 0.006},
		{73, 0.066},
		{74, 0.126},
		{88, 0.966},
		{89, 1},
	}
	for _, tc := range cases {
		got := c.HitProbability(PullState{Pity: tc.pity})
		if math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("pity %d: got %v, want %v", tc.pity, got, tc.want)
		}
	}
}

func TestHitProbabilityClamped(t *testing.T) {
	c := &PoolConfig{
		BaseRate: 0.5, SoftPityStart: 1, RampRate: 0.9, HardPity: 10,
	}
	if got := c.HitProbability(PullState{Pity: 5}); got != 1 {
		t.Errorf("ramped probability not clamped: %v", got)
	}
}

func TestUpChance(t *testing.T) {
	c := testPool()
	blend := c.BonusRate + (1-c.BonusRate)*c.UpRate

	if got := c.UpChance(PullState{}); got != blend {
		t.Errorf("base up chance: got %v, want %v", got, blend)
	}
	if got := c.UpChance(PullState{Guaranteed: true}); got != 1 {
		t.Errorf("guaranteed up chance: got %v, want 1", got)
	}
	if got := c.UpChance(PullState{Counter: c.StreakLimit}); got != 1 {
		t.Errorf("streak at limit: got %v, want 1", got)
	}

	c.HasFiftyFifty = false
	if got := c.UpChance(PullState{}); got != 1 {
		t.Errorf("no fifty-fifty: got %v, want 1", got)
	}
}

func TestUpChancePoints(t *testing.T) {
	c := testPool()
	c.Mechanic = MechanicPointsGuarantee
	c.PointsTarget = 2
	if got := c.UpChance(PullState{Counter: 1}); got != c.UpRate {
		t.Errorf("below target: got %v, want %v", got, c.UpRate)
	}
	if got := c.UpChance(PullState{Counter: 2}); got != 1 {
		t.Errorf("at target: got %v, want 1", got)
	}
}

func TestTransitions(t *testing.T) {
	c := testPool()

	s := c.AdvanceMiss(PullState{Pity: 5, Counter: 1})
	if s.Pity != 6 || s.Guaranteed || s.Counter != 1 {
		t.Errorf("miss: got %+v", s)
	}

	s = c.AdvanceLoss(PullState{Pity: 40, Counter: 1})
	if s.Pity != 0 || !s.Guaranteed || s.Counter != 2 {
		t.Errorf("loss: got %+v", s)
	}

	// The counter never runs past its cap.
	s = c.AdvanceLoss(PullState{Counter: c.StreakLimit})
	if s.Counter != c.StreakLimit {
		t.Errorf("loss at cap: counter %d", s.Counter)
	}

	s = c.AdvanceWin(PullState{Pity: 80, Guaranteed: true, Counter: 3})
	if s != (PullState{}) {
		t.Errorf("win did not reset: got %+v", s)
	}
}

func TestAdvance(t *testing.T) {
	c := testPool()

	s, won := c.Advance(PullState{Pity: 3}, false, 0)
	if won || s.Pity != 4 {
		t.Errorf("miss outcome: won=%v state=%+v", won, s)
	}

	s, won = c.Advance(PullState{Pity: 89}, true, 0.0)
	if !won || s != (PullState{}) {
		t.Errorf("win outcome: won=%v state=%+v", won, s)
	}

	s, won = c.Advance(PullState{Pity: 89}, true, 0.999)
	if won || !s.Guaranteed || s.Counter != 1 {
		t.Errorf("loss outcome: won=%v state=%+v", won, s)
	}
}

func TestNormalize(t *testing.T) {
	c := testPool()

	s := c.Normalize(PullState{Counter: 10})
	if s.Counter != c.StreakLimit || !s.Guaranteed {
		t.Errorf("over-cap counter: got %+v", s)
	}

	c.Mechanic = MechanicNone
	s = c.Normalize(PullState{Counter: 2})
	if s.Counter != 0 {
		t.Errorf("counter survived mechanic=none: got %+v", s)
	}
}

func TestTrialRNGDeterminism(t *testing.T) {
	a := NewTrialRNG(42, 7)
	b := NewTrialRNG(42, 7)
	for i := 0; i < 100; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("trial streams diverged at draw %d", i)
		}
	}
	if NewTrialRNG(42, 0).Float64() == NewTrialRNG(42, 1).Float64() {
		t.Error("distinct trials produced the same first draw")
	}
}
