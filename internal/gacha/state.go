package gacha

// PullState is the mutable per-trial (or per-DP-node) record the transition
// rules act on. Counter is the streak counter under streak_bonus and the
// point counter under points_guarantee; zero and ignored otherwise.
//
// Invariant: a counter at or past its threshold implies Guaranteed. The
// transition functions keep the two consistent; callers never patch it up.
type PullState struct {
	Pity       int
	Guaranteed bool
	Counter    int
}

// ResetState is the canonical just-succeeded state: pity zero, no
// guarantee, counters cleared. Multi-target expectation composition relies
// on a success producing exactly this state.
func ResetState() PullState { return PullState{} }

// Normalize clamps the counter to the mechanic's cap and enforces the
// counter/guarantee invariant on a caller-supplied state.
func (c *PoolConfig) Normalize(s PullState) PullState {
	if cap := c.CounterCap(); cap > 0 {
		if s.Counter > cap {
			s.Counter = cap
		}
		if s.Counter >= cap {
			s.Guaranteed = true
		}
	} else {
		s.Counter = 0
	}
	return s
}

// HitProbability returns the chance that the next pull yields an item of
// the target rarity, given accumulated pity.
func (c *PoolConfig) HitProbability(s PullState) float64 {
	if s.Pity >= c.HardPity-1 {
		return 1 // the pull that would bring pity to HardPity is forced
	}
	if s.Pity < c.SoftPityStart {
		return c.BaseRate
	}
	p := c.BaseRate + c.RampRate*float64(s.Pity-c.SoftPityStart+1)
	if p > 1 {
		p = 1
	}
	return p
}

// UpChance returns the probability that a hit from state s is the featured
// item.
func (c *PoolConfig) UpChance(s PullState) float64 {
	if !c.HasFiftyFifty || s.Guaranteed {
		return 1
	}
	switch c.Mechanic {
	case MechanicStreakBonus:
		if s.Counter >= c.StreakLimit {
			return 1
		}
		return c.BonusRate + (1-c.BonusRate)*c.UpRate
	case MechanicPointsGuarantee:
		if s.Counter >= c.PointsTarget {
			return 1
		}
	}
	return c.UpRate
}

// AdvanceMiss transitions past a pull that yielded nothing of the target
// rarity: pity moves up, everything else is untouched.
func (c *PoolConfig) AdvanceMiss(s PullState) PullState {
	if s.Pity < c.HardPity {
		s.Pity++
	}
	return s
}

// AdvanceWin transitions past a featured hit. A success fully resets
// pity-relevant state; the expectation solver's per-item composition is
// exact only because of this.
func (c *PoolConfig) AdvanceWin(PullState) PullState { return ResetState() }

// AdvanceLoss transitions past an off-banner hit: pity resets, the next hit
// is guaranteed featured, and the mechanic counter moves up.
func (c *PoolConfig) AdvanceLoss(s PullState) PullState {
	s.Pity = 0
	s.Guaranteed = true
	if cap := c.CounterCap(); cap > 0 && s.Counter < cap {
		s.Counter++
	}
	return s
}

// Advance applies one pull outcome. didHit is the externally drawn hit
// decision; upRoll is an externally drawn uniform variate deciding the
// featured/off split. Same inputs always produce the same state: the model
// itself holds no randomness.
func (c *PoolConfig) Advance(s PullState, didHit bool, upRoll float64) (next PullState, won bool) {
	if !didHit {
		return c.AdvanceMiss(s), false
	}
	if upRoll < c.UpChance(s) {
		return c.AdvanceWin(s), true
	}
	return c.AdvanceLoss(s), false
}
