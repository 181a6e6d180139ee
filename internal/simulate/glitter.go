package simulate

import "pullcast/internal/gacha"

// glitterTally accrues byproduct currency over one trial. It owns the
// four-star sub-pity and the per-trial duplicate collection; nothing here
// is shared between trials.
type glitterTally struct {
	cfg      *gacha.GlitterConfig
	up4Owned bool

	pity4       int
	guaranteed4 bool

	upFives  int
	offFives []int
	offFours []int

	total int
}

func newGlitterTally(cfg *gacha.GlitterConfig, up4Owned bool) *glitterTally {
	if cfg == nil {
		return nil
	}
	t := &glitterTally{cfg: cfg, up4Owned: up4Owned}
	if cfg.TrackFive {
		t.offFives = make([]int, cfg.FiveOffRoster)
	}
	t.offFours = make([]int, cfg.FourOffRoster)
	return t
}

// onFiveStar awards currency for a five-star item and resets the four-star
// pity, which a five-star also satisfies.
func (t *glitterTally) onFiveStar(up bool, rng gacha.RandomSource) {
	t.pity4 = 0
	if !t.cfg.TrackFive {
		// Weapon-type pools award a flat amount per five-star.
		if up {
			t.total += t.cfg.FiveUp
		} else {
			t.total += t.cfg.FiveOff
		}
		return
	}
	if up {
		t.upFives++
		switch {
		case t.upFives == 1 && t.cfg.FiveUpFirstZero:
		case t.upFives <= t.cfg.FullAt:
			t.total += t.cfg.FiveUp
		default:
			t.total += t.cfg.FiveUpFull
		}
		return
	}
	n := t.bump(t.offFives, rng)
	switch {
	case n == 1: // new roster item, no refund
	case n <= t.cfg.FullAt:
		t.total += t.cfg.FiveOff
	default:
		t.total += t.cfg.FiveOffFull
	}
}

// onMiss runs the four-star sub-layer for a pull that yielded no five-star.
// The configured rate is unconditional per pull, so it is re-scaled by the
// chance no five-star occurred first.
func (t *glitterTally) onMiss(pFive float64, rng gacha.RandomSource) {
	t.pity4++
	if t.pity4 < t.cfg.Pity {
		denom := 1 - pFive
		if denom <= 0 {
			denom = 0.99
		}
		if rng.Float64() >= t.cfg.Rate/denom {
			return
		}
	}
	t.fourStar(rng)
}

func (t *glitterTally) fourStar(rng gacha.RandomSource) {
	t.pity4 = 0
	if t.guaranteed4 || rng.Float64() < t.cfg.UpRate {
		t.guaranteed4 = false
		if t.up4Owned {
			t.total += t.cfg.FourUpOwned
		} else {
			t.total += t.cfg.FourUp
		}
		return
	}
	t.guaranteed4 = true
	if rng.Float64() < t.cfg.FourCharShare {
		n := t.bump(t.offFours, rng)
		switch {
		case n == 1:
		case n <= t.cfg.FullAt:
			t.total += t.cfg.FourOffChar
		default:
			t.total += t.cfg.FourOffCharFull
		}
		return
	}
	t.total += t.cfg.FourOffItem
}

// bump picks a roster member uniformly, increments its copy count, and
// returns the new count.
func (t *glitterTally) bump(roster []int, rng gacha.RandomSource) int {
	idx := int(rng.Float64() * float64(len(roster)))
	if idx >= len(roster) {
		idx = len(roster) - 1
	}
	roster[idx]++
	return roster[idx]
}
