// Package solver computes exact expected pull counts by dynamic programming
// over the finite pity-state space of a pool config. No sampling is
// involved; results carry no statistical error.
package solver

import (
	"errors"
	"fmt"
	"math"

	"pullcast/internal/gacha"
)

var (
	ErrStateOutOfRange = errors.New("initial state outside the model's state space")
	ErrStateSpace      = errors.New("state space too large to solve")
	ErrNotConverged    = errors.New("expectation did not converge to a finite value")
)

// maxStates bounds the DP table; anything larger indicates a misconfigured
// mechanic rather than a legitimate pool.
const maxStates = 1 << 22

// ExpectedPulls returns the exact expected number of pulls to obtain
// targetCount featured items starting from initial.
//
// The per-item sub-problem is solved by backward substitution from
// pity = HardPity-1 (value known outright) down to pity = 0, for the
// guaranteed chain first and then per counter value, since a loss always
// lands in a guaranteed state. Items after the first start from the
// canonical just-succeeded reset state, which is exact because a success
// fully resets pity-relevant state; a rule set that left residual state
// after a success would need joint tracking across items instead.
func ExpectedPulls(cfg *gacha.PoolConfig, initial gacha.PullState, targetCount int) (float64, error) {
	if targetCount < 1 {
		return 0, fmt.Errorf("%w: target count %d", ErrStateOutOfRange, targetCount)
	}
	initial = cfg.Normalize(initial)
	if initial.Pity < 0 || initial.Pity >= cfg.HardPity {
		return 0, fmt.Errorf("%w: pity %d with hard pity %d", ErrStateOutOfRange, initial.Pity, cfg.HardPity)
	}
	if initial.Counter < 0 {
		return 0, fmt.Errorf("%w: negative mechanic counter", ErrStateOutOfRange)
	}

	tbl, err := solve(cfg)
	if err != nil {
		return 0, err
	}

	total := tbl.at(initial)
	if targetCount > 1 {
		total += float64(targetCount-1) * tbl.at(cfg.Normalize(gacha.ResetState()))
	}
	if math.IsNaN(total) || math.IsInf(total, 0) || total < 1 {
		return 0, fmt.Errorf("%w: pool %s", ErrNotConverged, cfg.Key())
	}
	return total, nil
}

// table holds the solved expectation values: the guaranteed chain indexed
// by pity, and one unguaranteed chain per mechanic-counter value.
type table struct {
	vTrue  []float64
	vFalse [][]float64
}

func (t *table) at(s gacha.PullState) float64 {
	if s.Guaranteed {
		return t.vTrue[s.Pity]
	}
	return t.vFalse[s.Counter][s.Pity]
}

func solve(cfg *gacha.PoolConfig) (*table, error) {
	n := cfg.HardPity
	cap := cfg.CounterCap()
	if n*(cap+2) > maxStates {
		return nil, fmt.Errorf("%w: pool %s has %d states", ErrStateSpace, cfg.Key(), n*(cap+2))
	}

	// Guaranteed states: every hit is the featured item, so the value only
	// depends on pity.
	vTrue := make([]float64, n)
	vTrue[n-1] = 1
	for p := n - 2; p >= 0; p-- {
		ph := cfg.HitProbability(gacha.PullState{Pity: p, Guaranteed: true})
		vTrue[p] = 1 + (1-ph)*vTrue[p+1]
	}

	// Unguaranteed states: a miss walks up the same counter row, a lost
	// 50/50 drops into the guaranteed chain at pity zero, a win absorbs.
	vFalse := make([][]float64, cap+1)
	for c := cap; c >= 0; c-- {
		row := make([]float64, n)
		for p := n - 1; p >= 0; p-- {
			s := gacha.PullState{Pity: p, Counter: c}
			ph := cfg.HitProbability(s)
			v := 1.0
			if ph < 1 {
				v += (1 - ph) * row[p+1]
			}
			if pLose := ph * (1 - cfg.UpChance(s)); pLose > 0 {
				v += pLose * vTrue[cfg.AdvanceLoss(s).Pity]
			}
			row[p] = v
		}
		vFalse[c] = row
	}

	return &table{vTrue: vTrue, vFalse: vFalse}, nil
}
