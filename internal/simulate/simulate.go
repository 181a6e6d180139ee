// Package simulate runs Monte Carlo play-throughs of a pool config. Trials
// are embarrassingly parallel: each owns its PullState, its glitter tally,
// and a private random stream, so workers need no locking; the only
// synchronization point is the join before aggregation.
package simulate

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"pullcast/internal/gacha"
)

// MinTrials is the precision floor below which percentile estimates are
// not meaningful. Requests under it are rejected, never rounded up.
const MinTrials = 2000

// trialBatch is the number of trials handed to a worker per job.
const trialBatch = 512

var ErrPullCeiling = errors.New("trial exceeded the configured pull ceiling")

// Options tunes one simulation run. TargetCount and Trials must already be
// validated against the pool config.
type Options struct {
	TargetCount int
	Trials      int
	Seed        uint64
	Budget      int // 0 means no budget supplied
	Up4Owned    bool
	Workers     int // <=0 means GOMAXPROCS
}

// Result aggregates all trials of one run.
type Result struct {
	Pulls       Stats
	SuccessRate *float64 // percent of trials within budget; nil without one
	Glitter     *Stats   // nil for pools without byproduct currency
}

// Run executes opts.Trials independent trials and aggregates them.
// Identical config, state, and options produce bit-identical results.
func Run(ctx context.Context, cfg *gacha.PoolConfig, initial gacha.PullState, opts Options) (*Result, error) {
	if opts.Trials < 1 {
		return nil, fmt.Errorf("trial count %d: need at least one trial", opts.Trials)
	}
	if opts.TargetCount < 1 {
		return nil, fmt.Errorf("target count %d: need at least one target", opts.TargetCount)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	initial = cfg.Normalize(initial)

	// Per-trial outcome slots; workers write disjoint indexes, no locking.
	pulls := make([]int, opts.Trials)
	var glitter []int
	if cfg.Glitter != nil {
		glitter = make([]int, opts.Trials)
	}

	// All jobs fit in the channel buffer, so workers can bail out early on
	// error or cancellation without stranding a producer goroutine.
	jobCount := (opts.Trials + trialBatch - 1) / trialBatch
	jobs := make(chan [2]int, jobCount)
	for start := 0; start < opts.Trials; start += trialBatch {
		end := start + trialBatch
		if end > opts.Trials {
			end = opts.Trials
		}
		jobs <- [2]int{start, end}
	}
	close(jobs)

	errCh := make(chan error, workers)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				if ctx.Err() != nil {
					return
				}
				for i := job[0]; i < job[1]; i++ {
					p, g, err := runTrial(cfg, initial, opts, uint64(i))
					if err != nil {
						errCh <- err
						return
					}
					pulls[i] = p
					if glitter != nil {
						glitter[i] = g
					}
				}
			}
		}()
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	select {
	case err := <-errCh:
		return nil, err
	default:
	}

	res := &Result{Pulls: calcStats(pulls)}
	if opts.Budget > 0 {
		within := 0
		for _, p := range pulls {
			if p <= opts.Budget {
				within++
			}
		}
		rate := float64(within) / float64(opts.Trials) * 100
		res.SuccessRate = &rate
	}
	if glitter != nil {
		gs := calcStats(glitter)
		res.Glitter = &gs
	}
	return res, nil
}

// runTrial plays pulls until TargetCount featured items are obtained,
// returning the pull count and accrued byproduct currency.
func runTrial(cfg *gacha.PoolConfig, initial gacha.PullState, opts Options, trial uint64) (int, int, error) {
	rng := gacha.NewTrialRNG(opts.Seed, trial)
	s := initial
	tally := newGlitterTally(cfg.Glitter, opts.Up4Owned)

	pullCount := 0
	for won := 0; won < opts.TargetCount; {
		pullCount++
		if pullCount > cfg.MaxPullsPerTrial {
			return 0, 0, fmt.Errorf("%w (%d pulls, pool %s)", ErrPullCeiling, cfg.MaxPullsPerTrial, cfg.Key())
		}
		pFive := cfg.HitProbability(s)
		if rng.Float64() < pFive {
			up := rng.Float64() < cfg.UpChance(s)
			if tally != nil {
				tally.onFiveStar(up, rng)
			}
			if up {
				s = cfg.AdvanceWin(s)
				won++
			} else {
				s = cfg.AdvanceLoss(s)
			}
		} else {
			s = cfg.AdvanceMiss(s)
			if tally != nil {
				tally.onMiss(pFive, rng)
			}
		}
	}

	total := 0
	if tally != nil {
		total = tally.total
	}
	return pullCount, total, nil
}
