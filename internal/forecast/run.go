// Package forecast ties the exact solver and the Monte Carlo simulator to
// the engine's request/response contract. It validates, dispatches, and
// assembles the result; all probability work happens in the packages below
// it.
package forecast

import (
	"context"
	"math"

	"pullcast/internal/gacha"
	"pullcast/internal/simulate"
	"pullcast/internal/solver"
	"pullcast/internal/token"
)

// Source resolves (game, pool) pairs to configs. The built-in registry and
// the YAML-backed store both satisfy it.
type Source interface {
	Lookup(game, pool string) (*gacha.PoolConfig, error)
}

type registrySource struct{}

func (registrySource) Lookup(game, pool string) (*gacha.PoolConfig, error) {
	return gacha.Lookup(game, pool)
}

// Registry returns a Source over the built-in pool configs.
func Registry() Source { return registrySource{} }

// Run computes one forecast. The request is self-contained; nothing is
// shared between calls.
func Run(ctx context.Context, src Source, req *Request) (*Result, error) {
	cfg, err := src.Lookup(req.Game, req.Pool)
	if err != nil {
		ce := configErr("game/pool", "no model for %s/%s", req.Game, req.Pool)
		ce.Err = err
		return nil, ce
	}
	if err := cfg.Validate(); err != nil {
		return nil, configErr("", "%v", err)
	}

	applyDefaults(req, cfg)
	if verr := validate(req, cfg); verr != nil {
		return nil, verr
	}
	state := pullState(req.InitialState)

	var res *Result
	switch req.Mode {
	case ModeExpectation:
		mean, err := solver.ExpectedPulls(cfg, state, req.TargetCount)
		if err != nil {
			return nil, computeErr("exact expectation: %v", err)
		}
		res = &Result{Pulls: PullBlock{Mean: mean}}

	case ModeDistribution:
		seed := req.Seed
		if seed == nil {
			s := gacha.FreshSeed()
			seed = &s
		}
		sim, err := simulate.Run(ctx, cfg, state, simulate.Options{
			TargetCount: req.TargetCount,
			Trials:      req.Trials,
			Seed:        *seed,
			Budget:      budgetOf(req),
			Up4Owned:    req.Up4Owned,
			Workers:     req.Workers,
		})
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, computeErr("simulation: %v", err)
		}
		exact, err := solver.ExpectedPulls(cfg, state, req.TargetCount)
		if err != nil {
			return nil, computeErr("exact expectation: %v", err)
		}
		res = &Result{
			Pulls: PullBlock{
				Mean:      sim.Pulls.Mean,
				P25:       sim.Pulls.P25,
				P50:       sim.Pulls.P50,
				P75:       sim.Pulls.P75,
				P95:       sim.Pulls.P95,
				ExactMean: exact,
			},
			SuccessRate: sim.SuccessRate,
		}
		if sim.Glitter != nil {
			res.Glitter = &GlitterBlock{
				Name: cfg.Glitter.Name,
				Mean: sim.Glitter.Mean,
				P25:  sim.Glitter.P25,
				P50:  sim.Glitter.P50,
				P75:  sim.Glitter.P75,
			}
		}
	}

	if cur, ok := token.ForGame(req.Game); ok {
		res.Cost = &CostBlock{
			Currency: cur.Name,
			Mean:     cur.CostForPulls(int(math.Ceil(res.Pulls.Mean))),
		}
		if req.Mode == ModeDistribution {
			res.Cost.P95 = cur.CostForPulls(res.Pulls.P95)
		}
	}
	return res, nil
}

func budgetOf(req *Request) int {
	if req.Budget == nil {
		return 0
	}
	return *req.Budget
}
