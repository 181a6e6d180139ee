package forecast

import (
	"context"
	"errors"
	"math"
	"testing"

	"pullcast/internal/gacha"
	"pullcast/internal/simulate"
)

// coinSource serves a single pool that hits on every pull with a 50/50, so
// expected results are closed-form.
type coinSource struct{}

func (coinSource) Lookup(game, pool string) (*gacha.PoolConfig, error) {
	if game != "genshin" || pool != "coin" {
		return nil, gacha.ErrPoolNotFound
	}
	return &gacha.PoolConfig{
		Game: "genshin", Pool: "coin",
		BaseRate: 1, HardPity: 1,
		HasFiftyFifty: true, UpRate: 0.5,
		Trials: 10000, MaxTrials: 100000, MaxPullsPerTrial: 1000,
	}, nil
}

func seedPtr(v uint64) *uint64 { return &v }
func intPtr(v int) *int        { return &v }

func TestExpectationMode(t *testing.T) {
	res, err := Run(context.Background(), coinSource{}, &Request{
		Game: "genshin", Pool: "coin", Mode: ModeExpectation,
	})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(res.Pulls.Mean-1.5) > 1e-12 {
		t.Errorf("mean: got %v, want 1.5", res.Pulls.Mean)
	}
	if res.Pulls.P95 != 0 {
		t.Errorf("percentiles leaked into expectation mode: %+v", res.Pulls)
	}
	if res.Cost == nil || res.Cost.Currency != "Primogem" || res.Cost.Mean != 2*160 {
		t.Errorf("cost block: %+v", res.Cost)
	}
}

func TestExpectationTargetTwo(t *testing.T) {
	res, err := Run(context.Background(), coinSource{}, &Request{
		Game: "genshin", Pool: "coin", Mode: ModeExpectation, TargetCount: 2,
	})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(res.Pulls.Mean-3.0) > 1e-12 {
		t.Errorf("mean: got %v, want 3.0", res.Pulls.Mean)
	}
}

func TestDistributionMode(t *testing.T) {
	res, err := Run(context.Background(), coinSource{}, &Request{
		Game: "genshin", Pool: "coin", Mode: ModeDistribution,
		Trials: simulate.MinTrials, Seed: seedPtr(42),
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Pulls.P50 < 1 || res.Pulls.P95 > 2 {
		t.Errorf("pull percentiles outside [1,2]: %+v", res.Pulls)
	}
	if math.Abs(res.Pulls.ExactMean-1.5) > 1e-12 {
		t.Errorf("exact cross-check: got %v", res.Pulls.ExactMean)
	}
	if math.Abs(res.Pulls.Mean-1.5) > 0.1 {
		t.Errorf("simulated mean %v too far from 1.5", res.Pulls.Mean)
	}
}

func TestDistributionDeterministicBySeed(t *testing.T) {
	req := func() *Request {
		return &Request{
			Game: "genshin", Pool: "coin", Mode: ModeDistribution,
			Trials: simulate.MinTrials, Seed: seedPtr(7),
		}
	}
	a, err := Run(context.Background(), coinSource{}, req())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Run(context.Background(), coinSource{}, req())
	if err != nil {
		t.Fatal(err)
	}
	if a.Pulls != b.Pulls {
		t.Errorf("same seed, different results: %+v vs %+v", a.Pulls, b.Pulls)
	}
}

func TestBudgetSuccessRate(t *testing.T) {
	run := func(budget int) float64 {
		t.Helper()
		res, err := Run(context.Background(), coinSource{}, &Request{
			Game: "genshin", Pool: "coin", Mode: ModeDistribution,
			Trials: 10000, Seed: seedPtr(3), Budget: intPtr(budget),
		})
		if err != nil {
			t.Fatal(err)
		}
		if res.SuccessRate == nil {
			t.Fatal("budget set but no success rate")
		}
		return *res.SuccessRate
	}
	// Budget 1 succeeds exactly when the single 50/50 wins; budget 2 always.
	if r := run(1); math.Abs(r-50) > 3 {
		t.Errorf("budget 1 success rate %v, want ~50", r)
	}
	if r := run(2); r != 100 {
		t.Errorf("budget 2 success rate %v, want 100", r)
	}
}

func TestValidationErrors(t *testing.T) {
	cases := []struct {
		name  string
		req   Request
		field string
	}{
		{"bad mode", Request{Game: "genshin", Pool: "coin", Mode: "vibes"}, "mode"},
		{"negative target", Request{Game: "genshin", Pool: "coin", Mode: ModeExpectation, TargetCount: -1}, "targetCount"},
		{"pity at hard pity", Request{Game: "genshin", Pool: "coin", Mode: ModeExpectation, InitialState: State{Pity: 1}}, "initialState.pity"},
		{"streak on plain pool", Request{Game: "genshin", Pool: "coin", Mode: ModeExpectation, InitialState: State{Streak: 1}}, "initialState.streak"},
		{"trials below floor", Request{Game: "genshin", Pool: "coin", Mode: ModeDistribution, Trials: 10}, "trials"},
		{"trials above cap", Request{Game: "genshin", Pool: "coin", Mode: ModeDistribution, Trials: 1 << 30}, "trials"},
		{"zero budget", Request{Game: "genshin", Pool: "coin", Mode: ModeDistribution, Trials: simulate.MinTrials, Budget: intPtr(0)}, "budget"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Run(context.Background(), coinSource{}, &tc.req)
			var fe *Error
			if !errors.As(err, &fe) {
				t.Fatalf("got %v, want *Error", err)
			}
			if fe.Kind != KindValidation {
				t.Errorf("kind: got %v, want validation", fe.Kind)
			}
			if fe.Field != tc.field {
				t.Errorf("field: got %q, want %q", fe.Field, tc.field)
			}
		})
	}
}

func TestUnknownPool(t *testing.T) {
	_, err := Run(context.Background(), coinSource{}, &Request{
		Game: "genshin", Pool: "standard", Mode: ModeExpectation,
	})
	var fe *Error
	if !errors.As(err, &fe) || fe.Kind != KindConfig {
		t.Fatalf("got %v, want configuration error", err)
	}
	if !errors.Is(err, gacha.ErrPoolNotFound) {
		t.Error("lookup cause not preserved")
	}
}

func TestDefaultTrialsFromConfig(t *testing.T) {
	req := &Request{
		Game: "genshin", Pool: "coin", Mode: ModeDistribution, Seed: seedPtr(1),
	}
	if _, err := Run(context.Background(), coinSource{}, req); err != nil {
		t.Fatal(err)
	}
	if req.Trials != 10000 {
		t.Errorf("trials defaulted to %d, want the pool's 10000", req.Trials)
	}
}

func TestRegistryPoolEndToEnd(t *testing.T) {
	res, err := Run(context.Background(), Registry(), &Request{
		Game: "genshin", Pool: "character", Mode: ModeDistribution,
		Trials: simulate.MinTrials, Seed: seedPtr(5),
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Glitter == nil || res.Glitter.Name == "" {
		t.Errorf("character pool without glitter block: %+v", res.Glitter)
	}
	if res.Cost == nil || res.Cost.P95 != 160*res.Pulls.P95 {
		t.Errorf("cost block: %+v vs p95 %d", res.Cost, res.Pulls.P95)
	}
}
