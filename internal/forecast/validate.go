package forecast

import (
	"pullcast/internal/gacha"
	"pullcast/internal/simulate"
)

// applyDefaults fills the documented request defaults in place.
func applyDefaults(req *Request, cfg *gacha.PoolConfig) {
	if req.TargetCount == 0 {
		req.TargetCount = 1
	}
	if req.Trials == 0 {
		req.Trials = cfg.Trials
	}
}

// validate rejects request fields outside their domain. Limits are
// enforced, never silently adjusted.
func validate(req *Request, cfg *gacha.PoolConfig) *Error {
	if req.Mode != ModeExpectation && req.Mode != ModeDistribution {
		return validationErr("mode", "must be %q or %q", ModeExpectation, ModeDistribution)
	}
	if req.TargetCount < 1 {
		return validationErr("targetCount", "must be >= 1, got %d", req.TargetCount)
	}
	if 2*cfg.HardPity*req.TargetCount > cfg.MaxPullsPerTrial {
		return validationErr("targetCount", "%d targets cannot fit the pull ceiling of %d", req.TargetCount, cfg.MaxPullsPerTrial)
	}

	st := req.InitialState
	if st.Pity < 0 || st.Pity >= cfg.HardPity {
		return validationErr("initialState.pity", "must be in [0, %d), got %d", cfg.HardPity, st.Pity)
	}
	if st.Streak < 0 {
		return validationErr("initialState.streak", "must be >= 0, got %d", st.Streak)
	}
	if st.Points < 0 {
		return validationErr("initialState.points", "must be >= 0, got %d", st.Points)
	}
	if st.Streak > 0 && cfg.Mechanic != gacha.MechanicStreakBonus {
		return validationErr("initialState.streak", "pool %s has no streak mechanic", cfg.Key())
	}
	if st.Points > 0 && cfg.Mechanic != gacha.MechanicPointsGuarantee {
		return validationErr("initialState.points", "pool %s has no point mechanic", cfg.Key())
	}
	if cap := cfg.CounterCap(); cap > 0 {
		if st.Streak > cap {
			return validationErr("initialState.streak", "must be <= %d, got %d", cap, st.Streak)
		}
		if st.Points > cap {
			return validationErr("initialState.points", "must be <= %d, got %d", cap, st.Points)
		}
	}

	if req.Mode == ModeDistribution {
		if req.Trials < simulate.MinTrials {
			return validationErr("trials", "below the precision floor of %d, got %d", simulate.MinTrials, req.Trials)
		}
		if req.Trials > cfg.MaxTrials {
			return validationErr("trials", "above the cap of %d, got %d", cfg.MaxTrials, req.Trials)
		}
		if req.Budget != nil && *req.Budget < 1 {
			return validationErr("budget", "must be >= 1, got %d", *req.Budget)
		}
	}
	return nil
}

// pullState maps the wire state onto the model's single mechanic counter.
func pullState(st State) gacha.PullState {
	counter := st.Streak
	if st.Points > counter {
		counter = st.Points
	}
	return gacha.PullState{Pity: st.Pity, Guaranteed: st.IsGuaranteed, Counter: counter}
}
