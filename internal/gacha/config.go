package gacha

import (
	"fmt"
	"strings"
)

// Mechanic names the guarantee-accelerator variant a pool runs on top of
// the plain 50/50. New mechanics are added as new variants here; the
// transition core never branches on game identity.
type Mechanic string

const (
	MechanicNone Mechanic = "none"
	// A counter of consecutive lost 50/50s. Reaching StreakLimit forces the
	// next hit to be featured; every un-guaranteed 50/50 also gets a small
	// BonusRate chance of winning outright.
	MechanicStreakBonus Mechanic = "streak_bonus"
	// A point per lost 50/50. At PointsTarget the guarantee flips on,
	// independent of the streak mechanic.
	MechanicPointsGuarantee Mechanic = "points_guarantee"
)

// PoolConfig describes the per-pull probability law and transition rules of
// one (game, pool) pair. Read-only after construction; one instance lives
// for the process lifetime.
type PoolConfig struct {
	Game string
	Pool string

	// Five-star (target rarity) law. Probability is BaseRate while
	// Pity < SoftPityStart, then ramps by RampRate per pull, and the pull
	// that would bring pity to HardPity is a forced hit.
	BaseRate      float64
	SoftPityStart int
	RampRate      float64
	HardPity      int

	// Featured-vs-off determination on a hit.
	HasFiftyFifty bool
	UpRate        float64 // featured chance when not guaranteed

	Mechanic     Mechanic
	StreakLimit  int     // streak_bonus only
	BonusRate    float64 // streak_bonus only
	PointsTarget int     // points_guarantee only

	// Byproduct currency model; nil when the pool accrues none.
	Glitter *GlitterConfig

	// Work bounds. All three are mandatory: a missing bound is a
	// configuration error, never a silent default.
	Trials           int // default trial count for distribution mode
	MaxTrials        int // cap on requested trial counts
	MaxPullsPerTrial int // per-trial ceiling against non-convergence
}

// GlitterConfig models the four-star sub-layer and the currency awarded by
// five-star and four-star items. Awards follow the duplicate convention of
// the source games: the first copy of a roster item awards nothing, copies
// up to FullAt award the base amount, later copies the capped amount.
type GlitterConfig struct {
	Name string // currency display name, e.g. "Starglitter"

	Rate   float64 // four-star chance per pull, before conditioning on no five-star
	Pity   int     // four-star hard pity
	UpRate float64 // chance a four-star is the featured one

	// Five-star awards.
	TrackFive       bool // duplicate-track five-stars (character pools)
	FiveUpFirstZero bool // first featured copy awards nothing (ZZZ)
	FiveUp          int
	FiveUpFull      int
	FiveOff         int
	FiveOffFull     int
	FiveOffRoster   int

	// Four-star awards.
	FourUp          int
	FourUpOwned     int // award when the caller already owns the featured four-star maxed
	FourCharShare   float64
	FourOffChar     int
	FourOffCharFull int
	FourOffRoster   int
	FourOffItem     int

	FullAt int // copy count after which the capped awards apply
}

// Key returns the registry key, "game/pool".
func (c *PoolConfig) Key() string { return c.Game + "/" + c.Pool }

// Validate checks internal consistency. Any failure is a configuration
// error and must surface before computation starts.
func (c *PoolConfig) Validate() error {
	var errs []string

	if c.Game == "" || c.Pool == "" {
		errs = append(errs, "game and pool must be set")
	}
	if c.HardPity < 1 {
		errs = append(errs, "hard_pity must be >= 1")
	}
	if c.BaseRate <= 0 || c.BaseRate > 1 {
		errs = append(errs, "base_rate must be in (0,1]")
	}
	if c.SoftPityStart < 0 || c.SoftPityStart > c.HardPity {
		errs = append(errs, "soft_pity_start must satisfy 0 <= start <= hard_pity")
	}
	if c.RampRate < 0 {
		errs = append(errs, "ramp_rate must be >= 0")
	}
	if c.HasFiftyFifty && (c.UpRate <= 0 || c.UpRate > 1) {
		errs = append(errs, "up_rate must be in (0,1] when the pool has a 50/50")
	}

	switch c.Mechanic {
	case MechanicNone, "":
	case MechanicStreakBonus:
		if c.StreakLimit < 1 {
			errs = append(errs, "streak_limit must be >= 1 for mechanic=streak_bonus")
		}
		if c.BonusRate < 0 || c.BonusRate >= 1 {
			errs = append(errs, "bonus_rate must be in [0,1) for mechanic=streak_bonus")
		}
	case MechanicPointsGuarantee:
		if c.PointsTarget < 1 {
			errs = append(errs, "points_target must be >= 1 for mechanic=points_guarantee")
		}
	default:
		errs = append(errs, "mechanic must be one of: none, streak_bonus, points_guarantee")
	}

	if c.Glitter != nil {
		if c.Glitter.Rate <= 0 || c.Glitter.Rate >= 1 {
			errs = append(errs, "glitter.rate must be in (0,1)")
		}
		if c.Glitter.Pity < 1 {
			errs = append(errs, "glitter.pity must be >= 1")
		}
		if c.Glitter.UpRate <= 0 || c.Glitter.UpRate > 1 {
			errs = append(errs, "glitter.up_rate must be in (0,1]")
		}
		if c.Glitter.FullAt < 1 {
			errs = append(errs, "glitter.full_at must be >= 1")
		}
		if c.Glitter.FourCharShare < 0 || c.Glitter.FourCharShare > 1 {
			errs = append(errs, "glitter.four_char_share must be in [0,1]")
		}
		// Duplicate tracking picks uniformly from a roster; an empty one
		// would be indexed mid-trial.
		if c.Glitter.FourCharShare > 0 && c.Glitter.FourOffRoster < 1 {
			errs = append(errs, "glitter.four_off_roster must be >= 1 when four_char_share > 0")
		}
		if c.Glitter.TrackFive && c.Glitter.FiveOffRoster < 1 {
			errs = append(errs, "glitter.five_off_roster must be >= 1 when five-star duplicates are tracked")
		}
	}

	// Work bounds are mandatory (rejected here, not defaulted).
	if c.Trials < 1 {
		errs = append(errs, "trials must be set")
	}
	if c.MaxTrials < c.Trials {
		errs = append(errs, "max_trials must be >= trials")
	}
	if c.MaxPullsPerTrial < c.HardPity {
		errs = append(errs, "max_pulls_per_trial must be >= hard_pity")
	}

	if len(errs) > 0 {
		return fmt.Errorf("pool config %s: %s", c.Key(), strings.Join(errs, "; "))
	}
	return nil
}

// CounterCap returns the largest meaningful mechanic-counter value; counters
// are clamped to it so the reachable state space stays finite.
func (c *PoolConfig) CounterCap() int {
	switch c.Mechanic {
	case MechanicStreakBonus:
		return c.StreakLimit
	case MechanicPointsGuarantee:
		return c.PointsTarget
	}
	return 0
}
