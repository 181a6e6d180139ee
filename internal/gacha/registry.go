package gacha

import (
	"errors"
	"sort"
)

var ErrPoolNotFound = errors.New("unknown game/pool pair")

// registry holds the built-in pool configs, keyed "game/pool". Rule tables
// here are tuning data: deployments override them with version-controlled
// YAML through the config loader, the engine only ever sees a PoolConfig.
var registry = map[string]*PoolConfig{}

// Register adds or replaces a pool config. It panics on an invalid config;
// built-ins are registered at init and override paths validate first.
func Register(c *PoolConfig) {
	if err := c.Validate(); err != nil {
		panic(err)
	}
	registry[c.Key()] = c
}

// Lookup returns the config for a (game, pool) pair.
func Lookup(game, pool string) (*PoolConfig, error) {
	c, ok := registry[game+"/"+pool]
	if !ok {
		return nil, ErrPoolNotFound
	}
	return c, nil
}

// Keys returns all registered "game/pool" keys, sorted.
func Keys() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

const (
	defaultCharacterTrials = 50000
	defaultWeaponTrials    = 25000
	defaultMaxTrials       = 1000000
	defaultPullCeiling     = 25000
)

func init() {
	Register(&PoolConfig{
		Game: "genshin", Pool: "character",
		BaseRate: 0.006, SoftPityStart: 73, RampRate: 0.06, HardPity: 90,
		HasFiftyFifty: true, UpRate: 0.5,
		Mechanic: MechanicStreakBonus, StreakLimit: 3, BonusRate: 0.00018,
		Glitter: &GlitterConfig{
			Name: "Masterless Starglitter",
			Rate: 0.051, Pity: 10, UpRate: 0.5,
			TrackFive: true,
			FiveUp:    10, FiveUpFull: 25,
			FiveOff: 10, FiveOffFull: 25, FiveOffRoster: 7,
			FourUp: 2, FourUpOwned: 5,
			FourCharShare: 39.0 / 57.0,
			FourOffChar:   2, FourOffCharFull: 5, FourOffRoster: 39,
			FourOffItem: 2,
			FullAt:      7,
		},
		Trials: defaultCharacterTrials, MaxTrials: defaultMaxTrials, MaxPullsPerTrial: defaultPullCeiling,
	})

	Register(&PoolConfig{
		Game: "genshin", Pool: "weapon",
		BaseRate: 0.007, SoftPityStart: 63, RampRate: 0.07, HardPity: 80,
		HasFiftyFifty: true, UpRate: 0.375,
		Mechanic: MechanicPointsGuarantee, PointsTarget: 2,
		Glitter: &GlitterConfig{
			Name: "Masterless Starglitter",
			Rate: 0.051, Pity: 10, UpRate: 0.75,
			FiveUp: 10, FiveUpFull: 10,
			FiveOff: 10, FiveOffFull: 10,
			FourUp: 2, FourUpOwned: 2,
			FourCharShare: 39.0 / 57.0,
			FourOffChar:   2, FourOffCharFull: 5, FourOffRoster: 39,
			FourOffItem: 2,
			FullAt:      7,
		},
		Trials: defaultWeaponTrials, MaxTrials: defaultMaxTrials, MaxPullsPerTrial: defaultPullCeiling,
	})

	Register(&PoolConfig{
		Game: "hsr", Pool: "character",
		BaseRate: 0.006, SoftPityStart: 73, RampRate: 0.06, HardPity: 90,
		// 56.25% folds the off-banner re-roll mercy into a flat rate.
		HasFiftyFifty: true, UpRate: 0.5625,
		Glitter: &GlitterConfig{
			Name: "Undying Starlight",
			Rate: 0.051, Pity: 10, UpRate: 0.5,
			TrackFive: true,
			FiveUp:    40, FiveUpFull: 100,
			FiveOff: 40, FiveOffFull: 100, FiveOffRoster: 7,
			FourUp: 8, FourUpOwned: 20,
			FourCharShare: 22.0 / 51.0,
			FourOffChar:   8, FourOffCharFull: 20, FourOffRoster: 22,
			FourOffItem: 8,
			FullAt:      7,
		},
		Trials: defaultCharacterTrials, MaxTrials: defaultMaxTrials, MaxPullsPerTrial: defaultPullCeiling,
	})

	Register(&PoolConfig{
		Game: "hsr", Pool: "lightcone",
		BaseRate: 0.008, SoftPityStart: 65, RampRate: 0.08, HardPity: 80,
		HasFiftyFifty: true, UpRate: 0.75,
		Glitter: &GlitterConfig{
			Name: "Undying Starlight",
			Rate: 0.066, Pity: 10, UpRate: 0.75,
			FiveUp: 40, FiveUpFull: 40,
			FiveOff: 40, FiveOffFull: 40,
			FourUp: 8, FourUpOwned: 8,
			FourCharShare: 22.0 / 51.0,
			FourOffChar:   8, FourOffCharFull: 20, FourOffRoster: 22,
			FourOffItem: 8,
			FullAt:      7,
		},
		Trials: defaultWeaponTrials, MaxTrials: defaultMaxTrials, MaxPullsPerTrial: defaultPullCeiling,
	})

	Register(&PoolConfig{
		Game: "zzz", Pool: "character",
		BaseRate: 0.006, SoftPityStart: 73, RampRate: 0.06, HardPity: 90,
		HasFiftyFifty: true, UpRate: 0.5,
		Glitter: &GlitterConfig{
			Name: "Residual Signal",
			Rate: 0.094, Pity: 10, UpRate: 0.5,
			TrackFive: true, FiveUpFirstZero: true,
			FiveUp: 40, FiveUpFull: 100,
			FiveOff: 40, FiveOffFull: 100, FiveOffRoster: 6,
			FourUp: 8, FourUpOwned: 20,
			FourCharShare: 7.05 / 9.40,
			FourOffChar:   8, FourOffCharFull: 20, FourOffRoster: 12,
			FourOffItem: 8,
			FullAt:      7,
		},
		Trials: defaultCharacterTrials, MaxTrials: defaultMaxTrials, MaxPullsPerTrial: defaultPullCeiling,
	})

	Register(&PoolConfig{
		Game: "zzz", Pool: "weapon",
		BaseRate: 0.010, SoftPityStart: 64, RampRate: 0.061875, HardPity: 80,
		HasFiftyFifty: true, UpRate: 0.75,
		Glitter: &GlitterConfig{
			Name: "Residual Signal",
			Rate: 0.15, Pity: 10, UpRate: 0.75,
			FiveUp: 40, FiveUpFull: 40,
			FiveOff: 40, FiveOffFull: 40,
			FourUp: 8, FourUpOwned: 8,
			FourCharShare: 1.875 / 15.0,
			FourOffChar:   8, FourOffCharFull: 20, FourOffRoster: 12,
			FourOffItem: 8,
			FullAt:      7,
		},
		Trials: defaultWeaponTrials, MaxTrials: defaultMaxTrials, MaxPullsPerTrial: defaultPullCeiling,
	})
}
