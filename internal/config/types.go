package config

// Raw mirrors the YAML override schema. Every field is optional: files
// override only what they set, layered default -> game -> pool on top of
// the built-in tables. Pointer fields distinguish "absent" from zero.
type Raw struct {
	Version string      `yaml:"version,omitempty"`
	Draw    *DrawCfg    `yaml:"draw,omitempty"`
	Banner  *BannerCfg  `yaml:"banner,omitempty"`
	Glitter *GlitterCfg `yaml:"glitter,omitempty"`
	Limits  *LimitsCfg  `yaml:"limits,omitempty"`
	Notes   string      `yaml:"notes,omitempty"`
}

// DrawCfg overrides the five-star probability law.
type DrawCfg struct {
	BaseRate      *float64 `yaml:"base_rate,omitempty"`
	SoftPityStart *int     `yaml:"soft_pity_start,omitempty"`
	RampRate      *float64 `yaml:"ramp_rate,omitempty"`
	HardPity      *int     `yaml:"hard_pity,omitempty"`
}

// BannerCfg overrides the featured/off determination and its mechanic.
type BannerCfg struct {
	FiftyFifty   *bool    `yaml:"fifty_fifty,omitempty"`
	UpRate       *float64 `yaml:"up_rate,omitempty"`
	Mechanic     *string  `yaml:"mechanic,omitempty"`
	StreakLimit  *int     `yaml:"streak_limit,omitempty"`
	BonusRate    *float64 `yaml:"bonus_rate,omitempty"`
	PointsTarget *int     `yaml:"points_target,omitempty"`
}

// GlitterCfg overrides the byproduct-currency trigger knobs.
type GlitterCfg struct {
	Name   *string  `yaml:"name,omitempty"`
	Rate   *float64 `yaml:"rate,omitempty"`
	Pity   *int     `yaml:"pity,omitempty"`
	UpRate *float64 `yaml:"up_rate,omitempty"`
}

// LimitsCfg overrides the work bounds.
type LimitsCfg struct {
	Trials           *int `yaml:"trials,omitempty"`
	MaxTrials        *int `yaml:"max_trials,omitempty"`
	MaxPullsPerTrial *int `yaml:"max_pulls_per_trial,omitempty"`
}

// merge layers b over a: b wins wherever it sets a value.
func merge(a, b Raw) Raw {
	out := a
	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}

	if b.Draw != nil {
		if out.Draw == nil {
			c := *b.Draw
			out.Draw = &c
		} else {
			d := *out.Draw
			if b.Draw.BaseRate != nil {
				d.BaseRate = b.Draw.BaseRate
			}
			if b.Draw.SoftPityStart != nil {
				d.SoftPityStart = b.Draw.SoftPityStart
			}
			if b.Draw.RampRate != nil {
				d.RampRate = b.Draw.RampRate
			}
			if b.Draw.HardPity != nil {
				d.HardPity = b.Draw.HardPity
			}
			out.Draw = &d
		}
	}

	if b.Banner != nil {
		if out.Banner == nil {
			c := *b.Banner
			out.Banner = &c
		} else {
			d := *out.Banner
			if b.Banner.FiftyFifty != nil {
				d.FiftyFifty = b.Banner.FiftyFifty
			}
			if b.Banner.UpRate != nil {
				d.UpRate = b.Banner.UpRate
			}
			if b.Banner.Mechanic != nil {
				d.Mechanic = b.Banner.Mechanic
			}
			if b.Banner.StreakLimit != nil {
				d.StreakLimit = b.Banner.StreakLimit
			}
			if b.Banner.BonusRate != nil {
				d.BonusRate = b.Banner.BonusRate
			}
			if b.Banner.PointsTarget != nil {
				d.PointsTarget = b.Banner.PointsTarget
			}
			out.Banner = &d
		}
	}

	if b.Glitter != nil {
		if out.Glitter == nil {
			c := *b.Glitter
			out.Glitter = &c
		} else {
			d := *out.Glitter
			if b.Glitter.Name != nil {
				d.Name = b.Glitter.Name
			}
			if b.Glitter.Rate != nil {
				d.Rate = b.Glitter.Rate
			}
			if b.Glitter.Pity != nil {
				d.Pity = b.Glitter.Pity
			}
			if b.Glitter.UpRate != nil {
				d.UpRate = b.Glitter.UpRate
			}
			out.Glitter = &d
		}
	}

	if b.Limits != nil {
		if out.Limits == nil {
			c := *b.Limits
			out.Limits = &c
		} else {
			d := *out.Limits
			if b.Limits.Trials != nil {
				d.Trials = b.Limits.Trials
			}
			if b.Limits.MaxTrials != nil {
				d.MaxTrials = b.Limits.MaxTrials
			}
			if b.Limits.MaxPullsPerTrial != nil {
				d.MaxPullsPerTrial = b.Limits.MaxPullsPerTrial
			}
			out.Limits = &d
		}
	}

	return out
}
