// Package config overlays deployment-supplied YAML tuning files on the
// built-in pool tables. Real probability tables are external data owned by
// whoever deploys the engine; this package is how they arrive.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"pullcast/internal/gacha"
)

// Paths locates the override files under the base directory:
// pools/default.yaml, pools/<game>.yaml, pools/<game>/<pool>.yaml.
type Paths struct {
	BaseDir string
}

func (p Paths) DefaultPath() string {
	return filepath.Join(p.BaseDir, "pools", "default.yaml")
}
func (p Paths) GamePath(game string) string {
	return filepath.Join(p.BaseDir, "pools", game+".yaml")
}
func (p Paths) PoolPath(game, pool string) string {
	return filepath.Join(p.BaseDir, "pools", game, pool+".yaml")
}

// Store resolves pool configs: the built-in registry overlaid with the
// merged YAML layers. Resolved configs are cached until Invalidate.
type Store struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]*gacha.PoolConfig
}

// NewStore creates a store rooted at baseDir. An empty baseDir disables
// overrides: lookups then pass through to the built-in registry.
func NewStore(baseDir string) *Store {
	return &Store{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]*gacha.PoolConfig),
	}
}

// Lookup returns the effective config for a (game, pool) pair. Override
// layers are re-validated, so a broken deployment file fails closed
// instead of shipping an inconsistent model.
func (s *Store) Lookup(game, pool string) (*gacha.PoolConfig, error) {
	base, err := gacha.Lookup(game, pool)
	if err != nil {
		return nil, err
	}
	if s.paths.BaseDir == "" {
		return base, nil
	}

	key := game + "/" + pool
	s.mu.RLock()
	if cfg, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return cfg, nil
	}
	s.mu.RUnlock()

	raw, err := s.merged(game, pool)
	if err != nil {
		return nil, err
	}
	cfg := apply(base, raw)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("override for %s: %w", key, err)
	}

	s.mu.Lock()
	s.cache[key] = cfg
	s.mu.Unlock()
	return cfg, nil
}

// Invalidate clears the resolved-config cache. The watcher calls this when
// an override file changes on disk.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]*gacha.PoolConfig)
}

// WatchPaths lists every override file the store may read, for the poller.
func (s *Store) WatchPaths() []string {
	if s.paths.BaseDir == "" {
		return nil
	}
	out := []string{s.paths.DefaultPath()}
	seen := map[string]bool{}
	for _, key := range gacha.Keys() {
		game, pool := splitKey(key)
		if !seen[game] {
			seen[game] = true
			out = append(out, s.paths.GamePath(game))
		}
		out = append(out, s.paths.PoolPath(game, pool))
	}
	return out
}

func (s *Store) merged(game, pool string) (Raw, error) {
	def, err := readYAML(s.paths.DefaultPath())
	if err != nil {
		return Raw{}, fmt.Errorf("read default overrides: %w", err)
	}
	gameRaw, err := readYAML(s.paths.GamePath(game))
	if err != nil {
		return Raw{}, fmt.Errorf("read %s overrides: %w", game, err)
	}
	poolRaw, err := readYAML(s.paths.PoolPath(game, pool))
	if err != nil {
		return Raw{}, fmt.Errorf("read %s/%s overrides: %w", game, pool, err)
	}
	return merge(merge(def, gameRaw), poolRaw), nil
}

// readYAML loads one layer. A missing file is an empty layer, not an error.
func readYAML(path string) (Raw, error) {
	var raw Raw
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Raw{}, nil
		}
		return Raw{}, err
	}
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return Raw{}, fmt.Errorf("%s: %w", path, err)
	}
	return raw, nil
}

// apply copies base and writes the override values over it.
func apply(base *gacha.PoolConfig, raw Raw) *gacha.PoolConfig {
	cfg := *base
	if base.Glitter != nil {
		g := *base.Glitter
		cfg.Glitter = &g
	}

	if d := raw.Draw; d != nil {
		if d.BaseRate != nil {
			cfg.BaseRate = *d.BaseRate
		}
		if d.SoftPityStart != nil {
			cfg.SoftPityStart = *d.SoftPityStart
		}
		if d.RampRate != nil {
			cfg.RampRate = *d.RampRate
		}
		if d.HardPity != nil {
			cfg.HardPity = *d.HardPity
		}
	}
	if b := raw.Banner; b != nil {
		if b.FiftyFifty != nil {
			cfg.HasFiftyFifty = *b.FiftyFifty
		}
		if b.UpRate != nil {
			cfg.UpRate = *b.UpRate
		}
		if b.Mechanic != nil {
			cfg.Mechanic = gacha.Mechanic(*b.Mechanic)
		}
		if b.StreakLimit != nil {
			cfg.StreakLimit = *b.StreakLimit
		}
		if b.BonusRate != nil {
			cfg.BonusRate = *b.BonusRate
		}
		if b.PointsTarget != nil {
			cfg.PointsTarget = *b.PointsTarget
		}
	}
	if g := raw.Glitter; g != nil && cfg.Glitter != nil {
		if g.Name != nil {
			cfg.Glitter.Name = *g.Name
		}
		if g.Rate != nil {
			cfg.Glitter.Rate = *g.Rate
		}
		if g.Pity != nil {
			cfg.Glitter.Pity = *g.Pity
		}
		if g.UpRate != nil {
			cfg.Glitter.UpRate = *g.UpRate
		}
	}
	if l := raw.Limits; l != nil {
		if l.Trials != nil {
			cfg.Trials = *l.Trials
		}
		if l.MaxTrials != nil {
			cfg.MaxTrials = *l.MaxTrials
		}
		if l.MaxPullsPerTrial != nil {
			cfg.MaxPullsPerTrial = *l.MaxPullsPerTrial
		}
	}
	return &cfg
}

func splitKey(key string) (game, pool string) {
	for i := 0; i < len(key); i++ {
		if key[i] == '/' {
			return key[:i], key[i+1:]
		}
	}
	return key, ""
}
