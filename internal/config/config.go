// Package config loads and validates the league's weighting configuration.
// Every knob that shapes a rating lives here: lobby/day weights, lobby
// bonuses, season recency weights, scoring blend constants, tier thresholds,
// and the division schedule. Validation is strict — a malformed weight table
// aborts the run before any stage executes, because a silently-defaulted
// weight corrupts competitive rankings without detection.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/vesa-league/vesarank/internal/model"
)

// Scoring holds the individual/team blend constants. The two weights are
// independent and deliberately not required to sum to 1; both must be
// non-negative.
type Scoring struct {
	KillPoints       float64 `json:"kill_points"`
	DamageDivisor    float64 `json:"damage_divisor"`
	IndividualWeight float64 `json:"individual_weight"`
	TeamWeight       float64 `json:"team_weight"`
}

// TierThreshold is one (label, minimum rating) pair. Thresholds are supplied
// strictly descending by Min.
type TierThreshold struct {
	Label string  `json:"tier"`
	Min   float64 `json:"min"`
}

// Config is the full pipeline configuration as read from a JSON file.
type Config struct {
	LobbyWeights map[string]float64 `json:"lobby_weights"`
	DayWeights   map[string]float64 `json:"day_weights"`

	// LobbyBonuses are additive bonus fractions per lobby appearance
	// (e.g. 5.0 = +500%). Missing lobbies simply grant no bonus.
	LobbyBonuses map[string]float64 `json:"lobby_bonuses"`

	// BonusSeason names the season whose lobby appearances drive the
	// bonus engine. Empty disables bonuses.
	BonusSeason string `json:"bonus_season"`

	// SeasonWeights are nominal recency weights per season. Single-season
	// players are scored unscaled regardless of these (see rating.Combine).
	SeasonWeights map[string]float64 `json:"season_weights"`

	Scoring Scoring `json:"scoring"`

	DefaultRating  float64         `json:"default_rating"`
	TierThresholds []TierThreshold `json:"tier_thresholds"`

	DivisionCount    int            `json:"division_count"`
	DivisionSchedule map[int]string `json:"-"`

	// RawDivisionSchedule carries the JSON form (string keys).
	RawDivisionSchedule map[string]string `json:"division_schedule"`
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks every invariant the pipeline depends on.
func (c *Config) Validate() error {
	if len(c.LobbyWeights) == 0 {
		return fmt.Errorf("no lobby weights configured")
	}
	for lobby, w := range c.LobbyWeights {
		if w <= 0 {
			return fmt.Errorf("lobby weight %q must be positive, got %v", lobby, w)
		}
	}
	if len(c.DayWeights) == 0 {
		return fmt.Errorf("no day weights configured")
	}
	for day, w := range c.DayWeights {
		if w <= 0 {
			return fmt.Errorf("day weight %q must be positive, got %v", day, w)
		}
	}
	for lobby, b := range c.LobbyBonuses {
		if b < 0 {
			return fmt.Errorf("lobby bonus %q must be non-negative, got %v", lobby, b)
		}
	}
	for season, w := range c.SeasonWeights {
		if w < 0 {
			return fmt.Errorf("season weight %q must be non-negative, got %v", season, w)
		}
	}
	if c.Scoring.IndividualWeight < 0 || c.Scoring.TeamWeight < 0 {
		return fmt.Errorf("scoring blend weights must be non-negative (individual=%v, team=%v)",
			c.Scoring.IndividualWeight, c.Scoring.TeamWeight)
	}
	if c.Scoring.DamageDivisor == 0 {
		return fmt.Errorf("scoring damage divisor must be non-zero")
	}
	if len(c.TierThresholds) == 0 {
		return fmt.Errorf("no tier thresholds configured")
	}
	for i := 1; i < len(c.TierThresholds); i++ {
		if c.TierThresholds[i].Min >= c.TierThresholds[i-1].Min {
			return fmt.Errorf("tier thresholds must be strictly descending: %q (%v) >= %q (%v)",
				c.TierThresholds[i].Label, c.TierThresholds[i].Min,
				c.TierThresholds[i-1].Label, c.TierThresholds[i-1].Min)
		}
	}
	for _, t := range c.TierThresholds {
		if t.Label == model.TierUnranked {
			return fmt.Errorf("tier label %q is reserved", model.TierUnranked)
		}
	}
	if c.DivisionCount < 1 {
		return fmt.Errorf("division count must be at least 1, got %d", c.DivisionCount)
	}

	c.DivisionSchedule = make(map[int]string, len(c.RawDivisionSchedule))
	for key, day := range c.RawDivisionSchedule {
		var n int
		if _, err := fmt.Sscanf(key, "%d", &n); err != nil {
			return fmt.Errorf("division schedule key %q is not a division number", key)
		}
		if n < 1 || n > c.DivisionCount {
			return fmt.Errorf("division schedule key %d outside 1..%d", n, c.DivisionCount)
		}
		c.DivisionSchedule[n] = day
	}
	for n := 1; n <= c.DivisionCount; n++ {
		if _, ok := c.DivisionSchedule[n]; !ok {
			return fmt.Errorf("division %d has no scheduled day", n)
		}
	}
	return nil
}

// Thresholds returns the tier thresholds as the model type, in configured
// (descending) order.
func (c *Config) Thresholds() []model.TierThreshold {
	out := make([]model.TierThreshold, len(c.TierThresholds))
	for i, t := range c.TierThresholds {
		out[i] = model.TierThreshold{Label: t.Label, Min: t.Min}
	}
	return out
}

// SeasonsByWeight returns configured seasons ordered by descending weight,
// ties by name. Used to pick a display-name preference order.
func (c *Config) SeasonsByWeight() []string {
	seasons := make([]string, 0, len(c.SeasonWeights))
	for s := range c.SeasonWeights {
		seasons = append(seasons, s)
	}
	sort.Slice(seasons, func(i, j int) bool {
		wi, wj := c.SeasonWeights[seasons[i]], c.SeasonWeights[seasons[j]]
		if wi != wj {
			return wi > wj
		}
		return seasons[i] > seasons[j]
	})
	return seasons
}
