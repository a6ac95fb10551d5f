// Package rating implements the VESA League rating pipeline: lobby/day
// weighting, per-season aggregation, cross-season combination, lobby
// bonuses, tier classification, and ranking.
package rating

import (
	"fmt"
	"strconv"

	"github.com/vesa-league/vesarank/internal/config"
)

// UnknownWeightError reports a lobby, day, or season that has no configured
// weight. This is a configuration error, not a data condition: treating an
// unweighted key as 1.0x (or 0x) would skew rankings without detection, so
// the pipeline fails fast instead.
type UnknownWeightError struct {
	Kind string // "lobby", "day", or "season"
	Key  string
}

func (e *UnknownWeightError) Error() string {
	return fmt.Sprintf("no %s weight configured for key %q", e.Kind, e.Key)
}

// WeightedScore applies both the lobby-difficulty and day-progression
// multipliers to a raw match score:
//
//	weighted = raw × lobby_weight × day_weight
//
// Both factors are resolved before any arithmetic and no intermediate
// rounding is performed; rounding happens only at presentation boundaries.
func WeightedScore(cfg *config.Config, rawScore float64, day int, lobby string) (float64, error) {
	lw, ok := cfg.LobbyWeights[lobby]
	if !ok {
		return 0, &UnknownWeightError{Kind: "lobby", Key: lobby}
	}
	dayKey := strconv.Itoa(day)
	dw, ok := cfg.DayWeights[dayKey]
	if !ok {
		return 0, &UnknownWeightError{Kind: "day", Key: dayKey}
	}
	return rawScore * lw * dw, nil
}
