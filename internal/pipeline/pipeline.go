// Package pipeline runs the full rating and seeding computation as one
// batch, single-threaded and run-to-completion. Every run recomputes all
// entities wholesale from the raw inputs and configuration — there is no
// incremental update, so rerunning with identical inputs reproduces
// identical rankings and assignments.
package pipeline

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vesa-league/vesarank/internal/config"
	"github.com/vesa-league/vesarank/internal/identity"
	"github.com/vesa-league/vesarank/internal/model"
	"github.com/vesa-league/vesarank/internal/rating"
	"github.com/vesa-league/vesarank/internal/seeding"
	"github.com/vesa-league/vesarank/internal/team"
)

// Inputs is everything a run consumes: raw placement records per season,
// the alias table, and the roster sheet.
type Inputs struct {
	Seasons map[string][]model.MatchRecord
	Aliases []model.AliasEntry
	Rosters []model.RosterEntry
}

// Result is the complete output artifact of one run, including the
// machine-readable audit of every substitution, conflict, and exclusion so
// humans can reconcile edge cases.
type Result struct {
	SeasonScores map[string]map[string]*model.PlayerSeasonScore
	Ratings      []*model.PlayerRating
	Teams        []model.Team
	Seeding      seeding.Result

	Substitutions  []model.Substitution
	AliasConflicts []model.AliasConflict
}

// Run executes the pipeline: resolve identities, weight and aggregate each
// season, combine across seasons, apply lobby bonuses, rank, rate teams,
// and seed divisions.
func Run(in Inputs, cfg *config.Config, log zerolog.Logger) (*Result, error) {
	resolver := identity.NewResolver(in.Aliases)
	if n := len(resolver.Conflicts()); n > 0 {
		log.Warn().Int("conflicts", n).Msg("alias table has conflicting claims; first-seen owners kept")
	}

	out := &Result{
		SeasonScores:   make(map[string]map[string]*model.PlayerSeasonScore),
		AliasConflicts: resolver.Conflicts(),
	}

	for seasonID, records := range in.Seasons {
		scores, err := rating.Aggregate(records, cfg, resolver)
		if err != nil {
			return nil, fmt.Errorf("aggregate season %s: %w", seasonID, err)
		}
		out.SeasonScores[seasonID] = scores
		log.Info().
			Str("season", seasonID).
			Int("records", len(records)).
			Int("players", len(scores)).
			Msg("season aggregated")
	}

	ratings, err := rating.Combine(out.SeasonScores, cfg)
	if err != nil {
		return nil, fmt.Errorf("combine seasons: %w", err)
	}
	out.Ratings = ratings

	// Lobby bonus, driven by the configured season's lobby appearances.
	if cfg.BonusSeason != "" {
		bonusScores := out.SeasonScores[cfg.BonusSeason]
		applied := 0
		for _, r := range out.Ratings {
			s, ok := bonusScores[r.CanonicalID]
			if !ok {
				continue
			}
			r.Combined, r.BonusFraction = rating.ApplyLobbyBonus(r.Combined, s.Lobbies, cfg.LobbyBonuses)
			if r.BonusFraction > 0 {
				applied++
			}
		}
		log.Info().
			Str("season", cfg.BonusSeason).
			Int("players", applied).
			Msg("lobby bonuses applied")
	}

	rating.RankPlayers(out.Ratings)
	log.Info().Int("players", len(out.Ratings)).Msg("players ranked")

	// Team rating and seeding.
	ratingByID := make(map[string]float64, len(out.Ratings))
	for _, r := range out.Ratings {
		ratingByID[r.CanonicalID] = r.Combined
	}
	out.Teams, out.Substitutions = team.RateAll(
		in.Rosters, ratingByID, resolver, cfg.DefaultRating, cfg.Thresholds())
	log.Info().
		Int("teams", len(out.Teams)).
		Int("substitutions", len(out.Substitutions)).
		Msg("teams rated")

	if len(out.Teams) > 0 {
		out.Seeding = seeding.Seed(out.Teams, cfg.DivisionCount, cfg.DivisionSchedule)
		log.Info().
			Int("divisions", cfg.DivisionCount).
			Int("unplaced", len(out.Seeding.Unplaced)).
			Msg("divisions seeded")
	}

	return out, nil
}
