package rating

import (
	"fmt"
	"sort"

	"github.com/vesa-league/vesarank/internal/config"
	"github.com/vesa-league/vesarank/internal/identity"
	"github.com/vesa-league/vesarank/internal/model"
)

// Aggregate groups one season's match records by canonical identity and
// produces one PlayerSeasonScore per player.
//
// The fairness device is average-per-day: total weighted score divided by
// the number of distinct days played, so a four-day player is compared to a
// one-day player on equal footing. The blended score adds an individual
// component (kills/damage) on top:
//
//	individual = kills×KillPoints + damage÷DamageDivisor
//	blended    = individual×IndividualWeight + avgPerDay×TeamWeight
func Aggregate(records []model.MatchRecord, cfg *config.Config, resolver *identity.Resolver) (map[string]*model.PlayerSeasonScore, error) {
	type accum struct {
		days     map[int]struct{}
		total    float64
		kills    int
		damage   int
		lobbies  []string
		allNames map[string]struct{}
		season   string
	}
	accums := make(map[string]*accum)

	for _, rec := range records {
		canonical := resolver.Resolve(rec.PlayerName)
		if canonical == "" {
			continue
		}

		weighted, err := WeightedScore(cfg, rec.Score, rec.Day, rec.Lobby)
		if err != nil {
			return nil, fmt.Errorf("record for %q (day %d, lobby %s): %w",
				rec.PlayerName, rec.Day, rec.Lobby, err)
		}

		acc := accums[canonical]
		if acc == nil {
			acc = &accum{
				days:     make(map[int]struct{}),
				allNames: make(map[string]struct{}),
				season:   rec.Season,
			}
			accums[canonical] = acc
		}
		acc.days[rec.Day] = struct{}{}
		acc.total += weighted
		acc.kills += rec.Kills
		acc.damage += rec.Damage
		acc.lobbies = append(acc.lobbies, rec.Lobby)
		acc.allNames[rec.PlayerName] = struct{}{}
	}

	scores := make(map[string]*model.PlayerSeasonScore, len(accums))
	for canonical, acc := range accums {
		daysPlayed := len(acc.days)

		names := make([]string, 0, len(acc.allNames))
		for n := range acc.allNames {
			names = append(names, n)
		}
		sort.Strings(names)

		s := &model.PlayerSeasonScore{
			CanonicalID:   canonical,
			Season:        acc.season,
			DaysPlayed:    daysPlayed,
			TotalWeighted: acc.total,
			Kills:         acc.kills,
			Damage:        acc.damage,
			Lobbies:       acc.lobbies,
			AllNames:      names,
		}
		if err := s.Validate(); err != nil {
			return nil, err
		}

		s.AveragePerDay = s.TotalWeighted / float64(daysPlayed)
		s.IndividualScore = float64(acc.kills)*cfg.Scoring.KillPoints +
			float64(acc.damage)/cfg.Scoring.DamageDivisor
		s.IndividualComponent = s.IndividualScore * cfg.Scoring.IndividualWeight
		s.TeamComponent = s.AveragePerDay * cfg.Scoring.TeamWeight
		s.BlendedScore = s.IndividualComponent + s.TeamComponent

		scores[canonical] = s
	}
	return scores, nil
}
