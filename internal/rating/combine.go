package rating

import (
	"sort"

	"github.com/vesa-league/vesarank/internal/config"
	"github.com/vesa-league/vesarank/internal/model"
)

// Combine merges each player's per-season scores into one PlayerRating using
// the configured season recency weights.
//
// Weight policy: a player with scores in two or more seasons gets the
// weighted sum under the nominal season weights. A single-season player's
// score is used unscaled (coefficient 1.0), not multiplied by that season's
// nominal weight — missing-season weights are never renormalized across the
// remaining seasons. A newcomer is judged on their one season at face value
// rather than discounted for seasons that did not exist for them.
//
// A multi-season player's season with no configured weight is an
// UnknownWeightError, the same fail-fast rule as lobby and day weights: a
// silent zero coefficient would erase that season's score from the rating
// without detection.
func Combine(perSeason map[string]map[string]*model.PlayerSeasonScore, cfg *config.Config) ([]*model.PlayerRating, error) {
	// Collect every canonical identity across all seasons.
	ids := make(map[string]struct{})
	for _, season := range perSeason {
		for id := range season {
			ids[id] = struct{}{}
		}
	}

	// Display-name preference follows descending season weight, so a
	// player's most recent name wins.
	namePref := cfg.SeasonsByWeight()

	ratings := make([]*model.PlayerRating, 0, len(ids))
	for id := range ids {
		r := &model.PlayerRating{
			CanonicalID:  id,
			SeasonScores: make(map[string]float64),
		}

		allNames := make(map[string]struct{})
		for seasonID, scores := range perSeason {
			s, ok := scores[id]
			if !ok {
				continue
			}
			r.SeasonScores[seasonID] = s.BlendedScore
			r.SeasonsPlayed = append(r.SeasonsPlayed, seasonID)
			for _, n := range s.AllNames {
				allNames[n] = struct{}{}
			}
		}
		sort.Strings(r.SeasonsPlayed)

		switch len(r.SeasonsPlayed) {
		case 0:
			continue
		case 1:
			r.Combined = r.SeasonScores[r.SeasonsPlayed[0]]
		default:
			for _, seasonID := range r.SeasonsPlayed {
				w, ok := cfg.SeasonWeights[seasonID]
				if !ok {
					return nil, &UnknownWeightError{Kind: "season", Key: seasonID}
				}
				r.Combined += r.SeasonScores[seasonID] * w
			}
		}

		r.AllNames = make([]string, 0, len(allNames))
		for n := range allNames {
			r.AllNames = append(r.AllNames, n)
		}
		sort.Strings(r.AllNames)
		r.DisplayName = pickDisplayName(perSeason, namePref, id)
		if r.DisplayName == "" {
			r.DisplayName = id
		}

		ratings = append(ratings, r)
	}
	return ratings, nil
}

// pickDisplayName chooses the player's display name from their
// highest-weighted season's records.
func pickDisplayName(perSeason map[string]map[string]*model.PlayerSeasonScore, pref []string, id string) string {
	for _, seasonID := range pref {
		if s, ok := perSeason[seasonID][id]; ok {
			return s.DisplayName()
		}
	}
	// Season not in the weight table at all; fall back to any.
	for _, scores := range perSeason {
		if s, ok := scores[id]; ok {
			return s.DisplayName()
		}
	}
	return ""
}
