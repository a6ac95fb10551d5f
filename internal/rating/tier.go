package rating

import "github.com/vesa-league/vesarank/internal/model"

// ClassifyTier maps a rating to the first tier whose minimum it meets or
// exceeds. Thresholds must be pre-sorted strictly descending (config
// validation enforces this). If even the lowest threshold is above the
// rating, the reserved unranked label is returned — classification never
// fails, for any rating.
func ClassifyTier(rating float64, thresholds []model.TierThreshold) string {
	for _, t := range thresholds {
		if rating >= t.Min {
			return t.Label
		}
	}
	return model.TierUnranked
}
