package rating

import (
	"sort"

	"github.com/vesa-league/vesarank/internal/model"
)

// RankPlayers sorts ratings descending and assigns 1-based ranks. Ties break
// on canonical ID ascending, so ordering is deterministic across runs. Ranks
// are derived values, overwritten on every call.
func RankPlayers(ratings []*model.PlayerRating) {
	sort.Slice(ratings, func(i, j int) bool {
		if ratings[i].Combined != ratings[j].Combined {
			return ratings[i].Combined > ratings[j].Combined
		}
		return ratings[i].CanonicalID < ratings[j].CanonicalID
	})
	for i, r := range ratings {
		r.Rank = i + 1
	}
}
