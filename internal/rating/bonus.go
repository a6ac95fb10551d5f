package rating

// ApplyLobbyBonus applies the tough-competition bonus to a rating. Bonuses
// are additive fractions that stack across every lobby appearance:
//
//	total = Σ bonusTable[lobby]   over all appearances
//	new   = rating × (1 + total)
//
// Stacking is deliberately unbounded — appearing repeatedly in high-bonus
// lobbies can multiply a rating many-fold, and fractions above 100% are
// legitimate (500% + 300% ⇒ ×9.0, not ×1.05×1.03). Lobbies absent from the
// bonus table simply grant nothing.
//
// The applied total is returned alongside the new rating so it can be
// tracked separately from the base.
func ApplyLobbyBonus(rating float64, lobbyAppearances []string, bonusTable map[string]float64) (newRating, totalBonus float64) {
	for _, lobby := range lobbyAppearances {
		totalBonus += bonusTable[lobby]
	}
	return rating * (1 + totalBonus), totalBonus
}
