package rating

import (
	"math"
	"testing"

	"github.com/vesa-league/vesarank/internal/config"
	"github.com/vesa-league/vesarank/internal/identity"
	"github.com/vesa-league/vesarank/internal/model"
)

// aggConfig is a fixture with unit day weights and distinct lobby weights,
// plus the standard scoring blend.
func aggConfig() *config.Config {
	return &config.Config{
		LobbyWeights: map[string]float64{"1": 1.0, "2": 2.0},
		DayWeights:   map[string]float64{"1": 1.0, "2": 1.0, "3": 1.0, "4": 1.0},
		Scoring: config.Scoring{
			KillPoints:       10,
			DamageDivisor:    100,
			IndividualWeight: 0.65,
			TeamWeight:       0.35,
		},
	}
}

func rec(player string, day int, lobby string, score float64, kills, damage int) model.MatchRecord {
	return model.MatchRecord{
		Season: "S12", PlayerName: player, Day: day, Lobby: lobby,
		Score: score, Kills: kills, Damage: damage,
	}
}

func approx(t *testing.T, got, want float64, label string) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s = %v, want %v", label, got, want)
	}
}

func TestAggregate_WeightedTotalAndAverage(t *testing.T) {
	// Day 1 lobby 1: 100×1.0 = 100. Day 2 lobby 2: 100×2.0 = 200.
	// Total 300 over 2 distinct days → average 150.
	records := []model.MatchRecord{
		rec("Wraith", 1, "1", 100, 0, 0),
		rec("Wraith", 2, "2", 100, 0, 0),
	}
	resolver := identity.NewResolver(nil)

	scores, err := Aggregate(records, aggConfig(), resolver)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	s, ok := scores["wraith"]
	if !ok {
		t.Fatalf("no score for wraith; got %d players", len(scores))
	}
	approx(t, s.TotalWeighted, 300, "TotalWeighted")
	if s.DaysPlayed != 2 {
		t.Errorf("DaysPlayed = %d, want 2", s.DaysPlayed)
	}
	approx(t, s.AveragePerDay, 150, "AveragePerDay")
}

// A player who grinds four days is compared per-day, not by raw volume:
// equal daily output means equal average regardless of attendance.
func TestAggregate_AveragePerDayFairness(t *testing.T) {
	var records []model.MatchRecord
	for day := 1; day <= 4; day++ {
		records = append(records, rec("Grinder", day, "1", 100, 0, 0))
	}
	records = append(records, rec("OneDay", 3, "1", 100, 0, 0))

	scores, err := Aggregate(records, aggConfig(), identity.NewResolver(nil))
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	grinder, oneDay := scores["grinder"], scores["oneday"]
	if grinder == nil || oneDay == nil {
		t.Fatal("missing expected players")
	}
	approx(t, grinder.AveragePerDay, oneDay.AveragePerDay, "AveragePerDay difference")
	if grinder.TotalWeighted <= oneDay.TotalWeighted {
		t.Error("four-day player should still have the larger weighted total")
	}
}

func TestAggregate_BlendedScore(t *testing.T) {
	// 10 kills, 500 damage: individual = 10×10 + 500/100 = 105.
	// Weighted total 200 over 1 day: average 200.
	// Blended = 105×0.65 + 200×0.35 = 68.25 + 70 = 138.25.
	records := []model.MatchRecord{rec("Valk", 1, "2", 100, 10, 500)}

	scores, err := Aggregate(records, aggConfig(), identity.NewResolver(nil))
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	s := scores["valk"]
	approx(t, s.IndividualScore, 105, "IndividualScore")
	approx(t, s.BlendedScore, 138.25, "BlendedScore")
}

func TestAggregate_MergesAliases(t *testing.T) {
	resolver := identity.NewResolver([]model.AliasEntry{
		{DiscordName: "shadow#123", Aliases: []string{"Shadow", "ShadowTTV"}},
	})
	records := []model.MatchRecord{
		rec("Shadow", 1, "1", 100, 5, 0),
		rec("ShadowTTV", 2, "1", 50, 3, 0),
	}

	scores, err := Aggregate(records, aggConfig(), resolver)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("expected 1 merged identity, got %d", len(scores))
	}
	s := scores["shadow#123"]
	if s == nil {
		t.Fatal("no score under canonical id shadow#123")
	}
	approx(t, s.TotalWeighted, 150, "TotalWeighted")
	if s.Kills != 8 {
		t.Errorf("Kills = %d, want 8", s.Kills)
	}
	if s.DaysPlayed != 2 {
		t.Errorf("DaysPlayed = %d, want 2", s.DaysPlayed)
	}
	if got := s.DisplayName(); got != "Shadow" {
		t.Errorf("DisplayName = %q, want Shadow", got)
	}
}

func TestAggregate_UnknownWeightFailsFast(t *testing.T) {
	records := []model.MatchRecord{rec("Nova", 1, "404", 100, 0, 0)}

	_, err := Aggregate(records, aggConfig(), identity.NewResolver(nil))
	if err == nil {
		t.Fatal("expected aggregation to fail on an unconfigured lobby")
	}
}

func TestAggregate_LobbiesKeepEveryAppearance(t *testing.T) {
	// The bonus engine stacks per appearance, so lobbies must not be
	// deduplicated.
	records := []model.MatchRecord{
		rec("Rev", 1, "1", 10, 0, 0),
		rec("Rev", 2, "1", 10, 0, 0),
		rec("Rev", 3, "2", 10, 0, 0),
	}
	scores, err := Aggregate(records, aggConfig(), identity.NewResolver(nil))
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if got := len(scores["rev"].Lobbies); got != 3 {
		t.Errorf("len(Lobbies) = %d, want 3 appearances", got)
	}
}
