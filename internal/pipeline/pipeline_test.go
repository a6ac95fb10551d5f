package pipeline

import (
	"math"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/vesa-league/vesarank/internal/config"
	"github.com/vesa-league/vesarank/internal/model"
)

func leagueConfig() *config.Config {
	cfg := &config.Config{
		LobbyWeights: map[string]float64{"1": 2.0, "2": 1.0},
		DayWeights:   map[string]float64{"1": 1.0, "2": 1.0},
		LobbyBonuses: map[string]float64{"1": 0.5},
		BonusSeason:  "S12",
		SeasonWeights: map[string]float64{
			"S11": 0.4,
			"S12": 0.6,
		},
		Scoring: config.Scoring{
			KillPoints:       10,
			DamageDivisor:    100,
			IndividualWeight: 0.65,
			TeamWeight:       0.35,
		},
		DefaultRating: 200,
		TierThresholds: []config.TierThreshold{
			{Label: "S", Min: 400},
			{Label: "A", Min: 200},
			{Label: "B", Min: 100},
		},
		DivisionCount: 2,
		RawDivisionSchedule: map[string]string{
			"1": "Monday",
			"2": "Friday",
		},
	}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}

func leagueInputs() Inputs {
	return Inputs{
		Seasons: map[string][]model.MatchRecord{
			"S11": {
				{Season: "S11", PlayerName: "Ace", Day: 1, Lobby: "1", Score: 100, Kills: 10, Damage: 1000},
				{Season: "S11", PlayerName: "Bee", Day: 1, Lobby: "2", Score: 80, Kills: 4, Damage: 400},
			},
			"S12": {
				{Season: "S12", PlayerName: "AceTTV", Day: 1, Lobby: "1", Score: 120, Kills: 12, Damage: 1200},
				{Season: "S12", PlayerName: "Bee", Day: 1, Lobby: "2", Score: 90, Kills: 5, Damage: 500},
				{Season: "S12", PlayerName: "Cid", Day: 2, Lobby: "2", Score: 60, Kills: 2, Damage: 300},
			},
		},
		Aliases: []model.AliasEntry{
			{DiscordName: "ace#1", Aliases: []string{"Ace", "AceTTV"}},
		},
		Rosters: []model.RosterEntry{
			{TeamName: "Apex Predators", Players: [model.RosterSize]string{"Ace", "Bee", "Cid"}},
			{TeamName: "Fillers", Players: [model.RosterSize]string{"Nobody1", "Nobody2", "Nobody3"}},
			{TeamName: "Benched", Players: [model.RosterSize]string{"Ace", "Ace", "Ace"}, Waitlisted: true},
		},
	}
}

func TestRun_EndToEnd(t *testing.T) {
	res, err := Run(leagueInputs(), leagueConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Ace's two aliases collapse into one identity, rated across both seasons.
	var ace *model.PlayerRating
	for _, r := range res.Ratings {
		if r.CanonicalID == "ace#1" {
			ace = r
		}
	}
	if ace == nil {
		t.Fatal("no combined rating for ace#1")
	}
	if len(ace.SeasonsPlayed) != 2 {
		t.Errorf("ace seasons = %v, want both", ace.SeasonsPlayed)
	}
	if ace.BonusFraction != 0.5 {
		t.Errorf("ace BonusFraction = %v, want 0.5 (one lobby-1 appearance in S12)", ace.BonusFraction)
	}

	// Ranks are contiguous from 1 and ordered by rating.
	for i, r := range res.Ratings {
		if r.Rank != i+1 {
			t.Errorf("rank at position %d = %d", i, r.Rank)
		}
		if i > 0 && r.Combined > res.Ratings[i-1].Combined {
			t.Errorf("ratings not descending at position %d", i)
		}
	}

	// Waitlisted roster excluded; remaining teams seeded completely.
	if len(res.Teams) != 2 {
		t.Fatalf("got %d teams, want 2 (waitlisted excluded)", len(res.Teams))
	}
	seated := 0
	for _, d := range res.Seeding.Divisions {
		seated += len(d.Teams)
	}
	if seated != 2 {
		t.Errorf("seated %d teams, want 2", seated)
	}

	// The all-unknown roster produced three substitutions at the default.
	if len(res.Substitutions) != 3 {
		t.Fatalf("got %d substitutions, want 3", len(res.Substitutions))
	}
	for _, s := range res.Substitutions {
		if s.TeamName != "Fillers" || s.DefaultRating != 200 {
			t.Errorf("unexpected substitution %+v", s)
		}
	}

	// A fully-defaulted team rates exactly the default.
	for _, team := range res.Teams {
		if team.Name == "Fillers" && math.Abs(team.Rating-200) > 1e-9 {
			t.Errorf("Fillers rating = %v, want 200", team.Rating)
		}
	}
}

// Two runs over identical inputs and configuration produce identical
// outputs.
func TestRun_Idempotent(t *testing.T) {
	first, err := Run(leagueInputs(), leagueConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("first Run: %v", err)
	}
	second, err := Run(leagueInputs(), leagueConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}

	if !reflect.DeepEqual(first.Ratings, second.Ratings) {
		t.Error("ratings differ between identical runs")
	}
	if !reflect.DeepEqual(first.Teams, second.Teams) {
		t.Error("team ratings differ between identical runs")
	}
	if !reflect.DeepEqual(first.Seeding, second.Seeding) {
		t.Error("division assignments differ between identical runs")
	}
	if !reflect.DeepEqual(first.Substitutions, second.Substitutions) {
		t.Error("substitution audits differ between identical runs")
	}
}

func TestRun_UnweightedSeasonAborts(t *testing.T) {
	cfg := leagueConfig()
	// Ace carries scores in both seasons; dropping S11's weight must abort
	// rather than zero out the S11 contribution.
	delete(cfg.SeasonWeights, "S11")

	if _, err := Run(leagueInputs(), cfg, zerolog.Nop()); err == nil {
		t.Fatal("expected run to abort on an unweighted multi-season player")
	}
}

func TestRun_UnknownLobbyAborts(t *testing.T) {
	in := leagueInputs()
	in.Seasons["S12"] = append(in.Seasons["S12"], model.MatchRecord{
		Season: "S12", PlayerName: "Dax", Day: 1, Lobby: "mystery", Score: 50,
	})

	if _, err := Run(in, leagueConfig(), zerolog.Nop()); err == nil {
		t.Fatal("expected run to abort on an unconfigured lobby")
	}
}
