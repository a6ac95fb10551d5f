package rating

import (
	"errors"
	"testing"

	"github.com/vesa-league/vesarank/internal/config"
)

// weightConfig builds a minimal configuration for weighting tests.
func weightConfig() *config.Config {
	return &config.Config{
		LobbyWeights: map[string]float64{"1": 1.0, "1.5": 1.5, "2": 2.0},
		DayWeights:   map[string]float64{"1": 1.0, "2": 2.0},
	}
}

func TestWeightedScore(t *testing.T) {
	cfg := weightConfig()

	cases := []struct {
		name  string
		raw   float64
		day   int
		lobby string
		want  float64
	}{
		{"unit weights", 100, 1, "1", 100},
		{"lobby weight only", 100, 1, "2", 200},
		{"day weight only", 100, 2, "1", 200},
		{"both weights", 100, 2, "2", 400},
		{"half-step lobby", 80, 1, "1.5", 120},
		{"zero score stays zero", 0, 2, "2", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := WeightedScore(cfg, tc.raw, tc.day, tc.lobby)
			if err != nil {
				t.Fatalf("WeightedScore: %v", err)
			}
			if got != tc.want {
				t.Errorf("WeightedScore(%v, day %d, lobby %s) = %v, want %v",
					tc.raw, tc.day, tc.lobby, got, tc.want)
			}
		})
	}
}

func TestWeightedScore_UnknownLobby(t *testing.T) {
	cfg := weightConfig()

	_, err := WeightedScore(cfg, 100, 1, "99")
	if err == nil {
		t.Fatal("expected error for unconfigured lobby")
	}
	var uw *UnknownWeightError
	if !errors.As(err, &uw) {
		t.Fatalf("expected UnknownWeightError, got %T: %v", err, err)
	}
	if uw.Kind != "lobby" || uw.Key != "99" {
		t.Errorf("got kind=%q key=%q, want lobby/99", uw.Kind, uw.Key)
	}
}

func TestWeightedScore_UnknownDay(t *testing.T) {
	cfg := weightConfig()

	_, err := WeightedScore(cfg, 100, 7, "1")
	var uw *UnknownWeightError
	if !errors.As(err, &uw) {
		t.Fatalf("expected UnknownWeightError, got %v", err)
	}
	if uw.Kind != "day" || uw.Key != "7" {
		t.Errorf("got kind=%q key=%q, want day/7", uw.Kind, uw.Key)
	}
}
