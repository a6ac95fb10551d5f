package model

import (
	"fmt"
	"sort"
	"strings"
)

// RosterSize is the fixed number of rostered players per team. Empty slots
// still count toward the team-rating denominator with the default rating.
const RosterSize = 3

// TierUnranked is the reserved fallback label returned when no configured
// threshold matches a rating.
const TierUnranked = "Unranked"

// ---- Raw input records (produced by external scraping collaborators) ----

// MatchRecord is one player's performance in one lobby on one tournament day.
type MatchRecord struct {
	Season     string
	PlayerName string
	Day        int
	Lobby      string // numeric-like key, may carry half-steps ("1.5")
	Score      float64
	Kills      int
	Damage     int
}

// NewMatchRecord validates and builds a MatchRecord. Malformed records are a
// hard error rather than a silent skip: a corrupt record would corrupt every
// rating computed downstream of it.
func NewMatchRecord(season, playerName string, day int, lobby string, score float64, kills, damage int) (MatchRecord, error) {
	if strings.TrimSpace(season) == "" {
		return MatchRecord{}, fmt.Errorf("match record: empty season")
	}
	if strings.TrimSpace(playerName) == "" {
		return MatchRecord{}, fmt.Errorf("match record: empty player name")
	}
	if day < 1 {
		return MatchRecord{}, fmt.Errorf("match record for %q: day %d out of range", playerName, day)
	}
	if strings.TrimSpace(lobby) == "" {
		return MatchRecord{}, fmt.Errorf("match record for %q: empty lobby", playerName)
	}
	if kills < 0 || damage < 0 {
		return MatchRecord{}, fmt.Errorf("match record for %q: negative kills/damage", playerName)
	}
	return MatchRecord{
		Season:     season,
		PlayerName: playerName,
		Day:        day,
		Lobby:      lobby,
		Score:      score,
		Kills:      kills,
		Damage:     damage,
	}, nil
}

// AliasEntry maps a canonical Discord identity to the display names it has
// appeared under in scraped placement data.
type AliasEntry struct {
	DiscordName string   `json:"discord_name"`
	Aliases     []string `json:"aliases"`
}

// RosterEntry is one row of the roster sheet: a team, its three players
// (Discord names), and a free-text schedule constraint.
type RosterEntry struct {
	TeamName           string
	Players            [RosterSize]string
	ScheduleConstraint string
	Waitlisted         bool
}

// ---- Rating pipeline outputs ----

// PlayerSeasonScore is one player's aggregated performance in one season.
// Immutable once computed; reruns supersede rather than mutate.
type PlayerSeasonScore struct {
	CanonicalID string
	Season      string

	DaysPlayed    int
	TotalWeighted float64
	AveragePerDay float64

	Kills  int
	Damage int

	IndividualScore     float64
	IndividualComponent float64
	TeamComponent       float64
	BlendedScore        float64

	// Lobbies holds one entry per lobby appearance (not deduplicated);
	// the bonus engine stacks a bonus for every appearance.
	Lobbies []string

	// AllNames are the display names this identity appeared under.
	AllNames []string
}

// Validate enforces the aggregation invariants on a computed season score.
func (s *PlayerSeasonScore) Validate() error {
	if s.CanonicalID == "" {
		return fmt.Errorf("season score: empty canonical id")
	}
	if s.DaysPlayed <= 0 {
		return fmt.Errorf("season score for %q (%s): days played must be positive, got %d",
			s.CanonicalID, s.Season, s.DaysPlayed)
	}
	return nil
}

// DisplayName returns a stable display name for the identity: the
// lexicographically first of the names it appeared under.
func (s *PlayerSeasonScore) DisplayName() string {
	if len(s.AllNames) == 0 {
		return s.CanonicalID
	}
	names := append([]string(nil), s.AllNames...)
	sort.Strings(names)
	return names[0]
}

// PlayerRating is a player's cross-season combined rating.
type PlayerRating struct {
	CanonicalID  string
	DisplayName  string
	AllNames     []string
	SeasonScores map[string]float64 // season id -> blended score that season

	Combined      float64
	BonusFraction float64 // additive bonus fraction applied on top of the base
	SeasonsPlayed []string

	// Rank is derived, 1-based, recomputed on every sort; never a source
	// of truth independent of the rating it orders.
	Rank int
}

// SeasonsLabel renders the participation set as "S11+S12".
func (r *PlayerRating) SeasonsLabel() string {
	seasons := append([]string(nil), r.SeasonsPlayed...)
	sort.Strings(seasons)
	return strings.Join(seasons, "+")
}

// TierThreshold is one (label, minimum rating) pair of the classifier's
// threshold table, ordered strictly descending by Min.
type TierThreshold struct {
	Label string
	Min   float64
}

// ---- Team & division entities ----

// Team carries a roster and its derived rating. Rating and tier are views
// over the roster players' ratings, recomputed on every pipeline run.
type Team struct {
	Name   string
	Roster [RosterSize]string // Discord names as rostered; empty slots allowed

	PlayerRatings [RosterSize]float64
	Rating        float64
	Tier          string

	ScheduleConstraint string
	CannotPlay         []string // day names the team cannot play

	// MissingPlayers lists roster slots that fell back to the default
	// rating, for the substitution audit.
	MissingPlayers []string

	// CompatibleDivisions is the schedule-compatibility report; placement
	// deliberately does not consult it.
	CompatibleDivisions []int
}

// Division is one seeded competitive bracket.
type Division struct {
	Number   int
	Day      string
	Capacity int
	Teams    []Team
}

// DivisionStats summarizes the skill spread of a seeded division.
type DivisionStats struct {
	Count int
	Avg   float64
	Min   float64
	Max   float64
}

// Stats computes the division's summary statistics.
func (d *Division) Stats() DivisionStats {
	st := DivisionStats{Count: len(d.Teams)}
	if st.Count == 0 {
		return st
	}
	st.Min = d.Teams[0].Rating
	st.Max = d.Teams[0].Rating
	sum := 0.0
	for _, t := range d.Teams {
		sum += t.Rating
		if t.Rating < st.Min {
			st.Min = t.Rating
		}
		if t.Rating > st.Max {
			st.Max = t.Rating
		}
	}
	st.Avg = sum / float64(st.Count)
	return st
}

// ---- Audit records (machine-readable data-quality ledger) ----

// Substitution records a roster slot that could not be matched to a rated
// player and received the default rating instead.
type Substitution struct {
	TeamName      string
	Slot          int // 1-based roster slot
	PlayerName    string
	DefaultRating float64
}

// AliasConflict records an alias claimed by two canonical identities; the
// first-seen owner wins and the later claim is dropped.
type AliasConflict struct {
	Alias     string
	Kept      string
	Discarded string
}

// UnplacedTeam records a team the seeder could not place, or one whose
// schedule constraint is incompatible with every division day.
type UnplacedTeam struct {
	TeamName            string
	Rating              float64
	Reason              string
	CompatibleDivisions []int
}
