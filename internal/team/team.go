// Package team derives team ratings from roster players' combined ratings
// and parses roster schedule constraints.
package team

import (
	"sort"
	"strings"

	"github.com/vesa-league/vesarank/internal/identity"
	"github.com/vesa-league/vesarank/internal/model"
	"github.com/vesa-league/vesarank/internal/rating"
)

// weekdays in schedule order, matched case-insensitively inside free-text
// constraint strings.
var weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// ParseConstraint extracts the day names a team cannot play from the roster
// sheet's free-text constraint answer. "No scheduling issues" and empty
// answers yield no exclusions.
func ParseConstraint(constraint string) []string {
	c := strings.ToLower(strings.TrimSpace(constraint))
	if c == "" || c == "no scheduling issues" {
		return nil
	}
	var cannot []string
	for _, day := range weekdays {
		if strings.Contains(c, strings.ToLower(day)) {
			cannot = append(cannot, day)
		}
	}
	return cannot
}

// Rate computes a team's rating as the arithmetic mean over exactly
// RosterSize slots. A slot whose player has no rating (or is empty) takes
// defaultRating and is recorded as a substitution — the denominator is
// always RosterSize, never shrunk to the matched count.
func Rate(entry model.RosterEntry, ratings map[string]float64, resolver *identity.Resolver,
	defaultRating float64, thresholds []model.TierThreshold) (model.Team, []model.Substitution) {

	t := model.Team{
		Name:               entry.TeamName,
		Roster:             entry.Players,
		ScheduleConstraint: entry.ScheduleConstraint,
		CannotPlay:         ParseConstraint(entry.ScheduleConstraint),
	}

	var subs []model.Substitution
	sum := 0.0
	for i, name := range entry.Players {
		r, ok := lookupRating(name, ratings, resolver)
		if !ok {
			r = defaultRating
			t.MissingPlayers = append(t.MissingPlayers, name)
			subs = append(subs, model.Substitution{
				TeamName:      entry.TeamName,
				Slot:          i + 1,
				PlayerName:    name,
				DefaultRating: defaultRating,
			})
		}
		t.PlayerRatings[i] = r
		sum += r
	}
	t.Rating = sum / float64(model.RosterSize)
	t.Tier = rating.ClassifyTier(t.Rating, thresholds)
	return t, subs
}

// lookupRating finds a roster name in the ratings table, first directly and
// then through the alias resolver. Ratings are keyed by canonical ID, so
// these two probes cover both a rostered canonical name and a rostered
// alias.
func lookupRating(name string, ratings map[string]float64, resolver *identity.Resolver) (float64, bool) {
	n := identity.Normalize(name)
	if n == "" {
		return 0, false
	}
	if r, ok := ratings[n]; ok {
		return r, true
	}
	if r, ok := ratings[resolver.Resolve(name)]; ok {
		return r, true
	}
	return 0, false
}

// RateAll rates every active (non-waitlisted) roster entry and returns the
// teams sorted by rating descending (name ascending on ties) together with
// the full substitution audit.
func RateAll(entries []model.RosterEntry, ratings map[string]float64, resolver *identity.Resolver,
	defaultRating float64, thresholds []model.TierThreshold) ([]model.Team, []model.Substitution) {

	var teams []model.Team
	var subs []model.Substitution
	for _, e := range entries {
		if e.Waitlisted {
			continue
		}
		t, s := Rate(e, ratings, resolver, defaultRating, thresholds)
		teams = append(teams, t)
		subs = append(subs, s...)
	}
	sort.Slice(teams, func(i, j int) bool {
		if teams[i].Rating != teams[j].Rating {
			return teams[i].Rating > teams[j].Rating
		}
		return teams[i].Name < teams[j].Name
	})
	return teams, subs
}
