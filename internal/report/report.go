// Package report renders pipeline results as terminal tables.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/vesa-league/vesarank/internal/model"
	"github.com/vesa-league/vesarank/internal/seeding"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

// PrintLeaderboard prints the combined player rating table. limit <= 0
// prints every player.
func PrintLeaderboard(w io.Writer, ratings []*model.PlayerRating, limit int) {
	table := newTable(w)
	table.Header("RANK", "PLAYER", "RATING", "SEASONS", "BONUS")

	for _, r := range ratings {
		if limit > 0 && r.Rank > limit {
			break
		}
		bonus := "—"
		if r.BonusFraction > 0 {
			bonus = fmt.Sprintf("%.0f%%", r.BonusFraction*100)
		}
		table.Append(
			strconv.Itoa(r.Rank),
			r.DisplayName,
			fmt.Sprintf("%.2f", r.Combined),
			r.SeasonsLabel(),
			bonus,
		)
	}
	table.Render()
}

// PrintTeamTable prints team ratings sorted as given (pipeline order is
// rating descending).
func PrintTeamTable(w io.Writer, teams []model.Team, limit int) {
	table := newTable(w)
	table.Header("RANK", "TEAM", "RATING", "TIER", "FOUND", "CONSTRAINT")

	for i, t := range teams {
		if limit > 0 && i >= limit {
			break
		}
		found := fmt.Sprintf("%d/%d", model.RosterSize-len(t.MissingPlayers), model.RosterSize)
		constraint := t.ScheduleConstraint
		if constraint == "" {
			constraint = "—"
		}
		table.Append(
			strconv.Itoa(i+1),
			t.Name,
			fmt.Sprintf("%.2f", t.Rating),
			t.Tier,
			found,
			constraint,
		)
	}
	table.Render()
}

// PrintTierDistribution prints team counts per tier, in threshold order.
func PrintTierDistribution(w io.Writer, teams []model.Team, thresholds []model.TierThreshold) {
	counts := make(map[string]int)
	for _, t := range teams {
		counts[t.Tier]++
	}

	table := newTable(w)
	table.Header("TIER", "TEAMS")
	for _, t := range thresholds {
		table.Append(t.Label, strconv.Itoa(counts[t.Label]))
	}
	if n := counts[model.TierUnranked]; n > 0 {
		table.Append(model.TierUnranked, strconv.Itoa(n))
	}
	table.Render()
}

// PrintDivisions prints one composition block per division: scheduled day,
// fill level, summary stats, and the seeded team list.
func PrintDivisions(w io.Writer, res seeding.Result) {
	for _, div := range res.Divisions {
		st := div.Stats()
		fmt.Fprintf(w, "\nDivision %d (%s)  —  %d/%d teams  |  Rating: avg %.2f, max %.2f, min %.2f\n",
			div.Number, div.Day, st.Count, div.Capacity, st.Avg, st.Max, st.Min)

		table := newTable(w)
		table.Header("SEED", "TEAM", "RATING", "TIER", "COMPAT_DIVS")
		for i, t := range div.Teams {
			table.Append(
				strconv.Itoa(i+1),
				t.Name,
				fmt.Sprintf("%.2f", t.Rating),
				t.Tier,
				formatDivList(t.CompatibleDivisions),
			)
		}
		table.Render()
	}

	if len(res.Unplaced) > 0 {
		fmt.Fprintf(w, "\nNeeds manual review (%d teams):\n", len(res.Unplaced))
		for _, u := range res.Unplaced {
			fmt.Fprintf(w, "  - %s (rating %.2f): %s\n", u.TeamName, u.Rating, u.Reason)
		}
	}
}

// PrintSubstitutions prints the default-rating substitution audit grouped by
// team.
func PrintSubstitutions(w io.Writer, subs []model.Substitution) {
	if len(subs) == 0 {
		return
	}
	byTeam := make(map[string][]model.Substitution)
	var teamNames []string
	for _, s := range subs {
		if _, ok := byTeam[s.TeamName]; !ok {
			teamNames = append(teamNames, s.TeamName)
		}
		byTeam[s.TeamName] = append(byTeam[s.TeamName], s)
	}
	sort.Strings(teamNames)

	fmt.Fprintf(w, "\nUnmatched roster players (%d slots defaulted):\n", len(subs))
	for _, name := range teamNames {
		fmt.Fprintf(w, "  %s:\n", name)
		for _, s := range byTeam[name] {
			player := s.PlayerName
			if player == "" {
				player = "(empty slot)"
			}
			fmt.Fprintf(w, "    slot %d: %s → default %.0f\n", s.Slot, player, s.DefaultRating)
		}
	}
}

// PrintAliasConflicts prints the resolver's conflict report.
func PrintAliasConflicts(w io.Writer, conflicts []model.AliasConflict) {
	if len(conflicts) == 0 {
		return
	}
	fmt.Fprintf(w, "\nAlias conflicts (%d, first-seen owner kept):\n", len(conflicts))
	for _, c := range conflicts {
		fmt.Fprintf(w, "  %q: kept %s, discarded %s\n", c.Alias, c.Kept, c.Discarded)
	}
}

func formatDivList(divs []int) string {
	if len(divs) == 0 {
		return "NONE"
	}
	out := ""
	for i, d := range divs {
		if i > 0 {
			out += ","
		}
		out += strconv.Itoa(d)
	}
	return out
}
