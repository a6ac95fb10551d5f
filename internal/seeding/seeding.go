// Package seeding assigns rated teams to a fixed number of divisions.
//
// Placement is pure bin-filling by skill: teams sorted by rating descending
// are walked once and each goes to the lowest-numbered division with
// remaining capacity, so division 1 is always the most competitive bracket.
// Schedule compatibility is computed per team as a separate report and is
// deliberately NOT consulted during placement — skill purity wins over
// schedule fit, and incompatibilities are surfaced for manual
// reconciliation instead of silently reshuffling brackets.
package seeding

import (
	"sort"

	"github.com/vesa-league/vesarank/internal/model"
)

// Capacities computes per-division target sizes for totalTeams across
// divisionCount divisions: base = total/count, with the remainder handed to
// the lowest-numbered divisions. Sizes differ by at most one and sum to
// totalTeams, so every team is placeable.
func Capacities(totalTeams, divisionCount int) []int {
	base := totalTeams / divisionCount
	remainder := totalTeams % divisionCount
	caps := make([]int, divisionCount)
	for i := range caps {
		caps[i] = base
		if i < remainder {
			caps[i]++
		}
	}
	return caps
}

// CompatibleDivisions returns the division numbers whose scheduled day the
// team can play, in ascending order. Reporting only; Seed ignores it.
func CompatibleDivisions(t model.Team, schedule map[int]string) []int {
	cannot := make(map[string]struct{}, len(t.CannotPlay))
	for _, day := range t.CannotPlay {
		cannot[day] = struct{}{}
	}
	var compatible []int
	nums := make([]int, 0, len(schedule))
	for n := range schedule {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	for _, n := range nums {
		if _, blocked := cannot[schedule[n]]; !blocked {
			compatible = append(compatible, n)
		}
	}
	return compatible
}

// Result is the output of one seeding run.
type Result struct {
	Divisions []model.Division
	// Unplaced lists teams that could not be seated (capacity math makes
	// this impossible in practice, but it is reported rather than assumed)
	// and teams whose constraints conflict with every division day.
	Unplaced []model.UnplacedTeam
}

// Seed assigns teams to divisions. Input teams must already exclude
// waitlisted entries; they are re-sorted here by rating descending with
// team name as the deterministic tie-break.
func Seed(teams []model.Team, divisionCount int, schedule map[int]string) Result {
	sorted := append([]model.Team(nil), teams...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Rating != sorted[j].Rating {
			return sorted[i].Rating > sorted[j].Rating
		}
		return sorted[i].Name < sorted[j].Name
	})

	caps := Capacities(len(sorted), divisionCount)
	divisions := make([]model.Division, divisionCount)
	for i := range divisions {
		divisions[i] = model.Division{
			Number:   i + 1,
			Day:      schedule[i+1],
			Capacity: caps[i],
		}
	}

	var result Result
	for _, t := range sorted {
		t.CompatibleDivisions = CompatibleDivisions(t, schedule)
		if len(t.CompatibleDivisions) == 0 {
			result.Unplaced = append(result.Unplaced, model.UnplacedTeam{
				TeamName:            t.Name,
				Rating:              t.Rating,
				Reason:              "schedule incompatible with every division",
				CompatibleDivisions: nil,
			})
			// Still placed: incompatibility is a warning, not an
			// exclusion.
		}

		placed := false
		for i := range divisions {
			if len(divisions[i].Teams) < divisions[i].Capacity {
				divisions[i].Teams = append(divisions[i].Teams, t)
				placed = true
				break
			}
		}
		if !placed {
			result.Unplaced = append(result.Unplaced, model.UnplacedTeam{
				TeamName:            t.Name,
				Rating:              t.Rating,
				Reason:              "no division capacity remaining",
				CompatibleDivisions: t.CompatibleDivisions,
			})
		}
	}

	result.Divisions = divisions
	return result
}
