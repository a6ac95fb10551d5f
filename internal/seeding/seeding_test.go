package seeding

import (
	"reflect"
	"testing"

	"github.com/vesa-league/vesarank/internal/model"
)

var threeDaySchedule = map[int]string{1: "Monday", 2: "Wednesday", 3: "Friday"}

func makeTeams(ratings ...float64) []model.Team {
	teams := make([]model.Team, len(ratings))
	for i, r := range ratings {
		teams[i] = model.Team{Name: string(rune('A' + i)), Rating: r}
	}
	return teams
}

func TestCapacities(t *testing.T) {
	cases := []struct {
		teams, divisions int
		want             []int
	}{
		{10, 3, []int{4, 3, 3}},
		{9, 3, []int{3, 3, 3}},
		{11, 3, []int{4, 4, 3}},
		{2, 3, []int{1, 1, 0}},
		{7, 1, []int{7}},
	}
	for _, tc := range cases {
		got := Capacities(tc.teams, tc.divisions)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Capacities(%d, %d) = %v, want %v", tc.teams, tc.divisions, got, tc.want)
		}
	}
}

func TestSeed_FillsTopDown(t *testing.T) {
	teams := makeTeams(100, 500, 300, 200, 400)

	res := Seed(teams, 2, map[int]string{1: "Monday", 2: "Friday"})
	if len(res.Divisions) != 2 {
		t.Fatalf("expected 2 divisions, got %d", len(res.Divisions))
	}

	// 5 teams over 2 divisions: capacities 3 and 2, strongest first.
	div1 := res.Divisions[0]
	if len(div1.Teams) != 3 {
		t.Fatalf("division 1 has %d teams, want 3", len(div1.Teams))
	}
	wantDiv1 := []float64{500, 400, 300}
	for i, want := range wantDiv1 {
		if div1.Teams[i].Rating != want {
			t.Errorf("division 1 seed %d rating = %v, want %v", i+1, div1.Teams[i].Rating, want)
		}
	}
	div2 := res.Divisions[1]
	if div2.Teams[0].Rating != 200 || div2.Teams[1].Rating != 100 {
		t.Errorf("division 2 ratings = %v, %v; want 200, 100", div2.Teams[0].Rating, div2.Teams[1].Rating)
	}
}

// Every team is seated and division sizes differ by at most one.
func TestSeed_CapacityInvariant(t *testing.T) {
	for _, n := range []int{1, 3, 10, 17, 30} {
		teams := make([]model.Team, n)
		for i := range teams {
			teams[i] = model.Team{Name: string(rune('a' + i%26)) + string(rune('a' + i/26)), Rating: float64(i * 7 % 13)}
		}

		res := Seed(teams, 3, threeDaySchedule)
		total, minSize, maxSize := 0, n, 0
		for _, d := range res.Divisions {
			total += len(d.Teams)
			if len(d.Teams) < minSize {
				minSize = len(d.Teams)
			}
			if len(d.Teams) > maxSize {
				maxSize = len(d.Teams)
			}
		}
		if total != n {
			t.Errorf("n=%d: seated %d teams", n, total)
		}
		if maxSize-minSize > 1 {
			t.Errorf("n=%d: division sizes spread %d..%d", n, minSize, maxSize)
		}
	}
}

func TestCompatibleDivisions(t *testing.T) {
	cases := []struct {
		name   string
		cannot []string
		want   []int
	}{
		{"no constraint", nil, []int{1, 2, 3}},
		{"one blocked day", []string{"Wednesday"}, []int{1, 3}},
		{"two blocked days", []string{"Monday", "Friday"}, []int{2}},
		{"all blocked", []string{"Monday", "Wednesday", "Friday"}, nil},
		{"irrelevant day", []string{"Sunday"}, []int{1, 2, 3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			team := model.Team{Name: "T", CannotPlay: tc.cannot}
			got := CompatibleDivisions(team, threeDaySchedule)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("CompatibleDivisions = %v, want %v", got, tc.want)
			}
		})
	}
}

// Placement is skill-pure: a schedule conflict never moves a team out of
// the division its rating earns, it only produces a warning.
func TestSeed_IgnoresScheduleDuringPlacement(t *testing.T) {
	teams := []model.Team{
		{Name: "Busy", Rating: 900, CannotPlay: []string{"Monday"}},
		{Name: "Free", Rating: 100},
	}

	res := Seed(teams, 2, map[int]string{1: "Monday", 2: "Friday"})

	div1 := res.Divisions[0]
	if len(div1.Teams) != 1 || div1.Teams[0].Name != "Busy" {
		t.Fatalf("division 1 = %v, want the top-rated team despite its Monday conflict", div1.Teams)
	}
	// The conflict is still visible in the compatibility report.
	if got := div1.Teams[0].CompatibleDivisions; !reflect.DeepEqual(got, []int{2}) {
		t.Errorf("CompatibleDivisions = %v, want [2]", got)
	}
}

func TestSeed_FullyIncompatibleTeamIsWarnedButPlaced(t *testing.T) {
	teams := []model.Team{
		{Name: "Nomad", Rating: 500, CannotPlay: []string{"Monday", "Wednesday", "Friday"}},
		{Name: "Anchor", Rating: 400},
	}

	res := Seed(teams, 2, map[int]string{1: "Monday", 2: "Wednesday"})

	seated := 0
	for _, d := range res.Divisions {
		seated += len(d.Teams)
	}
	if seated != 2 {
		t.Fatalf("seated %d teams, want 2 (incompatibility is not an exclusion)", seated)
	}
	if len(res.Unplaced) != 1 || res.Unplaced[0].TeamName != "Nomad" {
		t.Errorf("Unplaced = %v, want a warning for Nomad", res.Unplaced)
	}
}

func TestSeed_Deterministic(t *testing.T) {
	build := func() []model.Team {
		return []model.Team{
			{Name: "B", Rating: 300},
			{Name: "A", Rating: 300},
			{Name: "C", Rating: 300},
		}
	}

	first := Seed(build(), 3, threeDaySchedule)
	for run := 0; run < 5; run++ {
		again := Seed(build(), 3, threeDaySchedule)
		for i, d := range first.Divisions {
			for j, team := range d.Teams {
				if again.Divisions[i].Teams[j].Name != team.Name {
					t.Fatalf("run %d: divergent placement in division %d", run, i+1)
				}
			}
		}
	}
}
