package cmd

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vesa-league/vesarank/internal/seeding"
)

var exportOut string

// ratingRow is one entry of the exported ratings.json.
type ratingRow struct {
	CanonicalID    string   `json:"canonical_id"`
	PlayerName     string   `json:"player_name"`
	CombinedRating float64  `json:"combined_rating"`
	SeasonsPlayed  []string `json:"seasons_played"`
	Rank           int      `json:"rank"`
}

// exportTeam is one team inside a division block of division_assignments.json.
type exportTeam struct {
	TeamName       string  `json:"team_name"`
	Rating         float64 `json:"rating"`
	Tier           string  `json:"tier"`
	RankInDivision int     `json:"rank_in_division"`
}

// exportStats is the per-division summary block.
type exportStats struct {
	Count int     `json:"count"`
	Avg   float64 `json:"avg"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// exportDivision is one division block, keyed by division number in the
// output map.
type exportDivision struct {
	Day   string       `json:"day"`
	Teams []exportTeam `json:"teams"`
	Stats exportStats  `json:"stats"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export ratings and division assignments as JSON files",
	Long: `Recomputes the full pipeline from stored inputs and writes two files to
the output directory:

  ratings.json               player rating table, sorted by rating descending
  division_assignments.json  per-division team lists with summary stats

Reruns on identical inputs and configuration produce byte-identical files.

Example:
  vesarank export --out ./artifacts`,
	Args: cobra.NoArgs,
	RunE: runExportCmd,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", ".", "output directory")
}

func runExportCmd(_ *cobra.Command, _ []string) error {
	db, _, res, err := runPipeline()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := os.MkdirAll(exportOut, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	rows := make([]ratingRow, 0, len(res.Ratings))
	for _, r := range res.Ratings {
		seasons := r.SeasonsPlayed
		if seasons == nil {
			seasons = []string{}
		}
		rows = append(rows, ratingRow{
			CanonicalID:    r.CanonicalID,
			PlayerName:     r.DisplayName,
			CombinedRating: roundTo2dp(r.Combined),
			SeasonsPlayed:  seasons,
			Rank:           r.Rank,
		})
	}
	if err := writeJSON(filepath.Join(exportOut, "ratings.json"), rows); err != nil {
		return err
	}

	divisions := buildExportDivisions(res.Seeding)
	if err := writeJSON(filepath.Join(exportOut, "division_assignments.json"), divisions); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Wrote ratings.json (%d players) and division_assignments.json (%d divisions) to %s\n",
		len(rows), len(divisions), exportOut)
	return nil
}

func buildExportDivisions(res seeding.Result) map[string]exportDivision {
	out := make(map[string]exportDivision, len(res.Divisions))
	for _, div := range res.Divisions {
		teams := make([]exportTeam, 0, len(div.Teams))
		for i, t := range div.Teams {
			teams = append(teams, exportTeam{
				TeamName:       t.Name,
				Rating:         roundTo2dp(t.Rating),
				Tier:           t.Tier,
				RankInDivision: i + 1,
			})
		}
		st := div.Stats()
		out[strconv.Itoa(div.Number)] = exportDivision{
			Day:   div.Day,
			Teams: teams,
			Stats: exportStats{
				Count: st.Count,
				Avg:   roundTo2dp(st.Avg),
				Min:   roundTo2dp(st.Min),
				Max:   roundTo2dp(st.Max),
			},
		}
	}
	return out
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func roundTo2dp(v float64) float64 {
	return math.Round(v*100) / 100
}
