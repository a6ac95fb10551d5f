package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vesa-league/vesarank/internal/report"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed teams into divisions and store the assignments",
	Long: `Runs the complete pipeline and seeds active teams into the configured
divisions: teams sorted by rating descending fill division 1 first, then 2,
and so on, with capacities differing by at most one. Schedule compatibility
is reported per team but never reshuffles the seeding. Assignments and the
full audit (substitutions, alias conflicts, incompatible teams) are
persisted.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func runSeed(_ *cobra.Command, _ []string) error {
	db, _, res, err := runPipeline()
	if err != nil {
		return err
	}
	defer db.Close()

	// Persist the full run so export reads a consistent snapshot.
	for season, scores := range res.SeasonScores {
		if err := db.SaveSeasonScores(season, scores); err != nil {
			return fmt.Errorf("save season %s scores: %w", season, err)
		}
	}
	if err := db.SaveRatings(res.Ratings); err != nil {
		return fmt.Errorf("save ratings: %w", err)
	}
	if err := db.SaveTeamRatings(res.Teams); err != nil {
		return fmt.Errorf("save team ratings: %w", err)
	}
	if err := db.SaveDivisionAssignments(res.Seeding, res.Substitutions, res.AliasConflicts); err != nil {
		return fmt.Errorf("save division assignments: %w", err)
	}

	report.PrintDivisions(os.Stdout, res.Seeding)
	report.PrintSubstitutions(os.Stdout, res.Substitutions)
	report.PrintAliasConflicts(os.Stdout, res.AliasConflicts)
	return nil
}
