package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vesa-league/vesarank/internal/model"
	"github.com/vesa-league/vesarank/internal/report"
)

var teamsLimit int

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "Compute and store team ratings, then print the team table",
	Long: `Runs the rating pipeline through team aggregation: each active roster's
three slots are matched against the player ratings (direct, then via alias
resolution), unmatched slots fall back to the default rating, and the team
rating is the mean over all three slots. Prints the team table, tier
distribution, and player-matching statistics.`,
	Args: cobra.NoArgs,
	RunE: runTeams,
}

func init() {
	teamsCmd.Flags().IntVar(&teamsLimit, "top", 0, "print only the top N teams (0 = all)")
}

func runTeams(_ *cobra.Command, _ []string) error {
	db, cfg, res, err := runPipeline()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.SaveTeamRatings(res.Teams); err != nil {
		return fmt.Errorf("save team ratings: %w", err)
	}

	report.PrintTeamTable(os.Stdout, res.Teams, teamsLimit)
	report.PrintTierDistribution(os.Stdout, res.Teams, cfg.Thresholds())

	totalSlots := len(res.Teams) * model.RosterSize
	matched := totalSlots - len(res.Substitutions)
	fmt.Fprintf(os.Stdout, "\nRoster matching: %d/%d slots matched to rated players, %d defaulted to %.0f\n",
		matched, totalSlots, len(res.Substitutions), cfg.DefaultRating)
	report.PrintSubstitutions(os.Stdout, res.Substitutions)
	return nil
}
