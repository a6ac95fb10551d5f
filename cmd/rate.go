package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vesa-league/vesarank/internal/report"
)

var rateLimit int

var rateCmd = &cobra.Command{
	Use:   "rate",
	Short: "Compute and store player ratings, then print the leaderboard",
	Long: `Runs the full rating pipeline from stored placement data: identity
resolution, per-season weighting and aggregation, cross-season combination,
lobby bonuses, and ranking. Season scores and ratings are persisted; the
combined leaderboard is printed.`,
	Args: cobra.NoArgs,
	RunE: runRate,
}

func init() {
	rateCmd.Flags().IntVar(&rateLimit, "top", 0, "print only the top N players (0 = all)")
}

func runRate(_ *cobra.Command, _ []string) error {
	db, _, res, err := runPipeline()
	if err != nil {
		return err
	}
	defer db.Close()

	for season, scores := range res.SeasonScores {
		if err := db.SaveSeasonScores(season, scores); err != nil {
			return fmt.Errorf("save season %s scores: %w", season, err)
		}
	}
	if err := db.SaveRatings(res.Ratings); err != nil {
		return fmt.Errorf("save ratings: %w", err)
	}

	report.PrintLeaderboard(os.Stdout, res.Ratings, rateLimit)
	report.PrintAliasConflicts(os.Stdout, res.AliasConflicts)
	return nil
}
