package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vesa-league/vesarank/internal/storage"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a database overview",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func runSummary(_ *cobra.Command, _ []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	ov, err := db.GetOverview()
	if err != nil {
		return fmt.Errorf("database overview: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Database: %s\n\n", dbPath)
	fmt.Fprintf(os.Stdout, "  Seasons:          %d\n", ov.Seasons)
	fmt.Fprintf(os.Stdout, "  Placement records: %d\n", ov.Placements)
	fmt.Fprintf(os.Stdout, "  Distinct players: %d\n", ov.Players)
	fmt.Fprintf(os.Stdout, "  Alias entries:    %d\n", ov.Aliases)
	fmt.Fprintf(os.Stdout, "  Active teams:     %d\n", ov.Teams)
	fmt.Fprintf(os.Stdout, "  Rated players:    %d\n", ov.RatedPlayers)
	return nil
}
