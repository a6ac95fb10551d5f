package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vesa-league/vesarank/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored seasons",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(_ *cobra.Command, _ []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	seasons, err := db.ListSeasons()
	if err != nil {
		return fmt.Errorf("list seasons: %w", err)
	}
	if len(seasons) == 0 {
		fmt.Fprintln(os.Stdout, "No placement data stored yet. Run 'vesarank ingest --season <id> --placements <file>' to add some.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-10s  %8s  %8s  %6s\n", "SEASON", "RECORDS", "PLAYERS", "DAYS")
	fmt.Fprintf(os.Stdout, "%-10s  %8s  %8s  %6s\n", "──────────", "────────", "────────", "──────")
	for _, s := range seasons {
		fmt.Fprintf(os.Stdout, "%-10s  %8d  %8d  %6d\n", s.Season, s.Records, s.Players, s.Days)
	}
	return nil
}
