package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vesa-league/vesarank/internal/model"
	"github.com/vesa-league/vesarank/internal/storage"
)

var (
	ingestSeason     string
	ingestPlacements string
	ingestAliases    string
	ingestRosters    string
)

// placementFile is the schema of one scraped placement JSON file: the
// records for a single season.
type placementFile []struct {
	PlayerName string  `json:"player_name"`
	Day        int     `json:"day"`
	Lobby      string  `json:"lobby"`
	Score      float64 `json:"score"`
	Kills      int     `json:"kills"`
	Damage     int     `json:"damage"`
}

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Load placement, alias, and roster data into the database",
	Long: `Loads collaborator-produced data files into SQLite. Each input kind is
optional; re-ingesting a season or table replaces it wholesale.

  --season S12 --placements s12.json   placement records for one season
  --aliases aliases.json               full alias table
  --rosters rosters.csv                full roster sheet

Roster CSV columns: team_name, player1, player2, player3, constraint, waitlisted.

Example:
  vesarank ingest --season S12 --placements s12.json --aliases aliases.json --rosters rosters.csv`,
	Args: cobra.NoArgs,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestSeason, "season", "", "season identifier for --placements (e.g. S12)")
	ingestCmd.Flags().StringVar(&ingestPlacements, "placements", "", "placement JSON file for --season")
	ingestCmd.Flags().StringVar(&ingestAliases, "aliases", "", "alias table JSON file")
	ingestCmd.Flags().StringVar(&ingestRosters, "rosters", "", "roster sheet CSV file")
}

func runIngest(_ *cobra.Command, _ []string) error {
	if ingestPlacements == "" && ingestAliases == "" && ingestRosters == "" {
		return fmt.Errorf("nothing to ingest: use --placements, --aliases, or --rosters")
	}
	if (ingestPlacements == "") != (ingestSeason == "") {
		return fmt.Errorf("--season and --placements must be given together")
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	if ingestPlacements != "" {
		records, err := readPlacements(ingestSeason, ingestPlacements)
		if err != nil {
			return err
		}
		if err := db.ReplaceSeasonPlacements(ingestSeason, records); err != nil {
			return fmt.Errorf("store season %s: %w", ingestSeason, err)
		}
		fmt.Fprintf(os.Stdout, "Ingested %d placement records for season %s\n", len(records), ingestSeason)
	}

	if ingestAliases != "" {
		entries, err := readAliases(ingestAliases)
		if err != nil {
			return err
		}
		if err := db.ReplaceAliases(entries); err != nil {
			return fmt.Errorf("store aliases: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Ingested alias table: %d identities\n", len(entries))
	}

	if ingestRosters != "" {
		entries, err := readRosters(ingestRosters)
		if err != nil {
			return err
		}
		if err := db.ReplaceRosters(entries); err != nil {
			return fmt.Errorf("store rosters: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Ingested roster sheet: %d teams\n", len(entries))
	}
	return nil
}

func readPlacements(season, path string) ([]model.MatchRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read placements: %w", err)
	}
	var pf placementFile
	if err := json.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse placements %s: %w", path, err)
	}

	records := make([]model.MatchRecord, 0, len(pf))
	for i, raw := range pf {
		r, err := model.NewMatchRecord(season, raw.PlayerName, raw.Day, raw.Lobby, raw.Score, raw.Kills, raw.Damage)
		if err != nil {
			return nil, fmt.Errorf("%s record %d: %w", path, i, err)
		}
		records = append(records, r)
	}
	return records, nil
}

func readAliases(path string) ([]model.AliasEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read aliases: %w", err)
	}
	var entries []model.AliasEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse aliases %s: %w", path, err)
	}
	for _, e := range entries {
		if strings.TrimSpace(e.DiscordName) == "" {
			return nil, fmt.Errorf("%s: alias entry with empty discord name", path)
		}
	}
	return entries, nil
}

func readRosters(path string) ([]model.RosterEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read rosters: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 6
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse rosters %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: empty roster sheet", path)
	}

	// Skip the header row if present.
	if strings.EqualFold(strings.TrimSpace(rows[0][0]), "team_name") {
		rows = rows[1:]
	}

	entries := make([]model.RosterEntry, 0, len(rows))
	for i, row := range rows {
		name := strings.TrimSpace(row[0])
		if name == "" {
			return nil, fmt.Errorf("%s row %d: empty team name", path, i+1)
		}
		e := model.RosterEntry{
			TeamName:           name,
			ScheduleConstraint: strings.TrimSpace(row[4]),
		}
		for j := 0; j < model.RosterSize; j++ {
			e.Players[j] = strings.TrimSpace(row[1+j])
		}
		switch strings.ToLower(strings.TrimSpace(row[5])) {
		case "", "no", "false", "0":
		case "yes", "true", "1", "waitlisted":
			e.Waitlisted = true
		default:
			return nil, fmt.Errorf("%s row %d: bad waitlisted value %q", path, i+1, row[5])
		}
		entries = append(entries, e)
	}
	return entries, nil
}
