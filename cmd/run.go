package cmd

import (
	"fmt"

	"github.com/vesa-league/vesarank/internal/config"
	"github.com/vesa-league/vesarank/internal/model"
	"github.com/vesa-league/vesarank/internal/pipeline"
	"github.com/vesa-league/vesarank/internal/storage"
)

// loadInputs reads the complete pipeline input set from the database.
func loadInputs(db *storage.DB) (pipeline.Inputs, error) {
	var in pipeline.Inputs

	seasons, err := db.ListSeasons()
	if err != nil {
		return in, fmt.Errorf("list seasons: %w", err)
	}
	in.Seasons = make(map[string][]model.MatchRecord, len(seasons))
	for _, s := range seasons {
		records, err := db.GetSeasonPlacements(s.Season)
		if err != nil {
			return in, fmt.Errorf("load season %s: %w", s.Season, err)
		}
		in.Seasons[s.Season] = records
	}

	if in.Aliases, err = db.GetAliases(); err != nil {
		return in, fmt.Errorf("load aliases: %w", err)
	}
	if in.Rosters, err = db.GetRosters(); err != nil {
		return in, fmt.Errorf("load rosters: %w", err)
	}
	return in, nil
}

// runPipeline opens the store, loads config and inputs, and computes one
// full rating/seeding run. The caller decides what to persist or print.
func runPipeline() (*storage.DB, *config.Config, *pipeline.Result, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open storage: %w", err)
	}

	in, err := loadInputs(db)
	if err != nil {
		db.Close()
		return nil, nil, nil, err
	}
	if len(in.Seasons) == 0 {
		db.Close()
		return nil, nil, nil, fmt.Errorf("no placement data stored yet: run 'vesarank ingest' first")
	}

	res, err := pipeline.Run(in, cfg, newLogger())
	if err != nil {
		db.Close()
		return nil, nil, nil, err
	}
	return db, cfg, res, nil
}
