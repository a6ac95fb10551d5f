package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/vesa-league/vesarank/internal/model"
	"github.com/vesa-league/vesarank/internal/seeding"
)

// ---- Input tables ----

// ReplaceSeasonPlacements replaces all stored placement records for one
// season in a single transaction. Re-ingestion supersedes, never appends.
func (db *DB) ReplaceSeasonPlacements(season string, records []model.MatchRecord) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM placements WHERE season = ?", season); err != nil {
		return fmt.Errorf("clear season %s: %w", season, err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO placements(season, player_name, day, lobby, score, kills, damage)
		VALUES (?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(r.Season, r.PlayerName, r.Day, r.Lobby, r.Score, r.Kills, r.Damage); err != nil {
			return fmt.Errorf("insert placement for %q: %w", r.PlayerName, err)
		}
	}
	return tx.Commit()
}

// GetSeasonPlacements returns one season's placement records in a stable
// order (day, lobby, player name).
func (db *DB) GetSeasonPlacements(season string) ([]model.MatchRecord, error) {
	rows, err := db.conn.Query(`
		SELECT season, player_name, day, lobby, score, kills, damage
		FROM placements WHERE season = ?
		ORDER BY day, lobby, player_name`, season)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MatchRecord
	for rows.Next() {
		var r model.MatchRecord
		if err := rows.Scan(&r.Season, &r.PlayerName, &r.Day, &r.Lobby, &r.Score, &r.Kills, &r.Damage); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SeasonSummary is a lightweight record for the list command.
type SeasonSummary struct {
	Season  string
	Records int
	Players int
	Days    int
}

// ListSeasons returns per-season record counts, ordered by season name.
func (db *DB) ListSeasons() ([]SeasonSummary, error) {
	rows, err := db.conn.Query(`
		SELECT season, COUNT(1), COUNT(DISTINCT player_name), COUNT(DISTINCT day)
		FROM placements GROUP BY season ORDER BY season`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SeasonSummary
	for rows.Next() {
		var s SeasonSummary
		if err := rows.Scan(&s.Season, &s.Records, &s.Players, &s.Days); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ReplaceAliases replaces the entire alias table.
func (db *DB) ReplaceAliases(entries []model.AliasEntry) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM aliases"); err != nil {
		return err
	}
	stmt, err := tx.Prepare("INSERT OR REPLACE INTO aliases(discord_name, alias) VALUES (?,?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		for _, alias := range e.Aliases {
			if _, err := stmt.Exec(e.DiscordName, alias); err != nil {
				return fmt.Errorf("insert alias %q: %w", alias, err)
			}
		}
	}
	return tx.Commit()
}

// GetAliases returns the alias table grouped by discord name, ordered for
// deterministic resolver construction.
func (db *DB) GetAliases() ([]model.AliasEntry, error) {
	rows, err := db.conn.Query("SELECT discord_name, alias FROM aliases ORDER BY discord_name, alias")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.AliasEntry
	var current *model.AliasEntry
	for rows.Next() {
		var discord, alias string
		if err := rows.Scan(&discord, &alias); err != nil {
			return nil, err
		}
		if current == nil || current.DiscordName != discord {
			out = append(out, model.AliasEntry{DiscordName: discord})
			current = &out[len(out)-1]
		}
		current.Aliases = append(current.Aliases, alias)
	}
	return out, rows.Err()
}

// ReplaceRosters replaces the roster table.
func (db *DB) ReplaceRosters(entries []model.RosterEntry) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM rosters"); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO rosters(team_name, player1, player2, player3, constraint_text, waitlisted)
		VALUES (?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		_, err := stmt.Exec(e.TeamName, e.Players[0], e.Players[1], e.Players[2],
			e.ScheduleConstraint, boolInt(e.Waitlisted))
		if err != nil {
			return fmt.Errorf("insert roster %q: %w", e.TeamName, err)
		}
	}
	return tx.Commit()
}

// GetRosters returns all roster entries ordered by team name.
func (db *DB) GetRosters() ([]model.RosterEntry, error) {
	rows, err := db.conn.Query(`
		SELECT team_name, player1, player2, player3, constraint_text, waitlisted
		FROM rosters ORDER BY team_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.RosterEntry
	for rows.Next() {
		var e model.RosterEntry
		var waitlisted int
		if err := rows.Scan(&e.TeamName, &e.Players[0], &e.Players[1], &e.Players[2],
			&e.ScheduleConstraint, &waitlisted); err != nil {
			return nil, err
		}
		e.Waitlisted = waitlisted != 0
		out = append(out, e)
	}
	return out, rows.Err()
}

// ---- Output tables ----

// SaveSeasonScores replaces one season's aggregated scores.
func (db *DB) SaveSeasonScores(season string, scores map[string]*model.PlayerSeasonScore) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM season_scores WHERE season = ?", season); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`
		INSERT INTO season_scores(season, canonical_id, days_played, total_weighted,
			avg_per_day, kills, damage, blended_score)
		VALUES (?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, s := range scores {
		_, err := stmt.Exec(s.Season, s.CanonicalID, s.DaysPlayed, s.TotalWeighted,
			s.AveragePerDay, s.Kills, s.Damage, s.BlendedScore)
		if err != nil {
			return fmt.Errorf("insert season score for %q: %w", s.CanonicalID, err)
		}
	}
	return tx.Commit()
}

// SaveRatings replaces the player ratings table.
func (db *DB) SaveRatings(ratings []*model.PlayerRating) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM player_ratings"); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`
		INSERT INTO player_ratings(canonical_id, player_name, combined_rating,
			bonus_fraction, seasons_played, rank)
		VALUES (?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range ratings {
		_, err := stmt.Exec(r.CanonicalID, r.DisplayName, r.Combined,
			r.BonusFraction, r.SeasonsLabel(), r.Rank)
		if err != nil {
			return fmt.Errorf("insert rating for %q: %w", r.CanonicalID, err)
		}
	}
	return tx.Commit()
}

// GetRatings returns stored player ratings ordered by rank.
func (db *DB) GetRatings() ([]*model.PlayerRating, error) {
	rows, err := db.conn.Query(`
		SELECT canonical_id, player_name, combined_rating, bonus_fraction, seasons_played, rank
		FROM player_ratings ORDER BY rank`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.PlayerRating
	for rows.Next() {
		r := &model.PlayerRating{}
		var seasons string
		if err := rows.Scan(&r.CanonicalID, &r.DisplayName, &r.Combined,
			&r.BonusFraction, &seasons, &r.Rank); err != nil {
			return nil, err
		}
		if seasons != "" {
			r.SeasonsPlayed = strings.Split(seasons, "+")
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SaveTeamRatings replaces the team ratings table.
func (db *DB) SaveTeamRatings(teams []model.Team) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM team_ratings"); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`
		INSERT INTO team_ratings(team_name, rating, tier, missing_count) VALUES (?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range teams {
		if _, err := stmt.Exec(t.Name, t.Rating, t.Tier, len(t.MissingPlayers)); err != nil {
			return fmt.Errorf("insert team rating for %q: %w", t.Name, err)
		}
	}
	return tx.Commit()
}

// SaveDivisionAssignments replaces the seeded division assignments and the
// audit log (substitutions, conflicts, unplaced teams) in one transaction.
func (db *DB) SaveDivisionAssignments(res seeding.Result, subs []model.Substitution, conflicts []model.AliasConflict) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM division_assignments"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM audit_log"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO division_assignments(division, day, team_name, rating, tier, rank_in_division)
		VALUES (?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, div := range res.Divisions {
		for i, t := range div.Teams {
			if _, err := stmt.Exec(div.Number, div.Day, t.Name, t.Rating, t.Tier, i+1); err != nil {
				return fmt.Errorf("insert assignment for %q: %w", t.Name, err)
			}
		}
	}

	audit, err := tx.Prepare("INSERT INTO audit_log(kind, subject, detail) VALUES (?,?,?)")
	if err != nil {
		return err
	}
	defer audit.Close()

	for _, s := range subs {
		detail := fmt.Sprintf("slot %d player %q defaulted to %.0f", s.Slot, s.PlayerName, s.DefaultRating)
		if _, err := audit.Exec("substitution", s.TeamName, detail); err != nil {
			return err
		}
	}
	for _, c := range conflicts {
		detail := fmt.Sprintf("kept %q, discarded %q", c.Kept, c.Discarded)
		if _, err := audit.Exec("alias_conflict", c.Alias, detail); err != nil {
			return err
		}
	}
	for _, u := range res.Unplaced {
		if _, err := audit.Exec("unplaced_team", u.TeamName, u.Reason); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// DivisionAssignment is one stored row of the seeding output.
type DivisionAssignment struct {
	Division       int
	Day            string
	TeamName       string
	Rating         float64
	Tier           string
	RankInDivision int
}

// GetDivisionAssignments returns stored assignments ordered by division and
// in-division rank.
func (db *DB) GetDivisionAssignments() ([]DivisionAssignment, error) {
	rows, err := db.conn.Query(`
		SELECT division, day, team_name, rating, tier, rank_in_division
		FROM division_assignments ORDER BY division, rank_in_division`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DivisionAssignment
	for rows.Next() {
		var a DivisionAssignment
		if err := rows.Scan(&a.Division, &a.Day, &a.TeamName, &a.Rating, &a.Tier, &a.RankInDivision); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Overview is a high-level database summary for the summary command.
type Overview struct {
	Seasons      int
	Placements   int
	Players      int
	Aliases      int
	Teams        int
	RatedPlayers int
}

// GetOverview returns aggregate counts across all tables.
func (db *DB) GetOverview() (*Overview, error) {
	ov := &Overview{}
	queries := []struct {
		dst   *int
		query string
	}{
		{&ov.Seasons, "SELECT COUNT(DISTINCT season) FROM placements"},
		{&ov.Placements, "SELECT COUNT(1) FROM placements"},
		{&ov.Players, "SELECT COUNT(DISTINCT player_name) FROM placements"},
		{&ov.Aliases, "SELECT COUNT(1) FROM aliases"},
		{&ov.Teams, "SELECT COUNT(1) FROM rosters WHERE waitlisted = 0"},
		{&ov.RatedPlayers, "SELECT COUNT(1) FROM player_ratings"},
	}
	for _, q := range queries {
		if err := db.conn.QueryRow(q.query).Scan(q.dst); err != nil && err != sql.ErrNoRows {
			return nil, err
		}
	}
	return ov, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
