package dal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mackleonard/NBAWebScraper/internal/models"
	"github.com/mackleonard/NBAWebScraper/internal/rankings"
	"github.com/mackleonard/NBAWebScraper/internal/scoring"
)

// SQLiteDAL implements RankingsDAL using SQLite
type SQLiteDAL struct {
	db *sql.DB
}

// NewSQLiteDAL creates a new SQLite rankings store
func NewSQLiteDAL(dbPath string) (*SQLiteDAL, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	dal := &SQLiteDAL{db: db}
	if err := dal.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return dal, nil
}

func (s *SQLiteDAL) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS rankings (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		position TEXT NOT NULL,
		team TEXT NOT NULL,
		rank INTEGER NOT NULL,
		fantasy_ppg REAL NOT NULL,
		fantasy_season_total REAL NOT NULL,
		ppg REAL NOT NULL DEFAULT 0,
		rpg REAL NOT NULL DEFAULT 0,
		apg REAL NOT NULL DEFAULT 0,
		spg REAL NOT NULL DEFAULT 0,
		bpg REAL NOT NULL DEFAULT 0,
		tpg REAL NOT NULL DEFAULT 0,
		three_pm REAL NOT NULL DEFAULT 0,
		oreb REAL NOT NULL DEFAULT 0,
		trend TEXT NOT NULL DEFAULT 'stable'
	);
	CREATE INDEX IF NOT EXISTS idx_rankings_rank ON rankings(rank);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// Seed default data if empty
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM rankings").Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		return s.ReplaceRankings(rankings.Rank(SeedStatLines(), scoring.Default()))
	}
	return nil
}

const sqliteSelectColumns = `
	SELECT id, name, position, team, rank, fantasy_ppg, fantasy_season_total,
	       ppg, rpg, apg, spg, bpg, tpg, three_pm, oreb, trend
	FROM rankings
`

func (s *SQLiteDAL) TopCandidates(limit int) ([]models.Candidate, error) {
	query := sqliteSelectColumns + " ORDER BY rank ASC"
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.db.Query(query+" LIMIT ?", limit)
	} else {
		rows, err = s.db.Query(query)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCandidates(rows)
}

func (s *SQLiteDAL) AllCandidates() ([]models.Candidate, error) {
	return s.TopCandidates(0)
}

func (s *SQLiteDAL) Candidate(id string) (*models.Candidate, error) {
	row := s.db.QueryRow(sqliteSelectColumns+" WHERE id = ?", id)

	c, err := scanCandidate(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("candidate %q not found", id)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *SQLiteDAL) ReplaceRankings(candidates []models.Candidate) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM rankings"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO rankings (id, name, position, team, rank, fantasy_ppg, fantasy_season_total,
		                      ppg, rpg, apg, spg, bpg, tpg, three_pm, oreb, trend)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range candidates {
		_, err := stmt.Exec(c.ID, c.Name, c.Position, c.Team, c.Rank, c.FantasyPPG, c.FantasySeasonTotal,
			c.PerGame.Points, c.PerGame.Rebounds, c.PerGame.Assists, c.PerGame.Steals,
			c.PerGame.Blocks, c.PerGame.Turnovers, c.PerGame.ThreesMade, c.PerGame.OffensiveRebounds, string(c.Trend))
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteDAL) Health() error {
	return s.db.Ping()
}

func (s *SQLiteDAL) Close() error {
	return s.db.Close()
}
