package dal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/mackleonard/NBAWebScraper/internal/models"
	"github.com/mackleonard/NBAWebScraper/internal/rankings"
	"github.com/mackleonard/NBAWebScraper/internal/scoring"
)

// PostgresDAL implements RankingsDAL using PostgreSQL
type PostgresDAL struct {
	db *sql.DB
}

// NewPostgresDAL creates a new PostgreSQL rankings store optimized for
// CloudNativePG clusters
func NewPostgresDAL(connString string) (*PostgresDAL, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, err
	}

	// Connection pool settings sized for CloudNativePG defaults
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	// Retry the initial ping to ride out Kubernetes DNS propagation
	maxRetries := 5
	retryDelay := 5 * time.Second
	var lastErr error

	for i := 0; i < maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		err := db.PingContext(ctx)
		cancel()

		if err == nil {
			lastErr = nil
			break
		}

		lastErr = err
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}

	if lastErr != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres after %d retries: %w", maxRetries, lastErr)
	}

	dal := &PostgresDAL{db: db}
	if err := dal.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return dal, nil
}

func (p *PostgresDAL) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS rankings (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		position TEXT NOT NULL,
		team TEXT NOT NULL,
		rank INTEGER NOT NULL,
		fantasy_ppg DOUBLE PRECISION NOT NULL,
		fantasy_season_total DOUBLE PRECISION NOT NULL,
		ppg DOUBLE PRECISION NOT NULL DEFAULT 0,
		rpg DOUBLE PRECISION NOT NULL DEFAULT 0,
		apg DOUBLE PRECISION NOT NULL DEFAULT 0,
		spg DOUBLE PRECISION NOT NULL DEFAULT 0,
		bpg DOUBLE PRECISION NOT NULL DEFAULT 0,
		tpg DOUBLE PRECISION NOT NULL DEFAULT 0,
		three_pm DOUBLE PRECISION NOT NULL DEFAULT 0,
		oreb DOUBLE PRECISION NOT NULL DEFAULT 0,
		trend TEXT NOT NULL DEFAULT 'stable',
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_rankings_rank ON rankings(rank);
	`

	if _, err := p.db.Exec(schema); err != nil {
		return err
	}

	var count int
	if err := p.db.QueryRow("SELECT COUNT(*) FROM rankings").Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		return p.ReplaceRankings(rankings.Rank(SeedStatLines(), scoring.Default()))
	}
	return nil
}

const pgSelectColumns = `
	SELECT id, name, position, team, rank, fantasy_ppg, fantasy_season_total,
	       ppg, rpg, apg, spg, bpg, tpg, three_pm, oreb, trend
	FROM rankings
`

func (p *PostgresDAL) TopCandidates(limit int) ([]models.Candidate, error) {
	query := pgSelectColumns + " ORDER BY rank ASC"
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = p.db.Query(query+" LIMIT $1", limit)
	} else {
		rows, err = p.db.Query(query)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCandidates(rows)
}

func (p *PostgresDAL) AllCandidates() ([]models.Candidate, error) {
	return p.TopCandidates(0)
}

func (p *PostgresDAL) Candidate(id string) (*models.Candidate, error) {
	row := p.db.QueryRow(pgSelectColumns+" WHERE id = $1", id)

	c, err := scanCandidate(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("candidate %q not found", id)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (p *PostgresDAL) ReplaceRankings(candidates []models.Candidate) error {
	tx, err := p.db.Begin()
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
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
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

func (p *PostgresDAL) Health() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return p.db.PingContext(ctx)
}

func (p *PostgresDAL) Close() error {
	return p.db.Close()
}
