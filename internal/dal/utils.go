package dal

import (
	"database/sql"

	"github.com/mackleonard/NBAWebScraper/internal/models"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// scanCandidate reads one rankings row in the shared column order
func scanCandidate(row rowScanner) (*models.Candidate, error) {
	var c models.Candidate
	var trend string
	err := row.Scan(&c.ID, &c.Name, &c.Position, &c.Team, &c.Rank, &c.FantasyPPG, &c.FantasySeasonTotal,
		&c.PerGame.Points, &c.PerGame.Rebounds, &c.PerGame.Assists, &c.PerGame.Steals,
		&c.PerGame.Blocks, &c.PerGame.Turnovers, &c.PerGame.ThreesMade, &c.PerGame.OffensiveRebounds, &trend)
	if err != nil {
		return nil, err
	}
	c.Trend = models.Trend(trend)
	return &c, nil
}

func scanCandidates(rows *sql.Rows) ([]models.Candidate, error) {
	var out []models.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}
