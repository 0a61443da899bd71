package dal

import "github.com/mackleonard/NBAWebScraper/internal/models"

// RankingsDAL defines the storage interface for the ranked candidate pool
type RankingsDAL interface {
	// TopCandidates returns up to limit candidates in rank order. A
	// non-positive limit returns the full ranking.
	TopCandidates(limit int) ([]models.Candidate, error)
	AllCandidates() ([]models.Candidate, error)
	Candidate(id string) (*models.Candidate, error)
	// ReplaceRankings swaps the stored ranking for a freshly computed one
	ReplaceRankings(candidates []models.Candidate) error
	Health() error
	Close() error
}
