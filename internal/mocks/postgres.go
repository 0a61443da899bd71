package mocks

import (
	"github.com/mackleonard/NBAWebScraper/internal/dal"
	"github.com/mackleonard/NBAWebScraper/internal/logger"
)

// MockPostgresDAL provides a mock Postgres implementation using SQLite for local development
type MockPostgresDAL struct {
	dal.RankingsDAL
}

// NewMockPostgresDAL creates a mock Postgres DAL backed by SQLite
func NewMockPostgresDAL(sqliteFile string) (*MockPostgresDAL, error) {
	logger.Info("Using MOCK Postgres (SQLite) for local development")

	sqliteDAL, err := dal.NewSQLiteDAL(sqliteFile)
	if err != nil {
		return nil, err
	}

	return &MockPostgresDAL{
		RankingsDAL: sqliteDAL,
	}, nil
}
