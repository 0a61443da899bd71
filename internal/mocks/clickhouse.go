package mocks

import (
	"math/rand"

	"github.com/mackleonard/NBAWebScraper/internal/dal"
	"github.com/mackleonard/NBAWebScraper/internal/logger"
	"github.com/mackleonard/NBAWebScraper/internal/models"
	"github.com/mackleonard/NBAWebScraper/internal/rankings"
	"github.com/mackleonard/NBAWebScraper/internal/scoring"
)

// MockWarehouseClient provides a mock ClickHouse client for local development.
// It serves the built-in stat sheet with slight nightly variance so syncs
// actually move the rankings.
type MockWarehouseClient struct{}

// NewMockWarehouseClient creates a mock warehouse client
func NewMockWarehouseClient() *MockWarehouseClient {
	logger.Info("Using MOCK ClickHouse client for local development")
	return &MockWarehouseClient{}
}

// GetStatLines returns the seed stat lines with up to ±5% variance on the
// scoring stats
func (m *MockWarehouseClient) GetStatLines() ([]models.StatLine, error) {
	lines := dal.SeedStatLines()
	for i := range lines {
		lines[i].Points = jitter(lines[i].Points)
		lines[i].Rebounds = jitter(lines[i].Rebounds)
		lines[i].Assists = jitter(lines[i].Assists)
	}
	return lines, nil
}

// SyncRankings rebuilds rankings from the mock stat lines
func (m *MockWarehouseClient) SyncRankings(settings *scoring.Settings, replace func([]models.Candidate) error) error {
	lines, err := m.GetStatLines()
	if err != nil {
		return err
	}

	if err := replace(rankings.Rank(lines, settings.Weights())); err != nil {
		return err
	}

	logger.Info("Mock ClickHouse: Synced rankings", "candidates", len(lines))
	return nil
}

// Close is a no-op for mock client
func (m *MockWarehouseClient) Close() error {
	return nil
}

func jitter(v float64) float64 {
	return v * (0.95 + rand.Float64()*0.1)
}
