package clickhouse

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/mackleonard/NBAWebScraper/internal/models"
	"github.com/mackleonard/NBAWebScraper/internal/rankings"
	"github.com/mackleonard/NBAWebScraper/internal/scoring"
)

// Client provides ClickHouse integration for player stat aggregates
type Client struct {
	conn driver.Conn
}

// NewClient creates a new ClickHouse client
func NewClient(addr, database, username, password string) (*Client, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: database,
			Username: username,
			Password: password,
		},
	})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	if err := conn.Ping(context.Background()); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	return &Client{conn: conn}, nil
}

// GetStatLines aggregates the box score warehouse into per-game averages
// for the current season
func (c *Client) GetStatLines() ([]models.StatLine, error) {
	query := `
		SELECT
			player_id,
			any(player_name) as player_name,
			any(position) as position,
			any(team) as team,
			toInt32(count()) as games_played,
			avg(points) as ppg,
			avg(rebounds) as rpg,
			avg(assists) as apg,
			avg(steals) as spg,
			avg(blocks) as bpg,
			avg(turnovers) as tpg,
			avg(threes_made) as three_pm,
			avg(offensive_rebounds) as oreb
		FROM box_scores
		WHERE game_date >= toStartOfYear(today())
		GROUP BY player_id
		HAVING games_played > 0
	`

	rows, err := c.conn.Query(context.Background(), query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []models.StatLine
	for rows.Next() {
		var l models.StatLine
		var games int32
		if err := rows.Scan(&l.PlayerID, &l.PlayerName, &l.Position, &l.Team, &games,
			&l.Points, &l.Rebounds, &l.Assists, &l.Steals, &l.Blocks,
			&l.Turnovers, &l.ThreesMade, &l.OffensiveRebounds); err != nil {
			return nil, err
		}
		l.GamesPlayed = int(games)
		lines = append(lines, l)
	}

	return lines, nil
}

// SyncRankings rebuilds the fantasy rankings from warehouse aggregates and
// hands the result to the store. This should be called periodically to keep
// rankings up-to-date as new box scores land.
func (c *Client) SyncRankings(settings *scoring.Settings, replace func([]models.Candidate) error) error {
	lines, err := c.GetStatLines()
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		// Empty warehouse, keep whatever the store already has
		return nil
	}

	ranked := rankings.Rank(lines, settings.Weights())
	if err := replace(ranked); err != nil {
		return fmt.Errorf("failed to replace rankings: %w", err)
	}

	return nil
}

// Close closes the ClickHouse connection
func (c *Client) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
