// Package rankings turns raw per-game stat lines into the ranked candidate
// pool the draft engine consumes.
package rankings

import (
	"sort"

	"github.com/mackleonard/NBAWebScraper/internal/models"
	"github.com/mackleonard/NBAWebScraper/internal/scoring"
)

// Rank scores each stat line with the given weights and returns candidates
// ordered by fantasy points per game, best first, with 1-based ranks
// assigned. Ties break on name so the ordering is deterministic.
func Rank(lines []models.StatLine, w scoring.Weights) []models.Candidate {
	out := make([]models.Candidate, 0, len(lines))
	for _, line := range lines {
		ppg := w.Score(scoring.Stats{
			Points:            line.Points,
			Rebounds:          line.Rebounds,
			Assists:           line.Assists,
			Steals:            line.Steals,
			Blocks:            line.Blocks,
			Turnovers:         line.Turnovers,
			ThreesMade:        line.ThreesMade,
			OffensiveRebounds: line.OffensiveRebounds,
		})
		out = append(out, models.Candidate{
			ID:                 line.PlayerID,
			Name:               line.PlayerName,
			Position:           line.Position,
			Team:               line.Team,
			FantasyPPG:         ppg,
			FantasySeasonTotal: ppg * float64(line.GamesPlayed),
			PerGame: models.PerGame{
				Points:            line.Points,
				Rebounds:          line.Rebounds,
				Assists:           line.Assists,
				Steals:            line.Steals,
				Blocks:            line.Blocks,
				Turnovers:         line.Turnovers,
				ThreesMade:        line.ThreesMade,
				OffensiveRebounds: line.OffensiveRebounds,
			},
			Trend: models.TrendStable,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].FantasyPPG != out[j].FantasyPPG {
			return out[i].FantasyPPG > out[j].FantasyPPG
		}
		return out[i].Name < out[j].Name
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
