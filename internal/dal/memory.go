package dal

import (
	"fmt"
	"sync"

	"github.com/mackleonard/NBAWebScraper/internal/models"
	"github.com/mackleonard/NBAWebScraper/internal/rankings"
	"github.com/mackleonard/NBAWebScraper/internal/scoring"
)

// MemoryDAL implements RankingsDAL using in-memory storage. It seeds a
// default ranking so the service is usable without a warehouse attached.
type MemoryDAL struct {
	mu         sync.RWMutex
	candidates []models.Candidate
}

// NewMemoryDAL creates a new in-memory rankings store
func NewMemoryDAL() *MemoryDAL {
	return &MemoryDAL{
		candidates: rankings.Rank(SeedStatLines(), scoring.Default()),
	}
}

func (m *MemoryDAL) TopCandidates(limit int) ([]models.Candidate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := len(m.candidates)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]models.Candidate, n)
	copy(out, m.candidates[:n])
	return out, nil
}

func (m *MemoryDAL) AllCandidates() ([]models.Candidate, error) {
	return m.TopCandidates(0)
}

func (m *MemoryDAL) Candidate(id string) (*models.Candidate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := range m.candidates {
		if m.candidates[i].ID == id {
			c := m.candidates[i]
			return &c, nil
		}
	}
	return nil, fmt.Errorf("candidate %q not found", id)
}

func (m *MemoryDAL) ReplaceRankings(candidates []models.Candidate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.candidates = make([]models.Candidate, len(candidates))
	copy(m.candidates, candidates)
	return nil
}

func (m *MemoryDAL) Health() error { return nil }

func (m *MemoryDAL) Close() error { return nil }

// SeedStatLines is the built-in per-game stat sheet used to seed every
// store when no warehouse sync has run yet
func SeedStatLines() []models.StatLine {
	return []models.StatLine{
		{PlayerID: "nikola-jokic", PlayerName: "Nikola Jokic", Position: "C", Team: "DEN", GamesPlayed: 70, Points: 26.4, Rebounds: 12.4, Assists: 9.0, Steals: 1.4, Blocks: 0.9, Turnovers: 3.0, ThreesMade: 1.1, OffensiveRebounds: 2.8},
		{PlayerID: "luka-doncic", PlayerName: "Luka Doncic", Position: "G", Team: "LAL", GamesPlayed: 65, Points: 32.4, Rebounds: 9.1, Assists: 9.8, Steals: 1.4, Blocks: 0.5, Turnovers: 4.0, ThreesMade: 4.1, OffensiveRebounds: 0.8},
		{PlayerID: "giannis-antetokounmpo", PlayerName: "Giannis Antetokounmpo", Position: "F", Team: "MIL", GamesPlayed: 72, Points: 30.4, Rebounds: 11.5, Assists: 6.5, Steals: 1.2, Blocks: 1.1, Turnovers: 3.4, ThreesMade: 0.5, OffensiveRebounds: 2.7},
		{PlayerID: "shai-gilgeous-alexander", PlayerName: "Shai Gilgeous-Alexander", Position: "G", Team: "OKC", GamesPlayed: 75, Points: 30.1, Rebounds: 5.5, Assists: 6.2, Steals: 2.0, Blocks: 0.9, Turnovers: 2.2, ThreesMade: 1.3, OffensiveRebounds: 0.8},
		{PlayerID: "victor-wembanyama", PlayerName: "Victor Wembanyama", Position: "C", Team: "SAS", GamesPlayed: 71, Points: 24.3, Rebounds: 11.0, Assists: 3.7, Steals: 1.1, Blocks: 3.8, Turnovers: 3.2, ThreesMade: 1.9, OffensiveRebounds: 2.2},
		{PlayerID: "jayson-tatum", PlayerName: "Jayson Tatum", Position: "F", Team: "BOS", GamesPlayed: 74, Points: 26.9, Rebounds: 8.1, Assists: 4.9, Steals: 1.0, Blocks: 0.6, Turnovers: 2.5, ThreesMade: 3.1, OffensiveRebounds: 0.9},
		{PlayerID: "anthony-davis", PlayerName: "Anthony Davis", Position: "C", Team: "DAL", GamesPlayed: 62, Points: 24.7, Rebounds: 12.6, Assists: 3.5, Steals: 1.2, Blocks: 2.3, Turnovers: 2.1, ThreesMade: 0.8, OffensiveRebounds: 3.1},
		{PlayerID: "anthony-edwards", PlayerName: "Anthony Edwards", Position: "G", Team: "MIN", GamesPlayed: 76, Points: 25.9, Rebounds: 5.4, Assists: 5.1, Steals: 1.3, Blocks: 0.5, Turnovers: 3.1, ThreesMade: 3.0, OffensiveRebounds: 0.8},
		{PlayerID: "tyrese-haliburton", PlayerName: "Tyrese Haliburton", Position: "G", Team: "IND", GamesPlayed: 69, Points: 20.1, Rebounds: 3.9, Assists: 10.9, Steals: 1.2, Blocks: 0.7, Turnovers: 2.3, ThreesMade: 3.0, OffensiveRebounds: 0.6},
		{PlayerID: "domantas-sabonis", PlayerName: "Domantas Sabonis", Position: "C", Team: "SAC", GamesPlayed: 79, Points: 19.1, Rebounds: 13.9, Assists: 6.0, Steals: 0.9, Blocks: 0.7, Turnovers: 3.1, ThreesMade: 0.6, OffensiveRebounds: 3.2},
		{PlayerID: "kevin-durant", PlayerName: "Kevin Durant", Position: "F", Team: "HOU", GamesPlayed: 66, Points: 26.6, Rebounds: 6.0, Assists: 4.2, Steals: 0.8, Blocks: 1.2, Turnovers: 3.1, ThreesMade: 2.2, OffensiveRebounds: 0.5},
		{PlayerID: "devin-booker", PlayerName: "Devin Booker", Position: "G", Team: "PHX", GamesPlayed: 68, Points: 25.6, Rebounds: 4.1, Assists: 7.1, Steals: 0.9, Blocks: 0.4, Turnovers: 2.8, ThreesMade: 2.1, OffensiveRebounds: 0.7},
		{PlayerID: "stephen-curry", PlayerName: "Stephen Curry", Position: "G", Team: "GSW", GamesPlayed: 70, Points: 24.5, Rebounds: 4.4, Assists: 6.0, Steals: 1.1, Blocks: 0.4, Turnovers: 2.9, ThreesMade: 4.4, OffensiveRebounds: 0.5},
		{PlayerID: "lebron-james", PlayerName: "LeBron James", Position: "F", Team: "LAL", GamesPlayed: 67, Points: 24.4, Rebounds: 7.8, Assists: 8.2, Steals: 1.0, Blocks: 0.6, Turnovers: 3.7, ThreesMade: 2.1, OffensiveRebounds: 1.0},
		{PlayerID: "cade-cunningham", PlayerName: "Cade Cunningham", Position: "G", Team: "DET", GamesPlayed: 70, Points: 26.1, Rebounds: 6.1, Assists: 9.1, Steals: 1.0, Blocks: 0.8, Turnovers: 4.4, ThreesMade: 2.1, OffensiveRebounds: 0.6},
		{PlayerID: "karl-anthony-towns", PlayerName: "Karl-Anthony Towns", Position: "C", Team: "NYK", GamesPlayed: 72, Points: 24.4, Rebounds: 12.8, Assists: 3.1, Steals: 1.0, Blocks: 0.7, Turnovers: 2.9, ThreesMade: 2.0, OffensiveRebounds: 2.6},
		{PlayerID: "james-harden", PlayerName: "James Harden", Position: "G", Team: "LAC", GamesPlayed: 77, Points: 22.8, Rebounds: 5.8, Assists: 8.7, Steals: 1.5, Blocks: 0.7, Turnovers: 4.3, ThreesMade: 2.9, OffensiveRebounds: 0.7},
		{PlayerID: "jalen-brunson", PlayerName: "Jalen Brunson", Position: "G", Team: "NYK", GamesPlayed: 65, Points: 26.0, Rebounds: 2.9, Assists: 7.3, Steals: 0.9, Blocks: 0.2, Turnovers: 2.5, ThreesMade: 2.4, OffensiveRebounds: 0.5},
		{PlayerID: "evan-mobley", PlayerName: "Evan Mobley", Position: "C", Team: "CLE", GamesPlayed: 71, Points: 18.5, Rebounds: 9.3, Assists: 3.2, Steals: 0.9, Blocks: 1.6, Turnovers: 1.8, ThreesMade: 1.2, OffensiveRebounds: 2.3},
		{PlayerID: "alperen-sengun", PlayerName: "Alperen Sengun", Position: "C", Team: "HOU", GamesPlayed: 76, Points: 19.1, Rebounds: 10.3, Assists: 4.9, Steals: 1.1, Blocks: 0.9, Turnovers: 2.6, ThreesMade: 0.3, OffensiveRebounds: 3.1},
		{PlayerID: "donovan-mitchell", PlayerName: "Donovan Mitchell", Position: "G", Team: "CLE", GamesPlayed: 71, Points: 24.0, Rebounds: 4.5, Assists: 5.0, Steals: 1.3, Blocks: 0.3, Turnovers: 2.4, ThreesMade: 3.3, OffensiveRebounds: 0.8},
		{PlayerID: "trae-young", PlayerName: "Trae Young", Position: "G", Team: "ATL", GamesPlayed: 74, Points: 24.2, Rebounds: 3.1, Assists: 11.6, Steals: 1.2, Blocks: 0.2, Turnovers: 4.7, ThreesMade: 2.8, OffensiveRebounds: 0.6},
		{PlayerID: "paolo-banchero", PlayerName: "Paolo Banchero", Position: "F", Team: "ORL", GamesPlayed: 64, Points: 25.9, Rebounds: 7.5, Assists: 4.8, Steals: 0.9, Blocks: 0.6, Turnovers: 3.2, ThreesMade: 1.8, OffensiveRebounds: 1.2},
		{PlayerID: "bam-adebayo", PlayerName: "Bam Adebayo", Position: "C", Team: "MIA", GamesPlayed: 78, Points: 18.1, Rebounds: 9.6, Assists: 4.3, Steals: 1.3, Blocks: 0.7, Turnovers: 2.2, ThreesMade: 0.8, OffensiveRebounds: 2.4},
	}
}
