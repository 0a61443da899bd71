package rankings

import (
	"testing"

	"github.com/mackleonard/NBAWebScraper/internal/models"
	"github.com/mackleonard/NBAWebScraper/internal/scoring"
)

func TestRankOrdersByFantasyPPG(t *testing.T) {
	lines := []models.StatLine{
		{PlayerID: "a", PlayerName: "Role Player", GamesPlayed: 70, Points: 8, Rebounds: 3, Assists: 1},
		{PlayerID: "b", PlayerName: "Superstar", GamesPlayed: 68, Points: 30, Rebounds: 8, Assists: 8, Steals: 1.5, Blocks: 1, Turnovers: 3, ThreesMade: 3, OffensiveRebounds: 1},
		{PlayerID: "c", PlayerName: "Starter", GamesPlayed: 75, Points: 18, Rebounds: 6, Assists: 4, Turnovers: 2},
	}

	got := Rank(lines, scoring.Default())

	if len(got) != 3 {
		t.Fatalf("got %d candidates, want 3", len(got))
	}
	wantOrder := []string{"b", "c", "a"}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Errorf("position %d: %s, want %s", i+1, got[i].ID, id)
		}
		if got[i].Rank != i+1 {
			t.Errorf("position %d: rank %d, want %d", i+1, got[i].Rank, i+1)
		}
	}

	// Superstar: 30 + 8 + 8*1.5 + 1.5*2 + 1*2 - 3*2 + 3 + 0.5 = 52.5
	if got[0].FantasyPPG != 52.5 {
		t.Errorf("superstar fantasy ppg = %v, want 52.5", got[0].FantasyPPG)
	}
	if got[0].FantasySeasonTotal != 52.5*68 {
		t.Errorf("superstar season total = %v, want %v", got[0].FantasySeasonTotal, 52.5*68)
	}
}

func TestRankTieBreaksOnName(t *testing.T) {
	lines := []models.StatLine{
		{PlayerID: "z", PlayerName: "Zeta", GamesPlayed: 60, Points: 10},
		{PlayerID: "a", PlayerName: "Alpha", GamesPlayed: 60, Points: 10},
	}

	got := Rank(lines, scoring.Default())
	if got[0].Name != "Alpha" || got[1].Name != "Zeta" {
		t.Errorf("tie break order = %s, %s; want Alpha, Zeta", got[0].Name, got[1].Name)
	}
}

func TestRankWithCustomWeights(t *testing.T) {
	w := scoring.Default()
	w.Assists = 3.0 // assist-heavy league flips the order

	lines := []models.StatLine{
		{PlayerID: "scorer", PlayerName: "Scorer", GamesPlayed: 70, Points: 25},
		{PlayerID: "passer", PlayerName: "Passer", GamesPlayed: 70, Points: 12, Assists: 11},
	}

	got := Rank(lines, w)
	if got[0].ID != "passer" {
		t.Errorf("top candidate = %s, want passer under assist-heavy weights", got[0].ID)
	}
}
