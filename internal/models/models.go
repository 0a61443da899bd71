package models

// Trend describes the direction of a candidate's recent production
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// PerGame holds a candidate's per-game scoring metrics, the inputs to
// fantasy scoring
type PerGame struct {
	Points            float64 `json:"ppg"`
	Rebounds          float64 `json:"rpg"`
	Assists           float64 `json:"apg"`
	Steals            float64 `json:"spg"`
	Blocks            float64 `json:"bpg"`
	Turnovers         float64 `json:"tpg"`
	ThreesMade        float64 `json:"threePm"`
	OffensiveRebounds float64 `json:"oreb"`
}

// Candidate represents one draftable player in the ranked pool.
// Immutable once loaded; uniquely identified by ID within a draft session.
type Candidate struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Position           string  `json:"position"`
	Team               string  `json:"team"`
	Rank               int     `json:"rank"`
	FantasyPPG         float64 `json:"fantasyPpg"`
	FantasySeasonTotal float64 `json:"fantasySeasonTotal"`
	PerGame            PerGame `json:"perGame"`
	Trend              Trend   `json:"trend,omitempty"`
}

// StatLine is a raw box-score aggregate as it comes out of the analytics
// warehouse, before fantasy scoring is applied
type StatLine struct {
	PlayerID          string
	PlayerName        string
	Position          string
	Team              string
	GamesPlayed       int
	Points            float64
	Rebounds          float64
	Assists           float64
	Steals            float64
	Blocks            float64
	Turnovers         float64
	ThreesMade        float64
	OffensiveRebounds float64
}
