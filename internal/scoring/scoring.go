package scoring

import (
	"math"
	"sync"
)

// Weights maps each box-score stat to its fantasy point value. Missed
// field goals and free throws are derived from attempts minus makes.
type Weights struct {
	Points            float64 `json:"points"`
	Rebounds          float64 `json:"rebounds"`
	Assists           float64 `json:"assists"`
	Steals            float64 `json:"steals"`
	Blocks            float64 `json:"blocks"`
	Turnovers         float64 `json:"turnovers"`
	ThreePointers     float64 `json:"three_pointers"`
	OffensiveRebounds float64 `json:"offensive_rebounds"`
	FieldGoalsMade    float64 `json:"field_goals_made"`
	FieldGoalsMissed  float64 `json:"field_goals_missed"`
	FreeThrowsMade    float64 `json:"free_throws_made"`
	FreeThrowsMissed  float64 `json:"free_throws_missed"`
	DoubleDouble      float64 `json:"double_double"`
	TripleDouble      float64 `json:"triple_double"`
}

// Default returns the standard scoring weights
func Default() Weights {
	return Weights{
		Points:            1.0,
		Rebounds:          1.0,
		Assists:           1.5,
		Steals:            2.0,
		Blocks:            2.0,
		Turnovers:         -2.0,
		ThreePointers:     1.0,
		OffensiveRebounds: 0.5,
	}
}

// Stats is one stat line to be scored, either a single game or a
// per-game average
type Stats struct {
	Points              float64
	Rebounds            float64
	Assists             float64
	Steals              float64
	Blocks              float64
	Turnovers           float64
	ThreesMade          float64
	OffensiveRebounds   float64
	FieldGoalsMade      float64
	FieldGoalsAttempted float64
	FreeThrowsMade      float64
	FreeThrowsAttempted float64
}

// Score applies the weights to a stat line and rounds to one decimal
func (w Weights) Score(s Stats) float64 {
	total := s.Points*w.Points +
		s.Rebounds*w.Rebounds +
		s.Assists*w.Assists +
		s.Steals*w.Steals +
		s.Blocks*w.Blocks +
		s.Turnovers*w.Turnovers +
		s.ThreesMade*w.ThreePointers +
		s.OffensiveRebounds*w.OffensiveRebounds +
		s.FieldGoalsMade*w.FieldGoalsMade +
		(s.FieldGoalsAttempted-s.FieldGoalsMade)*w.FieldGoalsMissed +
		s.FreeThrowsMade*w.FreeThrowsMade +
		(s.FreeThrowsAttempted-s.FreeThrowsMade)*w.FreeThrowsMissed

	if w.DoubleDouble != 0 || w.TripleDouble != 0 {
		doubleDigit := 0
		for _, v := range []float64{s.Points, s.Rebounds, s.Assists, s.Steals, s.Blocks} {
			if v >= 10 {
				doubleDigit++
			}
		}
		switch {
		case doubleDigit >= 3:
			total += w.TripleDouble
		case doubleDigit >= 2:
			total += w.DoubleDouble
		}
	}

	return math.Round(total*10) / 10
}

// Settings holds the active scoring weights for the process. Persistence
// of per-user settings is handled upstream; this is the single live
// configuration the ranking sync reads.
type Settings struct {
	mu      sync.RWMutex
	name    string
	weights Weights
}

// NewSettings starts with the standard weights
func NewSettings() *Settings {
	return &Settings{name: "standard", weights: Default()}
}

// Weights returns the active weights
func (s *Settings) Weights() Weights {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.weights
}

// Name returns the label of the active weight set
func (s *Settings) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

// Update replaces the active weights. Rankings computed earlier are not
// rescored; the new weights apply at the next sync.
func (s *Settings) Update(name string, w Weights) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if name != "" {
		s.name = name
	}
	s.weights = w
}

// Reset restores the standard weights
func (s *Settings) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = "standard"
	s.weights = Default()
}
