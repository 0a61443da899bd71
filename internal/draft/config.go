package draft

import "fmt"

// Type is the draft ordering discipline
type Type string

const (
	// Snake reverses the team order every round, so the team that picked
	// last in round n picks first in round n+1.
	Snake Type = "snake"
	// Linear keeps the same team order every round.
	Linear Type = "linear"
)

// Config is the immutable configuration of one draft. Changing any field
// requires a full Reset followed by a new Start.
type Config struct {
	NumTeams int  `json:"numTeams"`
	Rounds   int  `json:"rounds"`
	Type     Type `json:"draftType"`
}

// TotalPicks is the number of picks in a complete draft
func (c Config) TotalPicks() int {
	return c.NumTeams * c.Rounds
}

// Validate reports ErrInvalidConfig with detail when the configuration
// cannot produce a well-formed draft
func (c Config) Validate() error {
	if c.NumTeams < 2 {
		return fmt.Errorf("%w: numTeams must be >= 2, got %d", ErrInvalidConfig, c.NumTeams)
	}
	if c.Rounds < 1 {
		return fmt.Errorf("%w: rounds must be >= 1, got %d", ErrInvalidConfig, c.Rounds)
	}
	if c.Type != Snake && c.Type != Linear {
		return fmt.Errorf("%w: draftType must be %q or %q, got %q", ErrInvalidConfig, Snake, Linear, c.Type)
	}
	return nil
}
