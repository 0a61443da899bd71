package draft

import "github.com/mackleonard/NBAWebScraper/internal/models"

// Pick is one atomic assignment of a candidate to a team. Round, Overall
// and Rank are captured at the moment of drafting and never change
// retroactively.
type Pick struct {
	Candidate models.Candidate `json:"candidate"`
	Round     int              `json:"round"`
	Overall   int              `json:"overall"`
	Rank      int              `json:"rank"`
}

// TeamRoster holds one team's picks in draft order. Team numbers are
// 1-based; exactly one roster exists per team for the life of a draft.
type TeamRoster struct {
	Team  int    `json:"team"`
	Picks []Pick `json:"picks"`
}

// State is the snapshot the rendering layer consumes. It is rebuilt after
// every transition; CurrentPick is the next pick to be made, not one that
// has been assigned. The draft is complete when CurrentPick > TotalPicks.
type State struct {
	Config       Config       `json:"config"`
	Teams        []TeamRoster `json:"teams"`
	CurrentPick  int          `json:"currentPick"`
	CurrentRound int          `json:"currentRound"`
	TotalPicks   int          `json:"totalPicks"`
}

// Complete reports whether every pick has been made
func (s *State) Complete() bool {
	return s.CurrentPick > s.TotalPicks
}

func newState(cfg Config) *State {
	teams := make([]TeamRoster, cfg.NumTeams)
	for i := range teams {
		teams[i] = TeamRoster{Team: i + 1, Picks: []Pick{}}
	}
	return &State{
		Config:       cfg,
		Teams:        teams,
		CurrentPick:  1,
		CurrentRound: 1,
		TotalPicks:   cfg.TotalPicks(),
	}
}

// apply files a candidate under the team on the clock and advances the
// counters. It is pure: the input state is left untouched and a new state
// is returned, which keeps failed transitions trivially atomic.
func apply(s *State, c models.Candidate) *State {
	next := s.clone()

	teamIdx := TeamForPick(next.CurrentPick, next.Config)
	next.Teams[teamIdx].Picks = append(next.Teams[teamIdx].Picks, Pick{
		Candidate: c,
		Round:     next.CurrentRound,
		Overall:   next.CurrentPick,
		Rank:      c.Rank,
	})

	next.CurrentPick++
	next.CurrentRound = (next.CurrentPick-1)/next.Config.NumTeams + 1
	return next
}

// clone deep-copies the state so snapshots handed to callers can never
// alias the engine's working copy
func (s *State) clone() *State {
	next := *s
	next.Teams = make([]TeamRoster, len(s.Teams))
	for i, roster := range s.Teams {
		picks := make([]Pick, len(roster.Picks))
		copy(picks, roster.Picks)
		next.Teams[i] = TeamRoster{Team: roster.Team, Picks: picks}
	}
	return &next
}
