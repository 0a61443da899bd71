package draft

import (
	"fmt"
	"strings"
	"sync"

	"github.com/mackleonard/NBAWebScraper/internal/models"
)

type phase int

const (
	notStarted phase = iota
	inProgress
	complete
)

// Engine is the draft state machine: NotStarted -> InProgress -> Complete.
// Start is the only way in, Pick the only way forward, Reset the only way
// back. The mutex makes the serialize-your-picks contract explicit instead
// of leaning on a single-threaded caller; every method runs one transition
// to completion before the next can observe state.
//
// Transitions are deterministic: a fixed config and a fixed sequence of
// candidate ids always produce the same state.
type Engine struct {
	mu    sync.Mutex
	phase phase
	state *State
	pool  []models.Candidate
}

// NewEngine returns an engine in the NotStarted phase
func NewEngine() *Engine {
	return &Engine{}
}

// Start validates the configuration, binds a private copy of the ranked
// candidate pool, and produces the initial state: empty rosters, pick 1,
// round 1. The pool is consumed in ranked order as picks are made and is
// never replenished within a session. Start only transitions out of
// NotStarted; an engine holding a live or finished draft returns
// ErrAlreadyStarted and keeps it, so rosters are never wiped without an
// explicit Reset.
func (e *Engine) Start(cfg Config, pool []models.Candidate) (*State, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("%w: candidate pool is empty", ErrInvalidConfig)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != notStarted {
		return nil, fmt.Errorf("%w: reset before starting a new draft", ErrAlreadyStarted)
	}

	// Private copy, ranked order preserved, first occurrence wins on
	// duplicate ids
	seen := make(map[string]bool, len(pool))
	e.pool = make([]models.Candidate, 0, len(pool))
	for _, c := range pool {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		e.pool = append(e.pool, c)
	}

	e.state = newState(cfg)
	e.phase = inProgress
	return e.state.clone(), nil
}

// Pick assigns the named candidate to the team on the clock and advances
// the draft. On any error the state is left exactly as it was.
func (e *Engine) Pick(candidateID string) (*State, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkPickable(); err != nil {
		return nil, err
	}

	idx := e.findCandidate(candidateID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrCandidateUnavailable, candidateID)
	}

	return e.pickAt(idx), nil
}

// AutoPick drafts the highest-ranked remaining candidate for the team on
// the clock and returns the pick that was made alongside the new state.
func (e *Engine) AutoPick() (*State, *Pick, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkPickable(); err != nil {
		return nil, nil, err
	}

	state := e.pickAt(0)
	teamIdx := TeamForPick(state.CurrentPick-1, state.Config)
	picks := state.Teams[teamIdx].Picks
	made := picks[len(picks)-1]
	return state, &made, nil
}

// Simulate auto-drafts until the draft completes or the pool runs dry,
// returning the full pick log. An under-supplied pool stops the run early
// with the state as far as it got; callers can tell from State.Complete.
func (e *Engine) Simulate() ([]Pick, *State, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase == notStarted {
		return nil, nil, ErrNotStarted
	}

	var log []Pick
	for e.phase == inProgress && len(e.pool) > 0 {
		state := e.pickAt(0)
		teamIdx := TeamForPick(state.CurrentPick-1, state.Config)
		picks := state.Teams[teamIdx].Picks
		log = append(log, picks[len(picks)-1])
	}
	return log, e.state.clone(), nil
}

// Reset returns the engine to NotStarted from any phase. The bound pool
// and all rosters are discarded; a subsequent Start may use a different
// configuration and pool.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.phase = notStarted
	e.state = nil
	e.pool = nil
}

// State returns a snapshot of the current draft state
func (e *Engine) State() (*State, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase == notStarted {
		return nil, ErrNotStarted
	}
	return e.state.clone(), nil
}

// Clock describes the next pick: the 1-based team on the clock and the
// pick and round counters it was read against
type Clock struct {
	Team    int `json:"team"`
	Pick    int `json:"pick"`
	Round   int `json:"round"`
	OfTotal int `json:"ofTotal"`
}

// OnClock returns the team owning the next pick together with the
// counters it corresponds to. The whole read happens under one lock, so
// the team/pick/round combination is always a state the draft reached.
func (e *Engine) OnClock() (*Clock, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.phase {
	case notStarted:
		return nil, ErrNotStarted
	case complete:
		return nil, ErrDraftComplete
	}
	return &Clock{
		Team:    TeamForPick(e.state.CurrentPick, e.state.Config) + 1,
		Pick:    e.state.CurrentPick,
		Round:   e.state.CurrentRound,
		OfTotal: e.state.TotalPicks,
	}, nil
}

// Pool returns the remaining candidates in ranked order
func (e *Engine) Pool() ([]models.Candidate, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase == notStarted {
		return nil, ErrNotStarted
	}
	out := make([]models.Candidate, len(e.pool))
	copy(out, e.pool)
	return out, nil
}

// TeamSummary is one team's roster with its total projected fantasy
// points per game
type TeamSummary struct {
	Team             int     `json:"team"`
	Picks            []Pick  `json:"picks"`
	ProjectedFantasy float64 `json:"projectedFantasy"`
}

// Summary describes how far the draft has progressed and what every team
// has assembled so far
type Summary struct {
	PicksMade      int           `json:"picksMade"`
	PicksRemaining int           `json:"picksRemaining"`
	Teams          []TeamSummary `json:"teams"`
}

// Summary builds the per-team rollup of the current draft
func (e *Engine) Summary() (*Summary, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase == notStarted {
		return nil, ErrNotStarted
	}

	state := e.state.clone()
	sum := &Summary{
		PicksMade:      state.CurrentPick - 1,
		PicksRemaining: state.TotalPicks - (state.CurrentPick - 1),
		Teams:          make([]TeamSummary, len(state.Teams)),
	}
	for i, roster := range state.Teams {
		var total float64
		for _, p := range roster.Picks {
			total += p.Candidate.FantasyPPG
		}
		sum.Teams[i] = TeamSummary{
			Team:             roster.Team,
			Picks:            roster.Picks,
			ProjectedFantasy: total,
		}
	}
	return sum, nil
}

// checkPickable guards the InProgress-only transitions. The caller holds
// the mutex.
func (e *Engine) checkPickable() error {
	switch e.phase {
	case notStarted:
		return ErrNotStarted
	case complete:
		return fmt.Errorf("%w: all %d picks made", ErrDraftComplete, e.state.TotalPicks)
	}
	if len(e.pool) == 0 {
		return fmt.Errorf("%w: %d picks still unfilled", ErrPoolExhausted, e.state.TotalPicks-(e.state.CurrentPick-1))
	}
	return nil
}

// pickAt removes the pool entry at idx, applies it as the next pick, and
// returns the new snapshot. The caller holds the mutex and has already run
// checkPickable.
func (e *Engine) pickAt(idx int) *State {
	c := e.pool[idx]
	e.pool = append(e.pool[:idx], e.pool[idx+1:]...)
	e.state = apply(e.state, c)
	if e.state.Complete() {
		e.phase = complete
	}
	return e.state.clone()
}

// findCandidate locates a candidate by id, case-insensitively on names to
// match how users type them. The caller holds the mutex.
func (e *Engine) findCandidate(id string) int {
	for i, c := range e.pool {
		if c.ID == id || strings.EqualFold(c.Name, id) {
			return i
		}
	}
	return -1
}
