package draft

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/mackleonard/NBAWebScraper/internal/models"
)

func testPool(n int) []models.Candidate {
	pool := make([]models.Candidate, n)
	for i := range pool {
		pool[i] = models.Candidate{
			ID:         fmt.Sprintf("p%d", i+1),
			Name:       fmt.Sprintf("Player %d", i+1),
			Rank:       i + 1,
			FantasyPPG: float64(100 - i),
		}
	}
	return pool
}

func mustStart(t *testing.T, e *Engine, cfg Config, pool []models.Candidate) *State {
	t.Helper()
	state, err := e.Start(cfg, pool)
	if err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	return state
}

func TestStartInitialState(t *testing.T) {
	e := NewEngine()
	cfg := Config{NumTeams: 4, Rounds: 3, Type: Snake}
	state := mustStart(t, e, cfg, testPool(20))

	if state.CurrentPick != 1 || state.CurrentRound != 1 {
		t.Errorf("initial counters = pick %d round %d, want 1/1", state.CurrentPick, state.CurrentRound)
	}
	if state.TotalPicks != 12 {
		t.Errorf("TotalPicks = %d, want 12", state.TotalPicks)
	}
	if len(state.Teams) != 4 {
		t.Fatalf("got %d rosters, want 4", len(state.Teams))
	}
	for i, roster := range state.Teams {
		if roster.Team != i+1 {
			t.Errorf("roster %d numbered %d, want %d", i, roster.Team, i+1)
		}
		if len(roster.Picks) != 0 {
			t.Errorf("team %d starts with %d picks, want 0", roster.Team, len(roster.Picks))
		}
	}
}

func TestStartRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		pool []models.Candidate
	}{
		{"one team", Config{NumTeams: 1, Rounds: 3, Type: Snake}, testPool(10)},
		{"zero rounds", Config{NumTeams: 4, Rounds: 0, Type: Snake}, testPool(10)},
		{"bad type", Config{NumTeams: 4, Rounds: 3, Type: "serpentine"}, testPool(10)},
		{"empty pool", Config{NumTeams: 4, Rounds: 3, Type: Snake}, nil},
	}

	for _, tc := range cases {
		e := NewEngine()
		if _, err := e.Start(tc.cfg, tc.pool); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: error = %v, want ErrInvalidConfig", tc.name, err)
		}
		if _, err := e.State(); !errors.Is(err, ErrNotStarted) {
			t.Errorf("%s: engine left NotStarted phase after failed Start", tc.name)
		}
	}
}

func TestPickFilesUnderTeamOnClock(t *testing.T) {
	e := NewEngine()
	cfg := Config{NumTeams: 3, Rounds: 2, Type: Snake}
	mustStart(t, e, cfg, testPool(10))

	// Snake with 3 teams: picks go to teams 1,2,3,3,2,1
	wantTeams := []int{1, 2, 3, 3, 2, 1}
	for i, want := range wantTeams {
		id := fmt.Sprintf("p%d", i+1)
		state, err := e.Pick(id)
		if err != nil {
			t.Fatalf("Pick(%s) failed: %v", id, err)
		}
		roster := state.Teams[want-1]
		last := roster.Picks[len(roster.Picks)-1]
		if last.Candidate.ID != id {
			t.Errorf("pick %d: filed %s under team %d, want %s", i+1, last.Candidate.ID, want, id)
		}
		if last.Overall != i+1 {
			t.Errorf("pick %d: overall recorded as %d", i+1, last.Overall)
		}
		if last.Rank != i+1 {
			t.Errorf("pick %d: rank recorded as %d, want %d", i+1, last.Rank, i+1)
		}
	}
}

func TestRosterSumInvariant(t *testing.T) {
	e := NewEngine()
	cfg := Config{NumTeams: 4, Rounds: 3, Type: Snake}
	mustStart(t, e, cfg, testPool(20))

	for i := 1; i <= cfg.TotalPicks(); i++ {
		state, err := e.Pick(fmt.Sprintf("p%d", i))
		if err != nil {
			t.Fatalf("pick %d failed: %v", i, err)
		}
		total := 0
		for _, roster := range state.Teams {
			total += len(roster.Picks)
		}
		if total != state.CurrentPick-1 {
			t.Errorf("after pick %d: roster sum %d != currentPick-1 (%d)", i, total, state.CurrentPick-1)
		}
		wantRound := (state.CurrentPick-1)/cfg.NumTeams + 1
		if state.CurrentRound != wantRound {
			t.Errorf("after pick %d: currentRound %d, want %d", i, state.CurrentRound, wantRound)
		}
	}
}

func TestNoCandidateDraftedTwice(t *testing.T) {
	e := NewEngine()
	cfg := Config{NumTeams: 3, Rounds: 3, Type: Snake}
	mustStart(t, e, cfg, testPool(12))

	if _, err := e.Pick("p1"); err != nil {
		t.Fatalf("first pick failed: %v", err)
	}
	if _, err := e.Pick("p1"); !errors.Is(err, ErrCandidateUnavailable) {
		t.Fatalf("duplicate pick error = %v, want ErrCandidateUnavailable", err)
	}

	// Drain the rest and verify uniqueness across all rosters
	for i := 2; i <= cfg.TotalPicks(); i++ {
		if _, err := e.Pick(fmt.Sprintf("p%d", i)); err != nil {
			t.Fatalf("pick %d failed: %v", i, err)
		}
	}
	state, err := e.State()
	if err != nil {
		t.Fatal(err)
	}
	seen := map[string]bool{}
	for _, roster := range state.Teams {
		for _, p := range roster.Picks {
			if seen[p.Candidate.ID] {
				t.Errorf("candidate %s drafted twice", p.Candidate.ID)
			}
			seen[p.Candidate.ID] = true
		}
	}
}

func TestUnknownCandidateLeavesStateUnchanged(t *testing.T) {
	e := NewEngine()
	cfg := Config{NumTeams: 3, Rounds: 2, Type: Snake}
	mustStart(t, e, cfg, testPool(10))

	if _, err := e.Pick("p1"); err != nil {
		t.Fatal(err)
	}
	before, err := e.State()
	if err != nil {
		t.Fatal(err)
	}

	if _, err := e.Pick("nobody"); !errors.Is(err, ErrCandidateUnavailable) {
		t.Fatalf("error = %v, want ErrCandidateUnavailable", err)
	}

	after, err := e.State()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(before, after) {
		t.Error("failed pick mutated the draft state")
	}
	pool, err := e.Pool()
	if err != nil {
		t.Fatal(err)
	}
	if len(pool) != 9 {
		t.Errorf("failed pick changed pool size: %d, want 9", len(pool))
	}
}

func TestFinalPickBoundary(t *testing.T) {
	e := NewEngine()
	cfg := Config{NumTeams: 2, Rounds: 2, Type: Snake}
	mustStart(t, e, cfg, testPool(6))

	for i := 1; i < cfg.TotalPicks(); i++ {
		if _, err := e.Pick(fmt.Sprintf("p%d", i)); err != nil {
			t.Fatalf("pick %d failed: %v", i, err)
		}
	}

	// Final valid pick succeeds and tips the draft into Complete
	state, err := e.Pick("p4")
	if err != nil {
		t.Fatalf("final pick failed: %v", err)
	}
	if state.CurrentPick != cfg.TotalPicks()+1 {
		t.Errorf("currentPick = %d, want %d", state.CurrentPick, cfg.TotalPicks()+1)
	}
	if !state.Complete() {
		t.Error("state should report complete")
	}

	if _, err := e.Pick("p5"); !errors.Is(err, ErrDraftComplete) {
		t.Errorf("pick after completion: error = %v, want ErrDraftComplete", err)
	}
	if _, err := e.OnClock(); !errors.Is(err, ErrDraftComplete) {
		t.Errorf("OnClock after completion: error = %v, want ErrDraftComplete", err)
	}
}

func TestPoolExhausted(t *testing.T) {
	e := NewEngine()
	// 12-pick draft supplied with only 3 candidates
	cfg := Config{NumTeams: 4, Rounds: 3, Type: Snake}
	mustStart(t, e, cfg, testPool(3))

	for i := 1; i <= 3; i++ {
		if _, err := e.Pick(fmt.Sprintf("p%d", i)); err != nil {
			t.Fatalf("pick %d failed: %v", i, err)
		}
	}

	if _, err := e.Pick("p4"); !errors.Is(err, ErrPoolExhausted) {
		t.Errorf("error = %v, want ErrPoolExhausted", err)
	}
	state, err := e.State()
	if err != nil {
		t.Fatal(err)
	}
	if state.Complete() {
		t.Error("under-supplied draft must not report complete")
	}
}

func TestResetThenStartIsIdentical(t *testing.T) {
	cfg := Config{NumTeams: 3, Rounds: 2, Type: Snake}
	pool := testPool(10)

	e := NewEngine()
	baseline := mustStart(t, e, cfg, pool)

	// Burn some history, then reset
	if _, err := e.Pick("p1"); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Pick("p5"); err != nil {
		t.Fatal(err)
	}
	e.Reset()

	if _, err := e.State(); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("State after Reset: error = %v, want ErrNotStarted", err)
	}

	restarted := mustStart(t, e, cfg, pool)
	if !reflect.DeepEqual(baseline, restarted) {
		t.Error("restart after reset differs from the original start")
	}
	pool2, err := e.Pool()
	if err != nil {
		t.Fatal(err)
	}
	if len(pool2) != len(pool) {
		t.Errorf("restarted pool has %d candidates, want %d", len(pool2), len(pool))
	}
}

func TestStartWhileInProgressKeepsLiveDraft(t *testing.T) {
	e := NewEngine()
	cfg := Config{NumTeams: 2, Rounds: 2, Type: Snake}
	mustStart(t, e, cfg, testPool(6))

	if _, err := e.Pick("p1"); err != nil {
		t.Fatal(err)
	}
	before, err := e.State()
	if err != nil {
		t.Fatal(err)
	}

	if _, err := e.Start(cfg, testPool(6)); !errors.Is(err, ErrAlreadyStarted) {
		t.Fatalf("Start mid-draft: error = %v, want ErrAlreadyStarted", err)
	}

	after, err := e.State()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(before, after) {
		t.Error("rejected Start mutated the live draft")
	}
}

func TestStartAfterCompletionRequiresReset(t *testing.T) {
	e := NewEngine()
	cfg := Config{NumTeams: 2, Rounds: 1, Type: Snake}
	mustStart(t, e, cfg, testPool(4))

	if _, _, err := e.Simulate(); err != nil {
		t.Fatal(err)
	}

	if _, err := e.Start(cfg, testPool(4)); !errors.Is(err, ErrAlreadyStarted) {
		t.Fatalf("Start from complete: error = %v, want ErrAlreadyStarted", err)
	}

	// The finished rosters survive the rejected Start
	state, err := e.State()
	if err != nil {
		t.Fatal(err)
	}
	if !state.Complete() {
		t.Error("rejected Start reopened a finished draft")
	}

	// Reset then Start remains the sanctioned path to a second draft
	e.Reset()
	mustStart(t, e, cfg, testPool(4))
}

func TestDeterministicReplay(t *testing.T) {
	cfg := Config{NumTeams: 4, Rounds: 2, Type: Snake}
	ids := []string{"p3", "p1", "p7", "p2", "p8", "p4", "p6", "p5"}

	run := func() *State {
		e := NewEngine()
		mustStart(t, e, cfg, testPool(10))
		var last *State
		for _, id := range ids {
			state, err := e.Pick(id)
			if err != nil {
				t.Fatalf("Pick(%s) failed: %v", id, err)
			}
			last = state
		}
		return last
	}

	if !reflect.DeepEqual(run(), run()) {
		t.Error("identical pick sequences produced different states")
	}
}

func TestPickBeforeStart(t *testing.T) {
	e := NewEngine()
	if _, err := e.Pick("p1"); !errors.Is(err, ErrNotStarted) {
		t.Errorf("error = %v, want ErrNotStarted", err)
	}
}

func TestPickByNameCaseInsensitive(t *testing.T) {
	e := NewEngine()
	mustStart(t, e, Config{NumTeams: 2, Rounds: 1, Type: Snake}, testPool(5))

	state, err := e.Pick("player 2")
	if err != nil {
		t.Fatalf("Pick by name failed: %v", err)
	}
	if got := state.Teams[0].Picks[0].Candidate.ID; got != "p2" {
		t.Errorf("drafted %s, want p2", got)
	}
}

func TestStartDeduplicatesPool(t *testing.T) {
	e := NewEngine()
	pool := testPool(4)
	pool = append(pool, pool[0]) // duplicate id at the tail

	mustStart(t, e, Config{NumTeams: 2, Rounds: 1, Type: Snake}, pool)
	remaining, err := e.Pool()
	if err != nil {
		t.Fatal(err)
	}
	if len(remaining) != 4 {
		t.Errorf("pool holds %d candidates after dedup, want 4", len(remaining))
	}
}

func TestAutoPickTakesBestAvailable(t *testing.T) {
	e := NewEngine()
	cfg := Config{NumTeams: 2, Rounds: 2, Type: Snake}
	mustStart(t, e, cfg, testPool(6))

	state, made, err := e.AutoPick()
	if err != nil {
		t.Fatalf("AutoPick failed: %v", err)
	}
	if made.Candidate.ID != "p1" {
		t.Errorf("auto-picked %s, want top-ranked p1", made.Candidate.ID)
	}
	if made.Overall != 1 || made.Round != 1 {
		t.Errorf("auto pick recorded overall %d round %d", made.Overall, made.Round)
	}
	if state.CurrentPick != 2 {
		t.Errorf("currentPick = %d after auto pick, want 2", state.CurrentPick)
	}
}

func TestSimulateCompletesDraft(t *testing.T) {
	e := NewEngine()
	cfg := Config{NumTeams: 3, Rounds: 4, Type: Snake}
	mustStart(t, e, cfg, testPool(20))

	log, state, err := e.Simulate()
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	if len(log) != cfg.TotalPicks() {
		t.Errorf("simulated %d picks, want %d", len(log), cfg.TotalPicks())
	}
	if !state.Complete() {
		t.Error("simulation should complete the draft")
	}
	// Best available goes in ranked order
	for i, p := range log {
		if p.Rank != i+1 {
			t.Errorf("simulated pick %d has rank %d", i+1, p.Rank)
			break
		}
	}
}

func TestSimulateStopsOnShortPool(t *testing.T) {
	e := NewEngine()
	cfg := Config{NumTeams: 4, Rounds: 5, Type: Snake}
	mustStart(t, e, cfg, testPool(7))

	log, state, err := e.Simulate()
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	if len(log) != 7 {
		t.Errorf("simulated %d picks, want 7", len(log))
	}
	if state.Complete() {
		t.Error("short-pool simulation must not report complete")
	}
}

func TestSummary(t *testing.T) {
	e := NewEngine()
	cfg := Config{NumTeams: 2, Rounds: 2, Type: Snake}
	mustStart(t, e, cfg, testPool(6))

	if _, err := e.Pick("p1"); err != nil { // team 1, 100.0
		t.Fatal(err)
	}
	if _, err := e.Pick("p2"); err != nil { // team 2, 99.0
		t.Fatal(err)
	}
	if _, err := e.Pick("p3"); err != nil { // team 2 again (snake), 98.0
		t.Fatal(err)
	}

	sum, err := e.Summary()
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if sum.PicksMade != 3 || sum.PicksRemaining != 1 {
		t.Errorf("picks made/remaining = %d/%d, want 3/1", sum.PicksMade, sum.PicksRemaining)
	}
	if got := sum.Teams[0].ProjectedFantasy; got != 100.0 {
		t.Errorf("team 1 projected fantasy = %v, want 100", got)
	}
	if got := sum.Teams[1].ProjectedFantasy; got != 197.0 {
		t.Errorf("team 2 projected fantasy = %v, want 197", got)
	}
}

func TestOnClockMatchesState(t *testing.T) {
	e := NewEngine()
	cfg := Config{NumTeams: 3, Rounds: 2, Type: Snake}
	mustStart(t, e, cfg, testPool(10))

	for i := 0; i < cfg.TotalPicks(); i++ {
		clock, err := e.OnClock()
		if err != nil {
			t.Fatalf("OnClock before pick %d: %v", i+1, err)
		}
		state, err := e.State()
		if err != nil {
			t.Fatal(err)
		}
		if clock.Pick != state.CurrentPick || clock.Round != state.CurrentRound || clock.OfTotal != state.TotalPicks {
			t.Errorf("clock %+v disagrees with state pick %d round %d of %d",
				clock, state.CurrentPick, state.CurrentRound, state.TotalPicks)
		}
		if want := TeamForPick(clock.Pick, cfg) + 1; clock.Team != want {
			t.Errorf("pick %d: on-clock team %d, want %d", clock.Pick, clock.Team, want)
		}
		if _, _, err := e.AutoPick(); err != nil {
			t.Fatalf("pick %d failed: %v", i+1, err)
		}
	}
}

func TestSnapshotIsolation(t *testing.T) {
	e := NewEngine()
	mustStart(t, e, Config{NumTeams: 2, Rounds: 2, Type: Snake}, testPool(6))

	state, err := e.Pick("p1")
	if err != nil {
		t.Fatal(err)
	}
	// Mutating a snapshot must not leak into the engine
	state.Teams[0].Picks[0].Candidate.Name = "tampered"
	state.CurrentPick = 99

	fresh, err := e.State()
	if err != nil {
		t.Fatal(err)
	}
	if fresh.Teams[0].Picks[0].Candidate.Name == "tampered" || fresh.CurrentPick == 99 {
		t.Error("snapshot mutation leaked into engine state")
	}
}
