package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/mackleonard/NBAWebScraper/internal/dal"
	"github.com/mackleonard/NBAWebScraper/internal/draft"
	"github.com/mackleonard/NBAWebScraper/internal/logger"
	"github.com/mackleonard/NBAWebScraper/internal/metrics"
	"github.com/mackleonard/NBAWebScraper/internal/pubsub"
	"github.com/mackleonard/NBAWebScraper/internal/scoring"
)

// APIHandlers contains all API handler methods
type APIHandlers struct {
	engine    *draft.Engine
	dal       dal.RankingsDAL
	settings  *scoring.Settings
	pubsub    *pubsub.PubSub
	metrics   *metrics.Metrics
	poolLimit int
}

// NewAPIHandlers creates a new API handlers instance. poolLimit caps how
// many ranked candidates a draft pulls in when the request doesn't say.
func NewAPIHandlers(engine *draft.Engine, store dal.RankingsDAL, settings *scoring.Settings, ps *pubsub.PubSub, m *metrics.Metrics, poolLimit int) *APIHandlers {
	return &APIHandlers{
		engine:    engine,
		dal:       store,
		settings:  settings,
		pubsub:    ps,
		metrics:   m,
		poolLimit: poolLimit,
	}
}

// writeJSON writes v as a JSON response
func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// writeDraftError maps draft errors onto HTTP status codes. Invalid
// configuration is the caller's fault; conflicts mean the draft is in a
// state that can't accept the operation.
func writeDraftError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, draft.ErrInvalidConfig):
		status = http.StatusBadRequest
	case errors.Is(err, draft.ErrNotStarted),
		errors.Is(err, draft.ErrAlreadyStarted),
		errors.Is(err, draft.ErrDraftComplete),
		errors.Is(err, draft.ErrCandidateUnavailable),
		errors.Is(err, draft.ErrPoolExhausted):
		status = http.StatusConflict
	}
	http.Error(w, err.Error(), status)
}

// StartDraft configures and starts a new draft
func (h *APIHandlers) StartDraft(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		NumTeams  int        `json:"numTeams"`
		Rounds    int        `json:"rounds"`
		DraftType draft.Type `json:"draftType"`
		PoolSize  int        `json:"poolSize"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode start draft request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	poolSize := req.PoolSize
	if poolSize <= 0 {
		poolSize = h.poolLimit
	}

	pool, err := h.dal.TopCandidates(poolSize)
	if err != nil {
		logger.Error("Failed to load candidate pool", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	cfg := draft.Config{NumTeams: req.NumTeams, Rounds: req.Rounds, Type: req.DraftType}
	logger.Info("Starting draft", "num_teams", cfg.NumTeams, "rounds", cfg.Rounds, "type", cfg.Type, "pool_size", len(pool))

	state, err := h.engine.Start(cfg, pool)
	if err != nil {
		logger.Warn("Failed to start draft", "error", err)
		writeDraftError(w, err)
		return
	}

	h.metrics.RecordDraftStart()
	h.pubsub.Publish(pubsub.Event{
		Type: pubsub.EventDraftStarted,
		Payload: map[string]interface{}{
			"numTeams":   cfg.NumTeams,
			"rounds":     cfg.Rounds,
			"draftType":  string(cfg.Type),
			"totalPicks": state.TotalPicks,
		},
	})

	writeJSON(w, state)
}

// DraftPick drafts a candidate for the team currently on the clock
func (h *APIHandlers) DraftPick(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		CandidateID string `json:"candidateId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode draft pick request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	logger.Info("Drafting candidate", "candidate_id", req.CandidateID)
	state, err := h.engine.Pick(req.CandidateID)
	if err != nil {
		logger.Warn("Failed to draft candidate", "error", err, "candidate_id", req.CandidateID)
		writeDraftError(w, err)
		return
	}

	h.metrics.RecordPick()
	h.pubsub.Publish(pubsub.Event{
		Type: pubsub.EventPickMade,
		Payload: map[string]interface{}{
			"candidateId": req.CandidateID,
			"pickNumber":  state.CurrentPick - 1,
		},
	})

	writeJSON(w, state)
}

// AutoPick drafts the best available candidate for the team on the clock
func (h *APIHandlers) AutoPick(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state, pick, err := h.engine.AutoPick()
	if err != nil {
		logger.Warn("Failed to auto-pick", "error", err)
		writeDraftError(w, err)
		return
	}

	h.metrics.RecordPick()
	h.pubsub.Publish(pubsub.Event{
		Type: pubsub.EventPickMade,
		Payload: map[string]interface{}{
			"candidateId": pick.Candidate.ID,
			"pickNumber":  pick.Overall,
			"auto":        true,
		},
	})

	writeJSON(w, map[string]interface{}{
		"pick":  pick,
		"state": state,
	})
}

// SimulateDraft auto-picks every remaining selection
func (h *APIHandlers) SimulateDraft(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	picks, state, err := h.engine.Simulate()
	if err != nil {
		logger.Warn("Failed to simulate draft", "error", err)
		writeDraftError(w, err)
		return
	}

	for range picks {
		h.metrics.RecordPick()
	}
	h.pubsub.Publish(pubsub.Event{
		Type: pubsub.EventPickMade,
		Payload: map[string]interface{}{
			"simulated": true,
			"picksMade": len(picks),
		},
	})

	writeJSON(w, map[string]interface{}{
		"picks": picks,
		"state": state,
	})
}

// ResetDraft clears the draft back to not-started
func (h *APIHandlers) ResetDraft(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	logger.Info("Resetting draft")
	h.engine.Reset()

	h.metrics.RecordReset()
	h.pubsub.Publish(pubsub.Event{Type: pubsub.EventDraftReset})

	writeJSON(w, map[string]bool{"ok": true})
}

// GetDraftState returns the current draft state
func (h *APIHandlers) GetDraftState(w http.ResponseWriter, r *http.Request) {
	state, err := h.engine.State()
	if err != nil {
		writeDraftError(w, err)
		return
	}

	writeJSON(w, state)
}

// GetOnClock returns which team picks next
func (h *APIHandlers) GetOnClock(w http.ResponseWriter, r *http.Request) {
	clock, err := h.engine.OnClock()
	if err != nil {
		writeDraftError(w, err)
		return
	}

	writeJSON(w, clock)
}

// GetPool returns the undrafted candidates in rank order
func (h *APIHandlers) GetPool(w http.ResponseWriter, r *http.Request) {
	pool, err := h.engine.Pool()
	if err != nil {
		writeDraftError(w, err)
		return
	}

	writeJSON(w, pool)
}

// GetSummary returns per-team rosters with projected fantasy production
func (h *APIHandlers) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.engine.Summary()
	if err != nil {
		writeDraftError(w, err)
		return
	}

	writeJSON(w, summary)
}

// GetRankings returns the ranked candidate list from the store
func (h *APIHandlers) GetRankings(w http.ResponseWriter, r *http.Request) {
	limit := h.poolLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			http.Error(w, "Invalid limit parameter", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	candidates, err := h.dal.TopCandidates(limit)
	if err != nil {
		logger.Error("Failed to load rankings", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, candidates)
}

// Scoring returns or updates the fantasy scoring weights. Updated weights
// take effect on the next rankings sync.
func (h *APIHandlers) Scoring(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, map[string]interface{}{
			"name":    h.settings.Name(),
			"weights": h.settings.Weights(),
		})
	case http.MethodPost:
		var req struct {
			Name    string          `json:"name"`
			Weights scoring.Weights `json:"weights"`
		}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.Name == "" {
			req.Name = "custom"
		}

		h.settings.Update(req.Name, req.Weights)
		logger.Info("Scoring weights updated", "name", req.Name)

		h.pubsub.Publish(pubsub.Event{
			Type:    pubsub.EventScoringUpdate,
			Payload: map[string]interface{}{"name": req.Name},
		})

		writeJSON(w, map[string]interface{}{
			"name":    h.settings.Name(),
			"weights": h.settings.Weights(),
		})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// EventsSSE provides Server-Sent Events for realtime updates
func (h *APIHandlers) EventsSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	eventChan := h.pubsub.Subscribe()
	defer h.pubsub.Unsubscribe(eventChan)

	// Send initial connection message
	fmt.Fprintf(w, "data: {\"type\":\"connected\"}\n\n")
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}

	for {
		select {
		case event := <-eventChan:
			data, _ := json.Marshal(event)
			fmt.Fprintf(w, "data: %s\n\n", data)
			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}
		case <-r.Context().Done():
			logger.Debug("SSE client disconnected")
			return
		case <-time.After(30 * time.Second):
			// Send keepalive ping
			fmt.Fprintf(w, ": keepalive\n\n")
			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}
		}
	}
}

// statusRecorder captures the response status for metrics
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// WithMetrics wraps a handler to record request counts and latency
func (h *APIHandlers) WithMetrics(path string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		h.metrics.RecordHTTPRequest(r.Method, path, rec.status, time.Since(start))
	}
}
