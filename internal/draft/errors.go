package draft

import "errors"

// Draft errors are user-input conditions, not transient failures. A failed
// call leaves the engine state untouched, so callers can re-render a
// corrective prompt and retry with different input.
var (
	// ErrInvalidConfig means Start was given bad team/round counts, an
	// unknown draft type, or an empty candidate pool.
	ErrInvalidConfig = errors.New("invalid draft configuration")

	// ErrNotStarted means Pick or a state read arrived before Start.
	ErrNotStarted = errors.New("draft not started")

	// ErrAlreadyStarted means Start arrived while a draft was in progress
	// or complete. The live draft is kept; callers must Reset first.
	ErrAlreadyStarted = errors.New("draft already started")

	// ErrDraftComplete means every pick has already been made.
	ErrDraftComplete = errors.New("draft already complete")

	// ErrCandidateUnavailable means the requested candidate is not in the
	// remaining pool: already drafted, or never existed.
	ErrCandidateUnavailable = errors.New("candidate unavailable")

	// ErrPoolExhausted means the pool ran out of candidates before the
	// draft logically completed. The supply boundary caps the pool at a
	// fixed size, so large drafts can under-supply.
	ErrPoolExhausted = errors.New("candidate pool exhausted")
)
