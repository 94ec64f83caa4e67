package audit

import (
	"context"
	"errors"
	"time"
)

// ErrSinkUnavailable signals that a record could not be persisted. The gate
// still returns its decision; the record itself must not be dropped.
var ErrSinkUnavailable = errors.New("audit: sink unavailable")

// #region record
// Record is one row of the accountability log: enough of the input to
// explain (and re-derive) the decision, the decision itself, and caller
// context for correlation. Its purpose is as much to prove the system did
// NOT act, and why, as to record when it did.
type Record struct {
	RecordID string `json:"record_id"`

	// Input snapshot
	Query             string `json:"query"`
	EvidenceCount     int    `json:"evidence_count"`
	PermissionStatus  string `json:"permission_status"`
	DecisionRequest   bool   `json:"decision_request"`
	AdapterSuggestion string `json:"adapter_suggestion,omitempty"`
	FindingsJSON      string `json:"findings_json,omitempty"`

	// Output
	Outcome      string `json:"outcome"`
	Reason       string `json:"reason"`
	Explanation  string `json:"explanation,omitempty"`
	GuidanceJSON string `json:"guidance_json,omitempty"`

	// Context
	SessionID     string    `json:"session_id,omitempty"`
	Caller        string    `json:"caller,omitempty"`
	Role          string    `json:"role,omitempty"`
	SystemVersion string    `json:"system_version,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// #endregion record

// #region sink
// Sink receives one record per gate evaluation. Implementations must be
// safe for concurrent appends.
type Sink interface {
	Emit(ctx context.Context, rec Record) error
}

// Discard is a Sink that drops every record. Only for replay and tests;
// production callers always wire a persistent sink.
type Discard struct{}

// Emit implements Sink.
func (Discard) Emit(ctx context.Context, rec Record) error { return nil }

// #endregion sink
