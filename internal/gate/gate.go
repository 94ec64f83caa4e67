package gate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stopfirst/stop-first-rag/go-gate/internal/audit"
	"github.com/stopfirst/stop-first-rag/go-gate/internal/conflict"
	"github.com/stopfirst/stop-first-rag/go-gate/internal/grader"
	"github.com/stopfirst/stop-first-rag/go-gate/internal/permission"
)

// Standard error types for gate operations.
var (
	// ErrInvalidInput marks malformed input. It surfaces before any rule
	// runs and before anything is logged; the gate never fabricates a
	// decision from input it cannot read.
	ErrInvalidInput = errors.New("gate: invalid input")

	// ErrAuditDegraded marks a decision that was computed but whose audit
	// record could not be accepted by the sink. The decision accompanying
	// it is valid; the caller is being told the log is degraded.
	ErrAuditDegraded = errors.New("gate: audit sink degraded")
)

// #region config
// Config holds gate tuning. Zero values are usable.
type Config struct {
	// ConflictTimeout bounds the external conflict-detection call. On
	// timeout the gate resolves toward review, never toward allow.
	ConflictTimeout time.Duration

	// SystemVersion is stamped into every audit record.
	SystemVersion string
}

const defaultConflictTimeout = 2 * time.Second

// #endregion config

// #region gate
// Gate is the judgment boundary between retrieval and generation. It is
// stateless across calls and safe for concurrent use; its only side effect
// is the audit record it emits for every evaluation.
type Gate struct {
	config   Config
	detector conflict.Detector
	grader   *grader.Grader
	sink     audit.Sink
	now      func() time.Time
}

// New creates a gate. detector and sink must be non-nil; use
// conflict.None{} when no detector is wired and audit.Discard{} only in
// tests and replay.
func New(config Config, detector conflict.Detector, sink audit.Sink) *Gate {
	if config.ConflictTimeout <= 0 {
		config.ConflictTimeout = defaultConflictTimeout
	}
	return &Gate{
		config:   config,
		detector: detector,
		sink:     sink,
		now:      time.Now,
	}
}

// WithGrader attaches the optional evidence grader.
func (g *Gate) WithGrader(gr *grader.Grader) *Gate {
	g.grader = gr
	return g
}

// #endregion gate

// #region evaluate
// Evaluate computes exactly one decision for the input and emits exactly
// one audit record before returning. A non-nil error wrapping
// ErrAuditDegraded still carries a valid decision; any other error means
// no decision was made.
func (g *Gate) Evaluate(ctx context.Context, in GateInput) (GateDecision, error) {
	if strings.TrimSpace(in.Query) == "" {
		return GateDecision{}, fmt.Errorf("%w: empty query", ErrInvalidInput)
	}

	f := g.materialize(ctx, in)
	outcome, reason := Decide(f)

	decision := GateDecision{
		RecordID:    uuid.New().String(),
		Outcome:     outcome,
		Reason:      reason,
		Explanation: Explanation(reason),
		Timestamp:   g.now().UTC(),
		Context:     in.Context,
	}
	if outcome == OutcomeStop {
		decision.Guidance = GuidanceFor(reason)
	}
	decision.AdapterNote = adapterNote(in.AdapterSuggestion, outcome)

	rec := g.record(in, f, decision)
	if err := g.sink.Emit(ctx, rec); err != nil {
		return decision, fmt.Errorf("%w: %v", ErrAuditDegraded, err)
	}
	return decision, nil
}

// #endregion evaluate

// #region materialize
// materialize consults the collaborators and reduces the input to findings.
// Evidence presence comes from the item list whenever one is supplied; the
// caller's boolean is only trusted when no list exists at all.
func (g *Gate) materialize(ctx context.Context, in GateInput) Findings {
	var f Findings

	f.DecisionRequest = in.IsDecisionRequest
	f.ApprovalRequest = in.IsApprovalRequest
	f.UnsafeQuery = in.UnsafeQuery
	f.OutOfScope = in.OutOfScope

	if in.Evidence != nil {
		f.EvidencePresent = len(in.Evidence) > 0
	} else {
		f.EvidencePresent = in.EvidenceRetrieved
	}

	if f.EvidencePresent {
		for _, it := range in.Evidence {
			if !it.Status.Valid() {
				f.EvidenceInvalid = true
				break
			}
		}
	}

	if f.EvidencePresent && !f.EvidenceInvalid && len(in.Evidence) > 0 {
		dctx, cancel := context.WithTimeout(ctx, g.config.ConflictTimeout)
		found, err := g.detector.Detect(dctx, in.Evidence)
		cancel()
		if err != nil {
			// Detector unreachable: fail toward human judgment.
			f.EvidenceConflict = true
		} else {
			f.EvidenceConflict = found
		}
	}

	if in.Grant != nil {
		f.Permission = permission.Check(in.Grant, in.Scope, g.now())
	} else if in.PermissionToAnswer {
		f.Permission = permission.StatusGranted
	} else {
		f.Permission = permission.StatusMissing
	}

	if g.grader != nil && f.EvidencePresent && !f.EvidenceInvalid && len(in.Evidence) > 0 {
		res := g.grader.Grade(in.Evidence)
		f.GradeFailed = !res.Passed
		f.ReviewAdvised = res.ReviewAdvised
		f.GradeReason = res.Reason
	}

	return f
}

// #endregion materialize

// #region adapter
// adapterNote explains the advisory suggestion's fate. The suggestion is
// never consulted by Decide; this annotation is all it produces.
func adapterNote(suggestion *Outcome, outcome Outcome) string {
	if suggestion == nil {
		return ""
	}
	if *suggestion == outcome {
		return fmt.Sprintf("adapter suggested %s; suggestion is advisory only and did not influence the outcome", *suggestion)
	}
	return fmt.Sprintf("adapter suggested %s; suggestion is advisory only and was overridden by the computed outcome %s", *suggestion, outcome)
}

// #endregion adapter

// #region audit-record
func (g *Gate) record(in GateInput, f Findings, d GateDecision) audit.Record {
	rec := audit.Record{
		RecordID:         d.RecordID,
		Query:            in.Query,
		EvidenceCount:    len(in.Evidence),
		PermissionStatus: string(f.Permission),
		DecisionRequest:  f.DecisionRequest,
		Outcome:          string(d.Outcome),
		Reason:           string(d.Reason),
		SessionID:        in.Context.SessionID,
		Caller:           in.Context.Caller,
		Role:             in.Context.Role,
		SystemVersion:    g.config.SystemVersion,
		CreatedAt:        d.Timestamp,
	}
	if rec.SystemVersion == "" {
		rec.SystemVersion = in.Context.SystemVersion
	}
	if in.AdapterSuggestion != nil {
		rec.AdapterSuggestion = string(*in.AdapterSuggestion)
	}
	if data, err := json.Marshal(f); err == nil {
		rec.FindingsJSON = string(data)
	}
	if d.Outcome != OutcomeAllow {
		rec.Explanation = d.Explanation
	}
	if d.Guidance != nil {
		if data, err := json.Marshal(d.Guidance); err == nil {
			rec.GuidanceJSON = string(data)
		}
	}
	return rec
}

// #endregion audit-record
