package gate

import (
	"time"

	"github.com/stopfirst/stop-first-rag/go-gate/internal/evidence"
	"github.com/stopfirst/stop-first-rag/go-gate/internal/permission"
)

// #region outcome
// Outcome is the gate's tri-state decision. STOP is a valid, first-class
// outcome, not an error.
type Outcome string

const (
	OutcomeAllow  Outcome = "ALLOW"
	OutcomeReview Outcome = "REVIEW"
	OutcomeStop   Outcome = "STOP"
)

// #endregion outcome

// #region reason-codes
// ReasonCode identifies why the gate decided what it decided. The set is
// closed: codes may be added, never removed, and every STOP or REVIEW
// decision carries exactly one of them.
type ReasonCode string

const (
	// Permission
	ReasonPermissionMissing       ReasonCode = "STOP.PERMISSION_MISSING"
	ReasonPermissionExpired       ReasonCode = "STOP.PERMISSION_EXPIRED"
	ReasonPermissionScopeViolated ReasonCode = "STOP.PERMISSION_SCOPE_VIOLATED"

	// Decision automation
	ReasonDecisionAutomationBlocked ReasonCode = "STOP.DECISION_AUTOMATION_BLOCKED"
	ReasonApprovalRequestBlocked    ReasonCode = "STOP.APPROVAL_REQUEST_BLOCKED"
	ReasonJudgmentRequired          ReasonCode = "STOP.JUDGMENT_REQUIRED"

	// Evidence
	ReasonEvidenceInsufficient ReasonCode = "STOP.EVIDENCE_INSUFFICIENT"
	ReasonEvidenceMissing      ReasonCode = "STOP.EVIDENCE_MISSING"
	ReasonEvidenceInvalid      ReasonCode = "STOP.EVIDENCE_INVALID"
	ReasonEvidenceConflictStop ReasonCode = "STOP.EVIDENCE_CONFLICT"

	// Boundary
	ReasonOutOfScope         ReasonCode = "STOP.OUT_OF_SCOPE"
	ReasonUnsafeQuery        ReasonCode = "STOP.UNSAFE_QUERY"
	ReasonDiscretionRequired ReasonCode = "STOP.DISCRETION_REQUIRED"

	// Review
	ReasonEvidenceConflict        ReasonCode = "REVIEW.EVIDENCE_CONFLICT"
	ReasonMultipleInterpretations ReasonCode = "REVIEW.MULTIPLE_INTERPRETATIONS"
	ReasonDiscretionAdvised       ReasonCode = "REVIEW.DISCRETION_ADVISED"

	// Success marker for ALLOW decisions.
	ReasonAnswerPermitted ReasonCode = "Answer permitted"
)

// Category groups codes for reporting.
type Category string

const (
	CategoryPermission Category = "permission"
	CategoryAutomation Category = "automation"
	CategoryEvidence   Category = "evidence"
	CategoryBoundary   Category = "boundary"
	CategoryReview     Category = "review"
	CategoryAllow      Category = "allow"
)

var reasonCategories = map[ReasonCode]Category{
	ReasonPermissionMissing:         CategoryPermission,
	ReasonPermissionExpired:         CategoryPermission,
	ReasonPermissionScopeViolated:   CategoryPermission,
	ReasonDecisionAutomationBlocked: CategoryAutomation,
	ReasonApprovalRequestBlocked:    CategoryAutomation,
	ReasonJudgmentRequired:          CategoryAutomation,
	ReasonEvidenceInsufficient:      CategoryEvidence,
	ReasonEvidenceMissing:           CategoryEvidence,
	ReasonEvidenceInvalid:           CategoryEvidence,
	ReasonEvidenceConflictStop:      CategoryEvidence,
	ReasonOutOfScope:                CategoryBoundary,
	ReasonUnsafeQuery:               CategoryBoundary,
	ReasonDiscretionRequired:        CategoryBoundary,
	ReasonEvidenceConflict:          CategoryReview,
	ReasonMultipleInterpretations:   CategoryReview,
	ReasonDiscretionAdvised:         CategoryReview,
	ReasonAnswerPermitted:           CategoryAllow,
}

// Known reports whether the code belongs to the closed taxonomy.
func (c ReasonCode) Known() bool {
	_, ok := reasonCategories[c]
	return ok
}

// Category returns the code's taxonomy category.
func (c ReasonCode) Category() Category {
	return reasonCategories[c]
}

// #endregion reason-codes

// #region guidance
// NextAction is a suggested follow-up for the caller. Symbolic only; the
// gate never executes any of them.
type NextAction struct {
	Action      string `json:"action"`
	Description string `json:"description"`
}

// Guidance is the payload attached to STOP decisions.
type Guidance struct {
	PrimaryMessage string       `json:"primary_message"`
	NextActions    []NextAction `json:"next_actions,omitempty"`
	Note           string       `json:"note"`
}

// #endregion guidance

// #region input
// RequestContext carries opaque caller identifiers through to the audit log.
type RequestContext struct {
	SessionID     string `json:"session_id,omitempty"`
	Caller        string `json:"caller,omitempty"`
	Role          string `json:"role,omitempty"`
	SystemVersion string `json:"system_version,omitempty"`
}

// GateInput is one request to the boundary gate. Constructed fresh per
// query; never mutated by the gate.
type GateInput struct {
	Query string

	// Evidence is authoritative for presence when set: the gate derives
	// presence from the item list and never trusts a contradicting
	// EvidenceRetrieved flag. EvidenceRetrieved alone carries presence
	// for callers that only have the boolean.
	Evidence          []evidence.Item
	EvidenceRetrieved bool

	// PermissionToAnswer is the boolean permission form. Grant, when set,
	// takes precedence and is evaluated against Scope (expiry, scope
	// list). Absent both, permission is missing: never inferred as granted.
	PermissionToAnswer bool
	Grant              *permission.Grant
	Scope              string

	IsDecisionRequest bool
	IsApprovalRequest bool
	UnsafeQuery       bool
	OutOfScope        bool

	// AdapterSuggestion is the calling framework's advisory hint. It is
	// recorded and annotated but structurally cannot influence the
	// outcome: Decide never sees it.
	AdapterSuggestion *Outcome

	Context RequestContext
}

// #endregion input

// #region decision
// GateDecision is the immutable output of one gate evaluation.
type GateDecision struct {
	RecordID    string         `json:"record_id"`
	Outcome     Outcome        `json:"outcome"`
	Reason      ReasonCode     `json:"reason"`
	Explanation string         `json:"explanation"`
	Guidance    *Guidance      `json:"guidance,omitempty"`
	AdapterNote string         `json:"adapter_note,omitempty"`
	Timestamp   time.Time      `json:"timestamp"`
	Context     RequestContext `json:"context,omitempty"`
}

// IsAllowed reports whether answer generation is permitted.
func (d GateDecision) IsAllowed() bool { return d.Outcome == OutcomeAllow }

// IsReview reports whether human review is required.
func (d GateDecision) IsReview() bool { return d.Outcome == OutcomeReview }

// IsStopped reports whether answer generation is prohibited.
func (d GateDecision) IsStopped() bool { return d.Outcome == OutcomeStop }

// #endregion decision
