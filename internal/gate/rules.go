package gate

import "github.com/stopfirst/stop-first-rag/go-gate/internal/permission"

// #region findings
// Findings is the fully materialized input to the rule table: every
// collaborator (classifier, conflict detector, grader, permission check)
// has already been consulted and reduced to flags. Decide is a pure
// function of this struct, which also makes recorded decisions replayable
// from the audit log.
type Findings struct {
	DecisionRequest bool `json:"decision_request"`
	ApprovalRequest bool `json:"approval_request,omitempty"`
	UnsafeQuery     bool `json:"unsafe_query,omitempty"`
	OutOfScope      bool `json:"out_of_scope,omitempty"`

	EvidencePresent  bool `json:"evidence_present"`
	EvidenceInvalid  bool `json:"evidence_invalid,omitempty"`
	EvidenceConflict bool `json:"evidence_conflict,omitempty"`

	Permission permission.Status `json:"permission"`

	GradeFailed   bool   `json:"grade_failed,omitempty"`
	ReviewAdvised bool   `json:"review_advised,omitempty"`
	GradeReason   string `json:"grade_reason,omitempty"`
}

// #endregion findings

// #region rule-table
// rule is one row of the decision table.
type rule struct {
	name    string
	match   func(Findings) bool
	outcome Outcome
	reason  ReasonCode
}

// rules is evaluated strictly in order; the first matching rule wins. The
// decision-automation check comes first and cannot be suppressed by any
// other finding. Order within the table is part of the contract: evidence
// validity before conflict, conflict before permission, permission before
// presence.
var rules = []rule{
	{"decision-request", func(f Findings) bool { return f.DecisionRequest },
		OutcomeStop, ReasonDecisionAutomationBlocked},
	{"approval-request", func(f Findings) bool { return f.ApprovalRequest },
		OutcomeStop, ReasonApprovalRequestBlocked},
	{"unsafe-query", func(f Findings) bool { return f.UnsafeQuery },
		OutcomeStop, ReasonUnsafeQuery},
	{"out-of-scope", func(f Findings) bool { return f.OutOfScope },
		OutcomeStop, ReasonOutOfScope},
	{"evidence-invalid", func(f Findings) bool { return f.EvidenceInvalid },
		OutcomeStop, ReasonEvidenceInvalid},
	{"evidence-conflict", func(f Findings) bool { return f.EvidenceConflict },
		OutcomeReview, ReasonEvidenceConflict},
	{"permission-expired", func(f Findings) bool { return f.Permission == permission.StatusExpired },
		OutcomeStop, ReasonPermissionExpired},
	{"permission-scope", func(f Findings) bool { return f.Permission == permission.StatusScopeViolated },
		OutcomeStop, ReasonPermissionScopeViolated},
	{"permission-missing", func(f Findings) bool { return !f.Permission.Granted() },
		OutcomeStop, ReasonPermissionMissing},
	{"evidence-missing", func(f Findings) bool { return !f.EvidencePresent },
		OutcomeStop, ReasonEvidenceMissing},
	{"evidence-insufficient", func(f Findings) bool { return f.GradeFailed },
		OutcomeStop, ReasonEvidenceInsufficient},
	{"grader-review", func(f Findings) bool { return f.ReviewAdvised },
		OutcomeReview, ReasonDiscretionAdvised},
}

// #endregion rule-table

// #region decide
// Decide maps findings to an outcome and reason. Total and deterministic:
// every input produces exactly one decision, and the adapter suggestion is
// structurally absent here.
func Decide(f Findings) (Outcome, ReasonCode) {
	for _, r := range rules {
		if r.match(f) {
			return r.outcome, r.reason
		}
	}
	return OutcomeAllow, ReasonAnswerPermitted
}

// MatchedRule returns the name of the first matching rule, or "allow".
// Used by tests and the inspection tooling.
func MatchedRule(f Findings) string {
	for _, r := range rules {
		if r.match(f) {
			return r.name
		}
	}
	return "allow"
}

// #endregion decide
