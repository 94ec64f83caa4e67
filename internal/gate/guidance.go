package gate

// The non-automation disclaimer attached to every STOP guidance payload.
// Next actions are suggestions for a human; nothing here is auto-executed.
const nonAutomationNote = "Suggested actions are advisory only and are never executed automatically."

// #region explanations
// explanations derives the human-readable text deterministically from the
// reason code. No other input reaches it.
var explanations = map[ReasonCode]string{
	ReasonAnswerPermitted: "All boundary conditions satisfied. Answer generation permitted.",

	ReasonPermissionMissing:       "Retrieved documents do not include permission to generate answers.",
	ReasonPermissionExpired:       "Permission to answer this query has expired or been revoked.",
	ReasonPermissionScopeViolated: "Query falls outside the scope of the granted permission.",

	ReasonDecisionAutomationBlocked: "This system does not automate decisions.",
	ReasonApprovalRequestBlocked:    "Approval requests cannot be automated by this system.",
	ReasonJudgmentRequired:          "This query requires human judgment.",

	ReasonEvidenceMissing:      "No evidence retrieved for this query.",
	ReasonEvidenceInvalid:      "Retrieved evidence contains draft, superseded, or withdrawn documents.",
	ReasonEvidenceInsufficient: "Retrieved evidence is insufficient to support an answer.",
	ReasonEvidenceConflictStop: "Retrieved evidence contains contradictory claims.",

	ReasonOutOfScope:         "Query is outside the scope this system is permitted to answer.",
	ReasonUnsafeQuery:        "Query asks the system to act outside its safety boundary.",
	ReasonDiscretionRequired: "Answering this query requires discretion the system does not hold.",

	ReasonEvidenceConflict:        "Retrieved evidence contains conflicting claims; human review is required.",
	ReasonMultipleInterpretations: "The query admits multiple reasonable interpretations; human review is required.",
	ReasonDiscretionAdvised:       "Recommended evidence is incomplete; human review is advised.",
}

// Explanation returns the canonical text for a reason code.
func Explanation(code ReasonCode) string {
	return explanations[code]
}

// #endregion explanations

// #region stop-guidance
var stopGuidance = map[ReasonCode]Guidance{
	ReasonDecisionAutomationBlocked: {
		PrimaryMessage: "Decision automation is blocked by design",
		NextActions: []NextAction{
			{"route_to_human", "Route the decision request to a human decision-maker"},
			{"reframe_as_information", "Reframe as an information request instead of a decision request"},
		},
	},
	ReasonApprovalRequestBlocked: {
		PrimaryMessage: "Approval requests are routed to humans, never granted here",
		NextActions: []NextAction{
			{"route_to_approver", "Send the request to the responsible approver"},
			{"reframe_as_information", "Ask about the approval process instead of requesting approval"},
		},
	},
	ReasonJudgmentRequired: {
		PrimaryMessage: "Discretionary judgment stays with people",
		NextActions: []NextAction{
			{"route_to_human", "Route the query to a human with the relevant authority"},
		},
	},
	ReasonPermissionMissing: {
		PrimaryMessage: "Retrieved documents do not imply permission to answer",
		NextActions: []NextAction{
			{"request_permission", "Request permission from the document owner or administrator"},
			{"add_evidence", "Add documents that explicitly grant answer permission"},
			{"reframe_question", "Reframe the question to match available permissions"},
		},
	},
	ReasonPermissionExpired: {
		PrimaryMessage: "The permission that covered this query is no longer in force",
		NextActions: []NextAction{
			{"renew_permission", "Ask the grantor to renew or re-issue the permission"},
			{"reframe_question", "Reframe the question to match permissions still in force"},
		},
	},
	ReasonPermissionScopeViolated: {
		PrimaryMessage: "The granted permission does not cover this query",
		NextActions: []NextAction{
			{"narrow_query", "Narrow the query to the scopes the grant names"},
			{"request_scope_extension", "Ask the grantor to extend the permitted scope"},
		},
	},
	ReasonEvidenceMissing: {
		PrimaryMessage: "Evidence is required before answering",
		NextActions: []NextAction{
			{"add_documents", "Add relevant documents to the knowledge base"},
			{"reframe_question", "Reframe the question to match available documentation"},
			{"acknowledge_gap", "Acknowledge the evidence gap and defer to a human expert"},
		},
	},
	ReasonEvidenceInvalid: {
		PrimaryMessage: "Only approved evidence may back an answer",
		NextActions: []NextAction{
			{"replace_evidence", "Replace draft or superseded documents with approved versions"},
			{"request_review", "Ask the document owner to approve or withdraw the drafts"},
		},
	},
	ReasonEvidenceInsufficient: {
		PrimaryMessage: "The retrieved evidence does not support a concrete answer",
		NextActions: []NextAction{
			{"add_documents", "Add documents that address the question directly"},
			{"acknowledge_gap", "Acknowledge the gap and defer to a human expert"},
		},
	},
	ReasonEvidenceConflictStop: {
		PrimaryMessage: "Contradictory evidence cannot back an answer",
		NextActions: []NextAction{
			{"resolve_conflict", "Have the document owners reconcile the contradictory claims"},
			{"route_to_human", "Route the query to a human reviewer"},
		},
	},
	ReasonOutOfScope: {
		PrimaryMessage: "This query is outside the system's permitted scope",
		NextActions: []NextAction{
			{"reframe_question", "Reframe the question within the permitted scope"},
			{"route_to_human", "Route the query to a human who can answer it"},
		},
	},
	ReasonUnsafeQuery: {
		PrimaryMessage: "The boundary cannot be bypassed",
		NextActions: []NextAction{
			{"route_to_human", "Raise the request with a human operator"},
		},
	},
	ReasonDiscretionRequired: {
		PrimaryMessage: "Discretion stays with people",
		NextActions: []NextAction{
			{"route_to_human", "Route the query to a human with the relevant authority"},
		},
	},
}

// GuidanceFor returns the guidance payload for a STOP reason, with the
// non-automation note attached. Nil for non-STOP codes.
func GuidanceFor(code ReasonCode) *Guidance {
	g, ok := stopGuidance[code]
	if !ok {
		return nil
	}
	g.Note = nonAutomationNote
	return &g
}

// #endregion stop-guidance
