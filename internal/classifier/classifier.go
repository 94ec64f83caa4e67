// Package classifier provides the keyword heuristics that feed the boundary
// gate's intent flags. It is a collaborator of the gate, not part of it: the
// gate routes on the flags, never on the raw query text.
package classifier

import "strings"

// #region keywords

// decisionPrefixes match queries asking the system to make a call
// rather than report information.
var decisionPrefixes = []string{
	"should i", "should we", "shall i", "shall we",
	"decide ", "decide,", "make the call", "make a decision",
	"is it ok to", "is it okay to", "can i go ahead",
	"do we proceed", "pick one", "choose for me", "which should",
}

var decisionKeywords = []string{
	"make this decision", "decide for me", "decide for us",
	"what should i do", "what should we do", "your decision",
	"authorize the", "green-light", "greenlight",
}

// approvalKeywords match requests for sign-off, a narrower form of
// decision automation with its own reason code.
var approvalKeywords = []string{
	"approve", "approval", "sign off", "sign-off", "signoff",
	"authorize me", "grant me", "rubber stamp", "clear me to",
}

var unsafeKeywords = []string{
	"bypass the gate", "ignore the boundary", "skip the check",
	"disable audit", "without logging", "off the record",
}

// #endregion keywords

// #region classification

// QueryClass carries the intent flags derived from one query.
type QueryClass struct {
	DecisionRequest bool
	ApprovalRequest bool
	Unsafe          bool
	OutOfScope      bool
	Matched         []string // keywords that fired, for audit explanation
}

// #endregion classification

// #region classifier

// Classifier classifies queries via keyword heuristics. No model call.
type Classifier struct {
	// ScopeTopics, when non-empty, restricts queries to ones mentioning at
	// least one listed topic; everything else is out of scope.
	ScopeTopics []string
}

// Classify derives intent flags for a single query.
func (c Classifier) Classify(query string) QueryClass {
	lower := strings.ToLower(strings.TrimSpace(query))
	var out QueryClass

	for _, p := range decisionPrefixes {
		if strings.HasPrefix(lower, p) {
			out.DecisionRequest = true
			out.Matched = append(out.Matched, p)
			break
		}
	}
	if !out.DecisionRequest {
		for _, kw := range decisionKeywords {
			if strings.Contains(lower, kw) {
				out.DecisionRequest = true
				out.Matched = append(out.Matched, kw)
				break
			}
		}
	}

	for _, kw := range approvalKeywords {
		if strings.Contains(lower, kw) {
			out.ApprovalRequest = true
			out.Matched = append(out.Matched, kw)
			break
		}
	}

	for _, kw := range unsafeKeywords {
		if strings.Contains(lower, kw) {
			out.Unsafe = true
			out.Matched = append(out.Matched, kw)
			break
		}
	}

	if len(c.ScopeTopics) > 0 {
		inScope := false
		for _, topic := range c.ScopeTopics {
			if strings.Contains(lower, strings.ToLower(topic)) {
				inScope = true
				break
			}
		}
		out.OutOfScope = !inScope
	}

	return out
}

// #endregion classifier
