package gate

import "encoding/json"

// #region wire
// Wire payloads follow the external decision contract: ALLOW carries a
// proceed flag, REVIEW a guidance string, STOP the full guidance payload.

type allowPayload struct {
	Decision            string `json:"decision"`
	Reason              string `json:"reason"`
	ProceedToGeneration bool   `json:"proceed_to_generation"`
	Note                string `json:"note,omitempty"`
}

type reviewPayload struct {
	Decision string `json:"decision"`
	Reason   string `json:"reason"`
	Guidance string `json:"guidance"`
}

type stopPayload struct {
	Decision    string    `json:"decision"`
	Reason      string    `json:"reason"`
	Explanation string    `json:"explanation"`
	Guidance    *Guidance `json:"guidance"`
	Note        string    `json:"note,omitempty"`
}

// WirePayload renders the decision in the external wire format.
func (d GateDecision) WirePayload() ([]byte, error) {
	switch d.Outcome {
	case OutcomeAllow:
		return json.Marshal(allowPayload{
			Decision:            string(OutcomeAllow),
			Reason:              string(d.Reason),
			ProceedToGeneration: true,
			Note:                d.AdapterNote,
		})
	case OutcomeReview:
		return json.Marshal(reviewPayload{
			Decision: string(OutcomeReview),
			Reason:   string(d.Reason),
			Guidance: d.Explanation,
		})
	default:
		return json.Marshal(stopPayload{
			Decision:    string(OutcomeStop),
			Reason:      string(d.Reason),
			Explanation: d.Explanation,
			Guidance:    d.Guidance,
			Note:        d.AdapterNote,
		})
	}
}

// #endregion wire
