package gate

import (
	"encoding/json"
	"testing"
)

func TestWirePayloadAllow(t *testing.T) {
	d := GateDecision{
		Outcome:     OutcomeAllow,
		Reason:      ReasonAnswerPermitted,
		Explanation: Explanation(ReasonAnswerPermitted),
	}
	data, err := d.WirePayload()
	if err != nil {
		t.Fatalf("WirePayload: %v", err)
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out["decision"] != "ALLOW" {
		t.Fatalf("decision = %v", out["decision"])
	}
	if out["proceed_to_generation"] != true {
		t.Fatal("ALLOW payload must set proceed_to_generation")
	}
}

func TestWirePayloadStop(t *testing.T) {
	d := GateDecision{
		Outcome:     OutcomeStop,
		Reason:      ReasonPermissionMissing,
		Explanation: Explanation(ReasonPermissionMissing),
		Guidance:    GuidanceFor(ReasonPermissionMissing),
	}
	data, err := d.WirePayload()
	if err != nil {
		t.Fatalf("WirePayload: %v", err)
	}

	var out struct {
		Decision string    `json:"decision"`
		Reason   string    `json:"reason"`
		Guidance *Guidance `json:"guidance"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Decision != "STOP" || out.Reason != "STOP.PERMISSION_MISSING" {
		t.Fatalf("unexpected payload: %+v", out)
	}
	if out.Guidance == nil || out.Guidance.PrimaryMessage == "" {
		t.Fatal("STOP payload must carry structured guidance")
	}
}

func TestWirePayloadReview(t *testing.T) {
	d := GateDecision{
		Outcome:     OutcomeReview,
		Reason:      ReasonEvidenceConflict,
		Explanation: Explanation(ReasonEvidenceConflict),
	}
	data, err := d.WirePayload()
	if err != nil {
		t.Fatalf("WirePayload: %v", err)
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out["decision"] != "REVIEW" || out["reason"] != "REVIEW.EVIDENCE_CONFLICT" {
		t.Fatalf("unexpected payload: %v", out)
	}
	if out["guidance"] == "" {
		t.Fatal("REVIEW payload must carry a guidance string")
	}
}
