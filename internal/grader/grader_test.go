package grader

import (
	"testing"

	"github.com/stopfirst/stop-first-rag/go-gate/internal/evidence"
)

func TestGradeAcceptsConcreteEvidence(t *testing.T) {
	g := New(DefaultConfig())
	res := g.Grade([]evidence.Item{
		{ID: "e1", Text: "Opened software may not be returned.", Confidence: 0.9},
	})
	if !res.Passed {
		t.Fatalf("expected pass: %s", res.Reason)
	}
	if res.Accepted != 1 {
		t.Fatalf("expected 1 accepted, got %d", res.Accepted)
	}
}

func TestGradeRejectsLowConfidence(t *testing.T) {
	g := New(Config{MinConfidence: 0.5, MinAccepted: 1})
	res := g.Grade([]evidence.Item{
		{ID: "e1", Text: "Maybe returns are fine.", Confidence: 0.3},
	})
	if res.Passed {
		t.Fatal("expected fail on low-confidence-only set")
	}
	if res.Grades[0].Verdict != VerdictReject {
		t.Fatalf("expected reject, got %s", res.Grades[0].Verdict)
	}
}

func TestGradeDefersVagueEvidence(t *testing.T) {
	g := New(DefaultConfig())
	res := g.Grade([]evidence.Item{
		{ID: "e1", Text: "For software returns, contact support.", Confidence: 0.8},
	})
	if res.Passed {
		t.Fatal("deferred-only set should not pass")
	}
	if res.Grades[0].Verdict != VerdictDefer {
		t.Fatalf("expected defer, got %s", res.Grades[0].Verdict)
	}
}

func TestGradeMinAccepted(t *testing.T) {
	g := New(Config{MinConfidence: 0.5, MinAccepted: 2})
	res := g.Grade([]evidence.Item{
		{ID: "e1", Text: "Returns within 14 days.", Confidence: 0.9},
	})
	if res.Passed {
		t.Fatal("expected fail with one accepted of two required")
	}
}

func TestGradeRolePolicyMust(t *testing.T) {
	g := New(DefaultConfig()).WithPolicy(RolePolicy{
		Must:   []string{"consent"},
		Should: []string{"dosage", "history"},
	})

	res := g.Grade([]evidence.Item{
		{ID: "e1", Text: "Patient record.", Confidence: 0.9, Tags: []string{"history"}},
	})
	if res.Passed {
		t.Fatal("missing must tag should fail")
	}

	res = g.Grade([]evidence.Item{
		{ID: "e1", Text: "Signed consent form.", Confidence: 0.9, Tags: []string{"consent"}},
	})
	if !res.Passed {
		t.Fatalf("expected pass: %s", res.Reason)
	}
	if !res.ReviewAdvised {
		t.Fatal("two missing should tags must advise review")
	}

	res = g.Grade([]evidence.Item{
		{ID: "e1", Text: "Signed consent form.", Confidence: 0.9,
			Tags: []string{"consent", "dosage", "history"}},
	})
	if !res.Passed || res.ReviewAdvised {
		t.Fatalf("fully covered set should pass cleanly: %+v", res)
	}
}
