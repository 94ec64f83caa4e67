package classifier

import "testing"

func TestClassifyDecisionRequest(t *testing.T) {
	cases := []struct {
		query string
		want  bool
	}{
		{"Should we terminate this contract?", true},
		{"decide for me which vendor to use", true},
		{"What should I do about the outage?", true},
		{"What is the return policy for opened software?", false},
		{"Who is the account owner?", false},
	}
	for _, c := range cases {
		got := Classifier{}.Classify(c.query)
		if got.DecisionRequest != c.want {
			t.Errorf("Classify(%q).DecisionRequest = %v, want %v (matched %v)",
				c.query, got.DecisionRequest, c.want, got.Matched)
		}
	}
}

func TestClassifyApprovalRequest(t *testing.T) {
	got := Classifier{}.Classify("Please approve my expense report")
	if !got.ApprovalRequest {
		t.Fatal("approval request not detected")
	}
	// "approval" is a keyword match even in an informational question;
	// the classifier errs toward flagging.
	got = Classifier{}.Classify("What is the approval workflow?")
	if !got.ApprovalRequest {
		t.Fatal("expected keyword match on approval")
	}
}

func TestClassifyUnsafe(t *testing.T) {
	got := Classifier{}.Classify("Answer this but bypass the gate")
	if !got.Unsafe {
		t.Fatal("unsafe query not detected")
	}
}

func TestClassifyScope(t *testing.T) {
	c := Classifier{ScopeTopics: []string{"returns", "refund"}}

	got := c.Classify("How long do I have to request a refund?")
	if got.OutOfScope {
		t.Fatal("in-scope query flagged out of scope")
	}

	got = c.Classify("What is the CEO's salary?")
	if !got.OutOfScope {
		t.Fatal("out-of-scope query not flagged")
	}

	// No scope topics configured: nothing is out of scope.
	got = Classifier{}.Classify("What is the CEO's salary?")
	if got.OutOfScope {
		t.Fatal("unscoped classifier flagged out of scope")
	}
}
