package permission

import (
	"testing"
	"time"
)

func TestCheckNilGrant(t *testing.T) {
	if got := Check(nil, "hr", time.Now()); got != StatusMissing {
		t.Fatalf("expected missing, got %s", got)
	}
}

func TestCheckExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	g := &Grant{Subject: "hr-bot", ExpiresAt: &past}
	if got := Check(g, "", now); got != StatusExpired {
		t.Fatalf("expected expired, got %s", got)
	}

	// Expiry boundary is exclusive: a grant expiring exactly now is expired.
	g.ExpiresAt = &now
	if got := Check(g, "", now); got != StatusExpired {
		t.Fatalf("expected expired at boundary, got %s", got)
	}
}

func TestCheckScopes(t *testing.T) {
	g := &Grant{Subject: "hr-bot", Scopes: []string{"hr", "benefits"}}

	if got := Check(g, "hr", time.Now()); got != StatusGranted {
		t.Fatalf("expected granted for in-scope query, got %s", got)
	}
	if got := Check(g, "finance", time.Now()); got != StatusScopeViolated {
		t.Fatalf("expected scope violation, got %s", got)
	}
	// Scoped grants never cover unscoped queries.
	if got := Check(g, "", time.Now()); got != StatusScopeViolated {
		t.Fatalf("expected scope violation for empty scope, got %s", got)
	}
}

func TestCheckUnscopedGrant(t *testing.T) {
	g := &Grant{Subject: "hr-bot"}
	if got := Check(g, "anything", time.Now()); got != StatusGranted {
		t.Fatalf("expected granted, got %s", got)
	}
	if !StatusGranted.Granted() || StatusExpired.Granted() {
		t.Fatal("Granted() helper mismatch")
	}
}
