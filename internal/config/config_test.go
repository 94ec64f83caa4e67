package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.AuditDB == "" {
		t.Fatal("default audit db path must be set")
	}
	if cfg.ConflictTimeout() != 2*time.Second {
		t.Fatalf("default conflict timeout = %s", cfg.ConflictTimeout())
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gate.yaml")
	data := `
system_version: "1.2.0"
audit_db: "/var/lib/gate/audit.db"
conflict_timeout_ms: 500
scope_topics: [returns, refunds]
grader:
  enabled: true
  min_confidence: 0.6
  min_accepted: 2
roles:
  clinical_triage:
    must: [consent]
    should: [dosage, history]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SystemVersion != "1.2.0" || cfg.AuditDB != "/var/lib/gate/audit.db" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.ConflictTimeout() != 500*time.Millisecond {
		t.Fatalf("conflict timeout = %s", cfg.ConflictTimeout())
	}
	if !cfg.Grader.Enabled || cfg.Grader.MinAccepted != 2 {
		t.Fatalf("grader config not parsed: %+v", cfg.Grader)
	}
	policy, ok := cfg.Roles["clinical_triage"]
	if !ok || len(policy.Must) != 1 || len(policy.Should) != 2 {
		t.Fatalf("role policy not parsed: %+v", cfg.Roles)
	}
	if len(cfg.ScopeTopics) != 2 {
		t.Fatalf("scope topics not parsed: %v", cfg.ScopeTopics)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadBadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gate.yaml")
	if err := os.WriteFile(path, []byte("audit_db: [unclosed"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
