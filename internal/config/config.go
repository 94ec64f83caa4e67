// Package config loads gate configuration from YAML. Everything has a
// working zero/default value; a missing file is not an error for callers
// that pass no path.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/stopfirst/stop-first-rag/go-gate/internal/grader"
)

// #region config
// GraderConfig enables and tunes the optional evidence grader.
type GraderConfig struct {
	Enabled       bool    `yaml:"enabled"`
	MinConfidence float32 `yaml:"min_confidence"`
	MinAccepted   int     `yaml:"min_accepted"`
}

// Config is the full gate configuration.
type Config struct {
	SystemVersion     string                       `yaml:"system_version"`
	AuditDB           string                       `yaml:"audit_db"`
	ConflictTimeoutMS int                          `yaml:"conflict_timeout_ms"`
	ScopeTopics       []string                     `yaml:"scope_topics"`
	Grader            GraderConfig                 `yaml:"grader"`
	Roles             map[string]grader.RolePolicy `yaml:"roles"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		SystemVersion:     "dev",
		AuditDB:           "boundary_audit.db",
		ConflictTimeoutMS: 2000,
		Grader: GraderConfig{
			MinConfidence: 0.5,
			MinAccepted:   1,
		},
	}
}

// ConflictTimeout returns the configured timeout as a duration.
func (c Config) ConflictTimeout() time.Duration {
	return time.Duration(c.ConflictTimeoutMS) * time.Millisecond
}

// #endregion config

// #region load
// Load reads and merges a YAML config over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.ConflictTimeoutMS <= 0 {
		cfg.ConflictTimeoutMS = Default().ConflictTimeoutMS
	}
	return cfg, nil
}

// #endregion load
