package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS audit_log (
	id                 INTEGER PRIMARY KEY AUTOINCREMENT,
	record_id          TEXT NOT NULL UNIQUE,
	query              TEXT NOT NULL,
	evidence_count     INTEGER NOT NULL,
	permission_status  TEXT NOT NULL,
	decision_request   INTEGER NOT NULL,
	adapter_suggestion TEXT,
	findings_json      TEXT,
	outcome            TEXT NOT NULL,
	reason             TEXT NOT NULL,
	explanation        TEXT,
	guidance_json      TEXT,
	session_id         TEXT,
	caller             TEXT,
	role               TEXT,
	system_version     TEXT,
	created_at         TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_audit_log_outcome ON audit_log(outcome);
CREATE INDEX IF NOT EXISTS idx_audit_log_session ON audit_log(session_id);
`

// #endregion schema

// #region store-struct
// Store persists audit records in SQLite and serves the inspect and replay
// tooling.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// #endregion close

// #region emit
// Emit implements Sink.
func (s *Store) Emit(ctx context.Context, rec Record) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_log (record_id, query, evidence_count, permission_status,
		   decision_request, adapter_suggestion, findings_json, outcome, reason,
		   explanation, guidance_json, session_id, caller, role, system_version, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RecordID,
		rec.Query,
		rec.EvidenceCount,
		rec.PermissionStatus,
		boolToInt(rec.DecisionRequest),
		nullIfEmpty(rec.AdapterSuggestion),
		nullIfEmpty(rec.FindingsJSON),
		rec.Outcome,
		rec.Reason,
		nullIfEmpty(rec.Explanation),
		nullIfEmpty(rec.GuidanceJSON),
		nullIfEmpty(rec.SessionID),
		nullIfEmpty(rec.Caller),
		nullIfEmpty(rec.Role),
		nullIfEmpty(rec.SystemVersion),
		rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("%w: insert record: %v", ErrSinkUnavailable, err)
	}
	return nil
}

// #endregion emit

// #region list
// ListOpts filters List output.
type ListOpts struct {
	Limit   int    // max rows, newest first; zero means 50
	Outcome string // filter to one outcome, empty for all
	Session string // filter to one session, empty for all
}

// List returns recent records, newest first.
func (s *Store) List(ctx context.Context, opts ListOpts) ([]Record, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT record_id, query, evidence_count, permission_status,
	            decision_request, COALESCE(adapter_suggestion, ''), COALESCE(findings_json, ''),
	            outcome, reason, COALESCE(explanation, ''), COALESCE(guidance_json, ''),
	            COALESCE(session_id, ''), COALESCE(caller, ''), COALESCE(role, ''),
	            COALESCE(system_version, ''), created_at
	          FROM audit_log WHERE 1=1`
	args := []any{}
	if opts.Outcome != "" {
		query += " AND outcome = ?"
		args = append(args, opts.Outcome)
	}
	if opts.Session != "" {
		query += " AND session_id = ?"
		args = append(args, opts.Session)
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit log: %w", err)
	}
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		var rec Record
		var decisionRequest int
		var createdAt string
		if err := rows.Scan(&rec.RecordID, &rec.Query, &rec.EvidenceCount,
			&rec.PermissionStatus, &decisionRequest, &rec.AdapterSuggestion,
			&rec.FindingsJSON, &rec.Outcome, &rec.Reason, &rec.Explanation,
			&rec.GuidanceJSON, &rec.SessionID, &rec.Caller, &rec.Role,
			&rec.SystemVersion, &createdAt); err != nil {
			return nil, fmt.Errorf("scan audit row: %w", err)
		}
		rec.DecisionRequest = decisionRequest != 0
		ts, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
		}
		rec.CreatedAt = ts
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit rows: %w", err)
	}
	return recs, nil
}

// #endregion list

// #region helpers
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// #endregion helpers
