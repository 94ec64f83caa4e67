package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/stopfirst/stop-first-rag/go-gate/internal/audit"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to boundary_audit.db")
	last := flag.Int("last", 20, "show N most recent records")
	outcome := flag.String("outcome", "", "filter to one outcome: ALLOW, REVIEW, or STOP")
	session := flag.String("session", "", "filter to one session id")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/boundary_audit.db [--last N] [--outcome O] [--session S] [--json]")
		os.Exit(2)
	}

	store, err := audit.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	recs, err := store.List(context.Background(), audit.ListOpts{
		Limit:   *last,
		Outcome: *outcome,
		Session: *session,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if len(recs) == 0 {
		fmt.Fprintln(os.Stderr, "no records found")
		return
	}

	if *jsonOut {
		printJSON(recs)
	} else {
		printTable(recs)
	}
}

// #endregion main

// #region output

func printJSON(recs []audit.Record) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(recs); err != nil {
		fmt.Fprintf(os.Stderr, "encode: %v\n", err)
		os.Exit(1)
	}
}

func printTable(recs []audit.Record) {
	fmt.Printf("%-22s %-7s %-34s %-6s %-14s %s\n",
		"CREATED", "OUTCOME", "REASON", "CHUNKS", "PERMISSION", "QUERY")
	// Store returns newest first; print oldest first for reading order.
	for i := len(recs) - 1; i >= 0; i-- {
		rec := recs[i]
		fmt.Printf("%-22s %-7s %-34s %-6d %-14s %s\n",
			rec.CreatedAt.Format("2006-01-02T15:04:05Z"),
			rec.Outcome,
			rec.Reason,
			rec.EvidenceCount,
			rec.PermissionStatus,
			truncate(rec.Query, 48),
		)
	}
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// #endregion output
