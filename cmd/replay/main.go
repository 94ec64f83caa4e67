package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/stopfirst/stop-first-rag/go-gate/internal/audit"
	"github.com/stopfirst/stop-first-rag/go-gate/internal/gate"
)

// replay re-derives every logged decision from its recorded findings and
// reports divergence. Because the rule table is a pure function of the
// findings snapshot, a healthy log replays with zero mismatches; any
// mismatch means the log was tampered with or the rule table changed
// semantics for an existing code.

// #region main

func main() {
	dbPath := flag.String("db", "", "path to boundary_audit.db")
	limit := flag.Int("limit", 0, "replay only the N most recent records (0 = all)")
	verbose := flag.Bool("verbose", false, "print every record, not just mismatches")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: replay --db path/to/boundary_audit.db [--limit N] [--verbose]")
		os.Exit(2)
	}

	store, err := audit.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(2)
	}
	defer store.Close()

	lim := *limit
	if lim <= 0 {
		lim = 1 << 20
	}
	recs, err := store.List(context.Background(), audit.ListOpts{Limit: lim})
	if err != nil {
		fmt.Fprintf(os.Stderr, "list records: %v\n", err)
		os.Exit(2)
	}
	if len(recs) == 0 {
		fmt.Fprintln(os.Stderr, "no records found")
		return
	}

	var replayed, skipped, mismatched int
	for i := len(recs) - 1; i >= 0; i-- {
		rec := recs[i]
		if rec.FindingsJSON == "" {
			skipped++
			if *verbose {
				fmt.Printf("SKIP     %s  (no findings snapshot)\n", rec.RecordID)
			}
			continue
		}
		var f gate.Findings
		if err := json.Unmarshal([]byte(rec.FindingsJSON), &f); err != nil {
			skipped++
			fmt.Fprintf(os.Stderr, "record %s: decode findings: %v\n", rec.RecordID, err)
			continue
		}

		outcome, reason := gate.Decide(f)
		replayed++
		if string(outcome) != rec.Outcome || string(reason) != rec.Reason {
			mismatched++
			fmt.Printf("MISMATCH %s  logged %s/%s  replayed %s/%s\n",
				rec.RecordID, rec.Outcome, rec.Reason, outcome, reason)
			continue
		}
		if *verbose {
			fmt.Printf("OK       %s  %s/%s  rule=%s\n",
				rec.RecordID, rec.Outcome, rec.Reason, gate.MatchedRule(f))
		}
	}

	fmt.Printf("\nreplayed %d record(s), %d skipped, %d mismatch(es)\n", replayed, skipped, mismatched)
	if mismatched > 0 {
		os.Exit(1)
	}
}

// #endregion main
