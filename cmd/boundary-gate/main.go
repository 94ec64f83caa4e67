package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/stopfirst/stop-first-rag/go-gate/internal/audit"
	"github.com/stopfirst/stop-first-rag/go-gate/internal/classifier"
	"github.com/stopfirst/stop-first-rag/go-gate/internal/config"
	"github.com/stopfirst/stop-first-rag/go-gate/internal/conflict"
	"github.com/stopfirst/stop-first-rag/go-gate/internal/evidence"
	"github.com/stopfirst/stop-first-rag/go-gate/internal/gate"
	"github.com/stopfirst/stop-first-rag/go-gate/internal/grader"
)

// Exit codes: 0 ALLOW, 1 STOP, 2 REVIEW, 3 usage or infrastructure error.
// STOP is a normal response, not an application error; only exit 3 marks
// something actually going wrong.
const (
	exitAllow = 0
	exitStop  = 1
	// REVIEW gets its own code so shell pipelines can route to a human
	// queue without parsing output.
	exitReview = 2
	exitError  = 3
)

// #region main

func main() {
	query := flag.String("query", "", "query string (required)")
	chunksPath := flag.String("chunks", "", "path to JSON/JSONL file with evidence chunks")
	chunksStdin := flag.Bool("chunks-stdin", false, "read evidence chunks (JSON array) from stdin")
	chunksEmpty := flag.Bool("chunks-empty", false, "use an empty evidence set")
	permission := flag.Bool("permission", false, "permission to answer has been granted")
	decisionRequest := flag.Bool("decision-request", false, "query asks for a decision")
	classify := flag.Bool("classify", false, "derive intent flags from the built-in classifier")
	adapter := flag.String("adapter", "", "advisory adapter suggestion: ALLOW or STOP")
	scope := flag.String("scope", "", "scope tag of the query, for scoped grants")
	role := flag.String("role", "", "role whose evidence policy applies")
	session := flag.String("session", "", "session id for audit correlation")
	configPath := flag.String("config", "", "path to YAML config")
	dbPath := flag.String("db", "", "audit database path (overrides config)")
	output := flag.String("output", "text", "output format: text or json")
	flag.Parse()

	if *query == "" {
		usage("missing --query")
	}
	sources := 0
	for _, set := range []bool{*chunksPath != "", *chunksStdin, *chunksEmpty} {
		if set {
			sources++
		}
	}
	if sources != 1 {
		usage("exactly one of --chunks, --chunks-stdin, --chunks-empty is required")
	}
	if *output != "text" && *output != "json" {
		usage("--output must be text or json")
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fail("config: %v", err)
		}
		cfg = loaded
	}
	if *dbPath != "" {
		cfg.AuditDB = *dbPath
	}

	items, err := loadChunks(*chunksPath, *chunksStdin)
	if err != nil {
		fail("%v", err)
	}

	store, err := audit.NewStore(cfg.AuditDB)
	if err != nil {
		fail("open audit db: %v", err)
	}
	sink := audit.NewBufferedSink(store, 64)

	g := gate.New(gate.Config{
		ConflictTimeout: cfg.ConflictTimeout(),
		SystemVersion:   cfg.SystemVersion,
	}, conflict.TagDetector{}, sink)
	if cfg.Grader.Enabled {
		gr := grader.New(grader.Config{
			MinConfidence: cfg.Grader.MinConfidence,
			MinAccepted:   cfg.Grader.MinAccepted,
		})
		if policy, ok := cfg.Roles[*role]; ok {
			gr = gr.WithPolicy(policy)
		}
		g = g.WithGrader(gr)
	}

	in := gate.GateInput{
		Query:              *query,
		Evidence:           items,
		PermissionToAnswer: *permission,
		IsDecisionRequest:  *decisionRequest,
		Scope:              *scope,
		Context: gate.RequestContext{
			SessionID: sessionID(*session),
			Caller:    "boundary-gate-cli",
			Role:      *role,
		},
	}
	if *classify {
		class := classifier.Classifier{ScopeTopics: cfg.ScopeTopics}.Classify(*query)
		in.IsDecisionRequest = in.IsDecisionRequest || class.DecisionRequest
		in.IsApprovalRequest = class.ApprovalRequest
		in.UnsafeQuery = class.Unsafe
		in.OutOfScope = class.OutOfScope
	}
	if *adapter != "" {
		s, err := parseAdapter(*adapter)
		if err != nil {
			usage("%v", err)
		}
		in.AdapterSuggestion = &s
	}

	decision, err := g.Evaluate(context.Background(), in)
	if err != nil && !errors.Is(err, gate.ErrAuditDegraded) {
		flush(sink, store)
		fail("%v", err)
	}
	if errors.Is(err, gate.ErrAuditDegraded) {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	flush(sink, store)

	if *output == "json" {
		printJSON(decision)
	} else {
		printText(decision, len(items))
	}
	os.Exit(exitCode(decision))
}

// #endregion main

// #region chunk-loading

func loadChunks(path string, stdin bool) ([]evidence.Item, error) {
	switch {
	case stdin:
		items, err := evidence.FromReader(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("stdin: %w", err)
		}
		return items, nil
	case path != "":
		return evidence.Load(path)
	default:
		return []evidence.Item{}, nil
	}
}

// #endregion chunk-loading

// #region output

func printJSON(d gate.GateDecision) {
	data, err := d.WirePayload()
	if err != nil {
		fail("render payload: %v", err)
	}
	fmt.Println(string(data))
}

func printText(d gate.GateDecision, chunkCount int) {
	fmt.Printf("Decision: %s\n", d.Outcome)
	fmt.Printf("Reason: %s\n", d.Reason)
	fmt.Printf("Explanation: %s\n", d.Explanation)
	if d.AdapterNote != "" {
		fmt.Printf("Adapter: %s\n", d.AdapterNote)
	}
	if d.Guidance != nil {
		fmt.Printf("\n%s\n", d.Guidance.PrimaryMessage)
		for _, a := range d.Guidance.NextActions {
			fmt.Printf("  - %s: %s\n", a.Action, a.Description)
		}
		fmt.Printf("%s\n", d.Guidance.Note)
	}
	fmt.Printf("\nChunks: %d | Record: %s\n", chunkCount, d.RecordID)
	switch d.Outcome {
	case gate.OutcomeAllow:
		fmt.Println("Generation can proceed.")
	case gate.OutcomeReview:
		fmt.Println("Route to human review before generation.")
	default:
		fmt.Println("Generation must be skipped.")
	}
}

func exitCode(d gate.GateDecision) int {
	switch d.Outcome {
	case gate.OutcomeAllow:
		return exitAllow
	case gate.OutcomeReview:
		return exitReview
	default:
		return exitStop
	}
}

// #endregion output

// #region helpers

func parseAdapter(s string) (gate.Outcome, error) {
	switch s {
	case "ALLOW":
		return gate.OutcomeAllow, nil
	case "STOP":
		return gate.OutcomeStop, nil
	default:
		return "", fmt.Errorf("invalid --adapter %q: must be ALLOW or STOP", s)
	}
}

func sessionID(s string) string {
	if s != "" {
		return s
	}
	return uuid.New().String()
}

func flush(sink *audit.BufferedSink, store *audit.Store) {
	if err := sink.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit flush: %v\n", err)
	}
	if err := store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: close audit db: %v\n", err)
	}
}

func usage(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "boundary-gate: "+format+"\n\n", args...)
	fmt.Fprintln(os.Stderr, "usage: boundary-gate --query Q (--chunks FILE | --chunks-stdin | --chunks-empty) [flags]")
	flag.PrintDefaults()
	os.Exit(exitError)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "boundary-gate: "+format+"\n", args...)
	os.Exit(exitError)
}

// #endregion helpers
