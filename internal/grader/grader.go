// Package grader is the optional evidence-quality check consulted by the
// boundary gate after presence and validity checks pass. It grades each
// item, counts acceptances against a floor, and checks role policies for
// required evidence tags.
package grader

import (
	"fmt"
	"strings"

	"github.com/stopfirst/stop-first-rag/go-gate/internal/evidence"
)

// #region verdict
// Verdict is the per-item grading outcome.
type Verdict string

const (
	VerdictAccept Verdict = "accept"
	VerdictReject Verdict = "reject"
	VerdictDefer  Verdict = "defer"
)

// #endregion verdict

// #region config
// Config holds thresholds for evidence grading.
type Config struct {
	MinConfidence float32 `yaml:"min_confidence"` // reject items below this score
	MinAccepted   int     `yaml:"min_accepted"`   // fail when fewer items accepted
}

// RolePolicy names evidence tags a role requires before answering.
// Missing any must tag fails the grade; missing two or more should tags
// advises human review without failing outright.
type RolePolicy struct {
	Must   []string `yaml:"must"`
	Should []string `yaml:"should"`
}

// DefaultConfig returns grading defaults matching the reference pipeline.
func DefaultConfig() Config {
	return Config{
		MinConfidence: 0.5,
		MinAccepted:   1,
	}
}

// #endregion config

// #region result
// ItemGrade captures a single item's verdict.
type ItemGrade struct {
	ItemID  string  `json:"item_id"`
	Verdict Verdict `json:"verdict"`
	Reason  string  `json:"reason"`
}

// Result is the output of grading one evidence set.
type Result struct {
	Passed        bool        `json:"passed"`
	ReviewAdvised bool        `json:"review_advised"`
	Accepted      int         `json:"accepted"`
	Grades        []ItemGrade `json:"grades,omitempty"`
	Reason        string      `json:"reason"`
}

// #endregion result

// #region grader
// Grader runs lightweight evidence-quality checks. Rule-based; no model call.
type Grader struct {
	config Config
	policy *RolePolicy
}

// New creates a grader with the given configuration.
func New(config Config) *Grader {
	return &Grader{config: config}
}

// WithPolicy attaches a role policy to the grader.
func (g *Grader) WithPolicy(policy RolePolicy) *Grader {
	g.policy = &policy
	return g
}

// vagueMarkers flag items that mention the topic but carry no concrete
// answer; such items defer rather than reject.
var vagueMarkers = []string{
	"contact support", "see separate policy", "different polic",
	"refer to your administrator",
}

// Grade evaluates the evidence set. Items with invalid statuses are assumed
// to have been filtered upstream; they are rejected here anyway.
func (g *Grader) Grade(items []evidence.Item) Result {
	var res Result
	tags := make(map[string]bool)

	for _, it := range items {
		grade := g.gradeItem(it)
		res.Grades = append(res.Grades, grade)
		if grade.Verdict == VerdictAccept {
			res.Accepted++
			for _, tag := range it.Tags {
				tags[tag] = true
			}
		}
	}

	if res.Accepted < g.config.MinAccepted {
		res.Passed = false
		res.Reason = fmt.Sprintf("%d item(s) accepted, %d required", res.Accepted, g.config.MinAccepted)
		return res
	}

	if g.policy != nil {
		for _, must := range g.policy.Must {
			if !tags[must] {
				res.Passed = false
				res.Reason = fmt.Sprintf("required evidence tag %q not covered by accepted items", must)
				return res
			}
		}
		missing := 0
		for _, should := range g.policy.Should {
			if !tags[should] {
				missing++
			}
		}
		if missing >= 2 {
			res.Passed = true
			res.ReviewAdvised = true
			res.Reason = fmt.Sprintf("%d recommended evidence tags missing", missing)
			return res
		}
	}

	res.Passed = true
	res.Reason = fmt.Sprintf("%d item(s) accepted", res.Accepted)
	return res
}

func (g *Grader) gradeItem(it evidence.Item) ItemGrade {
	if !it.Status.Valid() {
		return ItemGrade{ItemID: it.ID, Verdict: VerdictReject,
			Reason: fmt.Sprintf("status %q is not valid evidence", it.Status)}
	}
	if it.Confidence > 0 && it.Confidence < g.config.MinConfidence {
		return ItemGrade{ItemID: it.ID, Verdict: VerdictReject,
			Reason: fmt.Sprintf("confidence %.2f below threshold %.2f", it.Confidence, g.config.MinConfidence)}
	}
	lower := strings.ToLower(it.Text)
	for _, marker := range vagueMarkers {
		if strings.Contains(lower, marker) {
			return ItemGrade{ItemID: it.ID, Verdict: VerdictDefer,
				Reason: "item mentions the topic but provides no concrete answer"}
		}
	}
	return ItemGrade{ItemID: it.ID, Verdict: VerdictAccept, Reason: "relevant and concrete"}
}

// #endregion grader
