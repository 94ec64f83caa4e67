// Package conflict defines the evidence-conflict detector consumed by the
// boundary gate. The gate only routes on the detector's boolean output; how
// conflicts are actually found belongs to whatever implements Detector.
package conflict

import (
	"context"
	"errors"

	"github.com/stopfirst/stop-first-rag/go-gate/internal/evidence"
)

// ErrUnavailable signals that the detector could not complete its check.
// Callers resolve it conservatively toward human review, never toward allow.
var ErrUnavailable = errors.New("conflict: detector unavailable")

// #region detector
// Detector reports whether the evidence set contains mutually contradictory
// claims the pipeline cannot resolve automatically.
type Detector interface {
	Detect(ctx context.Context, items []evidence.Item) (bool, error)
}

// #endregion detector

// #region tag-detector
// TagDetector routes on upstream contradiction annotations: an item that
// names another retrieved item in its Contradicts list is a conflict.
type TagDetector struct{}

// Detect implements Detector.
func (TagDetector) Detect(ctx context.Context, items []evidence.Item) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, ErrUnavailable
	}
	present := make(map[string]bool, len(items))
	for _, it := range items {
		present[it.ID] = true
	}
	for _, it := range items {
		for _, other := range it.Contradicts {
			if present[other] {
				return true, nil
			}
		}
	}
	return false, nil
}

// #endregion tag-detector

// #region none
// None is a detector that never reports a conflict. Used when no detector
// is wired in and by replay, which carries the recorded finding instead.
type None struct{}

// Detect implements Detector.
func (None) Detect(ctx context.Context, items []evidence.Item) (bool, error) {
	return false, nil
}

// #endregion none
