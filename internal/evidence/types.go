package evidence

// #region status
// Status is the validity tag carried by each retrieved evidence item.
type Status string

const (
	StatusApproved   Status = "approved"
	StatusDraft      Status = "draft"
	StatusSuperseded Status = "superseded"
	StatusWithdrawn  Status = "withdrawn"
)

// Valid reports whether an item with this status may back an answer.
// Anything other than the known-good status is treated as invalid,
// including unrecognized tags (fail closed, not open).
func (s Status) Valid() bool {
	return s == StatusApproved || s == ""
}

// #endregion status

// #region item
// Item represents a single piece of retrieved evidence.
type Item struct {
	ID         string   `json:"id"`
	Source     string   `json:"source,omitempty"`
	Text       string   `json:"text"`
	Status     Status   `json:"status,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Confidence float32  `json:"confidence,omitempty"`

	// Contradicts lists IDs of other items this item's claims contradict.
	// Populated upstream by whatever annotated the corpus; the gate only
	// routes on it, it does not detect contradictions itself.
	Contradicts []string `json:"contradicts,omitempty"`
}

// #endregion item

// #region helpers
// AnyInvalid reports whether any item in the set carries an invalid status.
func AnyInvalid(items []Item) bool {
	for _, it := range items {
		if !it.Status.Valid() {
			return true
		}
	}
	return false
}

// #endregion helpers
