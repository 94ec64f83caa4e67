package permission

import "time"

// #region status
// Status is the outcome of evaluating a permission grant for a query.
type Status string

const (
	StatusGranted       Status = "granted"
	StatusMissing       Status = "missing"
	StatusExpired       Status = "expired"
	StatusScopeViolated Status = "scope_violated"
)

// Granted reports whether the status permits answering.
func (s Status) Granted() bool {
	return s == StatusGranted
}

// #endregion status

// #region grant
// Grant is an explicit, externally issued authorization to answer.
// Retrieval never produces one; it must be supplied by the caller or
// the document owner.
type Grant struct {
	Subject   string     `json:"subject,omitempty" yaml:"subject,omitempty"`
	Scopes    []string   `json:"scopes,omitempty" yaml:"scopes,omitempty"`
	GrantedAt time.Time  `json:"granted_at,omitempty" yaml:"granted_at,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
}

// #endregion grant

// #region check
// Check evaluates a grant against the query's scope at the given instant.
// A nil grant is missing, an expired grant never answers, and a grant with
// an explicit scope list only covers the scopes it names. An empty scope
// list covers everything the grant's subject covers.
func Check(g *Grant, scope string, now time.Time) Status {
	if g == nil {
		return StatusMissing
	}
	if g.ExpiresAt != nil && !now.Before(*g.ExpiresAt) {
		return StatusExpired
	}
	if len(g.Scopes) > 0 {
		if scope == "" {
			return StatusScopeViolated
		}
		for _, s := range g.Scopes {
			if s == scope {
				return StatusGranted
			}
		}
		return StatusScopeViolated
	}
	return StatusGranted
}

// #endregion check
