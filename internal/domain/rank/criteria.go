package rank

import "math"

// Result cap limits. Caller-provided limits are coerced into range, never rejected.
const (
	MinLimit     = 1
	MaxLimit     = 50
	DefaultLimit = 10
)

// Criteria is a validated ranking request: requested facet filters,
// an optional price budget, and the result cap.
type Criteria struct {
	filters map[string][]string
	budget  *float64
	limit   int
}

// NewCriteria normalizes ranking parameters. Facet keys with empty value
// sequences are dropped, a NaN budget means no budget constraint, and the
// limit is clamped to [MinLimit, MaxLimit].
func NewCriteria(filters map[string][]string, budget *float64, limit int) Criteria {
	var copied map[string][]string
	if len(filters) > 0 {
		copied = make(map[string][]string, len(filters))
		for key, values := range filters {
			if key == "" || len(values) == 0 {
				continue
			}
			copied[key] = append([]string(nil), values...)
		}
		if len(copied) == 0 {
			copied = nil
		}
	}

	if budget != nil && math.IsNaN(*budget) {
		budget = nil
	}

	if limit < MinLimit {
		limit = MinLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Criteria{filters: copied, budget: budget, limit: limit}
}

// Filters returns the requested facet-key to raw-values mapping.
func (c Criteria) Filters() map[string][]string { return c.filters }

// HasFilters reports whether any facet is constrained.
func (c Criteria) HasFilters() bool { return len(c.filters) > 0 }

// Budget returns the price budget and whether one is set.
func (c Criteria) Budget() (float64, bool) {
	if c.budget == nil {
		return 0, false
	}
	return *c.budget, true
}

// Limit returns the clamped result cap.
func (c Criteria) Limit() int { return c.limit }
