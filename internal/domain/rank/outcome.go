package rank

import "github.com/cavist-cloud/cavist/internal/domain/catalog"

// Reason tags the failure variants of a ranking outcome.
type Reason string

const (
	// ReasonEmptyCatalog marks a call against a catalog with no items.
	ReasonEmptyCatalog Reason = "empty_catalog"
	// ReasonNoMatch marks a call where no item passed the keep-gate.
	ReasonNoMatch Reason = "no_match"
)

// Outcome is the result of one ranking call.
type Outcome struct {
	ok            bool
	reason        Reason
	criteria      Criteria
	diagnostics   Diagnostics
	total         int
	items         []catalog.Item
	debug         []Trace
	budgetRelaxed bool
	limitUsed     int
}

// EmptyCatalog creates the outcome for a catalog with no items.
// No scoring is attempted; diagnostics come from the filters alone.
func EmptyCatalog(criteria Criteria, diagnostics Diagnostics) Outcome {
	return Outcome{
		reason:      ReasonEmptyCatalog,
		criteria:    criteria,
		diagnostics: diagnostics,
		limitUsed:   criteria.Limit(),
	}
}

// NoMatch creates the outcome for a call where scoring kept zero items.
func NoMatch(criteria Criteria, diagnostics Diagnostics, budgetRelaxed bool) Outcome {
	return Outcome{
		reason:        ReasonNoMatch,
		criteria:      criteria,
		diagnostics:   diagnostics,
		budgetRelaxed: budgetRelaxed,
		limitUsed:     criteria.Limit(),
	}
}

// Success creates a successful ranking outcome. total counts every candidate
// that passed the keep-gate before capping; items and debug are the capped,
// ordered window.
func Success(
	criteria Criteria, diagnostics Diagnostics,
	total int, items []catalog.Item, debug []Trace,
	budgetRelaxed bool,
) Outcome {
	return Outcome{
		ok:            true,
		criteria:      criteria,
		diagnostics:   diagnostics,
		total:         total,
		items:         items,
		debug:         debug,
		budgetRelaxed: budgetRelaxed,
		limitUsed:     criteria.Limit(),
	}
}

// OK reports whether the call produced a ranked item list.
func (o Outcome) OK() bool { return o.ok }

// Reason returns the failure variant tag (empty for successful outcomes).
func (o Outcome) Reason() Reason { return o.reason }

// Criteria returns the criteria the outcome was computed for.
func (o Outcome) Criteria() Criteria { return o.criteria }

// Diagnostics returns the filter diagnostics.
func (o Outcome) Diagnostics() Diagnostics { return o.diagnostics }

// Total returns the number of candidates that passed the keep-gate.
func (o Outcome) Total() int { return o.total }

// Items returns the ranked, capped item list.
func (o Outcome) Items() []catalog.Item { return o.items }

// Debug returns the per-item trace records parallel to Items.
func (o Outcome) Debug() []Trace { return o.debug }

// BudgetRelaxed reports whether the relaxed pass produced the outcome.
func (o Outcome) BudgetRelaxed() bool { return o.budgetRelaxed }

// LimitUsed returns the effective result cap after clamping.
func (o Outcome) LimitUsed() int { return o.limitUsed }
