package rank

import "github.com/cavist-cloud/cavist/internal/domain/catalog"

// Candidate is the transient scoring record for one item in one ranking call.
type Candidate struct {
	item        catalog.Item
	score       float64
	matched     int
	totalAsked  int
	priceOK     bool
	budgetDelta float64
}

// NewCandidate creates a scored candidate.
func NewCandidate(
	item catalog.Item, score float64,
	matched, totalAsked int,
	priceOK bool, budgetDelta float64,
) Candidate {
	return Candidate{
		item: item, score: score,
		matched: matched, totalAsked: totalAsked,
		priceOK: priceOK, budgetDelta: budgetDelta,
	}
}

// Item returns the scored catalog item.
func (c *Candidate) Item() catalog.Item { return c.item }

// Score returns the composite score (facet matches plus budget bonus).
func (c *Candidate) Score() float64 { return c.score }

// Matched returns how many requested facets the item satisfied.
func (c *Candidate) Matched() int { return c.matched }

// TotalAsked returns how many facets were requested.
func (c *Candidate) TotalAsked() int { return c.totalAsked }

// PriceOK reports whether the item price stayed within the budget.
// It remains true for items without a numeric price (budget-indeterminate).
func (c *Candidate) PriceOK() bool { return c.priceOK }

// BudgetDelta returns |price - budget|, or +Inf when either is missing.
func (c *Candidate) BudgetDelta() float64 { return c.budgetDelta }

// Trace is the per-item debug record explaining a ranking position.
type Trace struct {
	SKU         string
	Score       float64
	Matched     int
	TotalAsked  int
	BudgetDelta float64
}

// Trace converts the candidate into its debug record.
func (c *Candidate) Trace() Trace {
	return Trace{
		SKU:         c.item.SKU(),
		Score:       c.score,
		Matched:     c.matched,
		TotalAsked:  c.totalAsked,
		BudgetDelta: c.budgetDelta,
	}
}
