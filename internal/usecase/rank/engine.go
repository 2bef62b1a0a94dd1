package rank

import (
	"math"
	"sort"

	"github.com/cavist-cloud/cavist/internal/domain/catalog"
	"github.com/cavist-cloud/cavist/internal/domain/pack"
	"github.com/cavist-cloud/cavist/internal/domain/rank"
)

// Rank executes the two-phase ranking pipeline over a materialized catalog.
// Pass 1 enforces the budget as a hard filter; if it keeps nothing and a
// budget was given, pass 2 reruns with the budget gate dropped. The pipeline
// is pure and synchronous: it only reads its inputs and allocates transient
// candidates per call, so concurrent calls need no coordination.
func Rank(items []catalog.Item, criteria rank.Criteria, p pack.Pack) rank.Outcome {
	diags := computeDiagnostics(criteria.Filters(), p)

	if len(items) == 0 {
		return rank.EmptyCatalog(criteria, diags)
	}

	kept := scoreAndFilter(items, criteria, p, true)

	relaxed := false
	if _, hasBudget := criteria.Budget(); len(kept) == 0 && hasBudget {
		kept = scoreAndFilter(items, criteria, p, false)
		relaxed = true
	}

	if len(kept) == 0 {
		return rank.NoMatch(criteria, diags, relaxed)
	}

	sortCandidates(kept)

	total := len(kept)
	if len(kept) > criteria.Limit() {
		kept = kept[:criteria.Limit()]
	}

	ranked := make([]catalog.Item, len(kept))
	debug := make([]rank.Trace, len(kept))
	for i := range kept {
		ranked[i] = kept[i].Item()
		debug[i] = kept[i].Trace()
	}

	return rank.Success(criteria, diags, total, ranked, debug, relaxed)
}

// scoreAndFilter scores every item and applies the keep-gate.
// With no filters everything passes the must-match gate; otherwise at least
// one requested facet must be satisfied. enforceBudget additionally requires
// a numeric price within the budget (strict pass only).
func scoreAndFilter(
	items []catalog.Item, criteria rank.Criteria, p pack.Pack, enforceBudget bool,
) []rank.Candidate {
	budget, hasBudget := criteria.Budget()
	filters := criteria.Filters()

	kept := make([]rank.Candidate, 0, len(items))
	for i := range items {
		item := items[i]
		matched, totalAsked := matchFacets(item, filters, p)

		if criteria.HasFilters() && matched == 0 {
			continue
		}
		if enforceBudget && hasBudget {
			price, hasPrice := item.Price()
			if !hasPrice || price > budget {
				continue
			}
		}

		kept = append(kept, scoreItem(item, matched, totalAsked, criteria))
	}
	return kept
}

// sortCandidates orders candidates deterministically: score descending,
// budget delta ascending, price ascending (missing price sorts last), then
// name ascending as the final tie-break. The sort is stable.
func sortCandidates(cands []rank.Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := &cands[i], &cands[j]
		if a.Score() != b.Score() {
			return a.Score() > b.Score()
		}
		if a.BudgetDelta() != b.BudgetDelta() {
			return a.BudgetDelta() < b.BudgetDelta()
		}
		pa, pb := priceKey(a.Item()), priceKey(b.Item())
		if pa != pb {
			return pa < pb
		}
		ia, ib := a.Item(), b.Item()
		return ia.Name() < ib.Name()
	})
}

func priceKey(item catalog.Item) float64 {
	if price, ok := item.Price(); ok {
		return price
	}
	return math.Inf(1)
}
