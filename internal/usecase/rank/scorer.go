package rank

import (
	"math"

	"github.com/cavist-cloud/cavist/internal/domain/catalog"
	"github.com/cavist-cloud/cavist/internal/domain/rank"
)

// budgetBonus is added to the score of an item priced within the budget.
const budgetBonus = 0.5

// scoreItem computes the composite score and budget tie-break for one item.
// One point per satisfied requested facet, plus the bonus when a budget is
// set and the item price stays within it. Items without a numeric price are
// budget-indeterminate: no bonus, no penalty, budget delta of +Inf so they
// sort after priced items under the budget-distance tie-break.
func scoreItem(item catalog.Item, matched, totalAsked int, criteria rank.Criteria) rank.Candidate {
	score := float64(matched)
	priceOK := true
	budgetDelta := math.Inf(1)

	price, hasPrice := item.Price()
	budget, hasBudget := criteria.Budget()

	if hasBudget && hasPrice {
		budgetDelta = math.Abs(price - budget)
		if price <= budget {
			score += budgetBonus
		} else {
			priceOK = false
		}
	}

	return rank.NewCandidate(item, score, matched, totalAsked, priceOK, budgetDelta)
}
