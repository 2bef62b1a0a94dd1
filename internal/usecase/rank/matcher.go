package rank

import (
	"github.com/cavist-cloud/cavist/internal/domain/catalog"
	"github.com/cavist-cloud/cavist/internal/domain/pack"
)

// matchFacets counts how many of the requested facets the item satisfies.
// Requested and item values are compared in canonical form (global synonyms,
// then facet-scoped value synonyms). An item lacking a requested facet simply
// contributes no match for that key; it is not penalized further.
func matchFacets(
	item catalog.Item, filters map[string][]string, p pack.Pack,
) (matched, totalAsked int) {
	for key, rawValues := range filters {
		if len(rawValues) == 0 {
			continue
		}
		totalAsked++

		wanted := make(map[string]struct{}, len(rawValues))
		for _, raw := range rawValues {
			wanted[p.CanonicalFacetValue(key, raw)] = struct{}{}
		}

		for _, have := range item.FacetValues(key) {
			if _, ok := wanted[p.CanonicalFacetValue(key, have)]; ok {
				matched++
				break
			}
		}
	}
	return matched, totalAsked
}
