package rank

import (
	"sort"

	"github.com/cavist-cloud/cavist/internal/domain/pack"
	"github.com/cavist-cloud/cavist/internal/domain/rank"
)

// computeDiagnostics classifies requested filters against the pack vocabulary:
// facet keys the pack does not declare, and raw values that resolve to nothing
// in a declared facet's value set. The catalog plays no part here: diagnostics
// surface user input errors even when results exist, and run for empty catalogs.
func computeDiagnostics(filters map[string][]string, p pack.Pack) rank.Diagnostics {
	keys := make([]string, 0, len(filters))
	for key := range filters {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var unknownKeys []string
	var unknownValues map[string][]string

	for _, key := range keys {
		rawValues := filters[key]
		if len(rawValues) == 0 {
			continue
		}

		facet, ok := p.Facet(key)
		if !ok {
			unknownKeys = append(unknownKeys, key)
			continue
		}

		allowed := make(map[string]struct{}, len(facet.Values()))
		for _, v := range facet.Values() {
			allowed[p.Normalize(v)] = struct{}{}
		}

		for _, raw := range rawValues {
			canonical := p.CanonicalFacetValue(key, raw)
			if _, ok := allowed[canonical]; ok {
				continue
			}
			if unknownValues == nil {
				unknownValues = make(map[string][]string)
			}
			// Report the original raw value, not the normalized form.
			unknownValues[key] = append(unknownValues[key], raw)
		}
	}

	return rank.NewDiagnostics(unknownKeys, unknownValues)
}
