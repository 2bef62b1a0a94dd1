package pack

import (
	"fmt"

	dompack "github.com/cavist-cloud/cavist/internal/domain/pack"
)

// facetRow is the YAML representation of one facet vocabulary.
type facetRow struct {
	Values        []string          `yaml:"values"`
	ValueSynonyms map[string]string `yaml:"value_synonyms,omitempty"`
}

// packFile is the YAML representation of a domain pack flat file.
type packFile struct {
	Synonyms map[string]string   `yaml:"synonyms,omitempty"`
	Facets   map[string]facetRow `yaml:"facets,omitempty"`
}

func packFromFile(file packFile) (dompack.Pack, error) {
	facets := make(map[string]dompack.Facet, len(file.Facets))
	for key, row := range file.Facets {
		f, err := dompack.NewFacet(row.Values, row.ValueSynonyms)
		if err != nil {
			return dompack.Pack{}, fmt.Errorf("facet %q: %w", key, err)
		}
		facets[key] = f
	}
	return dompack.New(file.Synonyms, facets), nil
}
