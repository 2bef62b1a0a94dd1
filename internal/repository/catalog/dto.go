package catalog

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/cavist-cloud/cavist/internal/domain/catalog"
)

// facetValue accepts either a scalar string or a sequence of strings in YAML.
type facetValue []string

func (v *facetValue) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return fmt.Errorf("facet value: %w", err)
		}
		*v = facetValue{s}
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return fmt.Errorf("facet values: %w", err)
		}
		*v = facetValue(list)
	default:
		return fmt.Errorf("facet value must be a string or a list of strings")
	}
	return nil
}

// itemRow is the YAML representation of one catalog item.
type itemRow struct {
	SKU    string                `yaml:"sku"`
	Name   string                `yaml:"name"`
	Price  *float64              `yaml:"price,omitempty"`
	Facets map[string]facetValue `yaml:"facets,omitempty"`
}

// catalogFile is the YAML representation of a catalog flat file.
type catalogFile struct {
	Items []itemRow `yaml:"items"`
}

// itemSnapshot is the JSON representation used for the store-backed cache.
type itemSnapshot struct {
	SKU    string              `json:"sku"`
	Name   string              `json:"name"`
	Price  *float64            `json:"price,omitempty"`
	Facets map[string][]string `json:"facets,omitempty"`
}

func itemsFromFile(file catalogFile) ([]catalog.Item, error) {
	seen := make(map[string]struct{}, len(file.Items))
	items := make([]catalog.Item, 0, len(file.Items))

	for i, row := range file.Items {
		if _, dup := seen[row.SKU]; dup {
			return nil, fmt.Errorf("duplicate sku %q", row.SKU)
		}

		facets := make(map[string][]string, len(row.Facets))
		for key, values := range row.Facets {
			facets[key] = []string(values)
		}

		item, err := catalog.New(row.SKU, row.Name, row.Price, facets)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		seen[row.SKU] = struct{}{}
		items = append(items, item)
	}
	return items, nil
}

func itemsToSnapshots(items []catalog.Item) []itemSnapshot {
	out := make([]itemSnapshot, len(items))
	for i := range items {
		price, hasPrice := items[i].Price()
		var p *float64
		if hasPrice {
			p = &price
		}
		out[i] = itemSnapshot{
			SKU:    items[i].SKU(),
			Name:   items[i].Name(),
			Price:  p,
			Facets: items[i].Facets(),
		}
	}
	return out
}

func itemsFromSnapshots(rows []itemSnapshot) []catalog.Item {
	items := make([]catalog.Item, len(rows))
	for i, row := range rows {
		items[i] = catalog.Reconstruct(row.SKU, row.Name, row.Price, row.Facets)
	}
	return items
}
