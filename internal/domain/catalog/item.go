package catalog

import "fmt"

// Item is one sellable catalog entry with its facet values.
// Items are immutable once loaded; the ranking engine only reads them.
type Item struct {
	sku    string
	name   string
	price  *float64
	facets map[string][]string
}

// New validates and creates an Item. Facet keys with no values are dropped.
func New(sku, name string, price *float64, facets map[string][]string) (Item, error) {
	if sku == "" {
		return Item{}, fmt.Errorf("sku is required")
	}
	if name == "" {
		return Item{}, fmt.Errorf("name is required for sku %q", sku)
	}

	var copied map[string][]string
	if len(facets) > 0 {
		copied = make(map[string][]string, len(facets))
		for key, values := range facets {
			if key == "" {
				return Item{}, fmt.Errorf("empty facet key on sku %q", sku)
			}
			if len(values) == 0 {
				continue
			}
			copied[key] = append([]string(nil), values...)
		}
	}

	return Item{sku: sku, name: name, price: price, facets: copied}, nil
}

// Reconstruct rebuilds an Item from trusted storage without validation.
func Reconstruct(sku, name string, price *float64, facets map[string][]string) Item {
	return Item{sku: sku, name: name, price: price, facets: facets}
}

// SKU returns the unique item identifier.
func (i *Item) SKU() string { return i.sku }

// Name returns the display name.
func (i *Item) Name() string { return i.name }

// Price returns the item price and whether one is set.
func (i *Item) Price() (float64, bool) {
	if i.price == nil {
		return 0, false
	}
	return *i.price, true
}

// Facets returns the facet-key to values mapping.
func (i *Item) Facets() map[string][]string { return i.facets }

// FacetValues returns the values of one facet. Missing facets yield nil.
func (i *Item) FacetValues(key string) []string { return i.facets[key] }
