package rank

import (
	"testing"

	"github.com/cavist-cloud/cavist/internal/domain/pack"
)

func TestMatchFacets_ScalarAndMulti(t *testing.T) {
	item := makeItem(t, "W1", "Alpha", nil, map[string][]string{
		"color": {"red"},
		"taste": {"light", "fruity"},
	})

	tests := []struct {
		name       string
		filters    map[string][]string
		matched    int
		totalAsked int
	}{
		{
			"scalar facet match",
			map[string][]string{"color": {"red"}},
			1, 1,
		},
		{
			"multi-valued facet intersects",
			map[string][]string{"taste": {"fruity", "oaky"}},
			1, 1,
		},
		{
			"two facets both match",
			map[string][]string{"color": {"red"}, "taste": {"light"}},
			2, 2,
		},
		{
			"missing facet counts asked but not matched",
			map[string][]string{"color": {"red"}, "vintage": {"2020"}},
			1, 2,
		},
		{
			"value mismatch",
			map[string][]string{"color": {"white"}},
			0, 1,
		},
		{
			"empty value sequence ignored",
			map[string][]string{"color": {}},
			0, 0,
		},
		{
			"no filters",
			nil,
			0, 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched, totalAsked := matchFacets(item, tt.filters, pack.Pack{})
			if matched != tt.matched || totalAsked != tt.totalAsked {
				t.Errorf("got matched=%d totalAsked=%d, want %d/%d",
					matched, totalAsked, tt.matched, tt.totalAsked)
			}
			if matched > totalAsked {
				t.Errorf("matched %d exceeds totalAsked %d", matched, totalAsked)
			}
		})
	}
}

func TestMatchFacets_NormalizesBothSides(t *testing.T) {
	item := makeItem(t, "W1", "Alpha", nil, map[string][]string{
		"color": {" RED "},
	})

	matched, totalAsked := matchFacets(item, map[string][]string{"color": {"Red"}}, pack.Pack{})
	if matched != 1 || totalAsked != 1 {
		t.Errorf("case/space-insensitive match failed: matched=%d totalAsked=%d", matched, totalAsked)
	}
}

func TestMatchFacets_FacetScopedSynonymOnItemValue(t *testing.T) {
	colorFacet, err := pack.NewFacet([]string{"red"}, map[string]string{"garnet": "red"})
	if err != nil {
		t.Fatalf("pack.NewFacet: %v", err)
	}
	p := pack.New(nil, map[string]pack.Facet{"color": colorFacet})

	// The item carries the synonym form; the filter asks for the canonical one.
	item := makeItem(t, "W1", "Alpha", nil, map[string][]string{"color": {"garnet"}})

	matched, _ := matchFacets(item, map[string][]string{"color": {"red"}}, p)
	if matched != 1 {
		t.Errorf("item-side synonym not resolved, matched=%d", matched)
	}
}
