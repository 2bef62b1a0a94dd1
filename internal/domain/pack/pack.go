// Package pack models the domain pack: the controlled vocabulary and synonym
// tables that drive facet-value normalization for one business domain.
package pack

import (
	"fmt"
	"strings"
)

// Facet declares the controlled vocabulary for one facet key.
type Facet struct {
	values        []string
	valueSynonyms map[string]string
}

// NewFacet validates and creates a Facet. At least one allowed value is required.
func NewFacet(values []string, valueSynonyms map[string]string) (Facet, error) {
	if len(values) == 0 {
		return Facet{}, fmt.Errorf("at least one allowed value is required")
	}
	f := Facet{values: append([]string(nil), values...)}
	if len(valueSynonyms) > 0 {
		f.valueSynonyms = make(map[string]string, len(valueSynonyms))
		for raw, canonical := range valueSynonyms {
			f.valueSynonyms[raw] = canonical
		}
	}
	return f, nil
}

// Values returns the allowed canonical values.
func (f Facet) Values() []string { return f.values }

// ValueSynonym looks up a facet-scoped value synonym.
func (f Facet) ValueSynonym(value string) (string, bool) {
	canonical, ok := f.valueSynonyms[value]
	return canonical, ok
}

// Pack bundles global term synonyms and per-facet vocabularies.
// The zero value is a valid empty pack: normalization degrades to
// lowercase/trim identity and every facet key is unknown.
type Pack struct {
	synonyms map[string]string
	facets   map[string]Facet
}

// New creates a Pack from synonym and facet tables.
func New(synonyms map[string]string, facets map[string]Facet) Pack {
	p := Pack{}
	if len(synonyms) > 0 {
		p.synonyms = make(map[string]string, len(synonyms))
		for raw, canonical := range synonyms {
			p.synonyms[raw] = canonical
		}
	}
	if len(facets) > 0 {
		p.facets = make(map[string]Facet, len(facets))
		for key, f := range facets {
			p.facets[key] = f
		}
	}
	return p
}

// Merge overlays another pack on top of this one. Overlay synonyms win on
// conflict; overlay facets replace base facets with the same key.
func (p Pack) Merge(overlay Pack) Pack {
	merged := Pack{
		synonyms: make(map[string]string, len(p.synonyms)+len(overlay.synonyms)),
		facets:   make(map[string]Facet, len(p.facets)+len(overlay.facets)),
	}
	for raw, canonical := range p.synonyms {
		merged.synonyms[raw] = canonical
	}
	for raw, canonical := range overlay.synonyms {
		merged.synonyms[raw] = canonical
	}
	for key, f := range p.facets {
		merged.facets[key] = f
	}
	for key, f := range overlay.facets {
		merged.facets[key] = f
	}
	return merged
}

// Normalize lowercases and trims raw, then applies the global synonym table.
// Unknown terms pass through unchanged. Total and side-effect free.
func (p Pack) Normalize(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := p.synonyms[value]; ok {
		return canonical
	}
	return value
}

// CanonicalFacetValue resolves raw to its canonical form for one facet:
// the global synonym pass runs first, then the facet-scoped value synonyms,
// so a global alias can be further refined per facet.
func (p Pack) CanonicalFacetValue(facetKey, raw string) string {
	value := p.Normalize(raw)
	if f, ok := p.facets[facetKey]; ok {
		if canonical, ok := f.ValueSynonym(value); ok {
			return canonical
		}
	}
	return value
}

// Facet returns the vocabulary declared for a facet key.
func (p Pack) Facet(key string) (Facet, bool) {
	f, ok := p.facets[key]
	return f, ok
}

// HasFacet reports whether the pack declares the facet key.
func (p Pack) HasFacet(key string) bool {
	_, ok := p.facets[key]
	return ok
}
