package rank

// Diagnostics classifies requested filters against the domain pack vocabulary.
// It reports on filter validity, not on matching outcome: the same filters and
// pack always produce the same diagnostics regardless of the catalog.
type Diagnostics struct {
	unknownKeys   []string
	unknownValues map[string][]string
}

// NewDiagnostics creates a Diagnostics record.
func NewDiagnostics(unknownKeys []string, unknownValues map[string][]string) Diagnostics {
	if len(unknownValues) == 0 {
		unknownValues = nil
	}
	return Diagnostics{unknownKeys: unknownKeys, unknownValues: unknownValues}
}

// UnknownFacetKeys returns requested facet keys absent from the pack, sorted.
func (d Diagnostics) UnknownFacetKeys() []string { return d.unknownKeys }

// UnknownFacetValues maps known facet keys to requested raw values that are
// not in the facet's vocabulary. Values keep their original (unnormalized) form.
func (d Diagnostics) UnknownFacetValues() map[string][]string { return d.unknownValues }

// IsClean reports whether every requested filter resolved against the vocabulary.
func (d Diagnostics) IsClean() bool {
	return len(d.unknownKeys) == 0 && len(d.unknownValues) == 0
}
