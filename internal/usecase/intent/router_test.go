package intent

import (
	"testing"
)

func TestRoute_FiltersAndBudget(t *testing.T) {
	parsed, ok := Route("color: red, white under $25")
	if !ok {
		t.Fatal("Route() not resolved")
	}
	if parsed.Operation != OpRank {
		t.Errorf("Operation = %q, want rank", parsed.Operation)
	}
	values := parsed.Filters["color"]
	if len(values) != 2 || values[0] != "red" || values[1] != "white" {
		t.Errorf("Filters[color] = %v, want [red white]", values)
	}
	if parsed.Budget == nil || *parsed.Budget != 25 {
		t.Errorf("Budget = %v, want 25", parsed.Budget)
	}
}

func TestRoute_BudgetPhrasings(t *testing.T) {
	for _, query := range []string{
		"under $30", "below 30", "less than $30", "at most 30.00", "max $30",
	} {
		parsed, ok := Route(query)
		if !ok {
			t.Errorf("Route(%q) not resolved", query)
			continue
		}
		if parsed.Budget == nil || *parsed.Budget != 30 {
			t.Errorf("Route(%q) budget = %v, want 30", query, parsed.Budget)
		}
	}
}

func TestRoute_Limit(t *testing.T) {
	parsed, ok := Route("top 5 body: light")
	if !ok {
		t.Fatal("Route() not resolved")
	}
	if parsed.Limit != 5 {
		t.Errorf("Limit = %d, want 5", parsed.Limit)
	}
}

func TestRoute_AnalyticsKeywords(t *testing.T) {
	for _, query := range []string{
		"show me the analytics", "trending picks", "popularity report",
	} {
		parsed, ok := Route(query)
		if !ok {
			t.Errorf("Route(%q) not resolved", query)
			continue
		}
		if parsed.Operation != OpAnalytics {
			t.Errorf("Route(%q) operation = %q, want analytics", query, parsed.Operation)
		}
	}
}

func TestRoute_Unresolved(t *testing.T) {
	for _, query := range []string{"", "   ", "something for dinner tonight"} {
		if _, ok := Route(query); ok {
			t.Errorf("Route(%q) should not resolve", query)
		}
	}
}
