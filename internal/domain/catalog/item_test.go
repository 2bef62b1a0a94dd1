package catalog

import (
	"reflect"
	"testing"
)

func fptr(v float64) *float64 { return &v }

func TestNew_Validation(t *testing.T) {
	if _, err := New("", "Alpha", nil, nil); err == nil {
		t.Error("expected error for empty sku")
	}
	if _, err := New("W1", "", nil, nil); err == nil {
		t.Error("expected error for empty name")
	}
	if _, err := New("W1", "Alpha", nil, map[string][]string{"": {"x"}}); err == nil {
		t.Error("expected error for empty facet key")
	}
}

func TestNew_DropsEmptyFacetValues(t *testing.T) {
	item, err := New("W1", "Alpha", nil, map[string][]string{
		"color": {"red"},
		"taste": {},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.FacetValues("taste") != nil {
		t.Error("empty facet value sequence should be dropped")
	}
	if !reflect.DeepEqual(item.FacetValues("color"), []string{"red"}) {
		t.Errorf("color = %v, want [red]", item.FacetValues("color"))
	}
}

func TestNew_CopiesInputs(t *testing.T) {
	values := []string{"red"}
	item, err := New("W1", "Alpha", nil, map[string][]string{"color": values})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	values[0] = "mutated"
	if item.FacetValues("color")[0] != "red" {
		t.Error("item must not share backing arrays with caller input")
	}
}

func TestPrice(t *testing.T) {
	priced, err := New("W1", "Alpha", fptr(12.5), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p, ok := priced.Price(); !ok || p != 12.5 {
		t.Errorf("Price() = %v,%v, want 12.5,true", p, ok)
	}

	priceless, err := New("W2", "Beta", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := priceless.Price(); ok {
		t.Error("expected no price")
	}
}

func TestReconstruct(t *testing.T) {
	item := Reconstruct("W1", "Alpha", fptr(9), map[string][]string{"color": {"red"}})
	if item.SKU() != "W1" || item.Name() != "Alpha" {
		t.Errorf("reconstructed item = %s/%s", item.SKU(), item.Name())
	}
}
