package domain

import (
	"errors"
	"testing"
)

func TestLineItem_Validate(t *testing.T) {
	valid := LineItem{Ref: ByName("Lightning Bolt"), Quantity: 4}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid line item rejected: %v", err)
	}

	cases := []struct {
		name string
		item LineItem
	}{
		{"no reference", LineItem{Quantity: 1}},
		{"both name and sku", LineItem{Ref: CardRef{Name: "Opt", SKU: 42}, Quantity: 1}},
		{"zero quantity", LineItem{Ref: ByName("Opt"), Quantity: 0}},
		{"negative quantity", LineItem{Ref: BySKU(42), Quantity: -1}},
	}

	for _, tc := range cases {
		if err := tc.item.Validate(); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: got %v, want ErrInvalidInput", tc.name, err)
		}
	}
}

func TestCardRef_Key(t *testing.T) {
	if got := BySKU(8351042).Key(); got != "sku:8351042" {
		t.Errorf("sku key = %q", got)
	}
	if got := ByName("Counterspell").Key(); got != "Counterspell" {
		t.Errorf("name key = %q", got)
	}
}

func TestAsUnavailable(t *testing.T) {
	base := &UnavailableItemsError{Identifiers: []string{"Black Lotus"}}

	ue, ok := AsUnavailable(base)
	if !ok || len(ue.Identifiers) != 1 {
		t.Fatalf("AsUnavailable failed to unwrap: %v %v", ue, ok)
	}

	if _, ok := AsUnavailable(errors.New("other")); ok {
		t.Fatal("AsUnavailable matched an unrelated error")
	}
}
