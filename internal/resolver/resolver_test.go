package resolver

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vladislavdragonenkov/manabuy/internal/domain"
)

func writeDecklist(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "deck.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write decklist: %v", err)
	}
	return path
}

func TestResolve_RequiresExactlyOneMode(t *testing.T) {
	cases := []struct {
		name string
		in   Input
	}{
		{"no mode", Input{}},
		{"decklist and skus", Input{DecklistPath: "deck.txt", SKUList: "1,2"}},
		{"skus and card name", Input{SKUList: "1", CardName: "Opt"}},
		{"all three", Input{DecklistPath: "deck.txt", SKUList: "1", CardName: "Opt"}},
	}

	for _, tc := range cases {
		if _, _, err := Resolve(tc.in, domain.DefaultPreferences()); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("%s: got %v, want ErrInvalidInput", tc.name, err)
		}
	}
}

func TestResolve_Decklist(t *testing.T) {
	path := writeDecklist(t, `
# burn package
4 Lightning Bolt (2XM)
2 Monastery Swiftspear

// singles
Opt
0 Broken Line
`)

	items, issues, err := Resolve(Input{DecklistPath: path}, domain.DefaultPreferences())
	if err != nil {
		t.Fatalf("resolve decklist: %v", err)
	}

	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].Ref.Name != "Lightning Bolt" || items[0].Quantity != 4 {
		t.Errorf("unexpected first item: %+v", items[0])
	}
	if items[2].Ref.Name != "Opt" || items[2].Quantity != 1 {
		t.Errorf("bare name line must mean one copy: %+v", items[2])
	}

	// Сумма количеств соответствует входу: 4 + 2 + 1.
	if got := domain.TotalQuantity(items); got != 7 {
		t.Errorf("total quantity = %d, want 7", got)
	}

	if len(issues) != 1 || issues[0].Line != 8 {
		t.Errorf("expected single issue on line 8, got %+v", issues)
	}
}

func TestResolve_DecklistAllLinesBroken(t *testing.T) {
	path := writeDecklist(t, "0 Nothing\n-3 Less Than Nothing\n")

	_, issues, err := Resolve(Input{DecklistPath: path}, domain.DefaultPreferences())
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}
	if len(issues) != 2 {
		t.Errorf("expected both issues reported, got %+v", issues)
	}
}

func TestResolve_DecklistMissingFile(t *testing.T) {
	_, _, err := Resolve(Input{DecklistPath: filepath.Join(t.TempDir(), "absent.txt")}, domain.PreferenceSet{})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}
}

func TestResolve_SKUs(t *testing.T) {
	items, _, err := Resolve(Input{SKUList: " 8351042, 221133 "}, domain.PreferenceSet{})
	if err != nil {
		t.Fatalf("resolve skus: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if !items[0].Ref.IsSKU() || items[0].Ref.SKU != 8351042 {
		t.Errorf("unexpected first item: %+v", items[0])
	}
	if got := domain.TotalQuantity(items); got != 2 {
		t.Errorf("sku items must carry one unit each, total = %d", got)
	}
}

func TestResolve_SKUsInvalid(t *testing.T) {
	for _, list := range []string{"abc", "12,xyz", "-5", ","} {
		if _, _, err := Resolve(Input{SKUList: list}, domain.PreferenceSet{}); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("sku list %q: got %v, want ErrInvalidInput", list, err)
		}
	}
}

func TestResolve_CardName(t *testing.T) {
	items, _, err := Resolve(Input{CardName: "Counterspell", Quantity: 3}, domain.DefaultPreferences())
	if err != nil {
		t.Fatalf("resolve card name: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 3 || items[0].Ref.Name != "Counterspell" {
		t.Errorf("unexpected items: %+v", items)
	}

	// Количество по умолчанию — одна копия.
	items, _, err = Resolve(Input{CardName: "Counterspell"}, domain.PreferenceSet{})
	if err != nil || items[0].Quantity != 1 {
		t.Errorf("default quantity: items=%+v err=%v", items, err)
	}

	if _, _, err := Resolve(Input{CardName: "Counterspell", Quantity: -2}, domain.PreferenceSet{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("negative quantity: got %v, want ErrInvalidInput", err)
	}
}
