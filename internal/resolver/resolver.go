package resolver

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/vladislavdragonenkov/manabuy/internal/domain"
)

// Input — три взаимоисключающих режима запроса покупателя.
// Заполнено должно быть ровно одно из полей DecklistPath, SKUList, CardName.
type Input struct {
	DecklistPath string
	SKUList      string
	CardName     string
	Quantity     int
}

// ParseIssue описывает одну непригодную строку декклиста. Политика —
// накопить и показать все проблемы, а не падать на первой: частично
// корректные декклисты встречаются постоянно.
type ParseIssue struct {
	Line   int
	Text   string
	Reason string
}

func (p ParseIssue) String() string {
	return fmt.Sprintf("line %d: %s (%q)", p.Line, p.Reason, p.Text)
}

// Resolve превращает запрос покупателя в упорядоченный список позиций.
// Сетевых вызовов и побочных эффектов нет: чистая трансформация.
func Resolve(in Input, prefs domain.PreferenceSet) ([]domain.LineItem, []ParseIssue, error) {
	modes := 0
	if in.DecklistPath != "" {
		modes++
	}
	if in.SKUList != "" {
		modes++
	}
	if in.CardName != "" {
		modes++
	}
	if modes != 1 {
		return nil, nil, fmt.Errorf("%w: exactly one of decklist, skus or card-name is required", domain.ErrInvalidInput)
	}

	switch {
	case in.DecklistPath != "":
		return resolveDecklist(in.DecklistPath, prefs)
	case in.SKUList != "":
		items, err := resolveSKUs(in.SKUList)
		return items, nil, err
	default:
		items, err := resolveCardName(in.CardName, in.Quantity, prefs)
		return items, nil, err
	}
}

func resolveDecklist(path string, prefs domain.PreferenceSet) ([]domain.LineItem, []ParseIssue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: read decklist %s: %v", domain.ErrInvalidInput, path, err)
	}

	items, issues := ParseDecklist(string(data), prefs)
	if len(items) == 0 {
		return nil, issues, fmt.Errorf("%w: decklist %s contains no usable lines", domain.ErrInvalidInput, path)
	}
	return items, issues, nil
}

func resolveSKUs(list string) ([]domain.LineItem, error) {
	parts := strings.Split(list, ",")
	items := make([]domain.LineItem, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		sku, err := strconv.ParseInt(part, 10, 64)
		if err != nil || sku <= 0 {
			return nil, fmt.Errorf("%w: invalid tcgplayer sku %q", domain.ErrInvalidInput, part)
		}
		items = append(items, domain.LineItem{Ref: domain.BySKU(sku), Quantity: 1})
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: empty sku list", domain.ErrInvalidInput)
	}
	return items, nil
}

func resolveCardName(name string, quantity int, prefs domain.PreferenceSet) ([]domain.LineItem, error) {
	if quantity == 0 {
		quantity = 1
	}
	item := domain.LineItem{Ref: domain.ByName(strings.TrimSpace(name)), Quantity: quantity, Preferences: prefs}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return []domain.LineItem{item}, nil
}
