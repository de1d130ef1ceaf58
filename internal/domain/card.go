package domain

import (
	"fmt"
	"strconv"
)

// Condition — код состояния карты в порядке убывания качества.
type Condition string

const (
	ConditionNearMint         Condition = "NM"
	ConditionLightlyPlayed    Condition = "LP"
	ConditionModeratelyPlayed Condition = "MP"
	ConditionHeavilyPlayed    Condition = "HP"
	ConditionDamaged          Condition = "DMG"
)

// Language — код языка издания.
type Language string

const (
	LanguageEnglish  Language = "en"
	LanguageJapanese Language = "ja"
	LanguageGerman   Language = "de"
)

// Finish — вариант исполнения карты (обычная, фойл, etched).
type Finish string

const (
	FinishNonFoil Finish = "nonfoil"
	FinishFoil    Finish = "foil"
	FinishEtched  Finish = "etched"
)

// PreferenceSet задаёт допустимые варианты карты в порядке приоритета.
// Используется оптимизатором как фильтр; workflow его не интерпретирует.
type PreferenceSet struct {
	Conditions []Condition
	Languages  []Language
	Finishes   []Finish
}

// DefaultPreferences — консервативный набор по умолчанию: английские
// не-фойл карты в играбельном состоянии.
func DefaultPreferences() PreferenceSet {
	return PreferenceSet{
		Conditions: []Condition{ConditionNearMint, ConditionLightlyPlayed},
		Languages:  []Language{LanguageEnglish},
		Finishes:   []Finish{FinishNonFoil},
	}
}

// CardRef — ссылка на карту: либо каталожный TCGplayer SKU, либо имя
// для поиска. Ровно одно из полей должно быть заполнено.
type CardRef struct {
	Name string
	SKU  int64
}

// BySKU создаёт ссылку по каталожному идентификатору.
func BySKU(sku int64) CardRef { return CardRef{SKU: sku} }

// ByName создаёт ссылку по имени карты.
func ByName(name string) CardRef { return CardRef{Name: name} }

// IsSKU сообщает, задана ли ссылка каталожным идентификатором.
func (r CardRef) IsSKU() bool { return r.SKU > 0 }

// Key возвращает строковый идентификатор для логов и сверки
// с перечнем недоступных позиций.
func (r CardRef) Key() string {
	if r.IsSKU() {
		return "sku:" + strconv.FormatInt(r.SKU, 10)
	}
	return r.Name
}

// LineItem — одна позиция запроса покупателя. После резолва неизменяема.
type LineItem struct {
	Ref         CardRef
	Quantity    int
	Preferences PreferenceSet
}

// Validate проверяет инварианты позиции.
func (li LineItem) Validate() error {
	if li.Ref.Name == "" && !li.Ref.IsSKU() {
		return fmt.Errorf("%w: line item without card reference", ErrInvalidInput)
	}
	if li.Ref.Name != "" && li.Ref.IsSKU() {
		return fmt.Errorf("%w: line item with both name and sku", ErrInvalidInput)
	}
	if li.Quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}
	return nil
}

// TotalQuantity суммирует количество по всем позициям.
func TotalQuantity(items []LineItem) int {
	var total int
	for _, li := range items {
		total += li.Quantity
	}
	return total
}
