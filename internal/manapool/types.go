package manapool

import "github.com/vladislavdragonenkov/manabuy/internal/domain"

// cartItemWire — элемент запроса к оптимизатору. Позиция либо ищется
// по имени (mtg_single), либо задана каталожным SKU (tcg_sku).
type cartItemWire struct {
	Type              string   `json:"type"`
	Name              string   `json:"name,omitempty"`
	TCGPlayerSKUIDs   []int64  `json:"tcgplayer_sku_ids,omitempty"`
	QuantityRequested int      `json:"quantity_requested"`
	ConditionIDs      []string `json:"condition_ids,omitempty"`
	LanguageIDs       []string `json:"language_ids,omitempty"`
	FinishIDs         []string `json:"finish_ids,omitempty"`
}

func toCartItemWire(item domain.LineItem) cartItemWire {
	if item.Ref.IsSKU() {
		return cartItemWire{
			Type:              "tcg_sku",
			TCGPlayerSKUIDs:   []int64{item.Ref.SKU},
			QuantityRequested: item.Quantity,
		}
	}

	wire := cartItemWire{
		Type:              "mtg_single",
		Name:              item.Ref.Name,
		QuantityRequested: item.Quantity,
	}
	for _, c := range item.Preferences.Conditions {
		wire.ConditionIDs = append(wire.ConditionIDs, string(c))
	}
	for _, l := range item.Preferences.Languages {
		wire.LanguageIDs = append(wire.LanguageIDs, string(l))
	}
	for _, f := range item.Preferences.Finishes {
		wire.FinishIDs = append(wire.FinishIDs, string(f))
	}
	return wire
}

type optimizerRequestWire struct {
	Cart []cartItemWire `json:"cart"`
}

// optimizerResultWire — финальный объект ответа оптимизатора
// (последняя строка стримингового тела).
type optimizerResultWire struct {
	Cart []struct {
		InventoryID      string `json:"inventory_id"`
		SellerID         string `json:"seller_id"`
		QuantitySelected int    `json:"quantity_selected"`
		PriceCents       int64  `json:"price_cents"`
	} `json:"cart"`
	Totals struct {
		SubtotalCents int64 `json:"subtotal_cents"`
		ShippingCents int64 `json:"shipping_cents"`
		SellerCount   int   `json:"seller_count"`
	} `json:"totals"`
	Stats struct {
		ResponseTimeMS int64 `json:"response_time"`
	} `json:"stats"`
}

type orderTotalsWire struct {
	SubtotalCents int64 `json:"subtotal_cents"`
	ShippingCents int64 `json:"shipping_cents"`
	TaxCents      int64 `json:"tax_cents"`
	TotalCents    int64 `json:"total_cents"`
}

func (w orderTotalsWire) toDomain() domain.OrderTotals {
	return domain.OrderTotals{
		Subtotal: domain.Cents(w.SubtotalCents),
		Shipping: domain.Cents(w.ShippingCents),
		Tax:      domain.Cents(w.TaxCents),
		Total:    domain.Cents(w.TotalCents),
	}
}

type reserveLineWire struct {
	InventoryID      string `json:"inventory_id"`
	QuantitySelected int    `json:"quantity_selected"`
}

type reserveRequestWire struct {
	LineItems       []reserveLineWire `json:"line_items"`
	ShippingAddress domain.Address    `json:"shipping_address"`
}

type pendingOrderWire struct {
	ID     string          `json:"id"`
	Totals orderTotalsWire `json:"totals"`
}

type purchaseRequestWire struct {
	PaymentMethod   string         `json:"payment_method"`
	BillingAddress  domain.Address `json:"billing_address"`
	ShippingAddress domain.Address `json:"shipping_address"`
}

type purchaseResponseWire struct {
	Order struct {
		ID         string `json:"id"`
		TotalCents int64  `json:"total_cents"`
	} `json:"order"`
}

type listingsResponseWire struct {
	InventoryItems []struct {
		ID         string `json:"id"`
		PriceCents int64  `json:"price_cents"`
		Seller     struct {
			ID string `json:"id"`
		} `json:"seller"`
		Product struct {
			Single struct {
				Name        string `json:"name"`
				Set         string `json:"set"`
				ConditionID string `json:"condition_id"`
				FinishID    string `json:"finish_id"`
			} `json:"single"`
		} `json:"product"`
	} `json:"inventory_items"`
}
