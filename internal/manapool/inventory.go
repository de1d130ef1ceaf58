package manapool

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/vladislavdragonenkov/manabuy/internal/domain"
)

// DescribeLines подтягивает описания листингов (имя карты, сет,
// состояние, исполнение) для развёрнутого манифеста корзины.
// Строки без совпадения остаются незаполненными.
func (c *Client) DescribeLines(ctx context.Context, alloc *domain.CartAllocation) error {
	if alloc == nil || len(alloc.Lines) == 0 {
		return nil
	}

	query := url.Values{}
	for _, line := range alloc.Lines {
		query.Add("id", line.InventoryID)
	}

	c.logger.WithField("items", len(alloc.Lines)).Info("fetching inventory details")

	body, err := c.send(ctx, http.MethodGet, "/inventory/listings", query, nil)
	if err != nil {
		return err
	}

	var wire listingsResponseWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return fmt.Errorf("decode inventory listings: %w", err)
	}

	byID := make(map[string]int, len(wire.InventoryItems))
	for i, item := range wire.InventoryItems {
		byID[item.ID] = i
	}

	for i := range alloc.Lines {
		idx, ok := byID[alloc.Lines[i].InventoryID]
		if !ok {
			continue
		}
		item := wire.InventoryItems[idx]
		alloc.Lines[i].Name = item.Product.Single.Name
		alloc.Lines[i].Set = item.Product.Single.Set
		alloc.Lines[i].Condition = item.Product.Single.ConditionID
		alloc.Lines[i].Finish = item.Product.Single.FinishID
		if alloc.Lines[i].SellerID == "" {
			alloc.Lines[i].SellerID = item.Seller.ID
		}
		if alloc.Lines[i].UnitPrice == 0 {
			alloc.Lines[i].UnitPrice = domain.Cents(item.PriceCents)
		}
	}

	return nil
}
