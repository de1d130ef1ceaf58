package manapool

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/manabuy/internal/domain"
)

// Optimize отправляет весь список позиций одним запросом, чтобы
// оптимизатор мог совместно минимизировать число продавцов и доставку.
// Вызов — чистый quote, никакого состояния на аккаунте не создаётся.
func (c *Client) Optimize(ctx context.Context, items []domain.LineItem) (domain.CartAllocation, error) {
	if len(items) == 0 {
		return domain.CartAllocation{}, fmt.Errorf("%w: optimizer called with no items", domain.ErrInvalidInput)
	}

	req := optimizerRequestWire{Cart: make([]cartItemWire, 0, len(items))}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return domain.CartAllocation{}, err
		}
		req.Cart = append(req.Cart, toCartItemWire(item))
	}

	c.logger.WithField("items", len(items)).Info("sending cart to the optimizer")

	body, err := c.send(ctx, http.MethodPost, "/buyer/optimizer", nil, req)
	if err != nil {
		return domain.CartAllocation{}, err
	}

	result, err := decodeOptimizerResult(body)
	if err != nil {
		return domain.CartAllocation{}, err
	}

	alloc := domain.CartAllocation{
		Lines:             make([]domain.CartLine, 0, len(result.Cart)),
		Subtotal:          domain.Cents(result.Totals.SubtotalCents),
		EstimatedShipping: domain.Cents(result.Totals.ShippingCents),
		SellerCount:       result.Totals.SellerCount,
		OptimizerTime:     time.Duration(result.Stats.ResponseTimeMS) * time.Millisecond,
	}
	for _, line := range result.Cart {
		alloc.Lines = append(alloc.Lines, domain.CartLine{
			InventoryID: line.InventoryID,
			SellerID:    line.SellerID,
			UnitPrice:   domain.Cents(line.PriceCents),
			Quantity:    line.QuantitySelected,
		})
	}

	c.logger.WithFields(log.Fields{
		"sellers":  alloc.SellerCount,
		"subtotal": alloc.Subtotal,
	}).Info("optimizer returned a solution")

	return alloc, nil
}

// decodeOptimizerResult разбирает стриминговый ответ оптимизатора:
// тело состоит из строк прогресса, результат — последняя строка.
func decodeOptimizerResult(body []byte) (optimizerResultWire, error) {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return optimizerResultWire{}, fmt.Errorf("%w: optimizer returned an empty response", domain.ErrTransientNetwork)
	}

	lines := strings.Split(text, "\n")
	last := strings.TrimSpace(lines[len(lines)-1])

	var result optimizerResultWire
	if err := json.Unmarshal([]byte(last), &result); err != nil {
		return optimizerResultWire{}, fmt.Errorf("decode optimizer result line: %w", err)
	}
	return result, nil
}
