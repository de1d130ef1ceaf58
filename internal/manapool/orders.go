package manapool

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/manabuy/internal/domain"
)

// Reserve создаёт pending order из распределённой корзины и возвращает
// авторитетные суммы с налогом. Вызов не идемпотентен: каждый запрос
// может зарезервировать инвентарь, повторять его молча нельзя.
func (c *Client) Reserve(ctx context.Context, alloc domain.CartAllocation, shipping domain.Address) (domain.PendingOrder, error) {
	req := reserveRequestWire{
		LineItems:       make([]reserveLineWire, 0, len(alloc.Lines)),
		ShippingAddress: shipping,
	}
	for _, line := range alloc.Lines {
		req.LineItems = append(req.LineItems, reserveLineWire{
			InventoryID:      line.InventoryID,
			QuantitySelected: line.Quantity,
		})
	}

	c.logger.Info("creating a pending order to calculate the final total")

	body, err := c.send(ctx, http.MethodPost, "/buyer/orders/pending-orders", nil, req)
	if err != nil {
		return domain.PendingOrder{}, err
	}

	var wire pendingOrderWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return domain.PendingOrder{}, fmt.Errorf("decode pending order: %w", err)
	}
	if wire.ID == "" {
		return domain.PendingOrder{}, fmt.Errorf("pending order response without id")
	}

	order := domain.PendingOrder{
		ID:        wire.ID,
		Totals:    wire.Totals.toDomain(),
		CreatedAt: time.Now().UTC(),
	}

	c.logger.WithFields(log.Fields{
		"order_id": order.ID,
		"total":    order.Totals.Total,
	}).Info("pending order created")

	return order, nil
}

// Confirm финализирует pending order и списывает средства. Повтор
// списания вслепую запрещён: вызывающая сторона не должна ретраить.
func (c *Client) Confirm(ctx context.Context, orderID string, billing, shipping domain.Address) (domain.Receipt, error) {
	req := purchaseRequestWire{
		PaymentMethod:   "user_credit",
		BillingAddress:  billing,
		ShippingAddress: shipping,
	}

	c.logger.WithField("order_id", orderID).Info("attempting to purchase pending order")

	path := "/buyer/orders/pending-orders/" + orderID + "/purchase"
	body, err := c.send(ctx, http.MethodPost, path, nil, req)
	if err != nil {
		return domain.Receipt{}, err
	}

	var wire purchaseResponseWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return domain.Receipt{}, fmt.Errorf("decode purchase response: %w", err)
	}

	receipt := domain.Receipt{
		OrderID:      wire.Order.ID,
		ChargedTotal: domain.Cents(wire.Order.TotalCents),
	}
	if receipt.OrderID == "" {
		receipt.OrderID = orderID
	}
	return receipt, nil
}

// Release отменяет pending order, возвращая инвентарь продавцам.
// Обязателен на любом graceful-выходе после Reserve без Confirm.
func (c *Client) Release(ctx context.Context, orderID string) error {
	c.logger.WithField("order_id", orderID).Info("releasing pending order")

	path := "/buyer/orders/pending-orders/" + orderID
	if _, err := c.send(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return err
	}
	return nil
}
