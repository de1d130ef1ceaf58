package domain

import (
	"fmt"
	"time"
)

// Cents — денежная сумма в центах USD. Плавающая точка не используется,
// чтобы показанная и списанная суммы не расходились на округлении.
type Cents int64

// String форматирует сумму в долларах: 2875 -> "$28.75".
func (c Cents) String() string {
	v := int64(c)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s$%d.%02d", sign, v/100, v%100)
}

// CartLine — одна позиция распределённой корзины: конкретный листинг
// конкретного продавца. Описательные поля (Name, Set, Condition, Finish)
// заполняются при обогащении из каталога и могут быть пустыми.
type CartLine struct {
	InventoryID string
	SellerID    string
	Name        string
	Set         string
	Condition   string
	Finish      string
	UnitPrice   Cents
	Quantity    int
}

// CartAllocation — результат одного вызова оптимизатора. Значение
// неизменяемо и не переживает перезапуск workflow: новая попытка
// покупки всегда начинается с нового quote.
type CartAllocation struct {
	Lines             []CartLine
	Subtotal          Cents
	EstimatedShipping Cents
	SellerCount       int
	OptimizerTime     time.Duration
}

// ItemCount возвращает суммарное количество карт в корзине.
func (a CartAllocation) ItemCount() int {
	var total int
	for _, line := range a.Lines {
		total += line.Quantity
	}
	return total
}

// EstimatedTotal — сумма до налога, которую видит оператор на первом чекпоинте.
func (a CartAllocation) EstimatedTotal() Cents {
	return a.Subtotal + a.EstimatedShipping
}

// OrderTotals — авторитетные суммы зарезервированного заказа, включая налог.
type OrderTotals struct {
	Subtotal Cents
	Shipping Cents
	Tax      Cents
	Total    Cents
}

// PendingOrder — серверная резервация. Создаётся не более одного раза
// за попытку покупки и обязана завершиться подтверждением или отменой.
type PendingOrder struct {
	ID        string
	Totals    OrderTotals
	CreatedAt time.Time
}

// Receipt — подтверждение успешного списания средств.
type Receipt struct {
	OrderID      string
	ChargedTotal Cents
}

// Address — почтовый адрес покупателя для доставки или биллинга.
type Address struct {
	Name       string `json:"name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}
