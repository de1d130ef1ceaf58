package domain

import (
	"context"
	"time"
)

// Optimizer получает quote: распределение позиций по продавцам с ценами.
// Вызов не создаёт никакого состояния на аккаунте покупателя.
type Optimizer interface {
	Optimize(ctx context.Context, items []LineItem) (CartAllocation, error)
}

// CatalogReader обогащает строки корзины описаниями листингов
// (имя карты, сет, состояние, исполнение) для развёрнутого манифеста.
type CatalogReader interface {
	DescribeLines(ctx context.Context, alloc *CartAllocation) error
}

// ReservationService — мутирующие вызовы маркетплейса. Reserve не
// идемпотентен на бизнес-уровне: каждый вызов может зарезервировать
// инвентарь, поэтому движок обязан выдать его не более одного раза
// за попытку и никогда не повторять молча.
type ReservationService interface {
	// Reserve создаёт pending order и возвращает авторитетные суммы с налогом.
	Reserve(ctx context.Context, alloc CartAllocation, shipping Address) (PendingOrder, error)
	// Confirm финализирует заказ и списывает средства.
	Confirm(ctx context.Context, orderID string, billing, shipping Address) (Receipt, error)
	// Release отменяет резервацию; обязателен на любом graceful-выходе
	// после успешного Reserve без Confirm.
	Release(ctx context.Context, orderID string) error
}

// Prompt — блокирующий вопрос оператору да/нет. Отсутствие ответа
// (EOF) трактуется как отказ: брошенный терминал не должен подтверждать
// покупку.
type Prompt interface {
	Confirm(question string) (bool, error)
}

// Presenter получает read-only снимки состояния для показа оператору.
// Доступа на запись к состоянию workflow у него нет.
type Presenter interface {
	ShowQuote(alloc CartAllocation, manifest bool)
	ShowFinalTotals(estimate CartAllocation, totals OrderTotals)
	ShowUnavailable(identifiers []string)
	ShowReceipt(receipt Receipt)
}

// WorkflowState — состояние конечного автомата покупки.
type WorkflowState string

const (
	StateQuoted    WorkflowState = "quoted"
	StateReserved  WorkflowState = "reserved"
	StateConfirmed WorkflowState = "confirmed"
	StateReleased  WorkflowState = "released"
)

// JournalEvent фиксирует переход workflow для аудита.
type JournalEvent struct {
	AttemptID string
	State     WorkflowState
	OrderID   string
	Amount    Cents
	Reason    string
	Occurred  time.Time
}

// PurchaseJournal хранит события попыток покупки.
type PurchaseJournal interface {
	Append(event JournalEvent) error
	List(attemptID string) ([]JournalEvent, error)
}
