package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/manabuy/internal/domain"
)

// Outcome — терминальный исход одной попытки покупки.
type Outcome int

const (
	// OutcomeQuoteOnly — режим проверки цены: остановка на quote без
	// какой-либо резервации. Намеренный успешный исход.
	OutcomeQuoteOnly Outcome = iota
	// OutcomeDeclined — оператор ответил "нет" на одном из чекпоинтов.
	OutcomeDeclined
	// OutcomeConfirmed — заказ финализирован, средства списаны.
	OutcomeConfirmed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeQuoteOnly:
		return "quote-only"
	case OutcomeDeclined:
		return "declined"
	case OutcomeConfirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

// Options — флаги запуска workflow.
type Options struct {
	// Buy включает интерактивную покупку; без него workflow
	// останавливается на quote.
	Buy bool
	// Verbose включает развёрнутый манифест корзины на первом чекпоинте.
	Verbose bool
}

// Deps — зависимости движка.
type Deps struct {
	Optimizer domain.Optimizer
	Catalog   domain.CatalogReader
	Market    domain.ReservationService
	Prompt    domain.Prompt
	Presenter domain.Presenter
	Journal   domain.PurchaseJournal
	Retry     RetryConfig
	Shipping  domain.Address
	Billing   domain.Address
	Logger    *log.Entry
}

// Engine ведёт покупку через два чекпоинта:
//
//	Quoted -> AwaitingCheckpoint1 -> Reserved -> AwaitingCheckpoint2 -> {Confirmed | Released}
//
// Все мутирующие вызовы маркетплейса принадлежат движку. Списание
// возможно только через Confirm резервации, созданной в этом же запуске
// после утвердительного ответа на обоих чекпоинтах.
type Engine struct {
	optimizer domain.Optimizer
	catalog   domain.CatalogReader
	market    domain.ReservationService
	prompt    domain.Prompt
	presenter domain.Presenter
	journal   domain.PurchaseJournal
	retry     RetryConfig
	shipping  domain.Address
	billing   domain.Address
	logger    *log.Entry

	attemptID string
	// pending — линейный ресурс: единственная незавершённая резервация
	// запуска. Пока она не разрешена (Confirm/Release), вторая не
	// может быть создана.
	pending  *domain.PendingOrder
	consumed bool
}

// NewEngine создаёт одноразовый движок покупки.
func NewEngine(deps Deps) *Engine {
	logger := deps.Logger
	if logger == nil {
		logger = log.New().WithField("component", "checkout")
	}
	if deps.Retry.MaxAttempts == 0 {
		deps.Retry = DefaultRetryConfig()
	}

	return &Engine{
		optimizer: deps.Optimizer,
		catalog:   deps.Catalog,
		market:    deps.Market,
		prompt:    deps.Prompt,
		presenter: deps.Presenter,
		journal:   deps.Journal,
		retry:     deps.Retry,
		shipping:  deps.Shipping,
		billing:   deps.Billing,
		logger:    logger,
	}
}

// Run выполняет одну попытку покупки от резолвленных позиций до
// терминального состояния. Движок одноразовый: повторный Run
// возвращает ErrEngineConsumed — рестарт всегда начинается с нового
// движка и нового quote.
func (e *Engine) Run(ctx context.Context, items []domain.LineItem, opts Options) (Outcome, error) {
	if e.consumed {
		return OutcomeDeclined, domain.ErrEngineConsumed
	}
	e.consumed = true
	e.attemptID = uuid.NewString()
	e.logger = e.logger.WithField("attempt_id", e.attemptID)

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return OutcomeDeclined, err
		}
	}

	alloc, proceed, err := e.quote(ctx, items)
	if err != nil {
		return OutcomeDeclined, err
	}
	if !proceed {
		return OutcomeDeclined, nil
	}

	e.record(domain.StateQuoted, "", alloc.EstimatedTotal(), "")

	if opts.Verbose && e.catalog != nil {
		if err := e.catalog.DescribeLines(ctx, &alloc); err != nil {
			// Манифест — удобство, а не условие покупки.
			e.logger.WithError(err).Warn("could not fetch inventory details")
		}
	}
	e.presenter.ShowQuote(alloc, opts.Verbose)

	if !opts.Buy {
		e.logger.Info("price check only; pass -buy to enable purchasing")
		return OutcomeQuoteOnly, nil
	}

	// Чекпоинт 1: согласие на создание резервации.
	ok, err := e.prompt.Confirm("Proceed to calculate the final total with tax and shipping?")
	if err != nil {
		return OutcomeDeclined, fmt.Errorf("checkpoint 1: %w", err)
	}
	if !ok {
		// Ничего не зарезервировано, отменять нечего.
		e.record(domain.StateReleased, "", 0, "declined at checkpoint 1")
		e.logger.Info("purchase cancelled by operator")
		return OutcomeDeclined, nil
	}

	pending, err := e.placeReservation(ctx, alloc)
	if err != nil {
		// Reserve не идемпотентен: молчаливый повтор может
		// зарезервировать инвентарь дважды. Только явный перезапуск
		// с нового quote.
		e.logger.WithError(err).Error("reservation failed; re-run the workflow to retry from a fresh quote")
		return OutcomeDeclined, err
	}
	e.record(domain.StateReserved, pending.ID, pending.Totals.Total, "")

	e.presenter.ShowFinalTotals(alloc, pending.Totals)

	// Чекпоинт 2: согласие на списание по авторитетной сумме.
	ok, err = e.prompt.Confirm("Confirm purchase? This action is irreversible.")
	if err != nil {
		e.release(ctx, pending, "checkpoint 2 aborted")
		return OutcomeDeclined, fmt.Errorf("checkpoint 2: %w", err)
	}
	if !ok {
		// Резервацию нельзя бросать молча: она держит инвентарь.
		e.release(ctx, pending, "declined at checkpoint 2")
		e.logger.Info("purchase cancelled by operator")
		return OutcomeDeclined, nil
	}

	receipt, err := e.market.Confirm(ctx, pending.ID, e.billing, e.shipping)
	if err != nil {
		return OutcomeDeclined, e.handleConfirmFailure(ctx, pending, err)
	}
	e.pending = nil

	e.record(domain.StateConfirmed, receipt.OrderID, receipt.ChargedTotal, "")
	e.presenter.ShowReceipt(receipt)
	e.logger.WithFields(log.Fields{
		"order_id": receipt.OrderID,
		"total":    receipt.ChargedTotal,
	}).Info("purchase confirmed")

	return OutcomeConfirmed, nil
}

// quote получает распределение корзины, повторяя временные ошибки.
// При частичной недоступности позиций объём сокращается только после
// явного подтверждения оператора, и цена запрашивается заново.
func (e *Engine) quote(ctx context.Context, items []domain.LineItem) (domain.CartAllocation, bool, error) {
	alloc, err := e.optimizeWithRetry(ctx, items)
	if err == nil {
		return alloc, true, nil
	}

	ue, ok := domain.AsUnavailable(err)
	if !ok {
		return domain.CartAllocation{}, false, err
	}

	e.presenter.ShowUnavailable(ue.Identifiers)

	remaining := removeUnavailable(items, ue.Identifiers)
	if len(remaining) == 0 {
		return domain.CartAllocation{}, false, fmt.Errorf("%w: no requested items have matching inventory", domain.ErrInvalidInput)
	}

	proceed, perr := e.prompt.Confirm(fmt.Sprintf("Proceed with the remaining %d line item(s) only?", len(remaining)))
	if perr != nil {
		return domain.CartAllocation{}, false, fmt.Errorf("reduced scope confirmation: %w", perr)
	}
	if !proceed {
		e.logger.Info("operator declined the reduced scope")
		return domain.CartAllocation{}, false, nil
	}

	// Сокращённый объём проходит оптимизацию заново: первый чекпоинт
	// всегда показывает настоящий, свежий результат оптимизатора.
	alloc, err = e.optimizeWithRetry(ctx, remaining)
	if err != nil {
		return domain.CartAllocation{}, false, err
	}
	return alloc, true, nil
}

func (e *Engine) optimizeWithRetry(ctx context.Context, items []domain.LineItem) (domain.CartAllocation, error) {
	var alloc domain.CartAllocation
	err := withRetry(e.retry, e.logger, "optimize", func() error {
		var optErr error
		alloc, optErr = e.optimizer.Optimize(ctx, items)
		return optErr
	})
	return alloc, err
}

// placeReservation — единственная точка создания pending order.
func (e *Engine) placeReservation(ctx context.Context, alloc domain.CartAllocation) (*domain.PendingOrder, error) {
	if e.pending != nil {
		return nil, domain.ErrReservationPending
	}

	order, err := e.market.Reserve(ctx, alloc, e.shipping)
	if err != nil {
		return nil, err
	}
	e.pending = &order
	return &order, nil
}

// release синхронно отменяет резервацию перед выходом. Ошибка отмены
// логируется и попадает в журнал, но исход запуска не меняет.
func (e *Engine) release(ctx context.Context, pending *domain.PendingOrder, reason string) {
	if err := e.market.Release(ctx, pending.ID); err != nil {
		e.logger.WithError(err).WithField("order_id", pending.ID).
			Error("release failed; the reservation will expire server-side")
		e.record(domain.StateReleased, pending.ID, pending.Totals.Total, reason+" (release call failed)")
		return
	}
	e.pending = nil
	e.record(domain.StateReleased, pending.ID, pending.Totals.Total, reason)
}

// handleConfirmFailure различает истёкшую резервацию и отклонённый
// платёж: в первом случае отменять нечего и лечение — перезапуск с
// нового quote, во втором резервация ещё жива и её надо отменить.
func (e *Engine) handleConfirmFailure(ctx context.Context, pending *domain.PendingOrder, err error) error {
	if errors.Is(err, domain.ErrReservationExpired) {
		e.pending = nil
		e.record(domain.StateReleased, pending.ID, 0, "reservation expired server-side")
		e.logger.WithError(err).Error("the reservation expired; re-run the workflow from a fresh quote")
		return err
	}

	// Списание никогда не повторяется вслепую: статус заказа на сервере
	// неизвестен, а двойное списание хуже ручной проверки.
	e.release(ctx, pending, "finalize failed: "+err.Error())
	e.logger.WithError(err).Error("purchase failed; no charge is assumed to have happened")
	return err
}

// record добавляет переход в журнал покупок. Журнал — аудит, его
// недоступность не должна ронять денежный поток.
func (e *Engine) record(state domain.WorkflowState, orderID string, amount domain.Cents, reason string) {
	if e.journal == nil {
		return
	}
	event := domain.JournalEvent{
		AttemptID: e.attemptID,
		State:     state,
		OrderID:   orderID,
		Amount:    amount,
		Reason:    reason,
		Occurred:  time.Now().UTC(),
	}
	if err := e.journal.Append(event); err != nil {
		e.logger.WithError(err).WithField("state", state).Warn("journal append failed")
	}
}

// removeUnavailable отбрасывает позиции, перечисленные сервером как
// не имеющие инвентаря. Позиции никогда не выбрасываются молча:
// вызывающая сторона обязана показать перечень оператору.
func removeUnavailable(items []domain.LineItem, identifiers []string) []domain.LineItem {
	missing := make(map[string]struct{}, len(identifiers))
	for _, id := range identifiers {
		missing[id] = struct{}{}
	}

	remaining := make([]domain.LineItem, 0, len(items))
	for _, item := range items {
		if _, gone := missing[item.Ref.Key()]; gone {
			continue
		}
		if _, gone := missing[item.Ref.Name]; gone && item.Ref.Name != "" {
			continue
		}
		remaining = append(remaining, item)
	}
	return remaining
}
