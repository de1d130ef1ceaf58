package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInput — некорректный запрос покупателя; фатально,
	// сообщается до любого сетевого вызова.
	ErrInvalidInput = errors.New("invalid input")
	// ErrAuthentication — отсутствующий или отклонённый токен доступа;
	// фатально, повтор не имеет смысла.
	ErrAuthentication = errors.New("authentication failed")
	// ErrTransientNetwork — временная сетевая ошибка; допускает
	// ограниченный повтор с backoff.
	ErrTransientNetwork = errors.New("transient network error")
	// ErrReservationExpired — резервация истекла на сервере; требуется
	// полный перезапуск с нового quote, а не повтор финализации.
	ErrReservationExpired = errors.New("reservation expired")
	// ErrPaymentDeclined — платёж отклонён; повтор списания вслепую запрещён.
	ErrPaymentDeclined = errors.New("payment declined")
	// ErrReservationPending сигнализирует о нарушении протокола: попытка
	// создать вторую резервацию, пока первая не разрешена.
	ErrReservationPending = errors.New("pending order already exists for this attempt")
	// ErrEngineConsumed — повторный запуск одноразового workflow.
	ErrEngineConsumed = errors.New("checkout engine already consumed")
)

// UnavailableItemsError сообщает, какие позиции запроса не имеют
// подходящего инвентаря. Частичный отказ: workflow обязан показать
// перечень оператору и продолжить только после явного подтверждения
// сокращённого объёма.
type UnavailableItemsError struct {
	Identifiers []string
}

func (e *UnavailableItemsError) Error() string {
	return fmt.Sprintf("no matching inventory for: %s", strings.Join(e.Identifiers, ", "))
}

// AsUnavailable извлекает UnavailableItemsError из цепочки ошибок.
func AsUnavailable(err error) (*UnavailableItemsError, bool) {
	var ue *UnavailableItemsError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}

// IsTransient проверяет, допускает ли ошибка повтор с backoff.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransientNetwork)
}

// IsAuthentication проверяет, является ли ошибка отказом в авторизации.
func IsAuthentication(err error) bool {
	return errors.Is(err, ErrAuthentication)
}
