package memory

import (
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/manabuy/internal/domain"
)

// purchaseJournalInMemory хранит события попыток покупки в памяти.
// Используется по умолчанию, когда внешняя БД не настроена, и в тестах.
type purchaseJournalInMemory struct {
	mu     sync.RWMutex
	events map[string][]domain.JournalEvent
}

// NewPurchaseJournal создаёт in-memory реализацию PurchaseJournal.
func NewPurchaseJournal() domain.PurchaseJournal {
	return &purchaseJournalInMemory{events: make(map[string][]domain.JournalEvent)}
}

// Append добавляет событие в журнал попытки.
func (j *purchaseJournalInMemory) Append(event domain.JournalEvent) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.events[event.AttemptID] = append(j.events[event.AttemptID], event)

	sort.SliceStable(j.events[event.AttemptID], func(a, b int) bool {
		return j.events[event.AttemptID][a].Occurred.Before(j.events[event.AttemptID][b].Occurred)
	})

	return nil
}

// List возвращает события попытки в хронологическом порядке.
func (j *purchaseJournalInMemory) List(attemptID string) ([]domain.JournalEvent, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	events := j.events[attemptID]
	result := make([]domain.JournalEvent, len(events))
	copy(result, events)
	return result, nil
}

var _ domain.PurchaseJournal = (*purchaseJournalInMemory)(nil)
