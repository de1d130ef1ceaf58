package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/manabuy/internal/domain"
)

type purchaseJournal struct {
	db *sql.DB
}

// NewPurchaseJournal создаёт PostgreSQL-реализацию PurchaseJournal.
func NewPurchaseJournal(store *Store) domain.PurchaseJournal {
	return &purchaseJournal{db: store.DB()}
}

func (j *purchaseJournal) Append(event domain.JournalEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if event.Occurred.IsZero() {
		event.Occurred = time.Now().UTC()
	}

	if _, err := j.db.ExecContext(ctx, `
		INSERT INTO purchase_journal (attempt_id, state, order_id, amount_cents, reason, occurred)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, event.AttemptID, string(event.State), event.OrderID, int64(event.Amount), event.Reason, event.Occurred); err != nil {
		return fmt.Errorf("append journal event: %w", err)
	}

	return nil
}

func (j *purchaseJournal) List(attemptID string) ([]domain.JournalEvent, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := j.db.QueryContext(ctx, `
		SELECT attempt_id, state, order_id, amount_cents, reason, occurred
		FROM purchase_journal
		WHERE attempt_id = $1
		ORDER BY occurred ASC, id ASC
	`, attemptID)
	if err != nil {
		return nil, fmt.Errorf("list journal events: %w", err)
	}
	defer rows.Close()

	events := make([]domain.JournalEvent, 0)
	for rows.Next() {
		var (
			event  domain.JournalEvent
			state  string
			amount int64
		)
		if err := rows.Scan(&event.AttemptID, &state, &event.OrderID, &amount, &event.Reason, &event.Occurred); err != nil {
			return nil, fmt.Errorf("scan journal event: %w", err)
		}
		event.State = domain.WorkflowState(state)
		event.Amount = domain.Cents(amount)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal events: %w", err)
	}

	return events, nil
}

var _ domain.PurchaseJournal = (*purchaseJournal)(nil)
