package memory

import (
	"testing"
	"time"

	"github.com/vladislavdragonenkov/manabuy/internal/domain"
)

func TestPurchaseJournal_AppendAndList(t *testing.T) {
	journal := NewPurchaseJournal()
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	// Добавляем в обратном порядке: List обязан вернуть хронологию.
	events := []domain.JournalEvent{
		{AttemptID: "a-1", State: domain.StateReserved, OrderID: "po-1", Occurred: base.Add(time.Second)},
		{AttemptID: "a-1", State: domain.StateQuoted, Occurred: base},
		{AttemptID: "a-2", State: domain.StateQuoted, Occurred: base},
	}
	for _, ev := range events {
		if err := journal.Append(ev); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := journal.List("a-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].State != domain.StateQuoted || got[1].State != domain.StateReserved {
		t.Errorf("events out of order: %+v", got)
	}

	empty, err := journal.List("missing")
	if err != nil || len(empty) != 0 {
		t.Errorf("missing attempt: got %v, %v", empty, err)
	}
}

func TestPurchaseJournal_ListReturnsCopy(t *testing.T) {
	journal := NewPurchaseJournal()
	if err := journal.Append(domain.JournalEvent{AttemptID: "a-1", State: domain.StateQuoted}); err != nil {
		t.Fatalf("append: %v", err)
	}

	first, _ := journal.List("a-1")
	first[0].State = domain.StateConfirmed

	second, _ := journal.List("a-1")
	if second[0].State != domain.StateQuoted {
		t.Error("List must return an isolated copy")
	}
}
