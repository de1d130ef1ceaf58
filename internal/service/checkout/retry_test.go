package checkout

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/manabuy/internal/domain"
)

func TestWithRetry_StopsOnSuccess(t *testing.T) {
	calls := 0
	err := withRetry(fastRetry(), quietLogger(), "op", func() error {
		calls++
		if calls < 2 {
			return fmt.Errorf("%w: blip", domain.ErrTransientNetwork)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestWithRetry_ExhaustsAndReturnsLastError(t *testing.T) {
	calls := 0
	wrapped := fmt.Errorf("%w: still down", domain.ErrTransientNetwork)
	err := withRetry(fastRetry(), quietLogger(), "op", func() error {
		calls++
		return wrapped
	})
	if !errors.Is(err, domain.ErrTransientNetwork) {
		t.Fatalf("got %v, want the transient error", err)
	}
	if err.Error() != wrapped.Error() {
		t.Errorf("error must be surfaced unchanged, got %q", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want the configured bound 3", calls)
	}
}

func TestWithRetry_NonTransientImmediate(t *testing.T) {
	calls := 0
	err := withRetry(fastRetry(), quietLogger(), "op", func() error {
		calls++
		return domain.ErrAuthentication
	})
	if !errors.Is(err, domain.ErrAuthentication) {
		t.Fatalf("got %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, non-transient errors must not be retried", calls)
	}
}

func TestWithRetry_DelayCappedByMax(t *testing.T) {
	cfg := RetryConfig{
		MaxAttempts:   4,
		InitialDelay:  time.Millisecond,
		MaxDelay:      2 * time.Millisecond,
		BackoffFactor: 10,
	}

	start := time.Now()
	_ = withRetry(cfg, quietLogger(), "op", func() error {
		return fmt.Errorf("%w: down", domain.ErrTransientNetwork)
	})
	// 1ms + 2ms + 2ms задержек; без ограничения было бы >100ms.
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("backoff not capped, took %v", elapsed)
	}
}
