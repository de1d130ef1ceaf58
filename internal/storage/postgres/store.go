package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	defaultConnTimeout     = 5 * time.Second
	defaultMaxOpenConns    = 4
	defaultMaxIdleConns    = 2
	defaultConnMaxLifetime = 30 * time.Minute

	opTimeout = 5 * time.Second
)

// Store оборачивает SQL-подключение к PostgreSQL для журнала покупок.
type Store struct {
	db *sql.DB
}

// Open открывает подключение и проверяет доступность базы.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}
	db.SetMaxOpenConns(defaultMaxOpenConns)
	db.SetMaxIdleConns(defaultMaxIdleConns)
	db.SetConnMaxLifetime(defaultConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, defaultConnTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &Store{db: db}, nil
}

// DB возвращает raw SQL DB, когда нужен низкоуровневый доступ.
func (s *Store) DB() *sql.DB {
	return s.db
}

// EnsureSchema создаёт таблицу журнала, если её ещё нет.
func (s *Store) EnsureSchema(ctx context.Context) error {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := s.db.ExecContext(opCtx, `
		CREATE TABLE IF NOT EXISTS purchase_journal (
			id           BIGSERIAL PRIMARY KEY,
			attempt_id   TEXT        NOT NULL,
			state        TEXT        NOT NULL,
			order_id     TEXT        NOT NULL DEFAULT '',
			amount_cents BIGINT      NOT NULL DEFAULT 0,
			reason       TEXT        NOT NULL DEFAULT '',
			occurred     TIMESTAMPTZ NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("ensure purchase_journal schema: %w", err)
	}

	if _, err := s.db.ExecContext(opCtx, `
		CREATE INDEX IF NOT EXISTS purchase_journal_attempt_idx
			ON purchase_journal (attempt_id, occurred)
	`); err != nil {
		return fmt.Errorf("ensure purchase_journal index: %w", err)
	}

	return nil
}

// Close закрывает подключение к БД.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
