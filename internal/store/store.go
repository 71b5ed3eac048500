// Package store is the only persistence surface of the scoring core.
//
// Every accessor swallows storage faults: the fault is logged and the
// caller receives a neutral sentinel (0, nil, an empty slice or false).
// Callers treat a sentinel as "did not happen" and must not continue with
// dependent writes. Multi-step writes run inside Transaction.
package store

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/r3p1n/scoring/internal/logging"
)

type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

func New(conn *gorm.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Store{db: conn, logger: logger}
}

// Transaction runs fn against a transaction-scoped Store. Returning an
// error from fn rolls back every write made through tx.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	if s.db == nil {
		return errors.New("db connection is nil")
	}
	err := s.db.WithContext(ctx).Transaction(func(conn *gorm.DB) error {
		return fn(&Store{db: conn, logger: s.logger})
	})
	if err != nil {
		s.logger.Warn("transaction rolled back", slog.Any("error", err))
	}
	return err
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func (s *Store) ready() bool {
	return s != nil && s.db != nil
}

func (s *Store) fault(op string, err error, attrs ...any) {
	args := append([]any{slog.String("op", op), slog.Any("error", err)}, attrs...)
	s.logger.Error("store operation failed", args...)
}
