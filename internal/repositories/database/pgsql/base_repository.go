package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sokofin/corebank/internal/apperrors"
)

// PgxPool is the subset of pgxpool.Pool the repositories use. Tests
// substitute a mock pool through this interface.
type PgxPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BaseRepository provides common functionality for all repositories.
// TxTimeout bounds each transactional unit of work; zero disables the
// bound.
type BaseRepository struct {
	Pool      PgxPool
	TxTimeout time.Duration
}

// Bounded derives the deadline for one database unit of work. The
// returned cancel must run when the unit of work finishes.
func (r *BaseRepository) Bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.TxTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.TxTimeout)
}

// Begin starts a new database transaction.
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to begin transaction")
	}
	return tx, nil
}

// Commit commits a transaction.
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "failed to commit transaction")
	}
	return nil
}

// Rollback rolls back a transaction. Safe to defer after a successful
// commit.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.Wrap(apperrors.CodeInternal, err, "failed to rollback transaction")
	}
	return nil
}
