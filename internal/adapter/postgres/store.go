package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"dealflow/internal/core/domain"
	"dealflow/internal/core/port"
)

const (
	codeUniqueViolation      = "23505"
	codeSerializationFailure = "40001"
)

// Store implements port.Store using pgxpool for PostgreSQL. Uniqueness
// invariants (one contract per campaign and per bid, one report per
// submission, one settlement per contract, contiguous rounds) are unique
// indexes in the schema; status changes are conditional updates on the
// previous status.
type Store struct {
	pool *pgxpool.Pool
}

var _ port.Store = (*Store)(nil)

// NewStore returns a new store instance.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// inTx runs fn in a serializable transaction, committing when fn succeeds.
func (s *Store) inTx(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = mapError(tx.Commit(ctx))
		}
	}()
	return mapError(fn(tx))
}

// mapError translates constraint and serialization failures into
// domain.ErrConflict.
func mapError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%w: %s", domain.ErrConflict, pgErr.ConstraintName)
		case codeSerializationFailure:
			return fmt.Errorf("%w: concurrent update", domain.ErrConflict)
		}
	}
	return err
}

// noRows turns pgx.ErrNoRows into nil, nil for getters.
func noRows[T any](v *T, err error) (*T, error) {
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// expectOne reports a conditional update that matched nothing.
func expectOne(tag pgconn.CommandTag, format string, args ...any) error {
	if tag.RowsAffected() == 1 {
		return nil
	}
	return fmt.Errorf("%w: "+format, append([]any{domain.ErrConflict}, args...)...)
}

// execer is satisfied by both *pgxpool.Pool and pgx.Tx.
type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}
