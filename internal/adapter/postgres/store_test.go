package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealflow/internal/core/domain"
)

func TestMapErrorUniqueViolation(t *testing.T) {
	err := mapError(fmt.Errorf("insert: %w", &pgconn.PgError{Code: codeUniqueViolation, ConstraintName: "settlements_contract_id_key"}))
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, err.Error(), "settlements_contract_id_key")
}

func TestMapErrorSerializationFailure(t *testing.T) {
	err := mapError(&pgconn.PgError{Code: codeSerializationFailure})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestMapErrorPassesThrough(t *testing.T) {
	other := errors.New("boom")
	assert.Equal(t, other, mapError(other))
	assert.NoError(t, mapError(nil))
	assert.ErrorIs(t, mapError(domain.ErrBudgetExceeded), domain.ErrConflict)
}

func TestNoRows(t *testing.T) {
	v := 1
	got, err := noRows(&v, pgx.ErrNoRows)
	assert.NoError(t, err)
	assert.Nil(t, got)

	got, err = noRows(&v, nil)
	assert.NoError(t, err)
	assert.Equal(t, &v, got)
}

func TestExpectOne(t *testing.T) {
	assert.NoError(t, expectOne(pgconn.NewCommandTag("UPDATE 1"), "contract %s", "c1"))
	err := expectOne(pgconn.NewCommandTag("UPDATE 0"), "contract %s is no longer %s", "c1", domain.ContractWorkSubmitted)
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, err.Error(), "contract c1 is no longer work_submitted")
}

func TestEncodeTiers(t *testing.T) {
	raw, err := encodeTiers(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))

	raw, err = encodeTiers([]domain.TierBonus{{Tier: 1, Bonus: 50}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"tier":1,"bonus":50}]`, string(raw))
}
