package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	domerrors "github.com/orgstack/orgd/internal/domain/errors"
)

func TestMapErrorUniqueViolation(t *testing.T) {
	err := mapError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "organizations_pkey"})
	assert.ErrorIs(t, err, domerrors.ErrOrgExists)
}

func TestMapErrorPassthrough(t *testing.T) {
	assert.NoError(t, mapError(nil))

	plain := errors.New("boom")
	assert.Equal(t, plain, mapError(plain))
}

func TestMapErrorRetryableConflict(t *testing.T) {
	err := mapError(&pgconn.PgError{Code: pgerrcode.DeadlockDetected})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domerrors.ErrOrgExists)
}
