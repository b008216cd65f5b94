package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation_DetectaCodigo23505(t *testing.T) {
	err := &pgconn.PgError{Code: "23505", ConstraintName: "uq_checkouts_open_asset"}
	assert.True(t, isUniqueViolation(err))
	assert.False(t, isForeignKeyViolation(err))

	// También envuelto, como sale de los repositorios.
	assert.True(t, isUniqueViolation(fmt.Errorf("insert checkout: %w", err)))
}

func TestIsForeignKeyViolation_DetectaCodigo23503(t *testing.T) {
	err := &pgconn.PgError{Code: "23503", ConstraintName: "stock_movements_product_id_fkey"}
	assert.True(t, isForeignKeyViolation(err))
	assert.False(t, isUniqueViolation(err))

	assert.True(t, isForeignKeyViolation(fmt.Errorf("create stock movement: %w", err)))
}

func TestSQLState_OtrosErroresNoCoinciden(t *testing.T) {
	assert.False(t, isUniqueViolation(errors.New("connection refused")))
	assert.False(t, isForeignKeyViolation(errors.New("connection refused")))
}
