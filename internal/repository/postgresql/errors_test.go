package postgresql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "employees_company_id_employee_code_key"}
	wrapped := fmt.Errorf("insert: %w", pgErr)

	assert.True(t, isUniqueViolation(wrapped, ""))
	assert.True(t, isUniqueViolation(wrapped, "employees_company_id_employee_code_key"))
	assert.False(t, isUniqueViolation(wrapped, "idx_employees_user"))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}, ""))
	assert.False(t, isUniqueViolation(errors.New("boom"), ""))
}

func TestPageOffset(t *testing.T) {
	limit, offset := pageOffset(3, 25)
	assert.Equal(t, 25, limit)
	assert.Equal(t, 50, offset)

	limit, offset = pageOffset(0, 0)
	assert.Equal(t, 20, limit)
	assert.Equal(t, 0, offset)
}

func TestHashToken_Stable(t *testing.T) {
	assert.Equal(t, hashToken("abc"), hashToken("abc"))
	assert.NotEqual(t, hashToken("abc"), hashToken("abd"))
}
