package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/stretchr/testify/require"
)

// tables lists every table the suite truncates between tests.
var tables = []string{
	"salary_slips", "payroll_settings", "dealer_visits", "expenses",
	"attendance_policies", "attendances", "leave_requests", "holidays",
	"employees", "refresh_tokens", "users", "offices", "companies",
}

// openTestDB connects to TEST_DATABASE_URL and applies migrations. Tests skip
// when the variable is unset.
func openTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	_, err = db.Migrate(ctx)
	require.NoError(t, err)
	require.NoError(t, truncateAll(ctx, db))
	return db
}

func truncateAll(ctx context.Context, db *database.DB) error {
	for _, table := range tables {
		if _, err := db.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}
	return nil
}

func createTestCompany(t *testing.T, db *database.DB) string {
	t.Helper()

	var companyID string
	err := db.QueryRow(context.Background(), `
		INSERT INTO companies (name, username)
		VALUES ('Test Company', 'test-company')
		RETURNING id
	`).Scan(&companyID)
	require.NoError(t, err)
	return companyID
}

func createTestEmployee(t *testing.T, db *database.DB, companyID, code string) string {
	t.Helper()

	var employeeID string
	err := db.QueryRow(context.Background(), `
		INSERT INTO employees (company_id, employee_code, full_name, base_salary)
		VALUES ($1, $2, 'Test Employee', 30000)
		RETURNING id
	`, companyID, code).Scan(&employeeID)
	require.NoError(t, err)
	return employeeID
}
