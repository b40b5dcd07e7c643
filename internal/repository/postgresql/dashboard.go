package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// CountEmployees implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) CountEmployees(ctx context.Context, companyID string, since time.Time) (dashboard.EmployeeCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'active'),
			COUNT(*) FILTER (WHERE status = 'inactive'),
			COUNT(*) FILTER (WHERE joined_at >= $2)
		FROM employees
		WHERE company_id = $1
	`

	var counts dashboard.EmployeeCounts
	if err := q.QueryRow(ctx, query, companyID, since).Scan(&counts.Total, &counts.Active, &counts.Inactive, &counts.New); err != nil {
		return dashboard.EmployeeCounts{}, fmt.Errorf("failed to count employees: %w", err)
	}
	return counts, nil
}
