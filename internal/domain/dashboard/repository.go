package dashboard

import (
	"context"
	"time"
)

// EmployeeCounts holds the headcount figures of a company.
type EmployeeCounts struct {
	Total    int64
	Active   int64
	Inactive int64
	New      int64
}

type DashboardRepository interface {
	// CountEmployees returns all counts in one query. New counts employees who
	// joined on or after since.
	CountEmployees(ctx context.Context, companyID string, since time.Time) (EmployeeCounts, error)
}
