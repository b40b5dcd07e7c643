package dashboard

import (
	"context"
	"errors"
)

var ErrDashboardUnavailable = errors.New("error fetching dashboard data")

type DashboardService interface {
	// GetDashboard loads every figure concurrently. Any failed read fails the whole call.
	GetDashboard(ctx context.Context) (DashboardResponse, error)
}
