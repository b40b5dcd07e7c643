package leave

import (
	"context"
	"time"
)

type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id, companyID string) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveFilter, companyID string) ([]LeaveRequest, int64, error)
	UpdateStatus(ctx context.Context, request LeaveRequest) error

	// HasOverlap reports whether the employee has a pending or approved request
	// sharing at least one day with [from, to].
	HasOverlap(ctx context.Context, employeeID string, from, to time.Time) (bool, error)

	// ListActiveBetween returns pending and approved requests overlapping [from, to].
	// An empty employeeID returns requests for the whole company.
	ListActiveBetween(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]LeaveRequest, error)

	CountPending(ctx context.Context, companyID string) (int, error)
}
