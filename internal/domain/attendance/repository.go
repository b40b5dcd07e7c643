package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for punch records.
// Methods taking companyID scope the query to that tenant.
type AttendanceRepository interface {
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string, companyID string) (Attendance, error)

	// GetByEmployeeAndDate returns nil when the employee has no record on date.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	Update(ctx context.Context, attendance Attendance) error

	Delete(ctx context.Context, id string, companyID string) error

	// List retrieves records with filters and pagination
	List(ctx context.Context, filter AttendanceFilter, companyID string) ([]Attendance, int64, error)

	// ListBetween returns records with from <= date <= to. An empty employeeID
	// returns every employee of the company.
	ListBetween(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]Attendance, error)

	// ListOpenBefore returns records across all companies dated before 'before'
	// that have a punch in and no punch out.
	ListOpenBefore(ctx context.Context, before time.Time) ([]Attendance, error)
}

type PolicyRepository interface {
	// Get returns nil when the company has not saved a policy.
	Get(ctx context.Context, companyID string) (*Policy, error)
	Upsert(ctx context.Context, policy Policy) (Policy, error)
}
