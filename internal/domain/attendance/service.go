package attendance

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// PunchIn records the authenticated employee's arrival for today
	PunchIn(ctx context.Context, req PunchRequest) (AttendanceResponse, error)

	// PunchOut records the authenticated employee's departure for today
	PunchOut(ctx context.Context, req PunchRequest) (AttendanceResponse, error)

	GetMyAttendance(ctx context.Context, filter MyAttendanceFilter) (ListAttendanceResponse, error)

	// ListAttendance retrieves records of the whole company (manager+)
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)

	// UpdateAttendance corrects punch times of a record (manager+)
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)

	DeleteAttendance(ctx context.Context, id string) error

	// Report derives the status of every day in the range for each employee
	Report(ctx context.Context, filter ReportFilter) (ReportResponse, error)

	GetPolicy(ctx context.Context) (PolicyResponse, error)
	UpdatePolicy(ctx context.Context, req UpdatePolicyRequest) (PolicyResponse, error)

	// Classify runs the classifier over caller supplied values without touching stored punches
	Classify(ctx context.Context, req ClassifyRequest) (ClassifyResponse, error)

	// AutoCloseOpenPunches punches out records left open on earlier days at the shift end.
	// It runs from the scheduler and spans all companies.
	AutoCloseOpenPunches(ctx context.Context) (int, error)
}

// Evaluator derives the daily status of employees over a date range. It is the
// single path by which reports, the dashboard and payroll classify days.
type Evaluator interface {
	// Policy returns the company's saved policy or the configured default.
	Policy(ctx context.Context, companyID string) (Policy, error)

	// Evaluate returns, keyed by employee ID, one Day per date in [from, to],
	// leaving out dates before the employee joined and dates still in the future.
	Evaluate(ctx context.Context, companyID string, employees []employee.Employee, from, to time.Time) (map[string][]Day, error)
}
