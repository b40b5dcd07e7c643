package leave

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
)

type Type string

const (
	TypeCasual Type = "casual"
	TypeSick   Type = "sick"
	TypeEarned Type = "earned"
	TypeUnpaid Type = "unpaid"
)

// Types lists the leave types in display order.
var Types = []Type{TypeCasual, TypeSick, TypeEarned, TypeUnpaid}

func (t Type) Valid() bool {
	switch t {
	case TypeCasual, TypeSick, TypeEarned, TypeUnpaid:
		return true
	}
	return false
}

// Paid reports whether days on this leave count as paid days in payroll.
func (t Type) Paid() bool {
	return t != TypeUnpaid
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

type LeaveRequest struct {
	ID         string
	CompanyID  string
	EmployeeID string
	LeaveType  Type
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
	Status     Status
	ReviewedBy *string
	ReviewedAt *time.Time
	ReviewNote *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Join
	EmployeeName *string
	EmployeeCode *string
}

// Covers reports whether date falls inside the request, both ends inclusive.
func (l LeaveRequest) Covers(date time.Time) bool {
	return calendar.Within(date, l.StartDate, l.EndDate)
}

// TotalDays is the number of calendar days requested.
func (l LeaveRequest) TotalDays() int {
	return len(calendar.Days(l.StartDate, l.EndDate))
}
