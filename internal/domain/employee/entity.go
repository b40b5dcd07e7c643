package employee

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/shiftclock"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type Employee struct {
	ID           string
	CompanyID    string
	UserID       *string
	OfficeID     *string
	EmployeeCode string
	FullName     string
	Email        string
	Phone        string
	Designation  string
	ShiftStart   string
	ShiftEnd     string
	WeekOffDays  []string
	BaseSalary   decimal.Decimal
	Status       Status
	JoinedAt     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Join
	OfficeName     *string
	OfficeTimezone *string
	Role           *string
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// DefaultWeekOffDays applies when an employee is created without week-off days.
var DefaultWeekOffDays = []string{"Sunday"}

// ShiftWindow returns the employee's shift, or the default 9 to 6 window when the
// stored strings are missing or malformed.
func (e Employee) ShiftWindow() shiftclock.Window {
	return shiftclock.WindowOrDefault(e.ShiftStart, e.ShiftEnd)
}

// WeekOffs returns the set of weekdays the employee does not work.
func (e Employee) WeekOffs() map[time.Weekday]bool {
	days := make(map[time.Weekday]bool, len(e.WeekOffDays))
	for _, name := range e.WeekOffDays {
		if d, ok := validator.ParseWeekday(name); ok {
			days[d] = true
		}
	}
	return days
}

// Location returns the timezone that defines the employee's calendar day.
func (e Employee) Location(fallback *time.Location) *time.Location {
	if e.OfficeTimezone != nil && *e.OfficeTimezone != "" {
		if loc, err := time.LoadLocation(*e.OfficeTimezone); err == nil {
			return loc
		}
	}
	return fallback
}
