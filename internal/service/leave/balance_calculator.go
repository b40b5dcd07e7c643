package leave

import (
	"math"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
)

// Entitlements is the annual number of paid leave days per leave type.
type Entitlements struct {
	Casual float64
	Sick   float64
	Earned float64
}

func (e Entitlements) For(t leave.Type) float64 {
	switch t {
	case leave.TypeCasual:
		return e.Casual
	case leave.TypeSick:
		return e.Sick
	case leave.TypeEarned:
		return e.Earned
	}
	return 0
}

type BalanceCalculator struct {
	entitlements Entitlements
}

func NewBalanceCalculator(entitlements Entitlements) *BalanceCalculator {
	return &BalanceCalculator{entitlements: entitlements}
}

// Entitled returns the employee's allowance of t for year. An employee who
// joined during the year receives the share of full months remaining, rounded
// down to the nearest half day.
func (c *BalanceCalculator) Entitled(emp employee.Employee, t leave.Type, year int) float64 {
	annual := c.entitlements.For(t)
	if annual == 0 || emp.JoinedAt.IsZero() {
		return annual
	}

	months := c.monthsEmployedIn(emp.JoinedAt, year)
	return math.Floor(annual*float64(months)/12*2) / 2
}

func (c *BalanceCalculator) monthsEmployedIn(joinedAt time.Time, year int) int {
	switch {
	case joinedAt.Year() < year:
		return 12
	case joinedAt.Year() > year:
		return 0
	}
	months := 12 - int(joinedAt.Month()) + 1
	if joinedAt.Day() > 1 {
		months--
	}
	return months
}

// WorkingDays counts the days in [from, to] that are neither the employee's
// week-offs nor holidays.
func (c *BalanceCalculator) WorkingDays(emp employee.Employee, from, to time.Time, holidays calendar.Set) int {
	weekOffs := emp.WeekOffs()
	n := 0
	for _, d := range calendar.Days(from, to) {
		if weekOffs[d.Weekday()] || holidays.Has(d) {
			continue
		}
		n++
	}
	return n
}

// Balances summarises requests of one employee overlapping year. Only the part
// of each request inside the year is counted.
func (c *BalanceCalculator) Balances(emp employee.Employee, year int, requests []leave.LeaveRequest, holidays calendar.Set) []leave.BalanceResponse {
	yearStart, yearEnd := calendar.YearRange(year)

	used := make(map[leave.Type]float64)
	pending := make(map[leave.Type]float64)
	for _, r := range requests {
		from, to := r.StartDate, r.EndDate
		if from.Before(yearStart) {
			from = yearStart
		}
		if to.After(yearEnd) {
			to = yearEnd
		}
		days := float64(c.WorkingDays(emp, from, to, holidays))
		switch r.Status {
		case leave.StatusApproved:
			used[r.LeaveType] += days
		case leave.StatusPending:
			pending[r.LeaveType] += days
		}
	}

	out := make([]leave.BalanceResponse, 0, len(leave.Types))
	for _, t := range leave.Types {
		b := leave.BalanceResponse{
			LeaveType: t,
			Used:      used[t],
			Pending:   pending[t],
		}
		if t.Paid() {
			b.Entitled = c.Entitled(emp, t, year)
			b.Remaining = math.Max(0, b.Entitled-b.Used-b.Pending)
		}
		out = append(out, b)
	}
	return out
}
