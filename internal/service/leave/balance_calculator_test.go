package leave

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var entitlements = Entitlements{Casual: 12, Sick: 12, Earned: 15}

func TestEntitled_ProratesJoiningYear(t *testing.T) {
	calc := NewBalanceCalculator(entitlements)

	veteran := employee.Employee{JoinedAt: date(2019, 3, 15)}
	assert.Equal(t, 12.0, calc.Entitled(veteran, leave.TypeCasual, 2024))

	// Joined on July 1st: six full months remain.
	july := employee.Employee{JoinedAt: date(2024, 7, 1)}
	assert.Equal(t, 6.0, calc.Entitled(july, leave.TypeCasual, 2024))
	assert.Equal(t, 7.5, calc.Entitled(july, leave.TypeEarned, 2024))

	// Joined mid-month: that month does not count.
	midMonth := employee.Employee{JoinedAt: date(2024, 7, 10)}
	assert.Equal(t, 5.0, calc.Entitled(midMonth, leave.TypeCasual, 2024))

	assert.Equal(t, 0.0, calc.Entitled(july, leave.TypeCasual, 2023))
	assert.Equal(t, 0.0, calc.Entitled(veteran, leave.TypeUnpaid, 2024))
}

func TestWorkingDays_SkipsWeekOffsAndHolidays(t *testing.T) {
	calc := NewBalanceCalculator(entitlements)
	emp := employee.Employee{WeekOffDays: []string{"Saturday", "Sunday"}}

	// 2024-06-10 is a Monday.
	assert.Equal(t, 5, calc.WorkingDays(emp, date(2024, 6, 10), date(2024, 6, 16), calendar.NewSet()))
	assert.Equal(t, 4, calc.WorkingDays(emp, date(2024, 6, 10), date(2024, 6, 16), calendar.NewSet(date(2024, 6, 12))))
	assert.Equal(t, 0, calc.WorkingDays(emp, date(2024, 6, 15), date(2024, 6, 16), calendar.NewSet()))
}

func TestBalances(t *testing.T) {
	calc := NewBalanceCalculator(entitlements)
	emp := employee.Employee{JoinedAt: date(2020, 1, 1), WeekOffDays: []string{"Sunday"}}

	requests := []leave.LeaveRequest{
		{LeaveType: leave.TypeCasual, StartDate: date(2024, 6, 10), EndDate: date(2024, 6, 12), Status: leave.StatusApproved},
		{LeaveType: leave.TypeCasual, StartDate: date(2024, 8, 1), EndDate: date(2024, 8, 1), Status: leave.StatusPending},
		{LeaveType: leave.TypeUnpaid, StartDate: date(2024, 9, 2), EndDate: date(2024, 9, 3), Status: leave.StatusApproved},
		// Only Dec 30 and Dec 31 fall inside 2024.
		{LeaveType: leave.TypeEarned, StartDate: date(2024, 12, 30), EndDate: date(2025, 1, 3), Status: leave.StatusApproved},
	}

	got := calc.Balances(emp, 2024, requests, calendar.NewSet())
	byType := make(map[leave.Type]leave.BalanceResponse)
	for _, b := range got {
		byType[b.LeaveType] = b
	}

	assert.Len(t, got, 4)
	assert.Equal(t, leave.BalanceResponse{LeaveType: leave.TypeCasual, Entitled: 12, Used: 3, Pending: 1, Remaining: 8}, byType[leave.TypeCasual])
	assert.Equal(t, leave.BalanceResponse{LeaveType: leave.TypeSick, Entitled: 12, Remaining: 12}, byType[leave.TypeSick])
	assert.Equal(t, leave.BalanceResponse{LeaveType: leave.TypeEarned, Entitled: 15, Used: 2, Remaining: 13}, byType[leave.TypeEarned])
	assert.Equal(t, leave.BalanceResponse{LeaveType: leave.TypeUnpaid, Used: 2}, byType[leave.TypeUnpaid])
}
