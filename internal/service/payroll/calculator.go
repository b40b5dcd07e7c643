package payroll

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/shopspring/decimal"
)

var (
	half   = decimal.NewFromFloat(0.5)
	sixty  = decimal.NewFromInt(60)
	places = int32(2)
)

// Tally is a month of classified days for one employee. PresentDays counts full
// days worked whether on time or late; LateDays is the late share of them.
// NotJoinedDays are working days before the employee joined.
type Tally struct {
	WorkingDays     int
	NotJoinedDays   int
	PresentDays     int
	LateDays        int
	HalfDays        int
	LeaveDays       int
	UnpaidLeaveDays int
	AbsentDays      int
	OvertimeMinutes int
	LateMinutes     int
}

// TallyDays counts days. Week-offs and holidays are not working days. Leave days
// inside an unpaid range count as unpaid leave. Working days before joined are
// counted as NotJoinedDays whatever their status.
func TallyDays(days []attendance.Day, unpaid []attendance.DateRange, joined time.Time) Tally {
	var t Tally
	joined = calendar.DateOf(joined)
	for _, d := range days {
		c := d.Classification
		if c.Status == attendance.StatusWeekOff || c.Status == attendance.StatusHoliday {
			continue
		}
		t.WorkingDays++
		if d.Date.Before(joined) {
			t.NotJoinedDays++
			continue
		}
		switch c.Status {
		case attendance.StatusPresentOnTime:
			t.PresentDays++
		case attendance.StatusPresentLate:
			t.PresentDays++
			t.LateDays++
		case attendance.StatusHalfDay:
			t.HalfDays++
		case attendance.StatusAbsent:
			t.AbsentDays++
		case attendance.StatusOnLeave:
			if inAny(d, unpaid) {
				t.UnpaidLeaveDays++
			} else {
				t.LeaveDays++
			}
		}
		t.OvertimeMinutes += c.OvertimeMinutes
		t.LateMinutes += c.LateMinutes
	}
	return t
}

func inAny(d attendance.Day, ranges []attendance.DateRange) bool {
	for _, r := range ranges {
		if r.Contains(d.Date) {
			return true
		}
	}
	return false
}

// LossOfPayDays is absent days plus unpaid leave plus half of every half day.
func (t Tally) LossOfPayDays() decimal.Decimal {
	return decimal.NewFromInt(int64(t.AbsentDays + t.UnpaidLeaveDays)).
		Add(decimal.NewFromInt(int64(t.HalfDays)).Mul(half))
}

// Compute fills the attendance counts and amounts of slip from t.
// All amounts are rounded to two places and never negative.
func Compute(slip payroll.SalarySlip, t Tally, settings payroll.Settings) payroll.SalarySlip {
	slip.WorkingDays = t.WorkingDays
	slip.NotJoinedDays = t.NotJoinedDays
	slip.PresentDays = t.PresentDays
	slip.LateDays = t.LateDays
	slip.HalfDays = t.HalfDays
	slip.LeaveDays = t.LeaveDays
	slip.UnpaidLeaveDays = t.UnpaidLeaveDays
	slip.AbsentDays = t.AbsentDays
	slip.OvertimeMinutes = t.OvertimeMinutes
	slip.LateMinutes = t.LateMinutes

	base := slip.BaseSalary
	slip.PerDayRate = decimal.Zero
	slip.LossOfPayAmount = decimal.Zero
	slip.ProrationAmount = decimal.Zero
	if t.WorkingDays > 0 {
		workingDays := decimal.NewFromInt(int64(t.WorkingDays))
		slip.PerDayRate = base.Div(workingDays).Round(places)
		slip.LossOfPayAmount = base.Mul(t.LossOfPayDays()).Div(workingDays).Round(places)
		slip.ProrationAmount = base.Mul(decimal.NewFromInt(int64(t.NotJoinedDays))).Div(workingDays).Round(places)
	}

	slip.OvertimeAmount = decimal.Zero
	if settings.OvertimeEnabled {
		slip.OvertimeAmount = decimal.NewFromInt(int64(t.OvertimeMinutes)).
			Div(sixty).Mul(settings.OvertimeRatePerHour).Round(places)
	}

	slip.LateDeductionAmount = decimal.Zero
	if settings.LateDeductionEnabled {
		slip.LateDeductionAmount = decimal.NewFromInt(int64(t.LateMinutes)).
			Mul(settings.LateDeductionPerMinute).Round(places)
	}

	slip.GrossSalary = nonNegative(base.Sub(slip.ProrationAmount).Sub(slip.LossOfPayAmount).Add(slip.OvertimeAmount)).Round(places)
	slip.NetSalary = nonNegative(slip.GrossSalary.Sub(slip.LateDeductionAmount)).Round(places)
	return slip
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
