package attendance

import (
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/shiftclock"
)

// StatusCalculator classifies employee-days under one attendance policy.
type StatusCalculator struct {
	policy attendance.Policy
}

func NewStatusCalculator(policy attendance.Policy) *StatusCalculator {
	return &StatusCalculator{policy: policy}
}

func (c *StatusCalculator) Policy() attendance.Policy {
	return c.policy
}

// Classify derives the status of one employee-day. Calendar context is checked
// first in the order week-off, holiday, approved leave; punches are only
// considered on a regular working day.
func (c *StatusCalculator) Classify(in attendance.DayInput) attendance.Classification {
	if in.WeekOffs[in.Date.Weekday()] {
		return attendance.Classification{Status: attendance.StatusWeekOff}
	}
	if in.Holidays.Has(in.Date) {
		return attendance.Classification{Status: attendance.StatusHoliday}
	}
	for _, leave := range in.Leaves {
		if leave.Contains(in.Date) {
			return attendance.Classification{Status: attendance.StatusOnLeave}
		}
	}
	if !in.PunchIn.Valid() {
		return attendance.Classification{Status: attendance.StatusAbsent}
	}

	shift := in.Shift
	if !shift.Valid() {
		shift = shiftclock.DefaultWindow
	}

	delta := in.PunchIn.Sub(shift.Start)
	if shift.Overnight() {
		// 00:30 against a 22:00 start is 150 minutes late, not 21.5 hours early.
		switch {
		case delta > shiftclock.MinutesPerDay/2:
			delta -= shiftclock.MinutesPerDay
		case delta <= -shiftclock.MinutesPerDay/2:
			delta += shiftclock.MinutesPerDay
		}
	}

	worked, overtime := 0, 0
	punchedOut := in.PunchOut.Valid()
	if punchedOut {
		worked = in.PunchOut.Sub(in.PunchIn)
		if worked < 0 {
			worked += shiftclock.MinutesPerDay
		}
		overtime = max(0, delta+worked-shift.Minutes())
	}

	result := attendance.Classification{
		WorkedMinutes:   worked,
		OvertimeMinutes: overtime,
	}

	switch {
	case delta <= c.policy.LateGraceMinutes:
		result.Status = attendance.StatusPresentOnTime
		return result
	case in.Open && !punchedOut:
		result.Status = attendance.StatusPresentLate
	case float64(worked) >= c.policy.FullDayHours*60:
		result.Status = attendance.StatusPresentLate
	case float64(worked) >= c.policy.HalfDayHours*60:
		result.Status = attendance.StatusHalfDay
	default:
		return attendance.Classification{Status: attendance.StatusAbsent, WorkedMinutes: worked}
	}

	result.LateMinutes = delta
	return result
}
