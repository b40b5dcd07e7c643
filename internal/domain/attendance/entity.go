package attendance

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/shiftclock"
)

// Attendance is the punch record of one employee on one local calendar day.
type Attendance struct {
	ID                string
	CompanyID         string
	EmployeeID        string
	Date              time.Time
	PunchIn           *time.Time
	PunchOut          *time.Time
	PunchInLocation   *string
	PunchOutLocation  *string
	PunchInLatitude   *float64
	PunchInLongitude  *float64
	PunchOutLatitude  *float64
	PunchOutLongitude *float64
	AutoClosed        bool
	Notes             *string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Join
	EmployeeName *string
	EmployeeCode *string
}

// WorkingHoursText renders punchOut - punchIn as "HH:MM", or "N/A" when either punch is missing.
func (a Attendance) WorkingHoursText() string {
	if a.PunchIn == nil || a.PunchOut == nil {
		return "N/A"
	}
	d := a.PunchOut.Sub(*a.PunchIn)
	if d < 0 {
		return "N/A"
	}
	return FormatMinutes(int(d.Minutes()))
}

// Clocks returns the punch times of day in loc. Missing punches are shiftclock.Invalid.
func (a Attendance) Clocks(loc *time.Location) (in, out shiftclock.ClockTime) {
	in, out = shiftclock.Invalid, shiftclock.Invalid
	if a.PunchIn != nil {
		in = shiftclock.FromTime(a.PunchIn.In(loc))
	}
	if a.PunchOut != nil {
		out = shiftclock.FromTime(a.PunchOut.In(loc))
	}
	return in, out
}

// FormatMinutes renders a duration in minutes as "HH:MM".
func FormatMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// DerivedStatus is the attendance outcome of an employee on a date. It is
// computed from punches and calendar context on every read and never stored.
type DerivedStatus string

const (
	StatusPresentOnTime DerivedStatus = "present_on_time"
	StatusPresentLate   DerivedStatus = "present_late"
	StatusAbsent        DerivedStatus = "absent"
	StatusHalfDay       DerivedStatus = "half_day"
	StatusWeekOff       DerivedStatus = "week_off"
	StatusHoliday       DerivedStatus = "holiday"
	StatusOnLeave       DerivedStatus = "on_leave"
)

// Statuses lists every derived status in display order.
var Statuses = []DerivedStatus{
	StatusPresentOnTime, StatusPresentLate, StatusHalfDay, StatusAbsent,
	StatusWeekOff, StatusHoliday, StatusOnLeave,
}

// Present reports whether the employee worked at least part of the day.
func (s DerivedStatus) Present() bool {
	return s == StatusPresentOnTime || s == StatusPresentLate || s == StatusHalfDay
}

// Label is the human readable status used in exports.
func (s DerivedStatus) Label() string {
	switch s {
	case StatusPresentOnTime:
		return "Present (On Time)"
	case StatusPresentLate:
		return "Present (Late)"
	case StatusAbsent:
		return "Absent"
	case StatusHalfDay:
		return "Half Day"
	case StatusWeekOff:
		return "Week Off"
	case StatusHoliday:
		return "Holiday"
	case StatusOnLeave:
		return "On Leave"
	}
	return string(s)
}

// Policy holds the thresholds the classifier applies for a company.
type Policy struct {
	CompanyID        string
	LateGraceMinutes int
	FullDayHours     float64
	HalfDayHours     float64
	UpdatedAt        time.Time
	IsDefault        bool
}

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) Contains(date time.Time) bool {
	return calendar.Within(date, r.Start, r.End)
}

// DayInput is everything the classifier needs to decide one employee-day.
type DayInput struct {
	Date     time.Time
	PunchIn  shiftclock.ClockTime
	PunchOut shiftclock.ClockTime
	Shift    shiftclock.Window
	WeekOffs map[time.Weekday]bool
	Holidays calendar.Set
	Leaves   []DateRange

	// Open marks a punch-in on the current day that has not been punched out yet.
	// Lateness is then judged on arrival alone.
	Open bool
}

// Classification is the classifier's result for one employee-day.
type Classification struct {
	Status          DerivedStatus
	LateMinutes     int
	WorkedMinutes   int
	OvertimeMinutes int
}

// Day pairs a calendar day with its punch record (if any) and classification.
type Day struct {
	Date           time.Time
	Record         *Attendance
	PunchIn        shiftclock.ClockTime
	PunchOut       shiftclock.ClockTime
	Classification Classification
}

// Summary counts derived statuses over a period.
type Summary struct {
	PresentOnTime   int `json:"present_on_time"`
	PresentLate     int `json:"present_late"`
	HalfDay         int `json:"half_day"`
	Absent          int `json:"absent"`
	WeekOff         int `json:"week_off"`
	Holiday         int `json:"holiday"`
	OnLeave         int `json:"on_leave"`
	LateMinutes     int `json:"late_minutes"`
	WorkedMinutes   int `json:"worked_minutes"`
	OvertimeMinutes int `json:"overtime_minutes"`
}

func (s *Summary) Add(c Classification) {
	switch c.Status {
	case StatusPresentOnTime:
		s.PresentOnTime++
	case StatusPresentLate:
		s.PresentLate++
	case StatusHalfDay:
		s.HalfDay++
	case StatusAbsent:
		s.Absent++
	case StatusWeekOff:
		s.WeekOff++
	case StatusHoliday:
		s.Holiday++
	case StatusOnLeave:
		s.OnLeave++
	}
	s.LateMinutes += c.LateMinutes
	s.WorkedMinutes += c.WorkedMinutes
	s.OvertimeMinutes += c.OvertimeMinutes
}

// Count returns the number of days with status.
func (s Summary) Count(status DerivedStatus) int {
	switch status {
	case StatusPresentOnTime:
		return s.PresentOnTime
	case StatusPresentLate:
		return s.PresentLate
	case StatusHalfDay:
		return s.HalfDay
	case StatusAbsent:
		return s.Absent
	case StatusWeekOff:
		return s.WeekOff
	case StatusHoliday:
		return s.Holiday
	case StatusOnLeave:
		return s.OnLeave
	}
	return 0
}
