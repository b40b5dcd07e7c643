package dashboard

import "github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"

// DashboardResponse is the combined payload of the main dashboard endpoint.
type DashboardResponse struct {
	Date             string                  `json:"date"`
	Employees        EmployeeSummaryResponse `json:"employees"`
	Today            TodayAttendanceResponse `json:"today"`
	MonthToDate      MonthAttendanceResponse `json:"month_to_date"`
	PendingLeaves    int                     `json:"pending_leaves"`
	PendingExpenses  int                     `json:"pending_expenses"`
	VisitsToday      int                     `json:"visits_today"`
	UpcomingHolidays []HolidayItem           `json:"upcoming_holidays"`
}

type EmployeeSummaryResponse struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
	New      int64 `json:"new"` // joined within 30 days
}

// TodayAttendanceResponse counts today's derived statuses of active employees.
type TodayAttendanceResponse struct {
	PresentOnTime int     `json:"present_on_time"`
	PresentLate   int     `json:"present_late"`
	HalfDay       int     `json:"half_day"`
	Absent        int     `json:"absent"`
	OnLeave       int     `json:"on_leave"`
	WeekOff       int     `json:"week_off"`
	Holiday       int     `json:"holiday"`
	Expected      int     `json:"expected"`
	OnTimePercent float64 `json:"on_time_percent"`
	LatePercent   float64 `json:"late_percent"`
	AbsentPercent float64 `json:"absent_percent"`
}

// NewTodayAttendanceResponse derives the percentages over the employees
// expected at work, which excludes week-offs, holidays and leave.
func NewTodayAttendanceResponse(s attendance.Summary) TodayAttendanceResponse {
	resp := TodayAttendanceResponse{
		PresentOnTime: s.PresentOnTime,
		PresentLate:   s.PresentLate,
		HalfDay:       s.HalfDay,
		Absent:        s.Absent,
		OnLeave:       s.OnLeave,
		WeekOff:       s.WeekOff,
		Holiday:       s.Holiday,
		Expected:      s.PresentOnTime + s.PresentLate + s.HalfDay + s.Absent,
	}
	if resp.Expected > 0 {
		total := float64(resp.Expected)
		resp.OnTimePercent = percent(s.PresentOnTime, total)
		resp.LatePercent = percent(s.PresentLate, total)
		resp.AbsentPercent = percent(s.Absent, total)
	}
	return resp
}

func percent(n int, total float64) float64 {
	return float64(int(float64(n)/total*10000+0.5)) / 100
}

type MonthAttendanceResponse struct {
	Month   string             `json:"month"` // Format: "YYYY-MM"
	Summary attendance.Summary `json:"summary"`
}

type HolidayItem struct {
	Date string `json:"date"`
	Name string `json:"name"`
}
