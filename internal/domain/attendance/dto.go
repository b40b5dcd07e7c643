package attendance

import (
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/export"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

// ========================================
// PUNCH DTOs
// ========================================

type PunchRequest struct {
	Location  string   `json:"location"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Notes     *string  `json:"notes,omitempty"`
}

func (r *PunchRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Location = strings.TrimSpace(r.Location)
	if len(r.Location) > 255 {
		errs.Add("location", "location must not exceed 255 characters")
	}

	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs.Add("latitude", "latitude and longitude must be provided together")
	} else if r.Latitude != nil && !validator.IsValidCoordinate(*r.Latitude, *r.Longitude) {
		errs.Add("latitude", "latitude must be between -90 and 90 and longitude between -180 and 180")
	}

	if r.Notes != nil && len(*r.Notes) > 500 {
		errs.Add("notes", "notes must not exceed 500 characters")
	}

	return errs.OrNil()
}

type AttendanceResponse struct {
	ID                  string        `json:"id"`
	EmployeeID          string        `json:"employee_id"`
	EmployeeName        *string       `json:"employee_name,omitempty"`
	EmployeeCode        *string       `json:"employee_code,omitempty"`
	Date                string        `json:"date"`
	PunchIn             *time.Time    `json:"punch_in,omitempty"`
	PunchOut            *time.Time    `json:"punch_out,omitempty"`
	PunchInTime         string        `json:"punch_in_time"`
	PunchOutTime        string        `json:"punch_out_time"`
	PunchInLocation     *string       `json:"punch_in_location,omitempty"`
	PunchOutLocation    *string       `json:"punch_out_location,omitempty"`
	PunchInLatitude     *float64      `json:"punch_in_latitude,omitempty"`
	PunchInLongitude    *float64      `json:"punch_in_longitude,omitempty"`
	PunchOutLatitude    *float64      `json:"punch_out_latitude,omitempty"`
	PunchOutLongitude   *float64      `json:"punch_out_longitude,omitempty"`
	DistanceFromOfficeM *int          `json:"distance_from_office_m,omitempty"`
	WorkingHoursText    string        `json:"working_hours_text"`
	Status              DerivedStatus `json:"status"`
	LateMinutes         int           `json:"late_minutes"`
	OvertimeMinutes     int           `json:"overtime_minutes"`
	AutoClosed          bool          `json:"auto_closed"`
	Notes               *string       `json:"notes,omitempty"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

// NewAttendanceResponse renders a record and its classification, with punch
// times of day shown in loc.
func NewAttendanceResponse(a Attendance, c Classification, loc *time.Location) AttendanceResponse {
	in, out := a.Clocks(loc)
	return AttendanceResponse{
		ID:                a.ID,
		EmployeeID:        a.EmployeeID,
		EmployeeName:      a.EmployeeName,
		EmployeeCode:      a.EmployeeCode,
		Date:              calendar.Format(a.Date),
		PunchIn:           a.PunchIn,
		PunchOut:          a.PunchOut,
		PunchInTime:       in.Format12(),
		PunchOutTime:      out.Format12(),
		PunchInLocation:   a.PunchInLocation,
		PunchOutLocation:  a.PunchOutLocation,
		PunchInLatitude:   a.PunchInLatitude,
		PunchInLongitude:  a.PunchInLongitude,
		PunchOutLatitude:  a.PunchOutLatitude,
		PunchOutLongitude: a.PunchOutLongitude,
		WorkingHoursText:  a.WorkingHoursText(),
		Status:            c.Status,
		LateMinutes:       c.LateMinutes,
		OvertimeMinutes:   c.OvertimeMinutes,
		AutoClosed:        a.AutoClosed,
		Notes:             a.Notes,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

// ========================================
// LIST DTOs
// ========================================

type AttendanceFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Search     *string `json:"search,omitempty"`
	Date       *string `json:"date,omitempty"`
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`

	SortOrder string `json:"sort_order"` // asc, desc by date
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.EmployeeID != nil && *f.EmployeeID != "" && !validator.IsValidUUID(*f.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	validateDates(&errs, f.Date, f.StartDate, f.EndDate)
	validatePaging(&errs, &f.Page, &f.Limit)
	validateSortOrder(&errs, &f.SortOrder)

	return errs.OrNil()
}

type MyAttendanceFilter struct {
	Date      *string `json:"date,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`

	SortOrder string `json:"sort_order"`
}

func (f *MyAttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	validateDates(&errs, f.Date, f.StartDate, f.EndDate)
	validatePaging(&errs, &f.Page, &f.Limit)
	validateSortOrder(&errs, &f.SortOrder)

	return errs.OrNil()
}

// Scoped converts the filter into a company-wide filter limited to one employee.
func (f MyAttendanceFilter) Scoped(employeeID string) AttendanceFilter {
	return AttendanceFilter{
		EmployeeID: &employeeID,
		Date:       f.Date,
		StartDate:  f.StartDate,
		EndDate:    f.EndDate,
		Page:       f.Page,
		Limit:      f.Limit,
		SortOrder:  f.SortOrder,
	}
}

func validateDates(errs *validator.ValidationErrors, date, start, end *string) {
	if date != nil && *date != "" {
		if _, valid := validator.IsValidDate(*date); !valid {
			errs.Add("date", "date must be in YYYY-MM-DD format")
		}
	}
	var from, to time.Time
	var fromOK, toOK bool
	if start != nil && *start != "" {
		if from, fromOK = validator.IsValidDate(*start); !fromOK {
			errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
		}
	}
	if end != nil && *end != "" {
		if to, toOK = validator.IsValidDate(*end); !toOK {
			errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
		}
	}
	if fromOK && toOK && to.Before(from) {
		errs.Add("end_date", "end_date must not be before start_date")
	}
}

func validatePaging(errs *validator.ValidationErrors, page, limit *int) {
	if *page < 0 {
		errs.Add("page", "page must be a positive number")
	}
	if *page == 0 {
		*page = 1
	}
	if *limit < 0 {
		errs.Add("limit", "limit must be a positive number")
	}
	if *limit == 0 {
		*limit = 20
	}
	if *limit > 100 {
		errs.Add("limit", "limit must not exceed 100")
	}
}

func validateSortOrder(errs *validator.ValidationErrors, order *string) {
	if *order == "" {
		*order = "desc"
		return
	}
	*order = strings.ToLower(*order)
	if !validator.IsInSlice(*order, []string{"asc", "desc"}) {
		errs.Add("sort_order", "sort_order must be one of: asc, desc")
	}
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Attendances []AttendanceResponse `json:"attendances"`
}

// UpdateAttendanceRequest corrects a record. Punch values accept an RFC 3339
// timestamp or a clock time such as "9:05 AM" on the record's date.
type UpdateAttendanceRequest struct {
	ID       string  `json:"-"`
	PunchIn  *string `json:"punch_in,omitempty"`
	PunchOut *string `json:"punch_out,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "id must be a valid UUID")
	}
	if r.PunchIn == nil && r.PunchOut == nil && r.Notes == nil {
		errs.Add("body", "at least one of punch_in, punch_out, notes is required")
	}
	if r.PunchIn != nil && !isPunchValue(*r.PunchIn) {
		errs.Add("punch_in", "punch_in must be an RFC 3339 timestamp or a clock time like 9:05 AM")
	}
	if r.PunchOut != nil && *r.PunchOut != "" && !isPunchValue(*r.PunchOut) {
		errs.Add("punch_out", "punch_out must be an RFC 3339 timestamp or a clock time like 6:00 PM")
	}
	if r.Notes != nil && len(*r.Notes) > 500 {
		errs.Add("notes", "notes must not exceed 500 characters")
	}

	return errs.OrNil()
}

func isPunchValue(s string) bool {
	if _, ok := validator.IsValidDateTime(s); ok {
		return true
	}
	return validator.IsValidClock(s)
}

// ========================================
// REPORT DTOs
// ========================================

const maxReportDays = 93

type ReportFilter struct {
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	EmployeeID *string `json:"employee_id,omitempty"`
	OfficeID   *string `json:"office_id,omitempty"`
	Format     string  `json:"format"`

	// Parsed by Validate
	From time.Time `json:"-"`
	To   time.Time `json:"-"`
}

var reportFormats = []string{"json", "csv", "xlsx", "pdf"}

func (f *ReportFilter) Validate() error {
	var errs validator.ValidationErrors

	from, fromOK := validator.IsValidDate(f.StartDate)
	if !fromOK {
		errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
	}
	to, toOK := validator.IsValidDate(f.EndDate)
	if !toOK {
		errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
	}
	if fromOK && toOK {
		switch {
		case to.Before(from):
			errs.Add("end_date", "end_date must not be before start_date")
		case to.Sub(from) >= maxReportDays*24*time.Hour:
			errs.Add("end_date", "report range must not exceed 93 days")
		}
		f.From, f.To = from, to
	}

	if f.EmployeeID != nil && *f.EmployeeID != "" && !validator.IsValidUUID(*f.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	if f.OfficeID != nil && *f.OfficeID != "" && !validator.IsValidUUID(*f.OfficeID) {
		errs.Add("office_id", "office_id must be a valid UUID")
	}

	f.Format = strings.ToLower(strings.TrimSpace(f.Format))
	if f.Format == "" {
		f.Format = "json"
	}
	if !validator.IsInSlice(f.Format, reportFormats) {
		errs.Add("format", "format must be one of: json, csv, xlsx, pdf")
	}

	return errs.OrNil()
}

type ReportDay struct {
	Date             string        `json:"date"`
	Weekday          string        `json:"weekday"`
	PunchIn          string        `json:"punch_in"`
	PunchOut         string        `json:"punch_out"`
	WorkingHoursText string        `json:"working_hours_text"`
	Status           DerivedStatus `json:"status"`
	LateMinutes      int           `json:"late_minutes"`
	OvertimeMinutes  int           `json:"overtime_minutes"`
}

func NewReportDay(d Day) ReportDay {
	hours := "N/A"
	if d.Record != nil {
		hours = d.Record.WorkingHoursText()
	}
	return ReportDay{
		Date:             calendar.Format(d.Date),
		Weekday:          d.Date.Weekday().String(),
		PunchIn:          d.PunchIn.Format12(),
		PunchOut:         d.PunchOut.Format12(),
		WorkingHoursText: hours,
		Status:           d.Classification.Status,
		LateMinutes:      d.Classification.LateMinutes,
		OvertimeMinutes:  d.Classification.OvertimeMinutes,
	}
}

type EmployeeReport struct {
	EmployeeID   string      `json:"employee_id"`
	EmployeeCode string      `json:"employee_code"`
	EmployeeName string      `json:"employee_name"`
	ShiftWindow  string      `json:"shift_window"`
	Days         []ReportDay `json:"days"`
	Summary      Summary     `json:"summary"`
}

type ReportResponse struct {
	StartDate string           `json:"start_date"`
	EndDate   string           `json:"end_date"`
	Policy    PolicyResponse   `json:"policy"`
	Employees []EmployeeReport `json:"employees"`
}

// Table flattens the report into one row per employee per day.
func (r ReportResponse) Table() export.Table {
	t := export.Table{
		Title:    "Attendance Report",
		Subtitle: r.StartDate + " to " + r.EndDate,
		Headers: []string{
			"Employee Code", "Employee Name", "Shift", "Date", "Weekday",
			"Punch In", "Punch Out", "Working Hours", "Status", "Late Minutes", "Overtime Minutes",
		},
	}
	for _, emp := range r.Employees {
		for _, d := range emp.Days {
			t.Rows = append(t.Rows, []string{
				emp.EmployeeCode,
				emp.EmployeeName,
				emp.ShiftWindow,
				d.Date,
				d.Weekday,
				d.PunchIn,
				d.PunchOut,
				d.WorkingHoursText,
				string(d.Status),
				strconv.Itoa(d.LateMinutes),
				strconv.Itoa(d.OvertimeMinutes),
			})
		}
	}
	return t
}

// ========================================
// POLICY DTOs
// ========================================

type PolicyResponse struct {
	LateGraceMinutes int     `json:"late_grace_minutes"`
	FullDayHours     float64 `json:"full_day_hours"`
	HalfDayHours     float64 `json:"half_day_hours"`
	IsDefault        bool    `json:"is_default"`
}

func NewPolicyResponse(p Policy) PolicyResponse {
	return PolicyResponse{
		LateGraceMinutes: p.LateGraceMinutes,
		FullDayHours:     p.FullDayHours,
		HalfDayHours:     p.HalfDayHours,
		IsDefault:        p.IsDefault,
	}
}

type UpdatePolicyRequest struct {
	LateGraceMinutes int     `json:"late_grace_minutes"`
	FullDayHours     float64 `json:"full_day_hours"`
	HalfDayHours     float64 `json:"half_day_hours"`
}

func (r *UpdatePolicyRequest) Validate() error {
	return ValidatePolicy(r.LateGraceMinutes, r.FullDayHours, r.HalfDayHours)
}

// ValidatePolicy checks 0 <= grace <= 240 and 0 < halfDay <= fullDay <= 24.
func ValidatePolicy(lateGraceMinutes int, fullDayHours, halfDayHours float64) error {
	var errs validator.ValidationErrors

	if lateGraceMinutes < 0 || lateGraceMinutes > 240 {
		errs.Add("late_grace_minutes", "late_grace_minutes must be between 0 and 240")
	}
	if fullDayHours <= 0 || fullDayHours > 24 {
		errs.Add("full_day_hours", "full_day_hours must be greater than 0 and at most 24")
	}
	if halfDayHours <= 0 {
		errs.Add("half_day_hours", "half_day_hours must be greater than 0")
	} else if halfDayHours > fullDayHours {
		errs.Add("half_day_hours", "half_day_hours must not exceed full_day_hours")
	}

	return errs.OrNil()
}

// ========================================
// CLASSIFY DTOs
// ========================================

// ClassifyRequest carries raw strings as the dashboard holds them. Empty
// threshold fields fall back to the company policy.
type ClassifyRequest struct {
	Date        string   `json:"date"`
	PunchIn     string   `json:"punch_in"`
	PunchOut    string   `json:"punch_out"`
	ShiftStart  string   `json:"shift_start"`
	ShiftEnd    string   `json:"shift_end"`
	WeekOffDays []string `json:"week_off_days"`
	Holidays    []string `json:"holidays"`
	Leaves      []string `json:"leaves"` // "YYYY-MM-DD..YYYY-MM-DD" or a single date

	LateGraceMinutes *int     `json:"late_grace_minutes,omitempty"`
	FullDayHours     *float64 `json:"full_day_hours,omitempty"`
	HalfDayHours     *float64 `json:"half_day_hours,omitempty"`

	// Parsed by Validate
	ParsedDate     time.Time   `json:"-"`
	ParsedHolidays []time.Time `json:"-"`
	ParsedLeaves   []DateRange `json:"-"`
}

func (r *ClassifyRequest) Validate() error {
	var errs validator.ValidationErrors

	date, ok := validator.IsValidDate(r.Date)
	if !ok {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	}
	r.ParsedDate = date

	for _, day := range r.WeekOffDays {
		if _, ok := validator.ParseWeekday(day); !ok {
			errs.Add("week_off_days", "unknown weekday "+day)
		}
	}

	r.ParsedHolidays = r.ParsedHolidays[:0]
	for _, h := range r.Holidays {
		d, ok := validator.IsValidDate(strings.TrimSpace(h))
		if !ok {
			errs.Add("holidays", "holiday "+h+" must be in YYYY-MM-DD format")
			continue
		}
		r.ParsedHolidays = append(r.ParsedHolidays, d)
	}

	r.ParsedLeaves = r.ParsedLeaves[:0]
	for _, l := range r.Leaves {
		rng, ok := ParseDateRange(l)
		if !ok {
			errs.Add("leaves", "leave "+l+" must be YYYY-MM-DD or YYYY-MM-DD..YYYY-MM-DD")
			continue
		}
		r.ParsedLeaves = append(r.ParsedLeaves, rng)
	}

	// Overrides are range-checked here. How they combine with the stored
	// policy is checked by the service once they are merged.
	if r.LateGraceMinutes != nil && (*r.LateGraceMinutes < 0 || *r.LateGraceMinutes > 240) {
		errs.Add("late_grace_minutes", "late_grace_minutes must be between 0 and 240")
	}
	if r.FullDayHours != nil && (*r.FullDayHours <= 0 || *r.FullDayHours > 24) {
		errs.Add("full_day_hours", "full_day_hours must be greater than 0 and at most 24")
	}
	if r.HalfDayHours != nil && *r.HalfDayHours <= 0 {
		errs.Add("half_day_hours", "half_day_hours must be greater than 0")
	} else if r.HalfDayHours != nil && r.FullDayHours != nil && *r.HalfDayHours > *r.FullDayHours {
		errs.Add("half_day_hours", "half_day_hours must not exceed full_day_hours")
	}

	return errs.OrNil()
}

// ParseDateRange parses "2024-06-01..2024-06-03" or a single "2024-06-01".
func ParseDateRange(s string) (DateRange, bool) {
	start, end, found := strings.Cut(strings.TrimSpace(s), "..")
	if !found {
		end = start
	}
	from, ok := validator.IsValidDate(strings.TrimSpace(start))
	if !ok {
		return DateRange{}, false
	}
	to, ok := validator.IsValidDate(strings.TrimSpace(end))
	if !ok || to.Before(from) {
		return DateRange{}, false
	}
	return DateRange{Start: from, End: to}, true
}

type ClassifyResponse struct {
	Date             string         `json:"date"`
	Weekday          string         `json:"weekday"`
	ShiftWindow      string         `json:"shift_window"`
	PunchIn          string         `json:"punch_in"`
	PunchOut         string         `json:"punch_out"`
	Status           DerivedStatus  `json:"status"`
	LateMinutes      int            `json:"late_minutes"`
	WorkedMinutes    int            `json:"worked_minutes"`
	OvertimeMinutes  int            `json:"overtime_minutes"`
	WorkingHoursText string         `json:"working_hours_text"`
	Policy           PolicyResponse `json:"policy"`
}
