package employee

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type EmployeeResponse struct {
	ID           string          `json:"id"`
	UserID       *string         `json:"user_id,omitempty"`
	OfficeID     *string         `json:"office_id,omitempty"`
	OfficeName   *string         `json:"office_name,omitempty"`
	EmployeeCode string          `json:"employee_code"`
	FullName     string          `json:"full_name"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	Designation  string          `json:"designation"`
	ShiftStart   string          `json:"shift_start"`
	ShiftEnd     string          `json:"shift_end"`
	ShiftWindow  string          `json:"shift_window"`
	WeekOffDays  []string        `json:"week_off_days"`
	BaseSalary   decimal.Decimal `json:"base_salary"`
	Status       Status          `json:"status"`
	Role         *string         `json:"role,omitempty"`
	JoinedAt     string          `json:"joined_at"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	weekOffs := e.WeekOffDays
	if weekOffs == nil {
		weekOffs = []string{}
	}
	return EmployeeResponse{
		ID:           e.ID,
		UserID:       e.UserID,
		OfficeID:     e.OfficeID,
		OfficeName:   e.OfficeName,
		EmployeeCode: e.EmployeeCode,
		FullName:     e.FullName,
		Email:        e.Email,
		Phone:        e.Phone,
		Designation:  e.Designation,
		ShiftStart:   e.ShiftStart,
		ShiftEnd:     e.ShiftEnd,
		ShiftWindow:  e.ShiftWindow().String(),
		WeekOffDays:  weekOffs,
		BaseSalary:   e.BaseSalary,
		Status:       e.Status,
		Role:         e.Role,
		JoinedAt:     e.JoinedAt.Format("2006-01-02"),
	}
}

type CreateEmployeeRequest struct {
	EmployeeCode string          `json:"employee_code"`
	FullName     string          `json:"full_name"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	Designation  string          `json:"designation"`
	OfficeID     *string         `json:"office_id,omitempty"`
	ShiftStart   string          `json:"shift_start"`
	ShiftEnd     string          `json:"shift_end"`
	WeekOffDays  []string        `json:"week_off_days"`
	BaseSalary   decimal.Decimal `json:"base_salary"`
	JoinedAt     string          `json:"joined_at"`

	// Optional login account
	Password *string `json:"password,omitempty"`
	Role     *string `json:"role,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs.Add("employee_code", "employee_code must be 2-20 letters, digits or dashes")
	}
	if validator.IsEmpty(r.FullName) {
		errs.Add("full_name", "full_name is required")
	} else if len(r.FullName) > 100 {
		errs.Add("full_name", "full_name must not exceed 100 characters")
	}
	if r.Email != "" && !validator.IsValidEmail(r.Email) {
		errs.Add("email", "email must be a valid email address")
	}
	if r.Phone != "" && !validator.IsValidPhoneNumber(r.Phone) {
		errs.Add("phone", "phone must contain 7-15 digits")
	}
	if len(r.Designation) > 100 {
		errs.Add("designation", "designation must not exceed 100 characters")
	}
	if r.OfficeID != nil && !validator.IsValidUUID(*r.OfficeID) {
		errs.Add("office_id", "office_id must be a valid UUID")
	}
	validateShift(&errs, &r.ShiftStart, &r.ShiftEnd)
	validateWeekOffDays(&errs, r.WeekOffDays)
	if r.BaseSalary.IsNegative() {
		errs.Add("base_salary", "base_salary must not be negative")
	}
	if r.JoinedAt != "" {
		if _, ok := validator.IsValidDate(r.JoinedAt); !ok {
			errs.Add("joined_at", "joined_at must be in YYYY-MM-DD format")
		}
	}

	if r.Password != nil {
		if validator.IsEmpty(r.Email) {
			errs.Add("email", "email is required when creating a login")
		}
		if len(*r.Password) < 8 || len(*r.Password) > 72 {
			errs.Add("password", "password must be 8-72 characters long")
		}
		if r.Role != nil && !user.Role(*r.Role).Valid() {
			errs.Add("role", "role must be one of owner, manager, employee")
		}
	} else if r.Role != nil {
		errs.Add("role", "role requires password")
	}

	return errs.OrNil()
}

type UpdateEmployeeRequest struct {
	ID          string           `json:"-"`
	FullName    *string          `json:"full_name,omitempty"`
	Email       *string          `json:"email,omitempty"`
	Phone       *string          `json:"phone,omitempty"`
	Designation *string          `json:"designation,omitempty"`
	OfficeID    *string          `json:"office_id,omitempty"`
	ShiftStart  *string          `json:"shift_start,omitempty"`
	ShiftEnd    *string          `json:"shift_end,omitempty"`
	WeekOffDays []string         `json:"week_off_days,omitempty"`
	BaseSalary  *decimal.Decimal `json:"base_salary,omitempty"`
	Status      *string          `json:"status,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.FullName != nil && (validator.IsEmpty(*r.FullName) || len(*r.FullName) > 100) {
		errs.Add("full_name", "full_name must be 1-100 characters")
	}
	if r.Email != nil && *r.Email != "" && !validator.IsValidEmail(*r.Email) {
		errs.Add("email", "email must be a valid email address")
	}
	if r.Phone != nil && *r.Phone != "" && !validator.IsValidPhoneNumber(*r.Phone) {
		errs.Add("phone", "phone must contain 7-15 digits")
	}
	if r.OfficeID != nil && *r.OfficeID != "" && !validator.IsValidUUID(*r.OfficeID) {
		errs.Add("office_id", "office_id must be a valid UUID")
	}
	if r.ShiftStart != nil && !validator.IsValidClock(*r.ShiftStart) {
		errs.Add("shift_start", "shift_start must be a time such as 9:00 AM")
	}
	if r.ShiftEnd != nil && !validator.IsValidClock(*r.ShiftEnd) {
		errs.Add("shift_end", "shift_end must be a time such as 6:00 PM")
	}
	if r.WeekOffDays != nil {
		validateWeekOffDays(&errs, r.WeekOffDays)
	}
	if r.BaseSalary != nil && r.BaseSalary.IsNegative() {
		errs.Add("base_salary", "base_salary must not be negative")
	}
	if r.Status != nil && *r.Status != string(StatusActive) && *r.Status != string(StatusInactive) {
		errs.Add("status", "status must be active or inactive")
	}

	return errs.OrNil()
}

// EmployeeFilter is read from the query string.
type EmployeeFilter struct {
	Search   *string `json:"search,omitempty"`
	OfficeID *string `json:"office_id,omitempty"`
	Status   *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *EmployeeFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.OfficeID != nil && *f.OfficeID != "" && !validator.IsValidUUID(*f.OfficeID) {
		errs.Add("office_id", "office_id must be a valid UUID")
	}
	if f.Status != nil && *f.Status != "" && *f.Status != string(StatusActive) && *f.Status != string(StatusInactive) {
		errs.Add("status", "status must be active or inactive")
	}
	if f.Page < 0 {
		errs.Add("page", "page must not be negative")
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit < 0 {
		errs.Add("limit", "limit must not be negative")
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs.Add("limit", "limit must not exceed 100")
	}

	return errs.OrNil()
}

type ListEmployeeResponse struct {
	Employees  []EmployeeResponse `json:"employees"`
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}

// Missing shift strings default to the standard 9 to 6 shift.
func validateShift(errs *validator.ValidationErrors, start, end *string) {
	if *start == "" {
		*start = "9:00 AM"
	}
	if *end == "" {
		*end = "6:00 PM"
	}
	if !validator.IsValidClock(*start) {
		errs.Add("shift_start", "shift_start must be a time such as 9:00 AM")
	}
	if !validator.IsValidClock(*end) {
		errs.Add("shift_end", "shift_end must be a time such as 6:00 PM")
	}
}

func validateWeekOffDays(errs *validator.ValidationErrors, days []string) {
	if len(days) > 6 {
		errs.Add("week_off_days", "week_off_days must leave at least one working day")
		return
	}
	seen := make(map[time.Weekday]bool, len(days))
	for _, name := range days {
		d, ok := validator.ParseWeekday(name)
		if !ok {
			errs.Add("week_off_days", "week_off_days must contain full day names such as Sunday")
			return
		}
		if seen[d] {
			errs.Add("week_off_days", "week_off_days must not repeat a day")
			return
		}
		seen[d] = true
	}
}
