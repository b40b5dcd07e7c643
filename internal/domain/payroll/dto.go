package payroll

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// SETTINGS DTOs
// ========================================

type SettingsResponse struct {
	OvertimeEnabled        bool            `json:"overtime_enabled"`
	OvertimeRatePerHour    decimal.Decimal `json:"overtime_rate_per_hour"`
	LateDeductionEnabled   bool            `json:"late_deduction_enabled"`
	LateDeductionPerMinute decimal.Decimal `json:"late_deduction_per_minute"`
	IsDefault              bool            `json:"is_default"`
	UpdatedAt              *time.Time      `json:"updated_at,omitempty"`
}

func NewSettingsResponse(s Settings) SettingsResponse {
	resp := SettingsResponse{
		OvertimeEnabled:        s.OvertimeEnabled,
		OvertimeRatePerHour:    s.OvertimeRatePerHour,
		LateDeductionEnabled:   s.LateDeductionEnabled,
		LateDeductionPerMinute: s.LateDeductionPerMinute,
		IsDefault:              s.IsDefault,
	}
	if !s.UpdatedAt.IsZero() {
		resp.UpdatedAt = &s.UpdatedAt
	}
	return resp
}

type UpdateSettingsRequest struct {
	OvertimeEnabled        *bool            `json:"overtime_enabled,omitempty"`
	OvertimeRatePerHour    *decimal.Decimal `json:"overtime_rate_per_hour,omitempty"`
	LateDeductionEnabled   *bool            `json:"late_deduction_enabled,omitempty"`
	LateDeductionPerMinute *decimal.Decimal `json:"late_deduction_per_minute,omitempty"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.OvertimeEnabled == nil && r.OvertimeRatePerHour == nil && r.LateDeductionEnabled == nil && r.LateDeductionPerMinute == nil {
		errs.Add("request", "at least one field must be provided")
	}
	if r.OvertimeRatePerHour != nil && r.OvertimeRatePerHour.IsNegative() {
		errs.Add("overtime_rate_per_hour", "overtime_rate_per_hour must not be negative")
	}
	if r.LateDeductionPerMinute != nil && r.LateDeductionPerMinute.IsNegative() {
		errs.Add("late_deduction_per_minute", "late_deduction_per_minute must not be negative")
	}

	return errs.OrNil()
}

// Apply overlays the provided fields on s.
func (r UpdateSettingsRequest) Apply(s Settings) Settings {
	if r.OvertimeEnabled != nil {
		s.OvertimeEnabled = *r.OvertimeEnabled
	}
	if r.OvertimeRatePerHour != nil {
		s.OvertimeRatePerHour = r.OvertimeRatePerHour.Round(2)
	}
	if r.LateDeductionEnabled != nil {
		s.LateDeductionEnabled = *r.LateDeductionEnabled
	}
	if r.LateDeductionPerMinute != nil {
		s.LateDeductionPerMinute = r.LateDeductionPerMinute.Round(2)
	}
	return s
}

// ========================================
// SLIP DTOs
// ========================================

type GenerateRequest struct {
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	EmployeeID *string `json:"employee_id,omitempty"`
}

func (r *GenerateRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Year < 2000 || r.Year > 2100 {
		errs.Add("year", "year must be between 2000 and 2100")
	}
	if !validator.IsValidMonth(r.Month) {
		errs.Add("month", "month must be between 1 and 12")
	}
	if r.EmployeeID != nil && !validator.IsValidUUID(*r.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}

	return errs.OrNil()
}

type SkippedSlip struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeCode string `json:"employee_code"`
	Reason       string `json:"reason"`
}

type GenerateResponse struct {
	Year      int            `json:"year"`
	Month     int            `json:"month"`
	Generated []SlipResponse `json:"generated"`
	Skipped   []SkippedSlip  `json:"skipped"`
}

type SlipResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	EmployeeCode *string `json:"employee_code,omitempty"`
	PeriodYear   int     `json:"period_year"`
	PeriodMonth  int     `json:"period_month"`
	Period       string  `json:"period"`

	WorkingDays     int `json:"working_days"`
	NotJoinedDays   int `json:"not_joined_days"`
	PresentDays     int `json:"present_days"`
	LateDays        int `json:"late_days"`
	HalfDays        int `json:"half_days"`
	LeaveDays       int `json:"leave_days"`
	UnpaidLeaveDays int `json:"unpaid_leave_days"`
	AbsentDays      int `json:"absent_days"`
	OvertimeMinutes int `json:"overtime_minutes"`
	LateMinutes     int `json:"late_minutes"`

	BaseSalary          decimal.Decimal `json:"base_salary"`
	PerDayRate          decimal.Decimal `json:"per_day_rate"`
	ProrationAmount     decimal.Decimal `json:"proration_amount"`
	LossOfPayAmount     decimal.Decimal `json:"loss_of_pay_amount"`
	OvertimeAmount      decimal.Decimal `json:"overtime_amount"`
	LateDeductionAmount decimal.Decimal `json:"late_deduction_amount"`
	GrossSalary         decimal.Decimal `json:"gross_salary"`
	NetSalary           decimal.Decimal `json:"net_salary"`

	Status SlipStatus `json:"status"`
	PaidAt *time.Time `json:"paid_at,omitempty"`
}

func NewSlipResponse(s SalarySlip) SlipResponse {
	return SlipResponse{
		ID:                  s.ID,
		EmployeeID:          s.EmployeeID,
		EmployeeName:        s.EmployeeName,
		EmployeeCode:        s.EmployeeCode,
		PeriodYear:          s.PeriodYear,
		PeriodMonth:         s.PeriodMonth,
		Period:              s.Period(),
		WorkingDays:         s.WorkingDays,
		NotJoinedDays:       s.NotJoinedDays,
		PresentDays:         s.PresentDays,
		LateDays:            s.LateDays,
		HalfDays:            s.HalfDays,
		LeaveDays:           s.LeaveDays,
		UnpaidLeaveDays:     s.UnpaidLeaveDays,
		AbsentDays:          s.AbsentDays,
		OvertimeMinutes:     s.OvertimeMinutes,
		LateMinutes:         s.LateMinutes,
		BaseSalary:          s.BaseSalary,
		PerDayRate:          s.PerDayRate,
		ProrationAmount:     s.ProrationAmount,
		LossOfPayAmount:     s.LossOfPayAmount,
		OvertimeAmount:      s.OvertimeAmount,
		LateDeductionAmount: s.LateDeductionAmount,
		GrossSalary:         s.GrossSalary,
		NetSalary:           s.NetSalary,
		Status:              s.Status,
		PaidAt:              s.PaidAt,
	}
}

type SlipFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Year       *int    `json:"year,omitempty"`
	Month      *int    `json:"month,omitempty"`
	Status     *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *SlipFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.EmployeeID != nil && *f.EmployeeID != "" && !validator.IsValidUUID(*f.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	if f.Month != nil && !validator.IsValidMonth(*f.Month) {
		errs.Add("month", "month must be between 1 and 12")
	}
	if f.Status != nil && *f.Status != "" && *f.Status != string(SlipStatusDraft) && *f.Status != string(SlipStatusPaid) {
		errs.Add("status", "status must be one of draft, paid")
	}
	if f.Page < 0 {
		errs.Add("page", "page must not be negative")
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit < 0 || f.Limit > 100 {
		errs.Add("limit", "limit must be between 1 and 100")
	}
	if f.Limit == 0 {
		f.Limit = 20
	}

	return errs.OrNil()
}

type ListSlipResponse struct {
	Slips      []SlipResponse `json:"slips"`
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}
