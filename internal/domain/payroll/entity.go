package payroll

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Settings controls the optional overtime and late components of a slip.
type Settings struct {
	CompanyID              string
	OvertimeEnabled        bool
	OvertimeRatePerHour    decimal.Decimal
	LateDeductionEnabled   bool
	LateDeductionPerMinute decimal.Decimal
	UpdatedAt              time.Time
	IsDefault              bool
}

// DefaultSettings applies to companies that never saved payroll settings.
func DefaultSettings(companyID string) Settings {
	return Settings{
		CompanyID:              companyID,
		OvertimeEnabled:        true,
		OvertimeRatePerHour:    decimal.Zero,
		LateDeductionEnabled:   false,
		LateDeductionPerMinute: decimal.Zero,
		IsDefault:              true,
	}
}

type SlipStatus string

const (
	SlipStatusDraft SlipStatus = "draft"
	SlipStatusPaid  SlipStatus = "paid"
)

// SalarySlip is one employee's pay for a calendar month.
type SalarySlip struct {
	ID          string
	CompanyID   string
	EmployeeID  string
	PeriodYear  int
	PeriodMonth int

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

	BaseSalary          decimal.Decimal
	PerDayRate          decimal.Decimal
	ProrationAmount     decimal.Decimal
	LossOfPayAmount     decimal.Decimal
	OvertimeAmount      decimal.Decimal
	LateDeductionAmount decimal.Decimal
	GrossSalary         decimal.Decimal
	NetSalary           decimal.Decimal

	Status    SlipStatus
	PaidAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	// Join
	EmployeeName *string
	EmployeeCode *string
}

// Period renders the slip month as "January 2024".
func (s SalarySlip) Period() string {
	return time.Month(s.PeriodMonth).String() + " " + strconv.Itoa(s.PeriodYear)
}
