package payroll

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/export"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	payroll.PayrollRepository
	employee.EmployeeRepository
	leave.LeaveRequestRepository
	company.CompanyRepository
	evaluator attendance.Evaluator
	location  *time.Location
	now       func() time.Time
}

func NewPayrollService(
	payrollRepository payroll.PayrollRepository,
	employeeRepository employee.EmployeeRepository,
	leaveRequestRepository leave.LeaveRequestRepository,
	companyRepository company.CompanyRepository,
	evaluator attendance.Evaluator,
	location *time.Location,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		PayrollRepository:      payrollRepository,
		EmployeeRepository:     employeeRepository,
		LeaveRequestRepository: leaveRequestRepository,
		CompanyRepository:      companyRepository,
		evaluator:              evaluator,
		location:               location,
		now:                    time.Now,
	}
}

// ========== SETTINGS ==========

// GetSettings implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetSettings(ctx context.Context) (payroll.SettingsResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return payroll.SettingsResponse{}, err
	}

	settings, err := s.settings(ctx, claims.CompanyID)
	if err != nil {
		return payroll.SettingsResponse{}, err
	}
	return payroll.NewSettingsResponse(settings), nil
}

// UpdateSettings implements payroll.PayrollService.
func (s *PayrollServiceImpl) UpdateSettings(ctx context.Context, req payroll.UpdateSettingsRequest) (payroll.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SettingsResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return payroll.SettingsResponse{}, err
	}

	current, err := s.settings(ctx, claims.CompanyID)
	if err != nil {
		return payroll.SettingsResponse{}, err
	}

	updated, err := s.PayrollRepository.UpsertSettings(ctx, req.Apply(current))
	if err != nil {
		return payroll.SettingsResponse{}, fmt.Errorf("failed to save payroll settings: %w", err)
	}
	return payroll.NewSettingsResponse(updated), nil
}

func (s *PayrollServiceImpl) settings(ctx context.Context, companyID string) (payroll.Settings, error) {
	saved, err := s.PayrollRepository.GetSettings(ctx, companyID)
	if err != nil {
		return payroll.Settings{}, fmt.Errorf("failed to get payroll settings: %w", err)
	}
	if saved == nil {
		return payroll.DefaultSettings(companyID), nil
	}
	return *saved, nil
}

// ========== SLIPS ==========

// Generate implements payroll.PayrollService.
func (s *PayrollServiceImpl) Generate(ctx context.Context, req payroll.GenerateRequest) (payroll.GenerateResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.GenerateResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return payroll.GenerateResponse{}, err
	}

	from, to := calendar.MonthRange(req.Year, time.Month(req.Month))
	today := calendar.DateOf(s.now().In(s.location))
	if !to.Before(today) {
		return payroll.GenerateResponse{}, payroll.ErrPeriodNotClosed
	}

	employees, err := s.payees(ctx, claims.CompanyID, req.EmployeeID)
	if err != nil {
		return payroll.GenerateResponse{}, err
	}

	settings, err := s.settings(ctx, claims.CompanyID)
	if err != nil {
		return payroll.GenerateResponse{}, err
	}
	days, err := s.evaluator.Evaluate(ctx, claims.CompanyID, wholePeriod(employees), from, to)
	if err != nil {
		return payroll.GenerateResponse{}, err
	}
	unpaid, err := s.unpaidLeaves(ctx, claims.CompanyID, from, to)
	if err != nil {
		return payroll.GenerateResponse{}, err
	}

	resp := payroll.GenerateResponse{
		Year:      req.Year,
		Month:     req.Month,
		Generated: []payroll.SlipResponse{},
		Skipped:   []payroll.SkippedSlip{},
	}
	for _, emp := range employees {
		if !emp.BaseSalary.IsPositive() {
			resp.Skipped = append(resp.Skipped, skipped(emp, payroll.ErrEmployeeNotPayable))
			continue
		}
		if calendar.DateOf(emp.JoinedAt).After(to) {
			resp.Skipped = append(resp.Skipped, skipped(emp, payroll.ErrJoinedAfterPeriod))
			continue
		}

		slip := Compute(payroll.SalarySlip{
			CompanyID:   claims.CompanyID,
			EmployeeID:  emp.ID,
			PeriodYear:  req.Year,
			PeriodMonth: req.Month,
			BaseSalary:  emp.BaseSalary,
			Status:      payroll.SlipStatusDraft,
		}, TallyDays(days[emp.ID], unpaid[emp.ID], emp.JoinedAt), settings)

		saved, err := s.PayrollRepository.SaveDraft(ctx, slip)
		if err != nil {
			if errors.Is(err, payroll.ErrSlipAlreadyPaid) {
				resp.Skipped = append(resp.Skipped, skipped(emp, err))
				continue
			}
			return payroll.GenerateResponse{}, fmt.Errorf("failed to save salary slip for employee %s: %w", emp.ID, err)
		}
		saved.EmployeeName = &emp.FullName
		saved.EmployeeCode = &emp.EmployeeCode
		resp.Generated = append(resp.Generated, payroll.NewSlipResponse(saved))
	}

	slog.Info("Payroll generated",
		"company_id", claims.CompanyID,
		"period", fmt.Sprintf("%d-%02d", req.Year, req.Month),
		"generated", len(resp.Generated),
		"skipped", len(resp.Skipped),
	)
	return resp, nil
}

// wholePeriod clears JoinedAt so every day of the month is classified. The
// month's working days fix the per-day rate; TallyDays splits off the days
// before joining.
func wholePeriod(employees []employee.Employee) []employee.Employee {
	out := make([]employee.Employee, len(employees))
	for i, emp := range employees {
		emp.JoinedAt = time.Time{}
		out[i] = emp
	}
	return out
}

func (s *PayrollServiceImpl) payees(ctx context.Context, companyID string, employeeID *string) ([]employee.Employee, error) {
	if employeeID != nil {
		emp, err := s.EmployeeRepository.GetByID(ctx, *employeeID, companyID)
		if err != nil {
			return nil, err
		}
		return []employee.Employee{emp}, nil
	}

	employees, err := s.EmployeeRepository.ListActive(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	if len(employees) == 0 {
		return nil, payroll.ErrNoEmployeesToPay
	}
	return employees, nil
}

// unpaidLeaves returns approved unpaid leave ranges keyed by employee ID.
func (s *PayrollServiceImpl) unpaidLeaves(ctx context.Context, companyID string, from, to time.Time) (map[string][]attendance.DateRange, error) {
	requests, err := s.LeaveRequestRepository.ListActiveBetween(ctx, companyID, "", from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	out := make(map[string][]attendance.DateRange)
	for _, r := range requests {
		if r.Status != leave.StatusApproved || r.LeaveType.Paid() {
			continue
		}
		out[r.EmployeeID] = append(out[r.EmployeeID], attendance.DateRange{Start: r.StartDate, End: r.EndDate})
	}
	return out, nil
}

func skipped(emp employee.Employee, reason error) payroll.SkippedSlip {
	return payroll.SkippedSlip{EmployeeID: emp.ID, EmployeeCode: emp.EmployeeCode, Reason: reason.Error()}
}

// ListSlips implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListSlips(ctx context.Context, filter payroll.SlipFilter) (payroll.ListSlipResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return payroll.ListSlipResponse{}, err
	}
	if !claims.IsManager() {
		employeeID, err := claims.RequireEmployeeID()
		if err != nil {
			return payroll.ListSlipResponse{}, err
		}
		filter.EmployeeID = &employeeID
	}
	if err := filter.Validate(); err != nil {
		return payroll.ListSlipResponse{}, err
	}

	slips, total, err := s.PayrollRepository.ListSlips(ctx, filter, claims.CompanyID)
	if err != nil {
		return payroll.ListSlipResponse{}, fmt.Errorf("failed to list salary slips: %w", err)
	}

	items := make([]payroll.SlipResponse, 0, len(slips))
	for _, slip := range slips {
		items = append(items, payroll.NewSlipResponse(slip))
	}
	return payroll.ListSlipResponse{
		Slips:      items,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

// GetSlip implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetSlip(ctx context.Context, id string) (payroll.SlipResponse, error) {
	slip, err := s.readableSlip(ctx, id)
	if err != nil {
		return payroll.SlipResponse{}, err
	}
	return payroll.NewSlipResponse(slip), nil
}

// SlipPDF implements payroll.PayrollService.
func (s *PayrollServiceImpl) SlipPDF(ctx context.Context, id string) ([]byte, string, error) {
	slip, err := s.readableSlip(ctx, id)
	if err != nil {
		return nil, "", err
	}
	comp, err := s.CompanyRepository.GetByID(ctx, slip.CompanyID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get company: %w", err)
	}

	var buf bytes.Buffer
	if err := export.StatementPDF(&buf, slipStatement(comp, slip)); err != nil {
		return nil, "", fmt.Errorf("failed to render salary slip: %w", err)
	}

	code := slip.EmployeeID
	if slip.EmployeeCode != nil {
		code = *slip.EmployeeCode
	}
	filename := fmt.Sprintf("salary-slip-%s-%d-%02d.pdf", code, slip.PeriodYear, slip.PeriodMonth)
	return buf.Bytes(), filename, nil
}

// Pay implements payroll.PayrollService.
func (s *PayrollServiceImpl) Pay(ctx context.Context, id string) (payroll.SlipResponse, error) {
	if !validator.IsValidUUID(id) {
		return payroll.SlipResponse{}, payroll.ErrSlipNotFound
	}
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return payroll.SlipResponse{}, err
	}

	slip, err := s.PayrollRepository.GetSlip(ctx, id, claims.CompanyID)
	if err != nil {
		return payroll.SlipResponse{}, err
	}
	if slip.Status == payroll.SlipStatusPaid {
		return payroll.SlipResponse{}, payroll.ErrSlipAlreadyPaid
	}

	paidAt := s.now().UTC()
	if err := s.PayrollRepository.MarkPaid(ctx, slip.ID, claims.CompanyID, paidAt); err != nil {
		return payroll.SlipResponse{}, fmt.Errorf("failed to mark salary slip paid: %w", err)
	}
	slip.Status = payroll.SlipStatusPaid
	slip.PaidAt = &paidAt

	slog.Info("Salary slip paid", "slip_id", slip.ID, "employee_id", slip.EmployeeID, "paid_by", claims.UserID)
	return payroll.NewSlipResponse(slip), nil
}

func (s *PayrollServiceImpl) readableSlip(ctx context.Context, id string) (payroll.SalarySlip, error) {
	if !validator.IsValidUUID(id) {
		return payroll.SalarySlip{}, payroll.ErrSlipNotFound
	}
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return payroll.SalarySlip{}, err
	}

	slip, err := s.PayrollRepository.GetSlip(ctx, id, claims.CompanyID)
	if err != nil {
		return payroll.SalarySlip{}, err
	}
	if !claims.IsManager() && (claims.EmployeeID == nil || *claims.EmployeeID != slip.EmployeeID) {
		return payroll.SalarySlip{}, employee.ErrUnauthorized
	}
	return slip, nil
}

func slipStatement(comp company.Company, slip payroll.SalarySlip) export.Statement {
	name, code := "", ""
	if slip.EmployeeName != nil {
		name = *slip.EmployeeName
	}
	if slip.EmployeeCode != nil {
		code = *slip.EmployeeCode
	}
	money := func(d decimal.Decimal) string { return d.StringFixed(2) }
	count := func(n int) string { return fmt.Sprintf("%d", n) }

	footer := "Status: " + string(slip.Status)
	if slip.PaidAt != nil {
		footer += ", paid on " + slip.PaidAt.Format("02 Jan 2006")
	}

	return export.Statement{
		Title:    comp.Name,
		Subtitle: "Salary slip for " + slip.Period(),
		Sections: []export.Section{
			{Heading: "Employee", Lines: []export.Line{
				{Label: "Name", Value: name},
				{Label: "Employee code", Value: code},
			}},
			{Heading: "Attendance", Lines: []export.Line{
				{Label: "Working days", Value: count(slip.WorkingDays)},
				{Label: "Days before joining", Value: count(slip.NotJoinedDays)},
				{Label: "Present days", Value: count(slip.PresentDays)},
				{Label: "Late days", Value: count(slip.LateDays)},
				{Label: "Half days", Value: count(slip.HalfDays)},
				{Label: "Paid leave days", Value: count(slip.LeaveDays)},
				{Label: "Unpaid leave days", Value: count(slip.UnpaidLeaveDays)},
				{Label: "Absent days", Value: count(slip.AbsentDays)},
				{Label: "Overtime", Value: attendance.FormatMinutes(slip.OvertimeMinutes)},
				{Label: "Late minutes", Value: count(slip.LateMinutes)},
			}},
			{Heading: "Pay", Lines: []export.Line{
				{Label: "Base salary", Value: money(slip.BaseSalary)},
				{Label: "Per day rate", Value: money(slip.PerDayRate)},
				{Label: "Pro-rated for joining", Value: "-" + money(slip.ProrationAmount)},
				{Label: "Loss of pay", Value: "-" + money(slip.LossOfPayAmount)},
				{Label: "Overtime", Value: money(slip.OvertimeAmount)},
				{Label: "Gross salary", Value: money(slip.GrossSalary), Bold: true},
				{Label: "Late deduction", Value: "-" + money(slip.LateDeductionAmount)},
				{Label: "Net salary", Value: money(slip.NetSalary), Bold: true},
			}},
		},
		Footer: footer,
	}
}
