package payroll

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	companyID  = "11111111-1111-1111-1111-111111111111"
	employeeID = "22222222-2222-2222-2222-222222222222"
	managerEmp = "33333333-3333-3333-3333-333333333333"
	internEmp  = "44444444-4444-4444-4444-444444444444"
)

type fakePayrollRepo struct {
	settings *payroll.Settings
	slips    map[string]payroll.SalarySlip
}

func (r *fakePayrollRepo) GetSettings(_ context.Context, companyID string) (*payroll.Settings, error) {
	return r.settings, nil
}

func (r *fakePayrollRepo) UpsertSettings(_ context.Context, s payroll.Settings) (payroll.Settings, error) {
	s.IsDefault = false
	s.UpdatedAt = time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC)
	r.settings = &s
	return s, nil
}

func (r *fakePayrollRepo) SaveDraft(_ context.Context, slip payroll.SalarySlip) (payroll.SalarySlip, error) {
	for id, existing := range r.slips {
		if existing.EmployeeID == slip.EmployeeID && existing.PeriodYear == slip.PeriodYear && existing.PeriodMonth == slip.PeriodMonth {
			if existing.Status == payroll.SlipStatusPaid {
				return payroll.SalarySlip{}, payroll.ErrSlipAlreadyPaid
			}
			slip.ID = id
			r.slips[id] = slip
			return slip, nil
		}
	}
	slip.ID = uuid.NewString()
	r.slips[slip.ID] = slip
	return slip, nil
}

func (r *fakePayrollRepo) GetSlip(_ context.Context, id, companyID string) (payroll.SalarySlip, error) {
	s, ok := r.slips[id]
	if !ok || s.CompanyID != companyID {
		return payroll.SalarySlip{}, payroll.ErrSlipNotFound
	}
	return s, nil
}

func (r *fakePayrollRepo) ListSlips(_ context.Context, filter payroll.SlipFilter, companyID string) ([]payroll.SalarySlip, int64, error) {
	var out []payroll.SalarySlip
	for _, s := range r.slips {
		if s.CompanyID == companyID && (filter.EmployeeID == nil || *filter.EmployeeID == s.EmployeeID) {
			out = append(out, s)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakePayrollRepo) MarkPaid(_ context.Context, id, companyID string, paidAt time.Time) error {
	s := r.slips[id]
	s.Status = payroll.SlipStatusPaid
	s.PaidAt = &paidAt
	r.slips[id] = s
	return nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	employees []employee.Employee
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id, companyID string) (employee.Employee, error) {
	for _, e := range r.employees {
		if e.ID == id && e.CompanyID == companyID {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) ListActive(_ context.Context, companyID string) ([]employee.Employee, error) {
	return r.employees, nil
}

type fakeLeaveRepo struct {
	leave.LeaveRequestRepository
	requests []leave.LeaveRequest
}

func (r *fakeLeaveRepo) ListActiveBetween(_ context.Context, companyID, employeeID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	return r.requests, nil
}

type fakeCompanyRepo struct {
	company.CompanyRepository
}

func (fakeCompanyRepo) GetByID(_ context.Context, id string) (company.Company, error) {
	return company.Company{ID: id, Name: "Acme Traders", Username: "acme"}, nil
}

// fakeEvaluator classifies every June 2024 day from a fixed pattern:
// Sundays are week-offs, June 3 is absent, June 4-5 are on leave, the rest on time.
// Like the real evaluator it leaves out days before the employee joined.
type fakeEvaluator struct{}

func (fakeEvaluator) Policy(_ context.Context, companyID string) (attendance.Policy, error) {
	return attendance.Policy{CompanyID: companyID, LateGraceMinutes: 10, FullDayHours: 8, HalfDayHours: 4}, nil
}

func (fakeEvaluator) Evaluate(_ context.Context, companyID string, employees []employee.Employee, from, to time.Time) (map[string][]attendance.Day, error) {
	out := make(map[string][]attendance.Day)
	for _, emp := range employees {
		for _, d := range calendar.Days(from, to) {
			if d.Before(calendar.DateOf(emp.JoinedAt)) {
				continue
			}
			status := attendance.StatusPresentOnTime
			switch {
			case d.Weekday() == time.Sunday:
				status = attendance.StatusWeekOff
			case d.Day() == 3:
				status = attendance.StatusAbsent
			case d.Day() == 4 || d.Day() == 5:
				status = attendance.StatusOnLeave
			}
			out[emp.ID] = append(out[emp.ID], attendance.Day{Date: d, Classification: attendance.Classification{Status: status}})
		}
	}
	return out, nil
}

func newTestService() (*PayrollServiceImpl, *fakePayrollRepo) {
	repo := &fakePayrollRepo{slips: make(map[string]payroll.SalarySlip)}
	employees := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: employeeID, CompanyID: companyID, FullName: "Asha Rao", EmployeeCode: "EMP-001", BaseSalary: decimal.NewFromInt(26000)},
		{ID: internEmp, CompanyID: companyID, FullName: "Kiran Das", EmployeeCode: "EMP-004"},
	}}
	leaves := &fakeLeaveRepo{requests: []leave.LeaveRequest{
		{EmployeeID: employeeID, LeaveType: leave.TypeUnpaid, Status: leave.StatusApproved, StartDate: date(2024, 6, 5), EndDate: date(2024, 6, 5)},
		{EmployeeID: employeeID, LeaveType: leave.TypeUnpaid, Status: leave.StatusPending, StartDate: date(2024, 6, 4), EndDate: date(2024, 6, 4)},
	}}

	svc := NewPayrollService(repo, employees, leaves, fakeCompanyRepo{}, fakeEvaluator{}, time.UTC).(*PayrollServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 7, 10, 9, 0, 0, 0, time.UTC) }
	return svc, repo
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ctxFor(employeeID string, role user.Role) context.Context {
	return jwt.NewContext(context.Background(), jwt.Claims{
		UserID:     "user-" + employeeID,
		CompanyID:  companyID,
		EmployeeID: &employeeID,
		Role:       role,
	})
}

func TestSettings(t *testing.T) {
	svc, _ := newTestService()
	ctx := ctxFor(managerEmp, user.RoleManager)

	got, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.True(t, got.IsDefault)
	assert.True(t, got.OvertimeEnabled)

	rate := decimal.RequireFromString("1.505")
	enabled := true
	updated, err := svc.UpdateSettings(ctx, payroll.UpdateSettingsRequest{LateDeductionEnabled: &enabled, LateDeductionPerMinute: &rate})
	require.NoError(t, err)
	assert.False(t, updated.IsDefault)
	assert.True(t, updated.LateDeductionEnabled)
	assert.Equal(t, "1.51", updated.LateDeductionPerMinute.String())

	_, err = svc.UpdateSettings(ctx, payroll.UpdateSettingsRequest{})
	assert.Error(t, err)
}

func TestGenerate(t *testing.T) {
	svc, repo := newTestService()
	ctx := ctxFor(managerEmp, user.RoleManager)

	resp, err := svc.Generate(ctx, payroll.GenerateRequest{Year: 2024, Month: 6})
	require.NoError(t, err)
	require.Len(t, resp.Generated, 1)
	require.Len(t, resp.Skipped, 1)
	assert.Equal(t, "EMP-004", resp.Skipped[0].EmployeeCode)

	// June 2024 has 30 days and 5 Sundays.
	slip := resp.Generated[0]
	assert.Equal(t, 25, slip.WorkingDays)
	assert.Equal(t, 1, slip.AbsentDays)
	assert.Equal(t, 1, slip.LeaveDays)
	assert.Equal(t, 1, slip.UnpaidLeaveDays)
	assert.Equal(t, 22, slip.PresentDays)
	assert.Equal(t, "1040", slip.PerDayRate.String())
	assert.Equal(t, "2080", slip.LossOfPayAmount.String())
	assert.Equal(t, "23920", slip.NetSalary.String())
	assert.Equal(t, "June 2024", slip.Period)

	// Regenerating replaces the draft.
	again, err := svc.Generate(ctx, payroll.GenerateRequest{Year: 2024, Month: 6, EmployeeID: &slip.EmployeeID})
	require.NoError(t, err)
	require.Len(t, again.Generated, 1)
	assert.Equal(t, slip.ID, again.Generated[0].ID)
	assert.Len(t, repo.slips, 1)

	_, err = svc.Pay(ctx, slip.ID)
	require.NoError(t, err)
	paid, err := svc.Generate(ctx, payroll.GenerateRequest{Year: 2024, Month: 6, EmployeeID: &slip.EmployeeID})
	require.NoError(t, err)
	assert.Empty(t, paid.Generated)
	require.Len(t, paid.Skipped, 1)
	assert.Equal(t, payroll.ErrSlipAlreadyPaid.Error(), paid.Skipped[0].Reason)

	_, err = svc.Pay(ctx, slip.ID)
	assert.ErrorIs(t, err, payroll.ErrSlipAlreadyPaid)
}

func TestGenerate_ProratesMidMonthJoiner(t *testing.T) {
	svc, _ := newTestService()
	svc.EmployeeRepository = &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: employeeID, CompanyID: companyID, FullName: "Meera Nair", EmployeeCode: "EMP-007", BaseSalary: decimal.NewFromInt(25000), JoinedAt: date(2024, 6, 20)},
		{ID: internEmp, CompanyID: companyID, FullName: "Kiran Das", EmployeeCode: "EMP-004", BaseSalary: decimal.NewFromInt(20000), JoinedAt: date(2024, 7, 1)},
	}}
	svc.LeaveRequestRepository = &fakeLeaveRepo{}

	resp, err := svc.Generate(ctxFor(managerEmp, user.RoleManager), payroll.GenerateRequest{Year: 2024, Month: 6})
	require.NoError(t, err)
	require.Len(t, resp.Generated, 1)
	require.Len(t, resp.Skipped, 1)
	assert.Equal(t, payroll.ErrJoinedAfterPeriod.Error(), resp.Skipped[0].Reason)

	// June 1-19 holds 16 working days; the absence and leave on June 3-5 predate joining.
	slip := resp.Generated[0]
	assert.Equal(t, 25, slip.WorkingDays)
	assert.Equal(t, 16, slip.NotJoinedDays)
	assert.Equal(t, 9, slip.PresentDays)
	assert.Zero(t, slip.AbsentDays)
	assert.Zero(t, slip.LeaveDays)
	assert.True(t, slip.LossOfPayAmount.IsZero())
	assert.Equal(t, "1000", slip.PerDayRate.String())
	assert.Equal(t, "16000", slip.ProrationAmount.String())
	assert.Equal(t, "9000", slip.NetSalary.String())
}

func TestGenerate_RequiresClosedMonth(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Generate(ctxFor(managerEmp, user.RoleManager), payroll.GenerateRequest{Year: 2024, Month: 7})
	assert.ErrorIs(t, err, payroll.ErrPeriodNotClosed)

	_, err = svc.Generate(ctxFor(managerEmp, user.RoleManager), payroll.GenerateRequest{Year: 2024, Month: 13})
	assert.Error(t, err)
}

func TestSlipAccess(t *testing.T) {
	svc, _ := newTestService()
	resp, err := svc.Generate(ctxFor(managerEmp, user.RoleManager), payroll.GenerateRequest{Year: 2024, Month: 6})
	require.NoError(t, err)
	id := resp.Generated[0].ID

	own, err := svc.GetSlip(ctxFor(employeeID, user.RoleEmployee), id)
	require.NoError(t, err)
	assert.Equal(t, id, own.ID)

	_, err = svc.GetSlip(ctxFor(internEmp, user.RoleEmployee), id)
	assert.ErrorIs(t, err, employee.ErrUnauthorized)

	list, err := svc.ListSlips(ctxFor(internEmp, user.RoleEmployee), payroll.SlipFilter{})
	require.NoError(t, err)
	assert.Empty(t, list.Slips)

	all, err := svc.ListSlips(ctxFor(managerEmp, user.RoleManager), payroll.SlipFilter{})
	require.NoError(t, err)
	assert.Len(t, all.Slips, 1)

	_, err = svc.GetSlip(ctxFor(managerEmp, user.RoleManager), "not-a-uuid")
	assert.ErrorIs(t, err, payroll.ErrSlipNotFound)
}

func TestSlipPDF(t *testing.T) {
	svc, _ := newTestService()
	resp, err := svc.Generate(ctxFor(managerEmp, user.RoleManager), payroll.GenerateRequest{Year: 2024, Month: 6})
	require.NoError(t, err)

	body, filename, err := svc.SlipPDF(ctxFor(employeeID, user.RoleEmployee), resp.Generated[0].ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF-")))
	assert.Equal(t, "salary-slip-"+employeeID+"-2024-06.pdf", filename)
}
