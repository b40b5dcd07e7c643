package leave

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	companyID  = "11111111-1111-1111-1111-111111111111"
	employeeID = "22222222-2222-2222-2222-222222222222"
	managerEmp = "33333333-3333-3333-3333-333333333333"
)

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeLeaveRepo struct {
	requests map[string]leave.LeaveRequest
}

func (r *fakeLeaveRepo) Create(_ context.Context, l leave.LeaveRequest) (leave.LeaveRequest, error) {
	l.ID = uuid.NewString()
	r.requests[l.ID] = l
	return l, nil
}

func (r *fakeLeaveRepo) GetByID(_ context.Context, id, companyID string) (leave.LeaveRequest, error) {
	l, ok := r.requests[id]
	if !ok || l.CompanyID != companyID {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return l, nil
}

func (r *fakeLeaveRepo) List(_ context.Context, filter leave.LeaveFilter, companyID string) ([]leave.LeaveRequest, int64, error) {
	var out []leave.LeaveRequest
	for _, l := range r.requests {
		if l.CompanyID == companyID && (filter.EmployeeID == nil || *filter.EmployeeID == l.EmployeeID) {
			out = append(out, l)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeLeaveRepo) UpdateStatus(_ context.Context, l leave.LeaveRequest) error {
	r.requests[l.ID] = l
	return nil
}

func (r *fakeLeaveRepo) HasOverlap(_ context.Context, employeeID string, from, to time.Time) (bool, error) {
	for _, l := range r.requests {
		if l.EmployeeID != employeeID || (l.Status != leave.StatusPending && l.Status != leave.StatusApproved) {
			continue
		}
		if calendar.Overlaps(l.StartDate, l.EndDate, from, to) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeLeaveRepo) ListActiveBetween(_ context.Context, companyID, employeeID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, l := range r.requests {
		if l.CompanyID != companyID || (employeeID != "" && l.EmployeeID != employeeID) {
			continue
		}
		if (l.Status == leave.StatusPending || l.Status == leave.StatusApproved) && calendar.Overlaps(l.StartDate, l.EndDate, from, to) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeLeaveRepo) CountPending(_ context.Context, companyID string) (int, error) {
	n := 0
	for _, l := range r.requests {
		if l.CompanyID == companyID && l.Status == leave.StatusPending {
			n++
		}
	}
	return n, nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	employees map[string]employee.Employee
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id, companyID string) (employee.Employee, error) {
	e, ok := r.employees[id]
	if !ok || e.CompanyID != companyID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

type fakeHolidayRepo struct {
	holiday.HolidayRepository
	holidays []holiday.Holiday
}

func (r *fakeHolidayRepo) ListBetween(_ context.Context, companyID string, from, to time.Time) ([]holiday.Holiday, error) {
	var out []holiday.Holiday
	for _, h := range r.holidays {
		if h.CompanyID == companyID && calendar.Within(h.Date, from, to) {
			out = append(out, h)
		}
	}
	return out, nil
}

func newTestService() (*LeaveServiceImpl, *fakeLeaveRepo) {
	repo := &fakeLeaveRepo{requests: make(map[string]leave.LeaveRequest)}
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		employeeID: {ID: employeeID, CompanyID: companyID, FullName: "Asha Rao", EmployeeCode: "EMP-001", WeekOffDays: []string{"Sunday"}, JoinedAt: date(2020, 1, 1)},
		managerEmp: {ID: managerEmp, CompanyID: companyID, FullName: "Meera Shah", EmployeeCode: "EMP-002", WeekOffDays: []string{"Sunday"}, JoinedAt: date(2020, 1, 1)},
	}}
	holidays := &fakeHolidayRepo{holidays: []holiday.Holiday{{CompanyID: companyID, Date: date(2024, 8, 15), Name: "Independence Day"}}}

	svc := NewLeaveService(passthroughTx{}, repo, employees, holidays, NewBalanceCalculator(Entitlements{Casual: 3, Sick: 12, Earned: 15})).(*LeaveServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC) }
	return svc, repo
}

func ctxFor(employeeID string, role user.Role) context.Context {
	return jwt.NewContext(context.Background(), jwt.Claims{
		UserID:     "user-" + employeeID,
		CompanyID:  companyID,
		EmployeeID: &employeeID,
		Role:       role,
	})
}

func TestCreate_RejectsOverlap(t *testing.T) {
	svc, _ := newTestService()
	ctx := ctxFor(employeeID, user.RoleEmployee)

	created, err := svc.Create(ctx, leave.CreateLeaveRequest{LeaveType: "sick", StartDate: "2024-06-10", EndDate: "2024-06-12", Reason: "fever"})
	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, created.Status)
	assert.Equal(t, 3, created.TotalDays)
	require.NotNil(t, created.EmployeeName)

	_, err = svc.Create(ctx, leave.CreateLeaveRequest{LeaveType: "casual", StartDate: "2024-06-12", EndDate: "2024-06-13", Reason: "errand"})
	assert.ErrorIs(t, err, leave.ErrLeaveOverlap)

	_, err = svc.Create(ctx, leave.CreateLeaveRequest{LeaveType: "casual", StartDate: "2024-06-13", EndDate: "2024-06-13", Reason: "errand"})
	assert.NoError(t, err)
}

func TestCreate_ChecksBalance(t *testing.T) {
	svc, _ := newTestService()
	ctx := ctxFor(employeeID, user.RoleEmployee)

	// Four working days against a casual allowance of three.
	_, err := svc.Create(ctx, leave.CreateLeaveRequest{LeaveType: "casual", StartDate: "2024-07-01", EndDate: "2024-07-04", Reason: "trip"})
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)

	// Unpaid leave has no allowance.
	_, err = svc.Create(ctx, leave.CreateLeaveRequest{LeaveType: "unpaid", StartDate: "2024-07-01", EndDate: "2024-07-04", Reason: "trip"})
	assert.NoError(t, err)

	// Sunday only.
	_, err = svc.Create(ctx, leave.CreateLeaveRequest{LeaveType: "casual", StartDate: "2024-07-07", EndDate: "2024-07-07", Reason: "x"})
	assert.ErrorIs(t, err, leave.ErrNoWorkingDays)
}

func TestReview(t *testing.T) {
	svc, repo := newTestService()

	created, err := svc.Create(ctxFor(employeeID, user.RoleEmployee), leave.CreateLeaveRequest{LeaveType: "sick", StartDate: "2024-06-10", EndDate: "2024-06-10", Reason: "fever"})
	require.NoError(t, err)

	_, err = svc.Approve(ctxFor(employeeID, user.RoleManager), leave.ReviewLeaveRequest{ID: created.ID})
	assert.ErrorIs(t, err, leave.ErrCannotReviewOwnRequest)

	note := "get well soon"
	approved, err := svc.Approve(ctxFor(managerEmp, user.RoleManager), leave.ReviewLeaveRequest{ID: created.ID, Note: &note})
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, approved.Status)
	require.NotNil(t, approved.ReviewedBy)
	assert.Equal(t, "user-"+managerEmp, *approved.ReviewedBy)
	assert.Equal(t, leave.StatusApproved, repo.requests[created.ID].Status)

	_, err = svc.Reject(ctxFor(managerEmp, user.RoleManager), leave.ReviewLeaveRequest{ID: created.ID})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)
}

func TestCancel_OwnPendingOnly(t *testing.T) {
	svc, _ := newTestService()
	own := ctxFor(employeeID, user.RoleEmployee)

	created, err := svc.Create(own, leave.CreateLeaveRequest{LeaveType: "sick", StartDate: "2024-06-10", EndDate: "2024-06-10", Reason: "fever"})
	require.NoError(t, err)

	_, err = svc.Cancel(ctxFor(managerEmp, user.RoleManager), created.ID)
	assert.ErrorIs(t, err, leave.ErrNotRequestOwner)

	cancelled, err := svc.Cancel(own, created.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusCancelled, cancelled.Status)

	_, err = svc.Cancel(own, created.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)
}

func TestBalance_CurrentYear(t *testing.T) {
	svc, _ := newTestService()
	ctx := ctxFor(employeeID, user.RoleEmployee)

	// Aug 15 is a holiday, so this spans one working day.
	_, err := svc.Create(ctx, leave.CreateLeaveRequest{LeaveType: "casual", StartDate: "2024-08-15", EndDate: "2024-08-16", Reason: "long weekend"})
	require.NoError(t, err)

	balances, err := svc.Balance(ctx, 0)
	require.NoError(t, err)
	require.Len(t, balances, 4)
	assert.Equal(t, leave.TypeCasual, balances[0].LeaveType)
	assert.Equal(t, 1.0, balances[0].Pending)
	assert.Equal(t, 2.0, balances[0].Remaining)
}
