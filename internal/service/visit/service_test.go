package visit

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/visit"
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
	formerEmp  = "44444444-4444-4444-4444-444444444444"
)

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeVisitRepo struct {
	visits map[string]visit.Visit
}

func (r *fakeVisitRepo) Create(_ context.Context, v visit.Visit) (visit.Visit, error) {
	v.ID = uuid.NewString()
	r.visits[v.ID] = v
	return v, nil
}

func (r *fakeVisitRepo) GetByID(_ context.Context, id, companyID string) (visit.Visit, error) {
	v, ok := r.visits[id]
	if !ok || v.CompanyID != companyID {
		return visit.Visit{}, visit.ErrVisitNotFound
	}
	return v, nil
}

func (r *fakeVisitRepo) GetOpenByEmployee(_ context.Context, employeeID string) (visit.Visit, error) {
	for _, v := range r.visits {
		if v.EmployeeID == employeeID && v.IsOpen() {
			return v, nil
		}
	}
	return visit.Visit{}, visit.ErrVisitNotFound
}

func (r *fakeVisitRepo) List(_ context.Context, filter visit.VisitFilter, companyID string) ([]visit.Visit, int64, error) {
	var out []visit.Visit
	for _, v := range r.visits {
		if v.CompanyID == companyID && (filter.EmployeeID == nil || *filter.EmployeeID == v.EmployeeID) {
			out = append(out, v)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeVisitRepo) CheckOut(_ context.Context, v visit.Visit) error {
	r.visits[v.ID] = v
	return nil
}

func (r *fakeVisitRepo) CountOnDate(_ context.Context, companyID string, date time.Time) (int, error) {
	return 0, nil
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

func newTestService() (*VisitServiceImpl, *fakeVisitRepo) {
	repo := &fakeVisitRepo{visits: make(map[string]visit.Visit)}
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		employeeID: {ID: employeeID, CompanyID: companyID, FullName: "Asha Rao", EmployeeCode: "EMP-001", Status: employee.StatusActive},
		managerEmp: {ID: managerEmp, CompanyID: companyID, FullName: "Meera Shah", EmployeeCode: "EMP-002", Status: employee.StatusActive},
		formerEmp:  {ID: formerEmp, CompanyID: companyID, FullName: "Ravi Iyer", EmployeeCode: "EMP-003", Status: employee.StatusInactive},
	}}

	ist := time.FixedZone("IST", 5*3600+1800)
	svc := NewVisitService(passthroughTx{}, repo, employees, ist).(*VisitServiceImpl)
	// 20:00 UTC is already the next day in IST.
	svc.now = func() time.Time { return time.Date(2024, 6, 3, 20, 0, 0, 0, time.UTC) }
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

func TestCheckInAndOut(t *testing.T) {
	svc, repo := newTestService()
	ctx := ctxFor(employeeID, user.RoleEmployee)

	started, err := svc.CheckIn(ctx, visit.CheckInRequest{DealerName: "  Shree Motors ", Purpose: "Quarterly order"})
	require.NoError(t, err)
	assert.Equal(t, "Shree Motors", started.DealerName)
	assert.Equal(t, "2024-06-04", started.VisitDate)
	assert.Nil(t, started.CheckOutAt)

	_, err = svc.CheckIn(ctx, visit.CheckInRequest{DealerName: "Another Dealer"})
	assert.ErrorIs(t, err, visit.ErrOpenVisitExists)

	_, err = svc.CheckOut(ctxFor(managerEmp, user.RoleManager), visit.CheckOutRequest{ID: started.ID})
	assert.ErrorIs(t, err, visit.ErrNotVisitOwner)

	svc.now = func() time.Time { return time.Date(2024, 6, 3, 21, 30, 0, 0, time.UTC) }
	outcome := "Order for 40 units"
	done, err := svc.CheckOut(ctx, visit.CheckOutRequest{ID: started.ID, Outcome: &outcome})
	require.NoError(t, err)
	require.NotNil(t, done.CheckOutAt)
	assert.Equal(t, 90, done.DurationMinutes)
	assert.False(t, repo.visits[started.ID].IsOpen())

	_, err = svc.CheckOut(ctx, visit.CheckOutRequest{ID: started.ID})
	assert.ErrorIs(t, err, visit.ErrVisitAlreadyCheckedOut)

	_, err = svc.CheckIn(ctx, visit.CheckInRequest{DealerName: "Another Dealer"})
	assert.NoError(t, err)
}

func TestCheckIn_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := ctxFor(employeeID, user.RoleEmployee)

	_, err := svc.CheckIn(ctx, visit.CheckInRequest{DealerName: " "})
	assert.Error(t, err)

	lat := 91.0
	lng := 72.8
	_, err = svc.CheckIn(ctx, visit.CheckInRequest{DealerName: "X", Latitude: &lat, Longitude: &lng})
	assert.Error(t, err)

	_, err = svc.CheckIn(ctxFor(formerEmp, user.RoleEmployee), visit.CheckInRequest{DealerName: "X"})
	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
}

func TestGetAndList(t *testing.T) {
	svc, repo := newTestService()
	repo.visits["v1"] = visit.Visit{ID: "v1", CompanyID: companyID, EmployeeID: employeeID, DealerName: "A", VisitDate: calendar.DateOf(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))}
	repo.visits["v2"] = visit.Visit{ID: "v2", CompanyID: companyID, EmployeeID: managerEmp, DealerName: "B"}

	_, err := svc.Get(ctxFor(managerEmp, user.RoleEmployee), "v1")
	assert.ErrorIs(t, err, employee.ErrUnauthorized)
	got, err := svc.Get(ctxFor(managerEmp, user.RoleManager), "v1")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", got.VisitDate)

	mine, err := svc.ListMine(ctxFor(employeeID, user.RoleEmployee), visit.VisitFilter{})
	require.NoError(t, err)
	assert.Len(t, mine.Visits, 1)

	all, err := svc.ListAll(ctxFor(managerEmp, user.RoleManager), visit.VisitFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, all.TotalCount)

	bad := "2024-13-01"
	_, err = svc.ListAll(ctxFor(managerEmp, user.RoleManager), visit.VisitFilter{StartDate: &bad})
	assert.Error(t, err)
}
