package company

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/office"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/fixtures"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeCompanyRepo struct {
	company.CompanyRepository
	companies map[string]company.Company
}

func (r *fakeCompanyRepo) GetByID(_ context.Context, id string) (company.Company, error) {
	c, ok := r.companies[id]
	if !ok {
		return company.Company{}, company.ErrCompanyNotFound
	}
	return c, nil
}

func (r *fakeCompanyRepo) Create(_ context.Context, c company.Company) (company.Company, error) {
	c.ID = uuid.NewString()
	r.companies[c.ID] = c
	return c, nil
}

func (r *fakeCompanyRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, c := range r.companies {
		if c.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCompanyRepo) Update(_ context.Context, id string, req company.UpdateCompanyRequest) error {
	c, ok := r.companies[id]
	if !ok {
		return company.ErrCompanyNotFound
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Timezone != nil {
		c.Timezone = *req.Timezone
	}
	r.companies[id] = c
	return nil
}

type fakeUserRepo struct {
	user.UserRepository
	users []user.User
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	u.ID = uuid.NewString()
	r.users = append(r.users, u)
	return u, nil
}

type fakeOfficeRepo struct {
	office.OfficeRepository
	offices []office.Office
}

func (r *fakeOfficeRepo) Create(_ context.Context, o office.Office) (office.Office, error) {
	o.ID = uuid.NewString()
	r.offices = append(r.offices, o)
	return o, nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	employees []employee.Employee
}

func (r *fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	e.ID = uuid.NewString()
	r.employees = append(r.employees, e)
	return e, nil
}

func validBootstrap() company.BootstrapRequest {
	return company.BootstrapRequest{
		CompanyName:     "Acme Traders",
		CompanyUsername: "acme",
		Timezone:        "Asia/Kolkata",
		OwnerEmail:      "owner@acme.example",
		OwnerPassword:   "super-secret",
	}
}

func TestBootstrap(t *testing.T) {
	companies := &fakeCompanyRepo{companies: make(map[string]company.Company)}
	users := &fakeUserRepo{}
	offices := &fakeOfficeRepo{}
	employees := &fakeEmployeeRepo{}
	svc := NewCompanyService(passthroughTx{}, companies, users, offices, employees)

	created, err := svc.Bootstrap(context.Background(), validBootstrap())
	require.NoError(t, err)
	assert.Equal(t, "acme", created.Username)
	assert.Equal(t, "Asia/Kolkata", created.Timezone)

	require.Len(t, offices.offices, 1)
	assert.Equal(t, "Acme Traders Head Office", offices.offices[0].Name)

	require.Len(t, users.users, 1)
	owner := users.users[0]
	assert.Equal(t, user.RoleOwner, owner.Role)
	assert.Equal(t, created.ID, owner.CompanyID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(owner.PasswordHash), []byte("super-secret")))

	require.Len(t, employees.employees, 1)
	emp := employees.employees[0]
	assert.Equal(t, fixtures.OwnerEmployeeCode, emp.EmployeeCode)
	require.NotNil(t, emp.UserID)
	assert.Equal(t, owner.ID, *emp.UserID)
	require.NotNil(t, emp.OfficeID)
	assert.Equal(t, offices.offices[0].ID, *emp.OfficeID)
	assert.Equal(t, []string{"Sunday"}, emp.WeekOffDays)

	_, err = svc.Bootstrap(context.Background(), validBootstrap())
	assert.ErrorIs(t, err, company.ErrCompanyUsernameExists)

	again := validBootstrap()
	again.CompanyUsername = "acme-two"
	_, err = svc.Bootstrap(context.Background(), again)
	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}

func TestBootstrap_Validation(t *testing.T) {
	svc := NewCompanyService(passthroughTx{}, &fakeCompanyRepo{companies: map[string]company.Company{}}, &fakeUserRepo{}, &fakeOfficeRepo{}, &fakeEmployeeRepo{})

	req := validBootstrap()
	req.Timezone = "Mars/Olympus"
	req.OwnerPassword = "short"
	_, err := svc.Bootstrap(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timezone")
	assert.Contains(t, err.Error(), "owner_password")
}

func TestUpdateMyCompany(t *testing.T) {
	companies := &fakeCompanyRepo{companies: map[string]company.Company{
		"c1": {ID: "c1", Name: "Acme", Username: "acme", Timezone: "Asia/Kolkata"},
	}}
	svc := NewCompanyService(passthroughTx{}, companies, &fakeUserRepo{}, &fakeOfficeRepo{}, &fakeEmployeeRepo{})
	ctx := jwt.NewContext(context.Background(), jwt.Claims{UserID: "u1", CompanyID: "c1", Role: user.RoleOwner})

	tz := "Asia/Dubai"
	updated, err := svc.UpdateMyCompany(ctx, company.UpdateCompanyRequest{Timezone: &tz})
	require.NoError(t, err)
	assert.Equal(t, "Asia/Dubai", updated.Timezone)
	assert.Equal(t, "Acme", updated.Name)

	bad := "Nowhere/Land"
	_, err = svc.UpdateMyCompany(ctx, company.UpdateCompanyRequest{Timezone: &bad})
	assert.Error(t, err)
}
