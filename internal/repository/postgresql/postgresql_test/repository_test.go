package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserRepository_CreateAndDuplicateEmail(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	companyID := createTestCompany(t, db)
	repo := postgresql.NewUserRepository(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("securepass"), bcrypt.MinCost)
	require.NoError(t, err)

	created, err := repo.Create(ctx, user.User{
		CompanyID:    companyID,
		Email:        "owner@example.com",
		PasswordHash: string(hash),
		Role:         user.RoleOwner,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	found, err := repo.GetByEmail(ctx, "OWNER@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Nil(t, found.EmployeeID)

	_, err = repo.Create(ctx, user.User{CompanyID: companyID, Email: "owner@example.com", PasswordHash: "x", Role: user.RoleEmployee})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)

	_, err = repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestRefreshTokenRepository_Lifecycle(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	companyID := createTestCompany(t, db)

	u, err := postgresql.NewUserRepository(db).Create(ctx, user.User{
		CompanyID: companyID, Email: "a@example.com", PasswordHash: "x", Role: user.RoleEmployee,
	})
	require.NoError(t, err)

	repo := postgresql.NewRefreshTokenRepository(db)
	expires := time.Now().Add(time.Hour).Unix()
	require.NoError(t, repo.CreateRefreshToken(ctx, u.ID, "token-1", expires, auth.SessionTrackingRequest{}))

	userID, revoked, err := repo.IsRefreshTokenRevoked(ctx, "token-1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
	assert.False(t, revoked)

	require.NoError(t, repo.RevokeAllForUser(ctx, u.ID))
	_, revoked, err = repo.IsRefreshTokenRevoked(ctx, "token-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	_, _, err = repo.IsRefreshTokenRevoked(ctx, "unknown")
	assert.ErrorIs(t, err, auth.ErrRefreshTokenNotFound)
}

func TestEmployeeRepository_DuplicateCode(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	companyID := createTestCompany(t, db)
	repo := postgresql.NewEmployeeRepository(db)

	emp := employee.Employee{
		CompanyID:    companyID,
		EmployeeCode: "EMP-001",
		FullName:     "Asha Rao",
		ShiftStart:   "9:00 AM",
		ShiftEnd:     "6:00 PM",
		BaseSalary:   decimal.NewFromInt(30000),
		JoinedAt:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	created, err := repo.Create(ctx, emp)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sunday"}, created.WeekOffDays)
	assert.Equal(t, employee.StatusActive, created.Status)
	assert.True(t, created.BaseSalary.Equal(decimal.NewFromInt(30000)))

	_, err = repo.Create(ctx, emp)
	assert.ErrorIs(t, err, employee.ErrEmployeeCodeExists)

	active, err := repo.ListActive(ctx, companyID)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestAttendanceRepository_OnePerDayAndOpenBefore(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	companyID := createTestCompany(t, db)
	employeeID := createTestEmployee(t, db, companyID, "EMP-001")
	repo := postgresql.NewAttendanceRepository(db)

	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	punchIn := time.Date(2024, 6, 3, 3, 30, 0, 0, time.UTC)
	rec := attendance.Attendance{CompanyID: companyID, EmployeeID: employeeID, Date: day, PunchIn: &punchIn}

	_, err := repo.Create(ctx, rec)
	require.NoError(t, err)
	_, err = repo.Create(ctx, rec)
	assert.ErrorIs(t, err, attendance.ErrAlreadyPunchedIn)

	open, err := repo.ListOpenBefore(ctx, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, employeeID, open[0].EmployeeID)

	open, err = repo.ListOpenBefore(ctx, day)
	require.NoError(t, err)
	assert.Empty(t, open)

	missing, err := repo.GetByEmployeeAndDate(ctx, employeeID, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPayrollRepository_SaveDraftSkipsPaid(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	companyID := createTestCompany(t, db)
	employeeID := createTestEmployee(t, db, companyID, "EMP-001")
	repo := postgresql.NewPayrollRepository(db)

	slip := payroll.SalarySlip{
		CompanyID: companyID, EmployeeID: employeeID, PeriodYear: 2024, PeriodMonth: 6,
		WorkingDays: 25, PresentDays: 22,
		BaseSalary: decimal.NewFromInt(30000), PerDayRate: decimal.NewFromInt(1200),
		GrossSalary: decimal.NewFromInt(30000), NetSalary: decimal.NewFromInt(26400),
	}
	saved, err := repo.SaveDraft(ctx, slip)
	require.NoError(t, err)
	assert.Equal(t, payroll.SlipStatusDraft, saved.Status)

	slip.PresentDays = 23
	again, err := repo.SaveDraft(ctx, slip)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, again.ID)
	assert.Equal(t, 23, again.PresentDays)

	require.NoError(t, repo.MarkPaid(ctx, saved.ID, companyID, time.Now()))
	assert.ErrorIs(t, repo.MarkPaid(ctx, saved.ID, companyID, time.Now()), payroll.ErrSlipAlreadyPaid)

	_, err = repo.SaveDraft(ctx, slip)
	assert.ErrorIs(t, err, payroll.ErrSlipAlreadyPaid)
}
