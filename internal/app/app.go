// Package app wires repositories, services and handlers from a Config. Both
// the API server and hrisctl build on it.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/config"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/expense"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/office"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/visit"
	appHTTP "github.com/cmlabs-hris/hris-attendance-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/cache"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/storage"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hris-attendance-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/hris-attendance-go/internal/service/auth"
	serviceCompany "github.com/cmlabs-hris/hris-attendance-go/internal/service/company"
	dashboardService "github.com/cmlabs-hris/hris-attendance-go/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/hris-attendance-go/internal/service/employee"
	expenseService "github.com/cmlabs-hris/hris-attendance-go/internal/service/expense"
	"github.com/cmlabs-hris/hris-attendance-go/internal/service/file"
	holidayService "github.com/cmlabs-hris/hris-attendance-go/internal/service/holiday"
	leaveService "github.com/cmlabs-hris/hris-attendance-go/internal/service/leave"
	officeService "github.com/cmlabs-hris/hris-attendance-go/internal/service/office"
	payrollService "github.com/cmlabs-hris/hris-attendance-go/internal/service/payroll"
	visitService "github.com/cmlabs-hris/hris-attendance-go/internal/service/visit"
	"github.com/redis/go-redis/v9"
)

// Version is stamped into request logs.
var Version = "v1.0.0"

type Services struct {
	Auth       auth.AuthService
	Company    company.CompanyService
	Office     office.OfficeService
	Employee   employee.EmployeeService
	Holiday    holiday.HolidayService
	Leave      leave.LeaveService
	Attendance attendance.AttendanceService
	Expense    expense.ExpenseService
	Visit      visit.VisitService
	Payroll    payroll.PayrollService
	Dashboard  dashboard.DashboardService
}

type App struct {
	Config     *config.Config
	DB         *database.DB
	JWTService jwt.Service
	Storage    *storage.LocalStorage
	Services   Services

	companies company.CompanyRepository
	redis     *redis.Client
}

// New connects to PostgreSQL, and to Redis when configured, and wires every
// service. Call Close when done.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	a := &App{Config: cfg, DB: db}

	var blocklist cache.TokenBlocklist
	if cfg.Redis.Addr != "" {
		client, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.redis = client
		blocklist = cache.NewRedisBlocklist(client)
		slog.Info("Token blocklist backed by redis", "addr", cfg.Redis.Addr)
	} else {
		blocklist = cache.NewMemoryBlocklist()
		slog.Info("Token blocklist kept in memory")
	}

	a.JWTService, err = jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration, blocklist, cfg.App.Env == "production")
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create jwt service: %w", err)
	}

	a.Storage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to initialize local storage: %w", err)
	}

	a.Services = newServices(cfg, db, a.JWTService, a.Storage)
	a.companies = postgresql.NewCompanyRepository(db)
	return a, nil
}

// OperatorContext resolves a company by username and returns a context that
// acts as its owner. Services read the caller from the context, so
// command-line operations go through the same authorization paths as HTTP.
func (a *App) OperatorContext(ctx context.Context, companyUsername string) (context.Context, company.Company, error) {
	c, err := a.companies.GetByUsername(ctx, companyUsername)
	if err != nil {
		return nil, company.Company{}, fmt.Errorf("company %q: %w", companyUsername, err)
	}
	return jwt.NewContext(ctx, jwt.Claims{
		UserID:    operatorUserID,
		CompanyID: c.ID,
		Role:      user.RoleOwner,
		ExpiresAt: time.Now().Add(time.Hour),
	}), c, nil
}

const operatorUserID = "hrisctl"

func newServices(cfg *config.Config, db *database.DB, jwtService jwt.Service, fileStorage storage.FileStorage) Services {
	loc := cfg.Location()
	tx := postgresql.NewTransactor(db)

	userRepo := postgresql.NewUserRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	officeRepo := postgresql.NewOfficeRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	policyRepo := postgresql.NewPolicyRepository(db)
	expenseRepo := postgresql.NewExpenseRepository(db)
	visitRepo := postgresql.NewVisitRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	defaults := attendance.Policy{
		LateGraceMinutes: cfg.Attendance.LateGraceMinutes,
		FullDayHours:     cfg.Attendance.FullDayHours,
		HalfDayHours:     cfg.Attendance.HalfDayHours,
	}
	evaluator := attendanceService.NewEvaluator(attendanceRepo, policyRepo, holidayRepo, leaveRequestRepo, defaults, loc)
	balances := leaveService.NewBalanceCalculator(leaveService.Entitlements{
		Casual: cfg.Leave.CasualDays,
		Sick:   cfg.Leave.SickDays,
		Earned: cfg.Leave.EarnedDays,
	})
	fileService := file.NewFileService(fileStorage)

	return Services{
		Auth:       serviceAuth.NewAuthService(tx, userRepo, refreshTokenRepo, employeeRepo, jwtService),
		Company:    serviceCompany.NewCompanyService(tx, companyRepo, userRepo, officeRepo, employeeRepo),
		Office:     officeService.NewOfficeService(officeRepo),
		Employee:   employeeService.NewEmployeeService(tx, employeeRepo, userRepo, officeRepo, companyRepo, loc),
		Holiday:    holidayService.NewHolidayService(tx, holidayRepo),
		Leave:      leaveService.NewLeaveService(tx, leaveRequestRepo, employeeRepo, holidayRepo, balances),
		Attendance: attendanceService.NewAttendanceService(attendanceRepo, policyRepo, employeeRepo, officeRepo, evaluator),
		Expense:    expenseService.NewExpenseService(expenseRepo, employeeRepo, fileService, loc),
		Visit:      visitService.NewVisitService(tx, visitRepo, employeeRepo, loc),
		Payroll:    payrollService.NewPayrollService(payrollRepo, employeeRepo, leaveRequestRepo, companyRepo, evaluator, loc),
		Dashboard:  dashboardService.NewDashboardService(dashboardRepo, employeeRepo, leaveRequestRepo, expenseRepo, visitRepo, holidayRepo, evaluator, loc),
	}
}

// Handler builds the HTTP router over every service.
func (a *App) Handler() http.Handler {
	s := a.Services
	handlers := appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(a.JWTService, s.Auth),
		Company:    appHTTP.NewCompanyHandler(s.Company),
		Office:     appHTTP.NewOfficeHandler(s.Office),
		Employee:   appHTTP.NewEmployeeHandler(s.Employee),
		Holiday:    appHTTP.NewHolidayHandler(s.Holiday),
		Leave:      appHTTP.NewLeaveHandler(s.Leave),
		Attendance: appHTTP.NewAttendanceHandler(s.Attendance),
		Expense:    appHTTP.NewExpenseHandler(s.Expense),
		Visit:      appHTTP.NewVisitHandler(s.Visit),
		Payroll:    appHTTP.NewPayrollHandler(s.Payroll),
		Dashboard:  appHTTP.NewDashboardHandler(s.Dashboard),
	}
	return appHTTP.NewRouter(a.JWTService, handlers, appHTTP.RouterOptions{
		Env:            a.Config.App.Env,
		Version:        Version,
		AllowedOrigins: a.Config.App.AllowedOrigins,
		UploadsDir:     a.Storage.BasePath(),
	})
}

// Scheduler returns the background jobs: auto-closing punches left open.
func (a *App) Scheduler() *cron.Scheduler {
	s := cron.NewScheduler()
	cron.NewAttendanceJobs(a.Services.Attendance, a.Config.Attendance.AutoCloseEvery).RegisterJobs(s)
	return s
}

// Close releases the database pool and redis client.
func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			slog.Warn("Failed to close redis client", "error", err)
		}
	}
	if a.DB != nil {
		a.DB.Close()
	}
}

// ShutdownTimeout bounds graceful shutdown of the HTTP server.
const ShutdownTimeout = 15 * time.Second
