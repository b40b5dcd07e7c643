package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterOptions carries the deployment settings the router needs.
type RouterOptions struct {
	Env            string
	Version        string
	AllowedOrigins []string
	// UploadsDir is served read-only under /uploads. Empty disables it.
	UploadsDir string
}

// Handlers groups every HTTP handler mounted by NewRouter.
type Handlers struct {
	Auth       AuthHandler
	Company    CompanyHandler
	Office     OfficeHandler
	Employee   EmployeeHandler
	Holiday    HolidayHandler
	Leave      LeaveHandler
	Attendance AttendanceHandler
	Expense    ExpenseHandler
	Visit      VisitHandler
	Payroll    PayrollHandler
	Dashboard  DashboardHandler
}

func NewRouter(JWTService jwt.Service, h Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hris-attendance"),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if opts.UploadsDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadsDir))))
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired(JWTService))
				r.Post("/logout", h.Auth.Logout)
				r.Get("/me", h.Auth.Me)
				r.Put("/password", h.Auth.ChangePassword)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Route("/company", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionCompanyView)).Get("/", h.Company.GetMyCompany)
				r.With(middleware.RequirePermission(user.PermissionCompanyManage)).Put("/", h.Company.UpdateMyCompany)
			})

			r.Route("/offices", func(r chi.Router) {
				r.Get("/", h.Office.List)
				r.Get("/{id}", h.Office.Get)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionOfficeManage))
					r.Post("/", h.Office.Create)
					r.Put("/{id}", h.Office.Update)
					r.Delete("/{id}", h.Office.Delete)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionEmployeeViewAll)).Get("/", h.Employee.ListEmployees)
				// Employees may read their own profile and badge, the service enforces it
				r.Get("/{id}", h.Employee.GetEmployee)
				r.Get("/{id}/badge", h.Employee.Badge)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionEmployeeManage))
					r.Post("/", h.Employee.CreateEmployee)
					r.Put("/{id}", h.Employee.UpdateEmployee)
					r.Post("/{id}/deactivate", h.Employee.DeactivateEmployee)
				})
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", h.Holiday.List)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionHolidayManage))
					r.Post("/", h.Holiday.Create)
					r.Delete("/{id}", h.Holiday.Delete)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendancePunch))
					r.Post("/punch-in", h.Attendance.PunchIn)
					r.Post("/punch-out", h.Attendance.PunchOut)
				})
				r.With(middleware.RequirePermission(user.PermissionAttendanceViewOwn)).Get("/my", h.Attendance.GetMyAttendance)
				r.Post("/classify", h.Attendance.Classify)

				r.Route("/policy", func(r chi.Router) {
					r.Get("/", h.Attendance.GetPolicy)
					r.With(middleware.RequirePermission(user.PermissionAttendancePolicySet)).Put("/", h.Attendance.UpdatePolicy)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionReportsView))
					r.Get("/report", h.Attendance.Report)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceViewAll))
					r.Get("/", h.Attendance.List)
				})
				r.Get("/{id}", h.Attendance.Get)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceManage))
					r.Put("/{id}", h.Attendance.Update)
					r.Delete("/{id}", h.Attendance.Delete)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionLeaveCreate)).Post("/", h.Leave.Create)
				r.With(middleware.RequirePermission(user.PermissionLeaveViewOwn)).Get("/my", h.Leave.ListMine)
				r.With(middleware.RequirePermission(user.PermissionLeaveViewOwn)).Get("/balance", h.Leave.Balance)
				r.With(middleware.RequirePermission(user.PermissionLeaveViewAll)).Get("/", h.Leave.ListAll)
				r.Get("/{id}", h.Leave.Get)
				r.Post("/{id}/cancel", h.Leave.Cancel)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeaveApprove))
					r.Post("/{id}/approve", h.Leave.Approve)
					r.Post("/{id}/reject", h.Leave.Reject)
				})
			})

			r.Route("/expenses", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionExpenseCreate)).Post("/", h.Expense.Create)
				r.With(middleware.RequirePermission(user.PermissionExpenseViewOwn)).Get("/my", h.Expense.ListMine)
				r.With(middleware.RequirePermission(user.PermissionExpenseViewAll)).Get("/", h.Expense.ListAll)
				r.Get("/{id}", h.Expense.Get)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionExpenseApprove))
					r.Post("/{id}/approve", h.Expense.Approve)
					r.Post("/{id}/reject", h.Expense.Reject)
				})
			})

			r.Route("/visits", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionVisitCreate))
					r.Post("/", h.Visit.CheckIn)
					r.Post("/{id}/check-out", h.Visit.CheckOut)
				})
				r.With(middleware.RequirePermission(user.PermissionVisitViewOwn)).Get("/my", h.Visit.ListMine)
				r.With(middleware.RequirePermission(user.PermissionVisitViewAll)).Get("/", h.Visit.ListAll)
				r.Get("/{id}", h.Visit.Get)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionPayrollManage))
					r.Get("/settings", h.Payroll.GetSettings)
					r.Put("/settings", h.Payroll.UpdateSettings)
					r.Post("/generate", h.Payroll.Generate)
					r.Post("/slips/{id}/pay", h.Payroll.Pay)
				})
				// Own slips for employees, the whole company for managers
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionPayrollView))
					r.Get("/slips", h.Payroll.ListSlips)
					r.Get("/slips/{id}", h.Payroll.GetSlip)
					r.Get("/slips/{id}/pdf", h.Payroll.DownloadSlip)
				})
			})

			r.With(middleware.RequirePermission(user.PermissionReportsView)).Get("/dashboard", h.Dashboard.GetDashboard)
		})
	})
	return r
}
