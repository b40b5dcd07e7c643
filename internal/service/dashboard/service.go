package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/expense"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/visit"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"golang.org/x/sync/errgroup"
)

const (
	newEmployeeWindowDays = 30
	holidayLookaheadDays  = 60
	maxUpcomingHolidays   = 5
)

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	employeeRepo employee.EmployeeRepository
	leaveRepo    leave.LeaveRequestRepository
	expenseRepo  expense.ExpenseRepository
	visitRepo    visit.VisitRepository
	holidayRepo  holiday.HolidayRepository
	evaluator    attendance.Evaluator
	location     *time.Location
	now          func() time.Time
}

func NewDashboardService(
	repo dashboard.DashboardRepository,
	employeeRepo employee.EmployeeRepository,
	leaveRepo leave.LeaveRequestRepository,
	expenseRepo expense.ExpenseRepository,
	visitRepo visit.VisitRepository,
	holidayRepo holiday.HolidayRepository,
	evaluator attendance.Evaluator,
	location *time.Location,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		employeeRepo:        employeeRepo,
		leaveRepo:           leaveRepo,
		expenseRepo:         expenseRepo,
		visitRepo:           visitRepo,
		holidayRepo:         holidayRepo,
		evaluator:           evaluator,
		location:            location,
		now:                 time.Now,
	}
}

// GetDashboard implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context) (dashboard.DashboardResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return dashboard.DashboardResponse{}, err
	}
	companyID := claims.CompanyID

	today := calendar.DateOf(s.now().In(s.location))
	monthStart, _ := calendar.MonthRange(today.Year(), today.Month())

	resp := dashboard.DashboardResponse{
		Date:             calendar.Format(today),
		UpcomingHolidays: []dashboard.HolidayItem{},
		MonthToDate:      dashboard.MonthAttendanceResponse{Month: today.Format("2006-01")},
	}

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Headcount
	g.Go(func() error {
		counts, err := s.CountEmployees(gCtx, companyID, today.AddDate(0, 0, -newEmployeeWindowDays))
		if err != nil {
			return fmt.Errorf("count employees: %w", err)
		}
		resp.Employees = dashboard.EmployeeSummaryResponse{
			Total:    counts.Total,
			Active:   counts.Active,
			Inactive: counts.Inactive,
			New:      counts.New,
		}
		return nil
	})

	// 2. Derived attendance for today and the month so far
	g.Go(func() error {
		employees, err := s.employeeRepo.ListActive(gCtx, companyID)
		if err != nil {
			return fmt.Errorf("list employees: %w", err)
		}
		days, err := s.evaluator.Evaluate(gCtx, companyID, employees, monthStart, today)
		if err != nil {
			return fmt.Errorf("evaluate attendance: %w", err)
		}

		var todaySummary attendance.Summary
		for _, emp := range employees {
			for _, d := range days[emp.ID] {
				resp.MonthToDate.Summary.Add(d.Classification)
				if d.Date.Equal(today) {
					todaySummary.Add(d.Classification)
				}
			}
		}
		resp.Today = dashboard.NewTodayAttendanceResponse(todaySummary)
		return nil
	})

	// 3. Pending leave requests
	g.Go(func() error {
		n, err := s.leaveRepo.CountPending(gCtx, companyID)
		if err != nil {
			return fmt.Errorf("count pending leaves: %w", err)
		}
		resp.PendingLeaves = n
		return nil
	})

	// 4. Pending expenses
	g.Go(func() error {
		n, err := s.expenseRepo.CountPending(gCtx, companyID)
		if err != nil {
			return fmt.Errorf("count pending expenses: %w", err)
		}
		resp.PendingExpenses = n
		return nil
	})

	// 5. Dealer visits today
	g.Go(func() error {
		n, err := s.visitRepo.CountOnDate(gCtx, companyID, today)
		if err != nil {
			return fmt.Errorf("count visits: %w", err)
		}
		resp.VisitsToday = n
		return nil
	})

	// 6. Upcoming holidays
	g.Go(func() error {
		holidays, err := s.holidayRepo.ListBetween(gCtx, companyID, today, today.AddDate(0, 0, holidayLookaheadDays))
		if err != nil {
			return fmt.Errorf("list holidays: %w", err)
		}
		for i, h := range holidays {
			if i == maxUpcomingHolidays {
				break
			}
			resp.UpcomingHolidays = append(resp.UpcomingHolidays, dashboard.HolidayItem{
				Date: calendar.Format(h.Date),
				Name: h.Name,
			})
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("Dashboard query failed", "company_id", companyID, "error", err)
		return dashboard.DashboardResponse{}, dashboard.ErrDashboardUnavailable
	}

	return resp, nil
}
