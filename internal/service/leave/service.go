package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/postgresql"
)

type LeaveServiceImpl struct {
	tx postgresql.Transactor
	leave.LeaveRequestRepository
	employee.EmployeeRepository
	holiday.HolidayRepository
	calculator *BalanceCalculator
	now        func() time.Time
}

func NewLeaveService(
	tx postgresql.Transactor,
	leaveRequestRepository leave.LeaveRequestRepository,
	employeeRepository employee.EmployeeRepository,
	holidayRepository holiday.HolidayRepository,
	calculator *BalanceCalculator,
) leave.LeaveService {
	return &LeaveServiceImpl{
		tx:                     tx,
		LeaveRequestRepository: leaveRequestRepository,
		EmployeeRepository:     employeeRepository,
		HolidayRepository:      holidayRepository,
		calculator:             calculator,
		now:                    time.Now,
	}
}

// Create implements leave.LeaveService.
func (l *LeaveServiceImpl) Create(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	emp, err := l.currentEmployee(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	holidays, err := l.holidays(ctx, emp.CompanyID, req.Start, req.End)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	requested := l.calculator.WorkingDays(emp, req.Start, req.End, holidays)
	if requested == 0 {
		return leave.LeaveResponse{}, leave.ErrNoWorkingDays
	}

	leaveType := leave.Type(req.LeaveType)
	var created leave.LeaveRequest
	err = l.tx.WithinTx(ctx, func(ctx context.Context) error {
		overlap, err := l.LeaveRequestRepository.HasOverlap(ctx, emp.ID, req.Start, req.End)
		if err != nil {
			return fmt.Errorf("failed to check overlapping leave requests: %w", err)
		}
		if overlap {
			return leave.ErrLeaveOverlap
		}

		if leaveType.Paid() {
			if err := l.checkBalance(ctx, emp, leaveType, req.Start, req.End); err != nil {
				return err
			}
		}

		created, err = l.LeaveRequestRepository.Create(ctx, leave.LeaveRequest{
			CompanyID:  emp.CompanyID,
			EmployeeID: emp.ID,
			LeaveType:  leaveType,
			StartDate:  req.Start,
			EndDate:    req.End,
			Reason:     req.Reason,
			Status:     leave.StatusPending,
		})
		if err != nil {
			return fmt.Errorf("failed to create leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	created.EmployeeName = &emp.FullName
	created.EmployeeCode = &emp.EmployeeCode
	return leave.NewLeaveResponse(created), nil
}

// checkBalance rejects a paid request that exceeds the remaining allowance of
// any calendar year it touches.
func (l *LeaveServiceImpl) checkBalance(ctx context.Context, emp employee.Employee, t leave.Type, from, to time.Time) error {
	for year := from.Year(); year <= to.Year(); year++ {
		yearStart, yearEnd := calendar.YearRange(year)
		existing, err := l.LeaveRequestRepository.ListActiveBetween(ctx, emp.CompanyID, emp.ID, yearStart, yearEnd)
		if err != nil {
			return fmt.Errorf("failed to list leave requests: %w", err)
		}
		holidays, err := l.holidays(ctx, emp.CompanyID, yearStart, yearEnd)
		if err != nil {
			return err
		}

		candidate := leave.LeaveRequest{LeaveType: t, StartDate: from, EndDate: to, Status: leave.StatusPending}
		for _, b := range l.calculator.Balances(emp, year, append(existing, candidate), holidays) {
			if b.LeaveType == t && b.Used+b.Pending > b.Entitled {
				return leave.ErrInsufficientBalance
			}
		}
	}
	return nil
}

// Get implements leave.LeaveService.
func (l *LeaveServiceImpl) Get(ctx context.Context, id string) (leave.LeaveResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	request, err := l.LeaveRequestRepository.GetByID(ctx, id, claims.CompanyID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if !claims.IsManager() && !ownedBy(claims, request) {
		return leave.LeaveResponse{}, employee.ErrUnauthorized
	}

	return leave.NewLeaveResponse(request), nil
}

// ListMine implements leave.LeaveService.
func (l *LeaveServiceImpl) ListMine(ctx context.Context, filter leave.LeaveFilter) (leave.ListLeaveResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return leave.ListLeaveResponse{}, err
	}
	employeeID, err := claims.RequireEmployeeID()
	if err != nil {
		return leave.ListLeaveResponse{}, err
	}

	filter.EmployeeID = &employeeID
	return l.list(ctx, claims.CompanyID, filter)
}

// ListAll implements leave.LeaveService.
func (l *LeaveServiceImpl) ListAll(ctx context.Context, filter leave.LeaveFilter) (leave.ListLeaveResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return leave.ListLeaveResponse{}, err
	}
	return l.list(ctx, claims.CompanyID, filter)
}

func (l *LeaveServiceImpl) list(ctx context.Context, companyID string, filter leave.LeaveFilter) (leave.ListLeaveResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveResponse{}, err
	}

	requests, total, err := l.LeaveRequestRepository.List(ctx, filter, companyID)
	if err != nil {
		return leave.ListLeaveResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	items := make([]leave.LeaveResponse, 0, len(requests))
	for _, r := range requests {
		items = append(items, leave.NewLeaveResponse(r))
	}

	return leave.ListLeaveResponse{
		Requests:   items,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

// Approve implements leave.LeaveService.
func (l *LeaveServiceImpl) Approve(ctx context.Context, req leave.ReviewLeaveRequest) (leave.LeaveResponse, error) {
	return l.review(ctx, req, leave.StatusApproved)
}

// Reject implements leave.LeaveService.
func (l *LeaveServiceImpl) Reject(ctx context.Context, req leave.ReviewLeaveRequest) (leave.LeaveResponse, error) {
	return l.review(ctx, req, leave.StatusRejected)
}

func (l *LeaveServiceImpl) review(ctx context.Context, req leave.ReviewLeaveRequest, status leave.Status) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	request, err := l.LeaveRequestRepository.GetByID(ctx, req.ID, claims.CompanyID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if request.Status != leave.StatusPending {
		return leave.LeaveResponse{}, leave.ErrLeaveRequestAlreadyProcessed
	}
	if ownedBy(claims, request) {
		return leave.LeaveResponse{}, leave.ErrCannotReviewOwnRequest
	}

	reviewedAt := l.now().UTC()
	request.Status = status
	request.ReviewedBy = &claims.UserID
	request.ReviewedAt = &reviewedAt
	request.ReviewNote = req.Note

	if err := l.LeaveRequestRepository.UpdateStatus(ctx, request); err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	slog.Info("Leave request reviewed", "leave_request_id", request.ID, "status", status, "reviewed_by", claims.UserID)
	return leave.NewLeaveResponse(request), nil
}

// Cancel implements leave.LeaveService.
func (l *LeaveServiceImpl) Cancel(ctx context.Context, id string) (leave.LeaveResponse, error) {
	if !validator.IsValidUUID(id) {
		return leave.LeaveResponse{}, leave.ErrLeaveRequestNotFound
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	request, err := l.LeaveRequestRepository.GetByID(ctx, id, claims.CompanyID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if !ownedBy(claims, request) {
		return leave.LeaveResponse{}, leave.ErrNotRequestOwner
	}
	if request.Status != leave.StatusPending {
		return leave.LeaveResponse{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	request.Status = leave.StatusCancelled
	if err := l.LeaveRequestRepository.UpdateStatus(ctx, request); err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to cancel leave request: %w", err)
	}

	return leave.NewLeaveResponse(request), nil
}

// Balance implements leave.LeaveService.
func (l *LeaveServiceImpl) Balance(ctx context.Context, year int) ([]leave.BalanceResponse, error) {
	emp, err := l.currentEmployee(ctx)
	if err != nil {
		return nil, err
	}
	if year == 0 {
		year = l.now().Year()
	}

	yearStart, yearEnd := calendar.YearRange(year)
	requests, err := l.LeaveRequestRepository.ListActiveBetween(ctx, emp.CompanyID, emp.ID, yearStart, yearEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	holidays, err := l.holidays(ctx, emp.CompanyID, yearStart, yearEnd)
	if err != nil {
		return nil, err
	}

	return l.calculator.Balances(emp, year, requests, holidays), nil
}

func (l *LeaveServiceImpl) currentEmployee(ctx context.Context) (employee.Employee, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return employee.Employee{}, err
	}
	employeeID, err := claims.RequireEmployeeID()
	if err != nil {
		return employee.Employee{}, err
	}

	emp, err := l.EmployeeRepository.GetByID(ctx, employeeID, claims.CompanyID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, err
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

func (l *LeaveServiceImpl) holidays(ctx context.Context, companyID string, from, to time.Time) (calendar.Set, error) {
	list, err := l.HolidayRepository.ListBetween(ctx, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	set := calendar.NewSet()
	for _, h := range list {
		set[calendar.DateOf(h.Date)] = true
	}
	return set, nil
}

func ownedBy(claims jwt.Claims, request leave.LeaveRequest) bool {
	return claims.EmployeeID != nil && *claims.EmployeeID == request.EmployeeID
}
