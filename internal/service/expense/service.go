package expense

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/expense"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-go/internal/service/file"
)

type ExpenseServiceImpl struct {
	expense.ExpenseRepository
	employee.EmployeeRepository
	files    file.FileService
	location *time.Location
	now      func() time.Time
}

func NewExpenseService(
	expenseRepository expense.ExpenseRepository,
	employeeRepository employee.EmployeeRepository,
	files file.FileService,
	location *time.Location,
) expense.ExpenseService {
	return &ExpenseServiceImpl{
		ExpenseRepository:  expenseRepository,
		EmployeeRepository: employeeRepository,
		files:              files,
		location:           location,
		now:                time.Now,
	}
}

// Create implements expense.ExpenseService.
func (s *ExpenseServiceImpl) Create(ctx context.Context, req expense.CreateExpenseRequest) (expense.ExpenseResponse, error) {
	if err := req.Validate(); err != nil {
		return expense.ExpenseResponse{}, err
	}
	if req.ParsedDate.After(calendar.DateOf(s.now().In(s.location))) {
		return expense.ExpenseResponse{}, expense.ErrExpenseDateInFuture
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return expense.ExpenseResponse{}, err
	}
	employeeID, err := claims.RequireEmployeeID()
	if err != nil {
		return expense.ExpenseResponse{}, err
	}
	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID, claims.CompanyID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return expense.ExpenseResponse{}, err
		}
		return expense.ExpenseResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	var receiptPath *string
	if req.Receipt != nil {
		key, err := s.files.UploadReceipt(ctx, emp.CompanyID, emp.ID, req.Receipt, req.ReceiptName)
		if err != nil {
			return expense.ExpenseResponse{}, err
		}
		receiptPath = &key
	}

	created, err := s.ExpenseRepository.Create(ctx, expense.Expense{
		CompanyID:   emp.CompanyID,
		EmployeeID:  emp.ID,
		Category:    expense.Category(req.Category),
		Amount:      req.ParsedAmount,
		ExpenseDate: req.ParsedDate,
		Description: req.Description,
		ReceiptPath: receiptPath,
		Status:      expense.StatusPending,
	})
	if err != nil {
		if receiptPath != nil {
			if delErr := s.files.DeleteFile(ctx, *receiptPath); delErr != nil {
				slog.Warn("Failed to remove orphaned receipt", "path", *receiptPath, "error", delErr)
			}
		}
		return expense.ExpenseResponse{}, fmt.Errorf("failed to create expense: %w", err)
	}

	created.EmployeeName = &emp.FullName
	created.EmployeeCode = &emp.EmployeeCode
	return s.toResponse(created), nil
}

// Get implements expense.ExpenseService.
func (s *ExpenseServiceImpl) Get(ctx context.Context, id string) (expense.ExpenseResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return expense.ExpenseResponse{}, err
	}

	e, err := s.ExpenseRepository.GetByID(ctx, id, claims.CompanyID)
	if err != nil {
		return expense.ExpenseResponse{}, err
	}
	if !claims.IsManager() && !ownedBy(claims, e) {
		return expense.ExpenseResponse{}, employee.ErrUnauthorized
	}
	return s.toResponse(e), nil
}

// ListMine implements expense.ExpenseService.
func (s *ExpenseServiceImpl) ListMine(ctx context.Context, filter expense.ExpenseFilter) (expense.ListExpenseResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return expense.ListExpenseResponse{}, err
	}
	employeeID, err := claims.RequireEmployeeID()
	if err != nil {
		return expense.ListExpenseResponse{}, err
	}

	filter.EmployeeID = &employeeID
	return s.list(ctx, claims.CompanyID, filter)
}

// ListAll implements expense.ExpenseService.
func (s *ExpenseServiceImpl) ListAll(ctx context.Context, filter expense.ExpenseFilter) (expense.ListExpenseResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return expense.ListExpenseResponse{}, err
	}
	return s.list(ctx, claims.CompanyID, filter)
}

func (s *ExpenseServiceImpl) list(ctx context.Context, companyID string, filter expense.ExpenseFilter) (expense.ListExpenseResponse, error) {
	if err := filter.Validate(); err != nil {
		return expense.ListExpenseResponse{}, err
	}

	expenses, total, err := s.ExpenseRepository.List(ctx, filter, companyID)
	if err != nil {
		return expense.ListExpenseResponse{}, fmt.Errorf("failed to list expenses: %w", err)
	}

	items := make([]expense.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		items = append(items, s.toResponse(e))
	}

	return expense.ListExpenseResponse{
		Expenses:   items,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

// Approve implements expense.ExpenseService.
func (s *ExpenseServiceImpl) Approve(ctx context.Context, req expense.ReviewExpenseRequest) (expense.ExpenseResponse, error) {
	return s.review(ctx, req, expense.StatusApproved)
}

// Reject implements expense.ExpenseService.
func (s *ExpenseServiceImpl) Reject(ctx context.Context, req expense.ReviewExpenseRequest) (expense.ExpenseResponse, error) {
	return s.review(ctx, req, expense.StatusRejected)
}

func (s *ExpenseServiceImpl) review(ctx context.Context, req expense.ReviewExpenseRequest, status expense.Status) (expense.ExpenseResponse, error) {
	if err := req.Validate(); err != nil {
		return expense.ExpenseResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return expense.ExpenseResponse{}, err
	}

	e, err := s.ExpenseRepository.GetByID(ctx, req.ID, claims.CompanyID)
	if err != nil {
		return expense.ExpenseResponse{}, err
	}
	if e.Status != expense.StatusPending {
		return expense.ExpenseResponse{}, expense.ErrExpenseAlreadyProcessed
	}
	if ownedBy(claims, e) {
		return expense.ExpenseResponse{}, expense.ErrCannotReviewOwnExpense
	}

	reviewedAt := s.now().UTC()
	e.Status = status
	e.ReviewedBy = &claims.UserID
	e.ReviewedAt = &reviewedAt
	e.ReviewNote = req.Note

	if err := s.ExpenseRepository.UpdateStatus(ctx, e); err != nil {
		return expense.ExpenseResponse{}, fmt.Errorf("failed to update expense: %w", err)
	}

	slog.Info("Expense reviewed", "expense_id", e.ID, "status", status, "reviewed_by", claims.UserID)
	return s.toResponse(e), nil
}

func (s *ExpenseServiceImpl) toResponse(e expense.Expense) expense.ExpenseResponse {
	var url *string
	if e.ReceiptPath != nil {
		u := s.files.GetFileURL(*e.ReceiptPath)
		url = &u
	}
	return expense.NewExpenseResponse(e, url)
}

func ownedBy(claims jwt.Claims, e expense.Expense) bool {
	return claims.EmployeeID != nil && *claims.EmployeeID == e.EmployeeID
}
