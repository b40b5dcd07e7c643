package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/expense"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type expenseRepositoryImpl struct {
	db *database.DB
}

func NewExpenseRepository(db *database.DB) expense.ExpenseRepository {
	return &expenseRepositoryImpl{db: db}
}

const expenseSelect = `
	SELECT
		x.id, x.company_id, x.employee_id, x.category, x.amount, x.expense_date,
		x.description, x.receipt_path, x.status, x.reviewed_by, x.reviewed_at, x.review_note,
		x.created_at, x.updated_at,
		e.full_name, e.employee_code
	FROM expenses x
	LEFT JOIN employees e ON e.id = x.employee_id
`

func scanExpense(row pgx.Row) (expense.Expense, error) {
	var x expense.Expense
	err := row.Scan(
		&x.ID, &x.CompanyID, &x.EmployeeID, &x.Category, &x.Amount, &x.ExpenseDate,
		&x.Description, &x.ReceiptPath, &x.Status, &x.ReviewedBy, &x.ReviewedAt, &x.ReviewNote,
		&x.CreatedAt, &x.UpdatedAt,
		&x.EmployeeName, &x.EmployeeCode,
	)
	return x, err
}

// Create implements expense.ExpenseRepository.
func (r *expenseRepositoryImpl) Create(ctx context.Context, e expense.Expense) (expense.Expense, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO expenses (company_id, employee_id, category, amount, expense_date, description, receipt_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query, e.CompanyID, e.EmployeeID, e.Category, e.Amount, e.ExpenseDate, e.Description, e.ReceiptPath).Scan(&id)
	if err != nil {
		return expense.Expense{}, fmt.Errorf("failed to create expense: %w", err)
	}

	return r.GetByID(ctx, id, e.CompanyID)
}

// GetByID implements expense.ExpenseRepository.
func (r *expenseRepositoryImpl) GetByID(ctx context.Context, id, companyID string) (expense.Expense, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanExpense(q.QueryRow(ctx, expenseSelect+` WHERE x.id = $1 AND x.company_id = $2`, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return expense.Expense{}, expense.ErrExpenseNotFound
		}
		return expense.Expense{}, fmt.Errorf("failed to get expense: %w", err)
	}
	return found, nil
}

// List implements expense.ExpenseRepository.
func (r *expenseRepositoryImpl) List(ctx context.Context, filter expense.ExpenseFilter, companyID string) ([]expense.Expense, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "x.company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		where += fmt.Sprintf(" AND x.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		where += fmt.Sprintf(" AND x.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Category != nil && *filter.Category != "" {
		where += fmt.Sprintf(" AND x.category = $%d", argIdx)
		args = append(args, *filter.Category)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		where += fmt.Sprintf(" AND x.expense_date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		where += fmt.Sprintf(" AND x.expense_date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM expenses x WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	limit, offset := pageOffset(filter.Page, filter.Limit)
	query := expenseSelect + fmt.Sprintf(` WHERE %s ORDER BY x.expense_date DESC, x.created_at DESC LIMIT $%d OFFSET $%d`, where, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []expense.Expense
	for rows.Next() {
		x, err := scanExpense(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, x)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return expenses, total, nil
}

// UpdateStatus implements expense.ExpenseRepository. Only pending expenses
// change; anything else reports ErrExpenseAlreadyProcessed.
func (r *expenseRepositoryImpl) UpdateStatus(ctx context.Context, e expense.Expense) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE expenses
		SET status = $1, reviewed_by = $2, reviewed_at = $3, review_note = $4, updated_at = NOW()
		WHERE id = $5 AND company_id = $6 AND status = 'pending'
	`

	tag, err := q.Exec(ctx, query, e.Status, e.ReviewedBy, e.ReviewedAt, e.ReviewNote, e.ID, e.CompanyID)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return expense.ErrExpenseAlreadyProcessed
	}
	return nil
}

// CountPending implements expense.ExpenseRepository.
func (r *expenseRepositoryImpl) CountPending(ctx context.Context, companyID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM expenses WHERE company_id = $1 AND status = 'pending'`, companyID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending expenses: %w", err)
	}
	return count, nil
}
