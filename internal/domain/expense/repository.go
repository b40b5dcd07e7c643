package expense

import "context"

type ExpenseRepository interface {
	Create(ctx context.Context, e Expense) (Expense, error)
	GetByID(ctx context.Context, id, companyID string) (Expense, error)
	List(ctx context.Context, filter ExpenseFilter, companyID string) ([]Expense, int64, error)
	UpdateStatus(ctx context.Context, e Expense) error
	CountPending(ctx context.Context, companyID string) (int, error)
}
