package expense

import "context"

type ExpenseService interface {
	Create(ctx context.Context, req CreateExpenseRequest) (ExpenseResponse, error)
	Get(ctx context.Context, id string) (ExpenseResponse, error)
	ListMine(ctx context.Context, filter ExpenseFilter) (ListExpenseResponse, error)
	ListAll(ctx context.Context, filter ExpenseFilter) (ListExpenseResponse, error)
	Approve(ctx context.Context, req ReviewExpenseRequest) (ExpenseResponse, error)
	Reject(ctx context.Context, req ReviewExpenseRequest) (ExpenseResponse, error)
}
