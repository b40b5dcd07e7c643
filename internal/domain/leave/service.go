package leave

import "context"

type LeaveService interface {
	Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)
	Get(ctx context.Context, id string) (LeaveResponse, error)
	ListMine(ctx context.Context, filter LeaveFilter) (ListLeaveResponse, error)
	ListAll(ctx context.Context, filter LeaveFilter) (ListLeaveResponse, error)
	Approve(ctx context.Context, req ReviewLeaveRequest) (LeaveResponse, error)
	Reject(ctx context.Context, req ReviewLeaveRequest) (LeaveResponse, error)
	Cancel(ctx context.Context, id string) (LeaveResponse, error)
	Balance(ctx context.Context, year int) ([]BalanceResponse, error)
}
