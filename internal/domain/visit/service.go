package visit

import "context"

type VisitService interface {
	CheckIn(ctx context.Context, req CheckInRequest) (VisitResponse, error)
	CheckOut(ctx context.Context, req CheckOutRequest) (VisitResponse, error)
	Get(ctx context.Context, id string) (VisitResponse, error)
	ListMine(ctx context.Context, filter VisitFilter) (ListVisitResponse, error)
	ListAll(ctx context.Context, filter VisitFilter) (ListVisitResponse, error)
}
