package office

import "context"

type OfficeService interface {
	List(ctx context.Context) ([]OfficeResponse, error)
	Get(ctx context.Context, id string) (OfficeResponse, error)
	Create(ctx context.Context, req CreateOfficeRequest) (OfficeResponse, error)
	Update(ctx context.Context, req UpdateOfficeRequest) (OfficeResponse, error)
	Delete(ctx context.Context, id string) error
}
