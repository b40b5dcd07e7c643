package office

import "context"

type OfficeRepository interface {
	Create(ctx context.Context, o Office) (Office, error)
	GetByID(ctx context.Context, id, companyID string) (Office, error)
	List(ctx context.Context, companyID string) ([]Office, error)
	Update(ctx context.Context, o Office) (Office, error)
	Delete(ctx context.Context, id, companyID string) error
	CountEmployees(ctx context.Context, id, companyID string) (int, error)
}
