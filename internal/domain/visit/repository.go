package visit

import (
	"context"
	"time"
)

type VisitRepository interface {
	Create(ctx context.Context, v Visit) (Visit, error)
	GetByID(ctx context.Context, id, companyID string) (Visit, error)
	GetOpenByEmployee(ctx context.Context, employeeID string) (Visit, error)
	List(ctx context.Context, filter VisitFilter, companyID string) ([]Visit, int64, error)
	CheckOut(ctx context.Context, v Visit) error
	CountOnDate(ctx context.Context, companyID string, date time.Time) (int, error)
}
