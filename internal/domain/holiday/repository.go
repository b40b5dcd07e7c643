package holiday

import (
	"context"
	"time"
)

type HolidayRepository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)
	// Upsert inserts h or renames the holiday already on that date.
	Upsert(ctx context.Context, h Holiday) error
	Delete(ctx context.Context, id, companyID string) error
	// ListBetween returns holidays with from <= date <= to, ordered by date.
	ListBetween(ctx context.Context, companyID string, from, to time.Time) ([]Holiday, error)
}
