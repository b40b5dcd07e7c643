package holiday

import "context"

type HolidayService interface {
	List(ctx context.Context, filter HolidayFilter) ([]HolidayResponse, error)
	Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	Delete(ctx context.Context, id string) error
	// Import upserts a calendar for companyID outside of a request context.
	Import(ctx context.Context, companyID string, calendar Calendar) (int, error)
}
