package payroll

import "context"

type PayrollService interface {
	GetSettings(ctx context.Context) (SettingsResponse, error)
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)

	// Generate computes draft slips for a closed month. Paid slips are left untouched
	// and reported as skipped.
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error)

	// ListSlips lists the company's slips for managers and the caller's own otherwise.
	ListSlips(ctx context.Context, filter SlipFilter) (ListSlipResponse, error)
	GetSlip(ctx context.Context, id string) (SlipResponse, error)

	// SlipPDF renders a slip as a PDF document.
	SlipPDF(ctx context.Context, id string) ([]byte, string, error)

	Pay(ctx context.Context, id string) (SlipResponse, error)
}
