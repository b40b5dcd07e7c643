package payroll

import (
	"context"
	"time"
)

// PayrollRepository defines data access for payroll settings and slips.
// Methods taking companyID scope the query to that tenant.
type PayrollRepository interface {
	// GetSettings returns nil when the company has not saved settings.
	GetSettings(ctx context.Context, companyID string) (*Settings, error)
	UpsertSettings(ctx context.Context, settings Settings) (Settings, error)

	// SaveDraft inserts the slip or replaces an existing draft for the same
	// employee and month. It returns ErrSlipAlreadyPaid when that month is paid.
	SaveDraft(ctx context.Context, slip SalarySlip) (SalarySlip, error)

	GetSlip(ctx context.Context, id, companyID string) (SalarySlip, error)
	ListSlips(ctx context.Context, filter SlipFilter, companyID string) ([]SalarySlip, int64, error)
	MarkPaid(ctx context.Context, id, companyID string, paidAt time.Time) error
}
