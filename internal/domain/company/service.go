package company

import (
	"context"
)

type CompanyService interface {
	// GetMyCompany returns the caller's company.
	GetMyCompany(ctx context.Context) (CompanyResponse, error)

	// UpdateMyCompany renames the caller's company or changes its default timezone.
	UpdateMyCompany(ctx context.Context, req UpdateCompanyRequest) (CompanyResponse, error)

	// Bootstrap creates a company together with its owner account. Used by hrisctl.
	Bootstrap(ctx context.Context, req BootstrapRequest) (CompanyResponse, error)
}
