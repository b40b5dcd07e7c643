package company

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"company_name"`
	Username  string    `json:"company_username"`
	Timezone  string    `json:"timezone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewCompanyResponse(c Company) CompanyResponse {
	return CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Username:  c.Username,
		Timezone:  c.Timezone,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

type UpdateCompanyRequest struct {
	Name     *string `json:"company_name,omitempty"`
	Timezone *string `json:"timezone,omitempty"`
}

func (r *UpdateCompanyRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil {
		if validator.IsEmpty(*r.Name) {
			errs.Add("company_name", "company_name must not be empty")
		} else if len(*r.Name) > 255 {
			errs.Add("company_name", "company_name must not exceed 255 characters")
		}
	}
	if r.Timezone != nil {
		if _, err := time.LoadLocation(*r.Timezone); err != nil || validator.IsEmpty(*r.Timezone) {
			errs.Add("timezone", "timezone must be a valid IANA zone such as Asia/Kolkata")
		}
	}

	return errs.OrNil()
}

type BootstrapRequest struct {
	CompanyName     string
	CompanyUsername string
	Timezone        string
	OwnerEmail      string
	OwnerPassword   string
}

func (r *BootstrapRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CompanyName) {
		errs.Add("company_name", "company_name is required")
	} else if len(r.CompanyName) > 255 {
		errs.Add("company_name", "company_name must not exceed 255 characters")
	}
	if !validator.IsValidCompanyUsername(r.CompanyUsername) {
		errs.Add("company_username", "company_username may only contain letters, numbers, dots, underscores, and hyphens (3-50 characters)")
	}
	if _, err := time.LoadLocation(r.Timezone); err != nil || validator.IsEmpty(r.Timezone) {
		errs.Add("timezone", "timezone must be a valid IANA zone such as Asia/Kolkata")
	}
	if !validator.IsValidEmail(r.OwnerEmail) {
		errs.Add("owner_email", "owner_email must be a valid email address")
	}
	if len(r.OwnerPassword) < 8 {
		errs.Add("owner_password", "owner_password must be at least 8 characters long")
	} else if len(r.OwnerPassword) > 72 {
		errs.Add("owner_password", "owner_password must not exceed 72 characters")
	}

	return errs.OrNil()
}
