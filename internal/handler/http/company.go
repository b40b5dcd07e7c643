package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
)

type CompanyHandler interface {
	GetMyCompany(w http.ResponseWriter, r *http.Request)
	UpdateMyCompany(w http.ResponseWriter, r *http.Request)
}

type CompanyHandlerImpl struct {
	companyService company.CompanyService
}

// GetMyCompany implements CompanyHandler.
func (c *CompanyHandlerImpl) GetMyCompany(w http.ResponseWriter, r *http.Request) {
	companyResponse, err := c.companyService.GetMyCompany(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, companyResponse)
}

// UpdateMyCompany implements CompanyHandler.
func (c *CompanyHandlerImpl) UpdateMyCompany(w http.ResponseWriter, r *http.Request) {
	var req company.UpdateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateMyCompany decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	companyResponse, err := c.companyService.UpdateMyCompany(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Company updated successfully", companyResponse)
}

func NewCompanyHandler(companyService company.CompanyService) CompanyHandler {
	return &CompanyHandlerImpl{
		companyService: companyService,
	}
}
