package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/office"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type OfficeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type officeHandlerImpl struct {
	officeService office.OfficeService
}

func NewOfficeHandler(officeService office.OfficeService) OfficeHandler {
	return &officeHandlerImpl{officeService: officeService}
}

func (h *officeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	offices, err := h.officeService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, offices)
}

func (h *officeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.officeService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *officeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req office.CreateOfficeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateOffice decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.officeService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Office created successfully", result)
}

func (h *officeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req office.UpdateOfficeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateOffice decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.officeService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Office updated successfully", result)
}

func (h *officeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.officeService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Office deleted successfully", nil)
}
