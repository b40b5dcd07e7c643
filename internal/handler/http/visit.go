package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/visit"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type VisitHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	ListAll(w http.ResponseWriter, r *http.Request)
}

type visitHandlerImpl struct {
	visitService visit.VisitService
}

func NewVisitHandler(visitService visit.VisitService) VisitHandler {
	return &visitHandlerImpl{visitService: visitService}
}

func visitFilterFromQuery(r *http.Request) visit.VisitFilter {
	filter := visit.VisitFilter{
		EmployeeID: optionalQuery(r, "employee_id"),
		StartDate:  optionalQuery(r, "start_date"),
		EndDate:    optionalQuery(r, "end_date"),
		OpenOnly:   r.URL.Query().Get("open") == "true",
	}
	filter.Page, filter.Limit = pagination(r)
	return filter
}

func (h *visitHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req visit.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CheckIn decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.visitService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Checked in at dealer", result)
}

func (h *visitHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req visit.CheckOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Error("CheckOut decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.visitService.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Checked out of dealer", result)
}

func (h *visitHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.visitService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *visitHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	result, err := h.visitService.ListMine(r.Context(), visitFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *visitHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	result, err := h.visitService.ListAll(r.Context(), visitFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
