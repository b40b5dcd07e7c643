package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/expense"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ExpenseHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	ListAll(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type expenseHandlerImpl struct {
	expenseService expense.ExpenseService
}

func NewExpenseHandler(expenseService expense.ExpenseService) ExpenseHandler {
	return &expenseHandlerImpl{expenseService: expenseService}
}

func expenseFilterFromQuery(r *http.Request) expense.ExpenseFilter {
	filter := expense.ExpenseFilter{
		EmployeeID: optionalQuery(r, "employee_id"),
		Status:     optionalQuery(r, "status"),
		Category:   optionalQuery(r, "category"),
		StartDate:  optionalQuery(r, "start_date"),
		EndDate:    optionalQuery(r, "end_date"),
	}
	filter.Page, filter.Limit = pagination(r)
	return filter
}

// Create handles a multipart claim. The receipt file is optional.
func (h *expenseHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(expense.MaxReceiptSize + 1<<20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	req := expense.CreateExpenseRequest{
		Category:    r.FormValue("category"),
		Amount:      r.FormValue("amount"),
		ExpenseDate: r.FormValue("expense_date"),
		Description: r.FormValue("description"),
	}

	file, fileHeader, err := r.FormFile("receipt")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	if file != nil {
		defer file.Close()
		req.Receipt = file
		req.ReceiptName = fileHeader.Filename
		req.ReceiptSize = fileHeader.Size
	}

	result, err := h.expenseService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Expense submitted successfully", result)
}

func (h *expenseHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.expenseService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *expenseHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	result, err := h.expenseService.ListMine(r.Context(), expenseFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *expenseHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	result, err := h.expenseService.ListAll(r.Context(), expenseFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *expenseHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	req := expense.ReviewExpenseRequest{ID: chi.URLParam(r, "id")}
	if err := decodeReview(r, &req.Note); err != nil {
		slog.Error("ApproveExpense decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.expenseService.Approve(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Expense approved", result)
}

func (h *expenseHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	req := expense.ReviewExpenseRequest{ID: chi.URLParam(r, "id")}
	if err := decodeReview(r, &req.Note); err != nil {
		slog.Error("RejectExpense decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.expenseService.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Expense rejected", result)
}
