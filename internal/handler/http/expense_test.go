package http

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/expense"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExpenseService struct {
	expense.ExpenseService

	created     expense.CreateExpenseRequest
	receiptBody []byte
	review      expense.ReviewExpenseRequest
}

func (s *stubExpenseService) Create(ctx context.Context, req expense.CreateExpenseRequest) (expense.ExpenseResponse, error) {
	s.created = req
	if req.Receipt != nil {
		body, err := io.ReadAll(req.Receipt)
		if err != nil {
			return expense.ExpenseResponse{}, err
		}
		s.receiptBody = body
	}
	return expense.ExpenseResponse{ID: "exp-1", Category: expense.Category(req.Category)}, nil
}

func (s *stubExpenseService) Approve(ctx context.Context, req expense.ReviewExpenseRequest) (expense.ExpenseResponse, error) {
	s.review = req
	return expense.ExpenseResponse{ID: req.ID}, nil
}

func (s *stubExpenseService) Reject(ctx context.Context, req expense.ReviewExpenseRequest) (expense.ExpenseResponse, error) {
	return expense.ExpenseResponse{}, expense.ErrExpenseAlreadyProcessed
}

func multipartExpense(t *testing.T, withReceipt bool) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("category", "travel"))
	require.NoError(t, mw.WriteField("amount", "1250.50"))
	require.NoError(t, mw.WriteField("expense_date", "2024-03-04"))
	require.NoError(t, mw.WriteField("description", "Cab to dealer"))
	if withReceipt {
		fw, err := mw.CreateFormFile("receipt", "cab.pdf")
		require.NoError(t, err)
		_, err = fw.Write([]byte("%PDF-1.4 receipt"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestExpenseHandler_Create_WithReceipt(t *testing.T) {
	stub := &stubExpenseService{}
	handler := NewExpenseHandler(stub)

	body, contentType := multipartExpense(t, true)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/expenses", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	handler.Create(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "travel", stub.created.Category)
	assert.Equal(t, "1250.50", stub.created.Amount)
	assert.Equal(t, "cab.pdf", stub.created.ReceiptName)
	assert.Equal(t, int64(len("%PDF-1.4 receipt")), stub.created.ReceiptSize)
	assert.Equal(t, "%PDF-1.4 receipt", string(stub.receiptBody))
}

func TestExpenseHandler_Create_WithoutReceipt(t *testing.T) {
	stub := &stubExpenseService{}
	handler := NewExpenseHandler(stub)

	body, contentType := multipartExpense(t, false)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/expenses", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	handler.Create(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Nil(t, stub.created.Receipt)
}

func TestExpenseHandler_Create_NotMultipart(t *testing.T) {
	handler := NewExpenseHandler(&stubExpenseService{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/expenses", bytes.NewBufferString(`{"amount":"1"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.Create(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExpenseHandler_Review(t *testing.T) {
	stub := &stubExpenseService{}
	svc := newTestJWTService(t)
	router := newTestRouter(svc, func(h *Handlers) { h.Expense = NewExpenseHandler(stub) })
	token := accessToken(t, svc, user.RoleManager, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/expenses/exp-9/approve", bytes.NewBufferString(`{"note":"ok"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "exp-9", stub.review.ID)
	require.NotNil(t, stub.review.Note)
	assert.Equal(t, "ok", *stub.review.Note)

	// No body is a valid rejection, an already reviewed claim is a conflict
	req = httptest.NewRequest(http.MethodPost, "/api/v1/expenses/exp-9/reject", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}
