package expense

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// MaxReceiptSize is the largest receipt upload accepted.
const MaxReceiptSize = 5 << 20

var maxAmount = decimal.NewFromInt(10_000_000)

type ExpenseResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName *string         `json:"employee_name,omitempty"`
	EmployeeCode *string         `json:"employee_code,omitempty"`
	Category     Category        `json:"category"`
	Amount       decimal.Decimal `json:"amount"`
	ExpenseDate  string          `json:"expense_date"`
	Description  string          `json:"description"`
	ReceiptURL   *string         `json:"receipt_url,omitempty"`
	Status       Status          `json:"status"`
	ReviewedBy   *string         `json:"reviewed_by,omitempty"`
	ReviewedAt   *time.Time      `json:"reviewed_at,omitempty"`
	ReviewNote   *string         `json:"review_note,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// NewExpenseResponse maps e; receiptURL is resolved by the caller from storage.
func NewExpenseResponse(e Expense, receiptURL *string) ExpenseResponse {
	return ExpenseResponse{
		ID:           e.ID,
		EmployeeID:   e.EmployeeID,
		EmployeeName: e.EmployeeName,
		EmployeeCode: e.EmployeeCode,
		Category:     e.Category,
		Amount:       e.Amount,
		ExpenseDate:  calendar.Format(e.ExpenseDate),
		Description:  e.Description,
		ReceiptURL:   receiptURL,
		Status:       e.Status,
		ReviewedBy:   e.ReviewedBy,
		ReviewedAt:   e.ReviewedAt,
		ReviewNote:   e.ReviewNote,
		CreatedAt:    e.CreatedAt,
	}
}

// CreateExpenseRequest is read from a multipart form.
type CreateExpenseRequest struct {
	Category    string
	Amount      string
	ExpenseDate string
	Description string

	Receipt     io.Reader
	ReceiptName string
	ReceiptSize int64

	// Parsed by Validate
	ParsedAmount decimal.Decimal
	ParsedDate   time.Time
}

func (r *CreateExpenseRequest) Validate() error {
	var errs validator.ValidationErrors

	if !Category(r.Category).Valid() {
		errs.Add("category", "category must be one of travel, food, lodging, fuel, supplies, other")
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(r.Amount))
	switch {
	case err != nil:
		errs.Add("amount", "amount must be a number such as 1250.50")
	case !amount.IsPositive():
		errs.Add("amount", "amount must be greater than zero")
	case amount.GreaterThan(maxAmount):
		errs.Add("amount", "amount must not exceed 10000000")
	case amount.Exponent() < -2:
		errs.Add("amount", "amount must have at most two decimal places")
	default:
		r.ParsedAmount = amount
	}

	if date, ok := validator.IsValidDate(r.ExpenseDate); ok {
		r.ParsedDate = date
	} else {
		errs.Add("expense_date", "expense_date must be in YYYY-MM-DD format")
	}

	if len(r.Description) > 1000 {
		errs.Add("description", "description must not exceed 1000 characters")
	}

	if r.Receipt != nil {
		if !IsAllowedReceipt(r.ReceiptName) {
			errs.Add("receipt", ErrInvalidReceiptType.Error())
		}
		if r.ReceiptSize > MaxReceiptSize {
			errs.Add("receipt", ErrReceiptTooLarge.Error())
		}
	}

	return errs.OrNil()
}

// IsAllowedReceipt reports whether filename has a receipt extension.
func IsAllowedReceipt(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png", ".pdf":
		return true
	}
	return false
}

type ReviewExpenseRequest struct {
	ID   string  `json:"-"`
	Note *string `json:"note,omitempty"`
}

func (r *ReviewExpenseRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "id must be a valid UUID")
	}
	if r.Note != nil && len(*r.Note) > 500 {
		errs.Add("note", "note must not exceed 500 characters")
	}
	return errs.OrNil()
}

type ExpenseFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	Category   *string `json:"category,omitempty"`
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *ExpenseFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.EmployeeID != nil && *f.EmployeeID != "" && !validator.IsValidUUID(*f.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	if f.Status != nil && *f.Status != "" && !validator.IsInSlice(*f.Status, []string{
		string(StatusPending), string(StatusApproved), string(StatusRejected),
	}) {
		errs.Add("status", "status must be one of pending, approved, rejected")
	}
	if f.Category != nil && *f.Category != "" && !Category(*f.Category).Valid() {
		errs.Add("category", "category must be one of travel, food, lodging, fuel, supplies, other")
	}
	var start, end time.Time
	if f.StartDate != nil && *f.StartDate != "" {
		var ok bool
		if start, ok = validator.IsValidDate(*f.StartDate); !ok {
			errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
		}
	}
	if f.EndDate != nil && *f.EndDate != "" {
		var ok bool
		if end, ok = validator.IsValidDate(*f.EndDate); !ok {
			errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
		}
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		errs.Add("end_date", "end_date must not be before start_date")
	}
	if f.Page < 0 {
		errs.Add("page", "page must not be negative")
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit < 0 || f.Limit > 100 {
		errs.Add("limit", "limit must be between 1 and 100")
	}
	if f.Limit == 0 {
		f.Limit = 20
	}

	return errs.OrNil()
}

type ListExpenseResponse struct {
	Expenses   []ExpenseResponse `json:"expenses"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}
