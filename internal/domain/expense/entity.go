package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryTravel   Category = "travel"
	CategoryFood     Category = "food"
	CategoryLodging  Category = "lodging"
	CategoryFuel     Category = "fuel"
	CategorySupplies Category = "supplies"
	CategoryOther    Category = "other"
)

var Categories = []Category{CategoryTravel, CategoryFood, CategoryLodging, CategoryFuel, CategorySupplies, CategoryOther}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type Expense struct {
	ID          string
	CompanyID   string
	EmployeeID  string
	Category    Category
	Amount      decimal.Decimal
	ExpenseDate time.Time
	Description string
	ReceiptPath *string
	Status      Status
	ReviewedBy  *string
	ReviewedAt  *time.Time
	ReviewNote  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Join
	EmployeeName *string
	EmployeeCode *string
}
