package employee

import (
	"context"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// ListEmployees lists employees with filters (manager+ only)
	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)

	// GetEmployee retrieves a single employee; employees may only read themselves
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	// CreateEmployee creates a new employee, optionally with a login account
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// UpdateEmployee updates profile, shift window and week-off days
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// DeactivateEmployee marks an employee inactive
	DeactivateEmployee(ctx context.Context, id string) error

	// Badge renders the employee's punch badge as a PNG QR code
	Badge(ctx context.Context, id string) ([]byte, error)
}
