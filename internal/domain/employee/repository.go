package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, id, companyID string) (Employee, error)
	GetByUserID(ctx context.Context, userID string) (Employee, error)
	ExistsByCode(ctx context.Context, companyID, employeeCode string) (bool, error)
	Update(ctx context.Context, e Employee) error
	SetStatus(ctx context.Context, id, companyID string, status Status) error
	List(ctx context.Context, filter EmployeeFilter, companyID string) ([]Employee, int64, error)
	ListActive(ctx context.Context, companyID string) ([]Employee, error)
}
