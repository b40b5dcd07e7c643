package employee

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/office"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/badge"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	tx           postgresql.Transactor
	employeeRepo employee.EmployeeRepository
	userRepo     user.UserRepository
	officeRepo   office.OfficeRepository
	companyRepo  company.CompanyRepository
	location     *time.Location
}

func NewEmployeeService(
	tx postgresql.Transactor,
	employeeRepo employee.EmployeeRepository,
	userRepo user.UserRepository,
	officeRepo office.OfficeRepository,
	companyRepo company.CompanyRepository,
	location *time.Location,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		tx:           tx,
		employeeRepo: employeeRepo,
		userRepo:     userRepo,
		officeRepo:   officeRepo,
		companyRepo:  companyRepo,
		location:     location,
	}
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	employees, total, err := s.employeeRepo.List(ctx, filter, claims.CompanyID)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.NewEmployeeResponse(e))
	}

	return employee.ListEmployeeResponse{
		Employees:  responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, _, err := s.readable(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(emp), nil
}

// readable loads an employee the caller may see: managers see everyone, others
// only themselves.
func (s *EmployeeServiceImpl) readable(ctx context.Context, id string) (employee.Employee, jwt.Claims, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return employee.Employee{}, jwt.Claims{}, err
	}
	if !validator.IsValidUUID(id) {
		return employee.Employee{}, claims, employee.ErrEmployeeNotFound
	}
	if !claims.IsManager() && (claims.EmployeeID == nil || *claims.EmployeeID != id) {
		return employee.Employee{}, claims, employee.ErrUnauthorized
	}

	emp, err := s.employeeRepo.GetByID(ctx, id, claims.CompanyID)
	if err != nil {
		return employee.Employee{}, claims, err
	}
	return emp, claims, nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	role := user.RoleEmployee
	if req.Role != nil {
		role = user.Role(*req.Role)
	}
	// Only an owner hands out owner or manager logins.
	if role != user.RoleEmployee && claims.Role != user.RoleOwner {
		return employee.EmployeeResponse{}, user.ErrInsufficientPermissions
	}

	joinedAt := calendar.Today(s.location)
	if req.JoinedAt != "" {
		joinedAt, _ = calendar.Parse(req.JoinedAt)
	}

	weekOffs := req.WeekOffDays
	if weekOffs == nil {
		weekOffs = append([]string(nil), employee.DefaultWeekOffDays...)
	}

	var passwordHash string
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
		}
		passwordHash = string(hash)
	}

	var created employee.Employee
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		exists, err := s.employeeRepo.ExistsByCode(ctx, claims.CompanyID, req.EmployeeCode)
		if err != nil {
			return fmt.Errorf("failed to check employee code: %w", err)
		}
		if exists {
			return employee.ErrEmployeeCodeExists
		}

		if req.OfficeID != nil {
			if _, err := s.officeRepo.GetByID(ctx, *req.OfficeID, claims.CompanyID); err != nil {
				return err
			}
		}

		newEmployee := employee.Employee{
			CompanyID:    claims.CompanyID,
			OfficeID:     req.OfficeID,
			EmployeeCode: req.EmployeeCode,
			FullName:     strings.TrimSpace(req.FullName),
			Email:        req.Email,
			Phone:        req.Phone,
			Designation:  req.Designation,
			ShiftStart:   req.ShiftStart,
			ShiftEnd:     req.ShiftEnd,
			WeekOffDays:  weekOffs,
			BaseSalary:   req.BaseSalary,
			Status:       employee.StatusActive,
			JoinedAt:     joinedAt,
		}

		if req.Password != nil {
			exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
			if err != nil {
				return fmt.Errorf("failed to check email: %w", err)
			}
			if exists {
				return employee.ErrEmailExists
			}

			account, err := s.userRepo.Create(ctx, user.User{
				CompanyID:    claims.CompanyID,
				Email:        req.Email,
				PasswordHash: passwordHash,
				Role:         role,
			})
			if err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}
			newEmployee.UserID = &account.ID
		}

		created, err = s.employeeRepo.Create(ctx, newEmployee)
		if err != nil {
			return fmt.Errorf("failed to create employee: %w", err)
		}
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee created", "employee_id", created.ID, "company_id", claims.CompanyID, "with_login", created.UserID != nil)

	// Reload to pick up the office and role joins.
	created, err = s.employeeRepo.GetByID(ctx, created.ID, claims.CompanyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(created), nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if !validator.IsValidUUID(req.ID) {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
	}

	existing, err := s.employeeRepo.GetByID(ctx, req.ID, claims.CompanyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.FullName != nil {
		existing.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Email != nil {
		existing.Email = *req.Email
	}
	if req.Phone != nil {
		existing.Phone = *req.Phone
	}
	if req.Designation != nil {
		existing.Designation = *req.Designation
	}
	if req.OfficeID != nil {
		if *req.OfficeID == "" {
			existing.OfficeID = nil
		} else {
			if _, err := s.officeRepo.GetByID(ctx, *req.OfficeID, claims.CompanyID); err != nil {
				return employee.EmployeeResponse{}, err
			}
			existing.OfficeID = req.OfficeID
		}
	}
	if req.ShiftStart != nil {
		existing.ShiftStart = *req.ShiftStart
	}
	if req.ShiftEnd != nil {
		existing.ShiftEnd = *req.ShiftEnd
	}
	if req.WeekOffDays != nil {
		existing.WeekOffDays = req.WeekOffDays
	}
	if req.BaseSalary != nil {
		existing.BaseSalary = *req.BaseSalary
	}
	if req.Status != nil {
		status := employee.Status(*req.Status)
		if status == employee.StatusInactive && isSelf(claims, existing.ID) {
			return employee.EmployeeResponse{}, employee.ErrCannotDeactivateSelf
		}
		existing.Status = status
	}

	if err := s.employeeRepo.Update(ctx, existing); err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}

	updated, err := s.employeeRepo.GetByID(ctx, existing.ID, claims.CompanyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(updated), nil
}

// DeactivateEmployee implements employee.EmployeeService. History stays in place
// so past reports and salary slips remain intact.
func (s *EmployeeServiceImpl) DeactivateEmployee(ctx context.Context, id string) error {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return err
	}
	if !validator.IsValidUUID(id) {
		return employee.ErrEmployeeNotFound
	}
	if isSelf(claims, id) {
		return employee.ErrCannotDeactivateSelf
	}

	existing, err := s.employeeRepo.GetByID(ctx, id, claims.CompanyID)
	if err != nil {
		return err
	}
	if existing.Status == employee.StatusInactive {
		return employee.ErrEmployeeAlreadyInactive
	}

	if err := s.employeeRepo.SetStatus(ctx, id, claims.CompanyID, employee.StatusInactive); err != nil {
		return fmt.Errorf("failed to deactivate employee: %w", err)
	}

	slog.Info("Employee deactivated", "employee_id", id, "by", claims.UserID)
	return nil
}

// Badge implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Badge(ctx context.Context, id string) ([]byte, error) {
	emp, claims, err := s.readable(ctx, id)
	if err != nil {
		return nil, err
	}

	companyData, err := s.companyRepo.GetByID(ctx, claims.CompanyID)
	if err != nil {
		return nil, err
	}

	png, err := badge.PNG(badge.Payload{CompanyUsername: companyData.Username, EmployeeCode: emp.EmployeeCode}, badge.DefaultSize)
	if err != nil {
		return nil, fmt.Errorf("failed to render badge: %w", err)
	}
	return png, nil
}

func isSelf(claims jwt.Claims, employeeID string) bool {
	return claims.EmployeeID != nil && *claims.EmployeeID == employeeID
}
