package company

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/office"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/fixtures"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

type CompanyServiceImpl struct {
	tx postgresql.Transactor
	company.CompanyRepository
	user.UserRepository

	// Repositories for seeding default data
	officeRepo   office.OfficeRepository
	employeeRepo employee.EmployeeRepository
}

func NewCompanyService(
	tx postgresql.Transactor,
	companyRepository company.CompanyRepository,
	userRepository user.UserRepository,
	officeRepository office.OfficeRepository,
	employeeRepository employee.EmployeeRepository,
) company.CompanyService {
	return &CompanyServiceImpl{
		tx:                tx,
		CompanyRepository: companyRepository,
		UserRepository:    userRepository,
		officeRepo:        officeRepository,
		employeeRepo:      employeeRepository,
	}
}

// GetMyCompany implements company.CompanyService.
func (c *CompanyServiceImpl) GetMyCompany(ctx context.Context) (company.CompanyResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return company.CompanyResponse{}, err
	}

	companyData, err := c.CompanyRepository.GetByID(ctx, claims.CompanyID)
	if err != nil {
		return company.CompanyResponse{}, err
	}

	return company.NewCompanyResponse(companyData), nil
}

// UpdateMyCompany implements company.CompanyService.
func (c *CompanyServiceImpl) UpdateMyCompany(ctx context.Context, req company.UpdateCompanyRequest) (company.CompanyResponse, error) {
	if err := req.Validate(); err != nil {
		return company.CompanyResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return company.CompanyResponse{}, err
	}

	if req.Name != nil || req.Timezone != nil {
		if err := c.CompanyRepository.Update(ctx, claims.CompanyID, req); err != nil {
			return company.CompanyResponse{}, err
		}
	}

	return c.GetMyCompany(ctx)
}

// Bootstrap implements company.CompanyService. The company, its head office, the
// owner account and the owner's employee record are created atomically.
func (c *CompanyServiceImpl) Bootstrap(ctx context.Context, req company.BootstrapRequest) (company.CompanyResponse, error) {
	if err := req.Validate(); err != nil {
		return company.CompanyResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.OwnerPassword), bcrypt.DefaultCost)
	if err != nil {
		return company.CompanyResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var newCompany company.Company
	err = c.tx.WithinTx(ctx, func(ctx context.Context) error {
		exists, err := c.CompanyRepository.ExistsByUsername(ctx, req.CompanyUsername)
		if err != nil {
			return fmt.Errorf("failed to check company username: %w", err)
		}
		if exists {
			return company.ErrCompanyUsernameExists
		}

		exists, err = c.UserRepository.ExistsByEmail(ctx, req.OwnerEmail)
		if err != nil {
			return fmt.Errorf("failed to check owner email: %w", err)
		}
		if exists {
			return user.ErrUserEmailExists
		}

		newCompany, err = c.CompanyRepository.Create(ctx, company.Company{
			Name:     req.CompanyName,
			Username: req.CompanyUsername,
			Timezone: req.Timezone,
		})
		if err != nil {
			return fmt.Errorf("failed to create company: %w", err)
		}

		headOffice, err := c.officeRepo.Create(ctx, fixtures.DefaultOffice(newCompany.ID, newCompany.Name, newCompany.Timezone))
		if err != nil {
			return fmt.Errorf("failed to create head office: %w", err)
		}

		owner, err := c.UserRepository.Create(ctx, user.User{
			CompanyID:    newCompany.ID,
			Email:        req.OwnerEmail,
			PasswordHash: string(hash),
			Role:         user.RoleOwner,
		})
		if err != nil {
			return fmt.Errorf("failed to create owner: %w", err)
		}

		loc, err := time.LoadLocation(newCompany.Timezone)
		if err != nil {
			loc = time.UTC
		}
		ownerEmployee, err := c.employeeRepo.Create(ctx, fixtures.OwnerEmployee(newCompany.ID, owner.ID, headOffice.ID, owner.Email, calendar.Today(loc)))
		if err != nil {
			return fmt.Errorf("failed to create owner employee: %w", err)
		}

		slog.Info("Company bootstrapped",
			"company_id", newCompany.ID,
			"office_id", headOffice.ID,
			"user_id", owner.ID,
			"employee_id", ownerEmployee.ID,
		)
		return nil
	})
	if err != nil {
		return company.CompanyResponse{}, err
	}

	return company.NewCompanyResponse(newCompany), nil
}
