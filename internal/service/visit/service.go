package visit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/visit"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/postgresql"
)

type VisitServiceImpl struct {
	tx postgresql.Transactor
	visit.VisitRepository
	employee.EmployeeRepository
	location *time.Location
	now      func() time.Time
}

func NewVisitService(
	tx postgresql.Transactor,
	visitRepository visit.VisitRepository,
	employeeRepository employee.EmployeeRepository,
	location *time.Location,
) visit.VisitService {
	return &VisitServiceImpl{
		tx:                 tx,
		VisitRepository:    visitRepository,
		EmployeeRepository: employeeRepository,
		location:           location,
		now:                time.Now,
	}
}

// CheckIn implements visit.VisitService.
func (s *VisitServiceImpl) CheckIn(ctx context.Context, req visit.CheckInRequest) (visit.VisitResponse, error) {
	if err := req.Validate(); err != nil {
		return visit.VisitResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return visit.VisitResponse{}, err
	}
	employeeID, err := claims.RequireEmployeeID()
	if err != nil {
		return visit.VisitResponse{}, err
	}
	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID, claims.CompanyID)
	if err != nil {
		return visit.VisitResponse{}, err
	}
	if emp.Status != employee.StatusActive {
		return visit.VisitResponse{}, employee.ErrEmployeeInactive
	}

	now := s.now()
	var created visit.Visit
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		_, err := s.VisitRepository.GetOpenByEmployee(ctx, emp.ID)
		switch {
		case err == nil:
			return visit.ErrOpenVisitExists
		case !errors.Is(err, visit.ErrVisitNotFound):
			return fmt.Errorf("failed to check open visit: %w", err)
		}

		created, err = s.VisitRepository.Create(ctx, visit.Visit{
			CompanyID:     emp.CompanyID,
			EmployeeID:    emp.ID,
			DealerName:    req.DealerName,
			DealerAddress: req.DealerAddress,
			VisitDate:     calendar.DateOf(now.In(emp.Location(s.location))),
			CheckInAt:     now.UTC(),
			Latitude:      req.Latitude,
			Longitude:     req.Longitude,
			Purpose:       req.Purpose,
		})
		if err != nil {
			return fmt.Errorf("failed to create visit: %w", err)
		}
		return nil
	})
	if err != nil {
		return visit.VisitResponse{}, err
	}

	slog.Info("Dealer visit started", "visit_id", created.ID, "employee_id", emp.ID, "dealer", created.DealerName)
	created.EmployeeName = &emp.FullName
	created.EmployeeCode = &emp.EmployeeCode
	return visit.NewVisitResponse(created), nil
}

// CheckOut implements visit.VisitService.
func (s *VisitServiceImpl) CheckOut(ctx context.Context, req visit.CheckOutRequest) (visit.VisitResponse, error) {
	if err := req.Validate(); err != nil {
		return visit.VisitResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return visit.VisitResponse{}, err
	}

	v, err := s.VisitRepository.GetByID(ctx, req.ID, claims.CompanyID)
	if err != nil {
		return visit.VisitResponse{}, err
	}
	if claims.EmployeeID == nil || *claims.EmployeeID != v.EmployeeID {
		return visit.VisitResponse{}, visit.ErrNotVisitOwner
	}
	if !v.IsOpen() {
		return visit.VisitResponse{}, visit.ErrVisitAlreadyCheckedOut
	}

	checkOut := s.now().UTC()
	v.CheckOutAt = &checkOut
	v.Outcome = req.Outcome
	v.Notes = req.Notes

	if err := s.VisitRepository.CheckOut(ctx, v); err != nil {
		return visit.VisitResponse{}, fmt.Errorf("failed to check out visit: %w", err)
	}
	return visit.NewVisitResponse(v), nil
}

// Get implements visit.VisitService.
func (s *VisitServiceImpl) Get(ctx context.Context, id string) (visit.VisitResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return visit.VisitResponse{}, err
	}

	v, err := s.VisitRepository.GetByID(ctx, id, claims.CompanyID)
	if err != nil {
		return visit.VisitResponse{}, err
	}
	if !claims.IsManager() && (claims.EmployeeID == nil || *claims.EmployeeID != v.EmployeeID) {
		return visit.VisitResponse{}, employee.ErrUnauthorized
	}
	return visit.NewVisitResponse(v), nil
}

// ListMine implements visit.VisitService.
func (s *VisitServiceImpl) ListMine(ctx context.Context, filter visit.VisitFilter) (visit.ListVisitResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return visit.ListVisitResponse{}, err
	}
	employeeID, err := claims.RequireEmployeeID()
	if err != nil {
		return visit.ListVisitResponse{}, err
	}

	filter.EmployeeID = &employeeID
	return s.list(ctx, claims.CompanyID, filter)
}

// ListAll implements visit.VisitService.
func (s *VisitServiceImpl) ListAll(ctx context.Context, filter visit.VisitFilter) (visit.ListVisitResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return visit.ListVisitResponse{}, err
	}
	return s.list(ctx, claims.CompanyID, filter)
}

func (s *VisitServiceImpl) list(ctx context.Context, companyID string, filter visit.VisitFilter) (visit.ListVisitResponse, error) {
	if err := filter.Validate(); err != nil {
		return visit.ListVisitResponse{}, err
	}

	visits, total, err := s.VisitRepository.List(ctx, filter, companyID)
	if err != nil {
		return visit.ListVisitResponse{}, fmt.Errorf("failed to list visits: %w", err)
	}

	items := make([]visit.VisitResponse, 0, len(visits))
	for _, v := range visits {
		items = append(items, visit.NewVisitResponse(v))
	}

	return visit.ListVisitResponse{
		Visits:     items,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}
