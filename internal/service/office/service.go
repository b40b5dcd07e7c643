package office

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/office"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

type OfficeServiceImpl struct {
	office.OfficeRepository
}

func NewOfficeService(officeRepository office.OfficeRepository) office.OfficeService {
	return &OfficeServiceImpl{OfficeRepository: officeRepository}
}

// List implements office.OfficeService.
func (s *OfficeServiceImpl) List(ctx context.Context) ([]office.OfficeResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	offices, err := s.OfficeRepository.List(ctx, claims.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list offices: %w", err)
	}

	responses := make([]office.OfficeResponse, 0, len(offices))
	for _, o := range offices {
		responses = append(responses, office.NewOfficeResponse(o))
	}
	return responses, nil
}

// Get implements office.OfficeService.
func (s *OfficeServiceImpl) Get(ctx context.Context, id string) (office.OfficeResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return office.OfficeResponse{}, err
	}
	if !validator.IsValidUUID(id) {
		return office.OfficeResponse{}, office.ErrOfficeNotFound
	}

	o, err := s.OfficeRepository.GetByID(ctx, id, claims.CompanyID)
	if err != nil {
		return office.OfficeResponse{}, err
	}
	return office.NewOfficeResponse(o), nil
}

// Create implements office.OfficeService.
func (s *OfficeServiceImpl) Create(ctx context.Context, req office.CreateOfficeRequest) (office.OfficeResponse, error) {
	if err := req.Validate(); err != nil {
		return office.OfficeResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return office.OfficeResponse{}, err
	}

	created, err := s.OfficeRepository.Create(ctx, office.Office{
		CompanyID: claims.CompanyID,
		Name:      req.Name,
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Timezone:  req.Timezone,
	})
	if err != nil {
		return office.OfficeResponse{}, err
	}

	slog.Info("Office created", "office_id", created.ID, "company_id", claims.CompanyID)
	return office.NewOfficeResponse(created), nil
}

// Update implements office.OfficeService.
func (s *OfficeServiceImpl) Update(ctx context.Context, req office.UpdateOfficeRequest) (office.OfficeResponse, error) {
	if err := req.Validate(); err != nil {
		return office.OfficeResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return office.OfficeResponse{}, err
	}
	if !validator.IsValidUUID(req.ID) {
		return office.OfficeResponse{}, office.ErrOfficeNotFound
	}

	existing, err := s.OfficeRepository.GetByID(ctx, req.ID, claims.CompanyID)
	if err != nil {
		return office.OfficeResponse{}, err
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Address != nil {
		existing.Address = *req.Address
	}
	if req.Latitude != nil {
		existing.Latitude = req.Latitude
		existing.Longitude = req.Longitude
	}
	if req.Timezone != nil {
		existing.Timezone = *req.Timezone
	}

	updated, err := s.OfficeRepository.Update(ctx, existing)
	if err != nil {
		return office.OfficeResponse{}, err
	}
	return office.NewOfficeResponse(updated), nil
}

// Delete implements office.OfficeService. Offices with employees assigned are kept.
func (s *OfficeServiceImpl) Delete(ctx context.Context, id string) error {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return err
	}
	if !validator.IsValidUUID(id) {
		return office.ErrOfficeNotFound
	}

	assigned, err := s.OfficeRepository.CountEmployees(ctx, id, claims.CompanyID)
	if err != nil {
		return fmt.Errorf("failed to count office employees: %w", err)
	}
	if assigned > 0 {
		return office.ErrOfficeInUse
	}

	if err := s.OfficeRepository.Delete(ctx, id, claims.CompanyID); err != nil {
		return err
	}

	slog.Info("Office deleted", "office_id", id, "company_id", claims.CompanyID)
	return nil
}
