package holiday

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/postgresql"
)

type HolidayServiceImpl struct {
	tx postgresql.Transactor
	holiday.HolidayRepository
}

func NewHolidayService(tx postgresql.Transactor, holidayRepository holiday.HolidayRepository) holiday.HolidayService {
	return &HolidayServiceImpl{tx: tx, HolidayRepository: holidayRepository}
}

// List implements holiday.HolidayService.
func (s *HolidayServiceImpl) List(ctx context.Context, filter holiday.HolidayFilter) ([]holiday.HolidayResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	from, to := calendar.YearRange(filter.Year)
	holidays, err := s.HolidayRepository.ListBetween(ctx, claims.CompanyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	responses := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		responses = append(responses, holiday.NewHolidayResponse(h))
	}
	return responses, nil
}

// Create implements holiday.HolidayService.
func (s *HolidayServiceImpl) Create(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	date, _ := calendar.Parse(req.Date)
	created, err := s.HolidayRepository.Create(ctx, holiday.Holiday{
		CompanyID: claims.CompanyID,
		Date:      date,
		Name:      req.Name,
	})
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	return holiday.NewHolidayResponse(created), nil
}

// Delete implements holiday.HolidayService.
func (s *HolidayServiceImpl) Delete(ctx context.Context, id string) error {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return err
	}
	if !validator.IsValidUUID(id) {
		return holiday.ErrHolidayNotFound
	}
	return s.HolidayRepository.Delete(ctx, id, claims.CompanyID)
}

// Import implements holiday.HolidayService. All entries are upserted in one
// transaction; an invalid calendar writes nothing.
func (s *HolidayServiceImpl) Import(ctx context.Context, companyID string, cal holiday.Calendar) (int, error) {
	if err := cal.Validate(); err != nil {
		return 0, err
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		for _, entry := range cal.Holidays {
			date, _ := calendar.Parse(entry.Date)
			if err := s.HolidayRepository.Upsert(ctx, holiday.Holiday{CompanyID: companyID, Date: date, Name: entry.Name}); err != nil {
				return fmt.Errorf("failed to import holiday %s: %w", entry.Date, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	slog.Info("Holidays imported", "company_id", companyID, "count", len(cal.Holidays))
	return len(cal.Holidays), nil
}
