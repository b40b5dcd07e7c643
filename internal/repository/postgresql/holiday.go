package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

// Create implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO holidays (company_id, date, name)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	if err := q.QueryRow(ctx, query, h.CompanyID, h.Date, h.Name).Scan(&h.ID, &h.CreatedAt); err != nil {
		if isUniqueViolation(err, "") {
			return holiday.Holiday{}, holiday.ErrHolidayDateExists
		}
		return holiday.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}
	return h, nil
}

// Upsert implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Upsert(ctx context.Context, h holiday.Holiday) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO holidays (company_id, date, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (company_id, date) DO UPDATE SET name = EXCLUDED.name
	`
	if _, err := q.Exec(ctx, query, h.CompanyID, h.Date, h.Name); err != nil {
		return fmt.Errorf("failed to upsert holiday: %w", err)
	}
	return nil
}

// Delete implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Delete(ctx context.Context, id, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM holidays WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}
	return nil
}

// ListBetween implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) ListBetween(ctx context.Context, companyID string, from, to time.Time) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, date, name, created_at
		FROM holidays
		WHERE company_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		var h holiday.Holiday
		if err := rows.Scan(&h.ID, &h.CompanyID, &h.Date, &h.Name, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}
