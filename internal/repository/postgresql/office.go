package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/office"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type officeRepositoryImpl struct {
	db *database.DB
}

func NewOfficeRepository(db *database.DB) office.OfficeRepository {
	return &officeRepositoryImpl{db: db}
}

const officeColumns = `id, company_id, name, address, latitude, longitude, timezone, created_at, updated_at`

func scanOffice(row pgx.Row) (office.Office, error) {
	var o office.Office
	err := row.Scan(&o.ID, &o.CompanyID, &o.Name, &o.Address, &o.Latitude, &o.Longitude, &o.Timezone, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

// Create implements office.OfficeRepository.
func (r *officeRepositoryImpl) Create(ctx context.Context, o office.Office) (office.Office, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO offices (company_id, name, address, latitude, longitude, timezone)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + officeColumns

	created, err := scanOffice(q.QueryRow(ctx, query, o.CompanyID, o.Name, o.Address, o.Latitude, o.Longitude, o.Timezone))
	if err != nil {
		if isUniqueViolation(err, "") {
			return office.Office{}, office.ErrOfficeNameExists
		}
		return office.Office{}, fmt.Errorf("failed to create office: %w", err)
	}
	return created, nil
}

// GetByID implements office.OfficeRepository.
func (r *officeRepositoryImpl) GetByID(ctx context.Context, id, companyID string) (office.Office, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + officeColumns + ` FROM offices WHERE id = $1 AND company_id = $2`

	found, err := scanOffice(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return office.Office{}, office.ErrOfficeNotFound
		}
		return office.Office{}, fmt.Errorf("failed to get office: %w", err)
	}
	return found, nil
}

// List implements office.OfficeRepository.
func (r *officeRepositoryImpl) List(ctx context.Context, companyID string) ([]office.Office, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+officeColumns+` FROM offices WHERE company_id = $1 ORDER BY name`, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list offices: %w", err)
	}
	defer rows.Close()

	var offices []office.Office
	for rows.Next() {
		o, err := scanOffice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan office: %w", err)
		}
		offices = append(offices, o)
	}
	return offices, rows.Err()
}

// Update implements office.OfficeRepository.
func (r *officeRepositoryImpl) Update(ctx context.Context, o office.Office) (office.Office, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE offices
		SET name = $1, address = $2, latitude = $3, longitude = $4, timezone = $5, updated_at = NOW()
		WHERE id = $6 AND company_id = $7
		RETURNING ` + officeColumns

	updated, err := scanOffice(q.QueryRow(ctx, query, o.Name, o.Address, o.Latitude, o.Longitude, o.Timezone, o.ID, o.CompanyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return office.Office{}, office.ErrOfficeNotFound
		}
		if isUniqueViolation(err, "") {
			return office.Office{}, office.ErrOfficeNameExists
		}
		return office.Office{}, fmt.Errorf("failed to update office: %w", err)
	}
	return updated, nil
}

// Delete implements office.OfficeRepository.
func (r *officeRepositoryImpl) Delete(ctx context.Context, id, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM offices WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete office: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return office.ErrOfficeNotFound
	}
	return nil
}

// CountEmployees implements office.OfficeRepository.
func (r *officeRepositoryImpl) CountEmployees(ctx context.Context, id, companyID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE office_id = $1 AND company_id = $2`, id, companyID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count office employees: %w", err)
	}
	return count, nil
}
