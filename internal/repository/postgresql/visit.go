package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/visit"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type visitRepositoryImpl struct {
	db *database.DB
}

func NewVisitRepository(db *database.DB) visit.VisitRepository {
	return &visitRepositoryImpl{db: db}
}

const visitSelect = `
	SELECT
		v.id, v.company_id, v.employee_id, v.dealer_name, v.dealer_address, v.visit_date,
		v.check_in_at, v.check_out_at, v.latitude, v.longitude, v.purpose, v.outcome, v.notes,
		v.created_at, v.updated_at,
		e.full_name, e.employee_code
	FROM dealer_visits v
	LEFT JOIN employees e ON e.id = v.employee_id
`

func scanVisit(row pgx.Row) (visit.Visit, error) {
	var v visit.Visit
	err := row.Scan(
		&v.ID, &v.CompanyID, &v.EmployeeID, &v.DealerName, &v.DealerAddress, &v.VisitDate,
		&v.CheckInAt, &v.CheckOutAt, &v.Latitude, &v.Longitude, &v.Purpose, &v.Outcome, &v.Notes,
		&v.CreatedAt, &v.UpdatedAt,
		&v.EmployeeName, &v.EmployeeCode,
	)
	return v, err
}

// Create implements visit.VisitRepository.
func (r *visitRepositoryImpl) Create(ctx context.Context, v visit.Visit) (visit.Visit, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO dealer_visits (
			company_id, employee_id, dealer_name, dealer_address, visit_date,
			check_in_at, latitude, longitude, purpose, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		v.CompanyID, v.EmployeeID, v.DealerName, v.DealerAddress, v.VisitDate,
		v.CheckInAt, v.Latitude, v.Longitude, v.Purpose, v.Notes,
	).Scan(&id)
	if err != nil {
		return visit.Visit{}, fmt.Errorf("failed to create visit: %w", err)
	}

	return r.GetByID(ctx, id, v.CompanyID)
}

// GetByID implements visit.VisitRepository.
func (r *visitRepositoryImpl) GetByID(ctx context.Context, id, companyID string) (visit.Visit, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanVisit(q.QueryRow(ctx, visitSelect+` WHERE v.id = $1 AND v.company_id = $2`, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return visit.Visit{}, visit.ErrVisitNotFound
		}
		return visit.Visit{}, fmt.Errorf("failed to get visit: %w", err)
	}
	return found, nil
}

// GetOpenByEmployee implements visit.VisitRepository.
func (r *visitRepositoryImpl) GetOpenByEmployee(ctx context.Context, employeeID string) (visit.Visit, error) {
	q := GetQuerier(ctx, r.db)

	query := visitSelect + `
		WHERE v.employee_id = $1 AND v.check_out_at IS NULL
		ORDER BY v.check_in_at DESC
		LIMIT 1
	`

	found, err := scanVisit(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return visit.Visit{}, visit.ErrVisitNotFound
		}
		return visit.Visit{}, fmt.Errorf("failed to get open visit: %w", err)
	}
	return found, nil
}

// List implements visit.VisitRepository.
func (r *visitRepositoryImpl) List(ctx context.Context, filter visit.VisitFilter, companyID string) ([]visit.Visit, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "v.company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		where += fmt.Sprintf(" AND v.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		where += fmt.Sprintf(" AND v.visit_date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		where += fmt.Sprintf(" AND v.visit_date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.OpenOnly {
		where += " AND v.check_out_at IS NULL"
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM dealer_visits v WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count visits: %w", err)
	}

	limit, offset := pageOffset(filter.Page, filter.Limit)
	query := visitSelect + fmt.Sprintf(` WHERE %s ORDER BY v.check_in_at DESC LIMIT $%d OFFSET $%d`, where, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query visits: %w", err)
	}
	defer rows.Close()

	var visits []visit.Visit
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan visit: %w", err)
		}
		visits = append(visits, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return visits, total, nil
}

// CheckOut implements visit.VisitRepository.
func (r *visitRepositoryImpl) CheckOut(ctx context.Context, v visit.Visit) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE dealer_visits
		SET check_out_at = $1, outcome = $2, notes = $3, updated_at = NOW()
		WHERE id = $4 AND company_id = $5 AND check_out_at IS NULL
	`

	tag, err := q.Exec(ctx, query, v.CheckOutAt, v.Outcome, v.Notes, v.ID, v.CompanyID)
	if err != nil {
		return fmt.Errorf("failed to check out visit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return visit.ErrVisitAlreadyCheckedOut
	}
	return nil
}

// CountOnDate implements visit.VisitRepository.
func (r *visitRepositoryImpl) CountOnDate(ctx context.Context, companyID string, date time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM dealer_visits WHERE company_id = $1 AND visit_date = $2`, companyID, date).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count visits: %w", err)
	}
	return count, nil
}
