package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceSelect = `
	SELECT
		a.id, a.company_id, a.employee_id, a.date, a.punch_in, a.punch_out,
		a.punch_in_location, a.punch_out_location,
		a.punch_in_latitude, a.punch_in_longitude, a.punch_out_latitude, a.punch_out_longitude,
		a.auto_closed, a.notes, a.created_at, a.updated_at,
		e.full_name, e.employee_code
	FROM attendances a
	LEFT JOIN employees e ON e.id = a.employee_id
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.CompanyID, &att.EmployeeID, &att.Date, &att.PunchIn, &att.PunchOut,
		&att.PunchInLocation, &att.PunchOutLocation,
		&att.PunchInLatitude, &att.PunchInLongitude, &att.PunchOutLatitude, &att.PunchOutLongitude,
		&att.AutoClosed, &att.Notes, &att.CreatedAt, &att.UpdatedAt,
		&att.EmployeeName, &att.EmployeeCode,
	)
	return att, err
}

func collectAttendances(rows pgx.Rows) ([]attendance.Attendance, error) {
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}
	return attendances, rows.Err()
}

// Create implements attendance.AttendanceRepository. A second record for the
// same employee and date fails with ErrAlreadyPunchedIn.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			company_id, employee_id, date, punch_in, punch_out,
			punch_in_location, punch_in_latitude, punch_in_longitude, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newAttendance.CompanyID,
		newAttendance.EmployeeID,
		newAttendance.Date,
		newAttendance.PunchIn,
		newAttendance.PunchOut,
		newAttendance.PunchInLocation,
		newAttendance.PunchInLatitude,
		newAttendance.PunchInLongitude,
		newAttendance.Notes,
	).Scan(&newAttendance.ID, &newAttendance.CreatedAt, &newAttendance.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "") {
			return attendance.Attendance{}, attendance.ErrAlreadyPunchedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string, companyID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	att, err := scanAttendance(q.QueryRow(ctx, attendanceSelect+` WHERE a.id = $1 AND a.company_id = $2`, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}
	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	att, err := scanAttendance(q.QueryRow(ctx, attendanceSelect+` WHERE a.employee_id = $1 AND a.date = $2`, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No existing attendance found
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}
	return &att, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET punch_in = $1, punch_out = $2,
			punch_in_location = $3, punch_out_location = $4,
			punch_in_latitude = $5, punch_in_longitude = $6,
			punch_out_latitude = $7, punch_out_longitude = $8,
			auto_closed = $9, notes = $10, updated_at = NOW()
		WHERE id = $11 AND company_id = $12
	`

	tag, err := q.Exec(ctx, query,
		att.PunchIn, att.PunchOut,
		att.PunchInLocation, att.PunchOutLocation,
		att.PunchInLatitude, att.PunchInLongitude,
		att.PunchOutLatitude, att.PunchOutLongitude,
		att.AutoClosed, att.Notes,
		att.ID, att.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// Delete implements attendance.AttendanceRepository.
func (a *attendanceRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, a.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM attendances WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter, companyID string) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	// Build WHERE clause
	baseWhere := "a.company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		baseWhere += fmt.Sprintf(" AND (e.full_name ILIKE $%d OR e.employee_code ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}
	if filter.Date != nil && *filter.Date != "" {
		baseWhere += fmt.Sprintf(" AND a.date = $%d", argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	// Count total (need to join employees for name filter)
	countQuery := `
		SELECT COUNT(*)
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	limit, offset := pageOffset(filter.Page, filter.Limit)
	selectQuery := attendanceSelect + fmt.Sprintf(`
		WHERE %s
		ORDER BY a.date %s, e.employee_code
		LIMIT $%d OFFSET $%d
	`, baseWhere, sortOrder, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendances: %w", err)
	}
	attendances, err := collectAttendances(rows)
	if err != nil {
		return nil, 0, err
	}
	return attendances, total, nil
}

// ListBetween implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListBetween(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := attendanceSelect + `
		WHERE a.company_id = $1
		  AND ($2 = '' OR a.employee_id::text = $2)
		  AND a.date >= $3
		  AND a.date <= $4
		ORDER BY a.date, e.employee_code
	`

	rows, err := q.Query(ctx, query, companyID, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	return collectAttendances(rows)
}

// ListOpenBefore implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListOpenBefore(ctx context.Context, before time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := attendanceSelect + `
		WHERE a.date < $1
		  AND a.punch_in IS NOT NULL
		  AND a.punch_out IS NULL
		ORDER BY a.date
	`

	rows, err := q.Query(ctx, query, before)
	if err != nil {
		return nil, fmt.Errorf("failed to list open attendances: %w", err)
	}
	return collectAttendances(rows)
}
