package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveSelect = `
	SELECT
		lr.id, lr.company_id, lr.employee_id, lr.leave_type, lr.start_date, lr.end_date,
		lr.reason, lr.status, lr.reviewed_by, lr.reviewed_at, lr.review_note,
		lr.created_at, lr.updated_at,
		e.full_name, e.employee_code
	FROM leave_requests lr
	LEFT JOIN employees e ON e.id = lr.employee_id
`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var l leave.LeaveRequest
	err := row.Scan(
		&l.ID, &l.CompanyID, &l.EmployeeID, &l.LeaveType, &l.StartDate, &l.EndDate,
		&l.Reason, &l.Status, &l.ReviewedBy, &l.ReviewedAt, &l.ReviewNote,
		&l.CreatedAt, &l.UpdatedAt,
		&l.EmployeeName, &l.EmployeeCode,
	)
	return l, err
}

func collectLeaveRequests(rows pgx.Rows) ([]leave.LeaveRequest, error) {
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		l, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, l)
	}
	return requests, rows.Err()
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	status := request.Status
	if status == "" {
		status = leave.StatusPending
	}

	query := `
		INSERT INTO leave_requests (company_id, employee_id, leave_type, start_date, end_date, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		request.CompanyID,
		request.EmployeeID,
		request.LeaveType,
		request.StartDate,
		request.EndDate,
		request.Reason,
		status,
	).Scan(&id)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return r.GetByID(ctx, id, request.CompanyID)
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id, companyID string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanLeaveRequest(q.QueryRow(ctx, leaveSelect+` WHERE lr.id = $1 AND lr.company_id = $2`, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return found, nil
}

// List implements leave.LeaveRequestRepository. Date filters match requests
// overlapping the range.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveFilter, companyID string) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "lr.company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		where += fmt.Sprintf(" AND lr.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		where += fmt.Sprintf(" AND lr.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.LeaveType != nil && *filter.LeaveType != "" {
		where += fmt.Sprintf(" AND lr.leave_type = $%d", argIdx)
		args = append(args, *filter.LeaveType)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		where += fmt.Sprintf(" AND lr.end_date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		where += fmt.Sprintf(" AND lr.start_date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM leave_requests lr WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	limit, offset := pageOffset(filter.Page, filter.Limit)
	query := leaveSelect + fmt.Sprintf(` WHERE %s ORDER BY lr.start_date DESC, lr.created_at DESC LIMIT $%d OFFSET $%d`, where, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query leave requests: %w", err)
	}
	requests, err := collectLeaveRequests(rows)
	if err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// UpdateStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, request leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, reviewed_by = $2, reviewed_at = $3, review_note = $4, updated_at = NOW()
		WHERE id = $5 AND company_id = $6
	`

	tag, err := q.Exec(ctx, query, request.Status, request.ReviewedBy, request.ReviewedAt, request.ReviewNote, request.ID, request.CompanyID)
	if err != nil {
		return fmt.Errorf("failed to update leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

// HasOverlap implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) HasOverlap(ctx context.Context, employeeID string, from, to time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM leave_requests
			WHERE employee_id = $1
			  AND status IN ('pending', 'approved')
			  AND start_date <= $3
			  AND end_date >= $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, from, to).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check leave overlap: %w", err)
	}
	return exists, nil
}

// ListActiveBetween implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListActiveBetween(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := leaveSelect + `
		WHERE lr.company_id = $1
		  AND ($2 = '' OR lr.employee_id::text = $2)
		  AND lr.status IN ('pending', 'approved')
		  AND lr.start_date <= $4
		  AND lr.end_date >= $3
		ORDER BY lr.start_date
	`

	rows, err := q.Query(ctx, query, companyID, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return collectLeaveRequests(rows)
}

// CountPending implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) CountPending(ctx context.Context, companyID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM leave_requests WHERE company_id = $1 AND status = 'pending'`, companyID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending leave requests: %w", err)
	}
	return count, nil
}
