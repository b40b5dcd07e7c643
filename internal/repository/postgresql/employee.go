package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeSelect = `
	SELECT
		e.id, e.company_id, e.user_id, e.office_id, e.employee_code, e.full_name,
		e.email, e.phone, e.designation, e.shift_start, e.shift_end, e.week_off_days,
		e.base_salary, e.status, e.joined_at, e.created_at, e.updated_at,
		o.name, o.timezone, u.role
	FROM employees e
	LEFT JOIN offices o ON o.id = e.office_id
	LEFT JOIN users u ON u.id = e.user_id
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.CompanyID, &e.UserID, &e.OfficeID, &e.EmployeeCode, &e.FullName,
		&e.Email, &e.Phone, &e.Designation, &e.ShiftStart, &e.ShiftEnd, &e.WeekOffDays,
		&e.BaseSalary, &e.Status, &e.JoinedAt, &e.CreatedAt, &e.UpdatedAt,
		&e.OfficeName, &e.OfficeTimezone, &e.Role,
	)
	return e, err
}

func collectEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	weekOffs := newEmployee.WeekOffDays
	if len(weekOffs) == 0 {
		weekOffs = employee.DefaultWeekOffDays
	}
	status := newEmployee.Status
	if status == "" {
		status = employee.StatusActive
	}

	query := `
		INSERT INTO employees (
			company_id, user_id, office_id, employee_code, full_name, email, phone,
			designation, shift_start, shift_end, week_off_days, base_salary, status, joined_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		newEmployee.CompanyID,
		newEmployee.UserID,
		newEmployee.OfficeID,
		newEmployee.EmployeeCode,
		newEmployee.FullName,
		newEmployee.Email,
		newEmployee.Phone,
		newEmployee.Designation,
		newEmployee.ShiftStart,
		newEmployee.ShiftEnd,
		weekOffs,
		newEmployee.BaseSalary,
		status,
		newEmployee.JoinedAt,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err, "employees_company_id_employee_code_key") {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return r.GetByID(ctx, id, newEmployee.CompanyID)
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanEmployee(q.QueryRow(ctx, employeeSelect+` WHERE e.id = $1 AND e.company_id = $2`, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}
	return found, nil
}

// GetByUserID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanEmployee(q.QueryRow(ctx, employeeSelect+` WHERE e.user_id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by user ID: %w", err)
	}
	return found, nil
}

// ExistsByCode implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ExistsByCode(ctx context.Context, companyID, employeeCode string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM employees WHERE company_id = $1 AND LOWER(employee_code) = LOWER($2))`,
		companyID, employeeCode,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check employee code: %w", err)
	}
	return exists, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, e employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET office_id = $1, full_name = $2, email = $3, phone = $4, designation = $5,
			shift_start = $6, shift_end = $7, week_off_days = $8, base_salary = $9,
			status = $10, updated_at = NOW()
		WHERE id = $11 AND company_id = $12
	`

	tag, err := q.Exec(ctx, query,
		e.OfficeID, e.FullName, e.Email, e.Phone, e.Designation,
		e.ShiftStart, e.ShiftEnd, e.WeekOffDays, e.BaseSalary,
		e.Status, e.ID, e.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// SetStatus implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) SetStatus(ctx context.Context, id, companyID string, status employee.Status) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE employees SET status = $1, updated_at = NOW() WHERE id = $2 AND company_id = $3`,
		status, id, companyID,
	)
	if err != nil {
		return fmt.Errorf("failed to set employee status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter, companyID string) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "e.company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if filter.Search != nil && *filter.Search != "" {
		where += fmt.Sprintf(" AND (e.full_name ILIKE $%d OR e.employee_code ILIKE $%d OR e.email ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}
	if filter.OfficeID != nil && *filter.OfficeID != "" {
		where += fmt.Sprintf(" AND e.office_id = $%d", argIdx)
		args = append(args, *filter.OfficeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		where += fmt.Sprintf(" AND e.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees e WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	limit, offset := pageOffset(filter.Page, filter.Limit)
	query := employeeSelect + fmt.Sprintf(` WHERE %s ORDER BY e.employee_code LIMIT $%d OFFSET $%d`, where, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query employees: %w", err)
	}
	employees, err := collectEmployees(rows)
	if err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

// ListActive implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListActive(ctx context.Context, companyID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, employeeSelect+` WHERE e.company_id = $1 AND e.status = $2 ORDER BY e.employee_code`,
		companyID, employee.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	return collectEmployees(rows)
}
