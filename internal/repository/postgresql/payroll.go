package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepositoryImpl{db: db}
}

// GetSettings implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetSettings(ctx context.Context, companyID string) (*payroll.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT company_id, overtime_enabled, overtime_rate_per_hour,
			   late_deduction_enabled, late_deduction_per_minute, updated_at
		FROM payroll_settings
		WHERE company_id = $1
	`

	var s payroll.Settings
	err := q.QueryRow(ctx, query, companyID).Scan(
		&s.CompanyID, &s.OvertimeEnabled, &s.OvertimeRatePerHour,
		&s.LateDeductionEnabled, &s.LateDeductionPerMinute, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payroll settings: %w", err)
	}
	return &s, nil
}

// UpsertSettings implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) UpsertSettings(ctx context.Context, settings payroll.Settings) (payroll.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_settings (
			company_id, overtime_enabled, overtime_rate_per_hour,
			late_deduction_enabled, late_deduction_per_minute
		) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (company_id) DO UPDATE SET
			overtime_enabled = EXCLUDED.overtime_enabled,
			overtime_rate_per_hour = EXCLUDED.overtime_rate_per_hour,
			late_deduction_enabled = EXCLUDED.late_deduction_enabled,
			late_deduction_per_minute = EXCLUDED.late_deduction_per_minute,
			updated_at = NOW()
		RETURNING company_id, overtime_enabled, overtime_rate_per_hour,
				  late_deduction_enabled, late_deduction_per_minute, updated_at
	`

	var saved payroll.Settings
	err := q.QueryRow(ctx, query,
		settings.CompanyID,
		settings.OvertimeEnabled,
		settings.OvertimeRatePerHour,
		settings.LateDeductionEnabled,
		settings.LateDeductionPerMinute,
	).Scan(
		&saved.CompanyID, &saved.OvertimeEnabled, &saved.OvertimeRatePerHour,
		&saved.LateDeductionEnabled, &saved.LateDeductionPerMinute, &saved.UpdatedAt,
	)
	if err != nil {
		return payroll.Settings{}, fmt.Errorf("failed to save payroll settings: %w", err)
	}
	return saved, nil
}

const slipSelect = `
	SELECT
		s.id, s.company_id, s.employee_id, s.period_year, s.period_month,
		s.working_days, s.present_days, s.late_days, s.half_days, s.leave_days,
		s.unpaid_leave_days, s.absent_days, s.overtime_minutes, s.late_minutes,
		s.not_joined_days, s.proration_amount,
		s.base_salary, s.per_day_rate, s.loss_of_pay_amount, s.overtime_amount,
		s.late_deduction_amount, s.gross_salary, s.net_salary,
		s.status, s.paid_at, s.created_at, s.updated_at,
		e.full_name, e.employee_code
	FROM salary_slips s
	LEFT JOIN employees e ON e.id = s.employee_id
`

func scanSlip(row pgx.Row) (payroll.SalarySlip, error) {
	var s payroll.SalarySlip
	err := row.Scan(
		&s.ID, &s.CompanyID, &s.EmployeeID, &s.PeriodYear, &s.PeriodMonth,
		&s.WorkingDays, &s.PresentDays, &s.LateDays, &s.HalfDays, &s.LeaveDays,
		&s.UnpaidLeaveDays, &s.AbsentDays, &s.OvertimeMinutes, &s.LateMinutes,
		&s.NotJoinedDays, &s.ProrationAmount,
		&s.BaseSalary, &s.PerDayRate, &s.LossOfPayAmount, &s.OvertimeAmount,
		&s.LateDeductionAmount, &s.GrossSalary, &s.NetSalary,
		&s.Status, &s.PaidAt, &s.CreatedAt, &s.UpdatedAt,
		&s.EmployeeName, &s.EmployeeCode,
	)
	return s, err
}

// SaveDraft implements payroll.PayrollRepository. The conflict update only
// fires for drafts, so a paid month returns no row.
func (r *payrollRepositoryImpl) SaveDraft(ctx context.Context, slip payroll.SalarySlip) (payroll.SalarySlip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_slips (
			company_id, employee_id, period_year, period_month,
			working_days, present_days, late_days, half_days, leave_days,
			unpaid_leave_days, absent_days, overtime_minutes, late_minutes,
			base_salary, per_day_rate, loss_of_pay_amount, overtime_amount,
			late_deduction_amount, gross_salary, net_salary,
			not_joined_days, proration_amount, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, 'draft'
		)
		ON CONFLICT (employee_id, period_year, period_month) DO UPDATE SET
			working_days = EXCLUDED.working_days,
			present_days = EXCLUDED.present_days,
			late_days = EXCLUDED.late_days,
			half_days = EXCLUDED.half_days,
			leave_days = EXCLUDED.leave_days,
			unpaid_leave_days = EXCLUDED.unpaid_leave_days,
			absent_days = EXCLUDED.absent_days,
			overtime_minutes = EXCLUDED.overtime_minutes,
			late_minutes = EXCLUDED.late_minutes,
			base_salary = EXCLUDED.base_salary,
			per_day_rate = EXCLUDED.per_day_rate,
			loss_of_pay_amount = EXCLUDED.loss_of_pay_amount,
			overtime_amount = EXCLUDED.overtime_amount,
			late_deduction_amount = EXCLUDED.late_deduction_amount,
			gross_salary = EXCLUDED.gross_salary,
			net_salary = EXCLUDED.net_salary,
			not_joined_days = EXCLUDED.not_joined_days,
			proration_amount = EXCLUDED.proration_amount,
			updated_at = NOW()
		WHERE salary_slips.status = 'draft'
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		slip.CompanyID, slip.EmployeeID, slip.PeriodYear, slip.PeriodMonth,
		slip.WorkingDays, slip.PresentDays, slip.LateDays, slip.HalfDays, slip.LeaveDays,
		slip.UnpaidLeaveDays, slip.AbsentDays, slip.OvertimeMinutes, slip.LateMinutes,
		slip.BaseSalary, slip.PerDayRate, slip.LossOfPayAmount, slip.OvertimeAmount,
		slip.LateDeductionAmount, slip.GrossSalary, slip.NetSalary,
		slip.NotJoinedDays, slip.ProrationAmount,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.SalarySlip{}, payroll.ErrSlipAlreadyPaid
		}
		return payroll.SalarySlip{}, fmt.Errorf("failed to save salary slip: %w", err)
	}

	return r.GetSlip(ctx, id, slip.CompanyID)
}

// GetSlip implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetSlip(ctx context.Context, id, companyID string) (payroll.SalarySlip, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanSlip(q.QueryRow(ctx, slipSelect+` WHERE s.id = $1 AND s.company_id = $2`, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.SalarySlip{}, payroll.ErrSlipNotFound
		}
		return payroll.SalarySlip{}, fmt.Errorf("failed to get salary slip: %w", err)
	}
	return found, nil
}

// ListSlips implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) ListSlips(ctx context.Context, filter payroll.SlipFilter, companyID string) ([]payroll.SalarySlip, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "s.company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		where += fmt.Sprintf(" AND s.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Year != nil {
		where += fmt.Sprintf(" AND s.period_year = $%d", argIdx)
		args = append(args, *filter.Year)
		argIdx++
	}
	if filter.Month != nil {
		where += fmt.Sprintf(" AND s.period_month = $%d", argIdx)
		args = append(args, *filter.Month)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		where += fmt.Sprintf(" AND s.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM salary_slips s WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count salary slips: %w", err)
	}

	limit, offset := pageOffset(filter.Page, filter.Limit)
	query := slipSelect + fmt.Sprintf(`
		WHERE %s
		ORDER BY s.period_year DESC, s.period_month DESC, e.employee_code
		LIMIT $%d OFFSET $%d
	`, where, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query salary slips: %w", err)
	}
	defer rows.Close()

	var slips []payroll.SalarySlip
	for rows.Next() {
		s, err := scanSlip(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan salary slip: %w", err)
		}
		slips = append(slips, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return slips, total, nil
}

// MarkPaid implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) MarkPaid(ctx context.Context, id, companyID string, paidAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salary_slips
		SET status = 'paid', paid_at = $1, updated_at = NOW()
		WHERE id = $2 AND company_id = $3 AND status = 'draft'
	`

	tag, err := q.Exec(ctx, query, paidAt, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to mark salary slip paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrSlipAlreadyPaid
	}
	return nil
}
