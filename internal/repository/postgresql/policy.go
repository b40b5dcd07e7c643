package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type policyRepositoryImpl struct {
	db *database.DB
}

func NewPolicyRepository(db *database.DB) attendance.PolicyRepository {
	return &policyRepositoryImpl{db: db}
}

// Get implements attendance.PolicyRepository.
func (r *policyRepositoryImpl) Get(ctx context.Context, companyID string) (*attendance.Policy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT company_id, late_grace_minutes, full_day_hours, half_day_hours, updated_at
		FROM attendance_policies
		WHERE company_id = $1
	`

	var p attendance.Policy
	err := q.QueryRow(ctx, query, companyID).Scan(&p.CompanyID, &p.LateGraceMinutes, &p.FullDayHours, &p.HalfDayHours, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance policy: %w", err)
	}
	return &p, nil
}

// Upsert implements attendance.PolicyRepository.
func (r *policyRepositoryImpl) Upsert(ctx context.Context, policy attendance.Policy) (attendance.Policy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_policies (company_id, late_grace_minutes, full_day_hours, half_day_hours)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (company_id) DO UPDATE SET
			late_grace_minutes = EXCLUDED.late_grace_minutes,
			full_day_hours = EXCLUDED.full_day_hours,
			half_day_hours = EXCLUDED.half_day_hours,
			updated_at = NOW()
		RETURNING company_id, late_grace_minutes, full_day_hours, half_day_hours, updated_at
	`

	var saved attendance.Policy
	err := q.QueryRow(ctx, query, policy.CompanyID, policy.LateGraceMinutes, policy.FullDayHours, policy.HalfDayHours).
		Scan(&saved.CompanyID, &saved.LateGraceMinutes, &saved.FullDayHours, &saved.HalfDayHours, &saved.UpdatedAt)
	if err != nil {
		return attendance.Policy{}, fmt.Errorf("failed to save attendance policy: %w", err)
	}
	return saved, nil
}
