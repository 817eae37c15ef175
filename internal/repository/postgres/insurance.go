package postgres

import (
	"context"
	"database/sql"

	"tripcost/internal/domain"
)

// InsurancePolicyRepository is a PostgreSQL implementation of
// repository.InsurancePolicyRepository.
type InsurancePolicyRepository struct {
	q Querier
}

// NewInsurancePolicyRepository creates a new PostgreSQL insurance policy repository.
func NewInsurancePolicyRepository(db *sql.DB) *InsurancePolicyRepository {
	return &InsurancePolicyRepository{q: db}
}

// Create persists a new policy.
func (r *InsurancePolicyRepository) Create(ctx context.Context, policy *domain.InsurancePolicy) error {
	query := `
		INSERT INTO insurance_policies (id, user_id, vehicle_id, cost_amount, cost_period, start_date, annual_km, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	var startDate sql.NullTime
	if policy.StartDate != nil {
		startDate = sql.NullTime{Time: *policy.StartDate, Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		policy.ID,
		policy.UserID,
		policy.VehicleID,
		policy.CostAmount,
		string(policy.CostPeriod),
		startDate,
		nullFloat(policy.AnnualKm),
		policy.CreatedAt,
	)

	return err
}

// ListByVehicle retrieves all policies for a vehicle, newest first.
func (r *InsurancePolicyRepository) ListByVehicle(ctx context.Context, vehicleID string) ([]*domain.InsurancePolicy, error) {
	query := `
		SELECT id, user_id, vehicle_id, cost_amount, cost_period, start_date, annual_km, created_at
		FROM insurance_policies WHERE vehicle_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.q.QueryContext(ctx, query, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var policies []*domain.InsurancePolicy
	for rows.Next() {
		var (
			policy    domain.InsurancePolicy
			startDate sql.NullTime
			annualKm  sql.NullFloat64
		)
		if err := rows.Scan(
			&policy.ID,
			&policy.UserID,
			&policy.VehicleID,
			&policy.CostAmount,
			&policy.CostPeriod,
			&startDate,
			&annualKm,
			&policy.CreatedAt,
		); err != nil {
			return nil, err
		}
		if startDate.Valid {
			t := startDate.Time
			policy.StartDate = &t
		}
		policy.AnnualKm = floatPtr(annualKm)
		policies = append(policies, &policy)
	}
	return policies, rows.Err()
}
