package postgres

import (
	"context"
	"database/sql"
	"errors"

	"tripcost/internal/domain"
	"tripcost/internal/repository"
)

// DepreciationModelRepository is a PostgreSQL implementation of
// repository.DepreciationModelRepository.
type DepreciationModelRepository struct {
	q Querier
}

// NewDepreciationModelRepository creates a new PostgreSQL depreciation model repository.
func NewDepreciationModelRepository(db *sql.DB) *DepreciationModelRepository {
	return &DepreciationModelRepository{q: db}
}

// Create persists a new depreciation model.
func (r *DepreciationModelRepository) Create(ctx context.Context, model *domain.DepreciationModel) error {
	query := `
		INSERT INTO depreciation_models (id, powertrain_type, segment, base_value_eur, annual_rate, km_rate, min_residual_pct)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.q.ExecContext(ctx, query,
		model.ID,
		string(model.Powertrain),
		model.Segment,
		model.BaseValueEUR,
		model.AnnualRate,
		model.KmRate,
		model.MinResidualPct,
	)

	return err
}

// GetByPowertrainAndSegment retrieves a model matching both exactly.
func (r *DepreciationModelRepository) GetByPowertrainAndSegment(ctx context.Context, powertrain domain.Powertrain, segment string) (*domain.DepreciationModel, error) {
	query := `
		SELECT id, powertrain_type, segment, base_value_eur, annual_rate, km_rate, min_residual_pct
		FROM depreciation_models WHERE powertrain_type = $1 AND segment = $2
		LIMIT 1
	`
	return r.queryModel(ctx, query, string(powertrain), segment)
}

// GetByPowertrain retrieves any model for the powertrain.
func (r *DepreciationModelRepository) GetByPowertrain(ctx context.Context, powertrain domain.Powertrain) (*domain.DepreciationModel, error) {
	query := `
		SELECT id, powertrain_type, segment, base_value_eur, annual_rate, km_rate, min_residual_pct
		FROM depreciation_models WHERE powertrain_type = $1
		LIMIT 1
	`
	return r.queryModel(ctx, query, string(powertrain))
}

func (r *DepreciationModelRepository) queryModel(ctx context.Context, query string, args ...any) (*domain.DepreciationModel, error) {
	var model domain.DepreciationModel
	err := r.q.QueryRowContext(ctx, query, args...).Scan(
		&model.ID,
		&model.Powertrain,
		&model.Segment,
		&model.BaseValueEUR,
		&model.AnnualRate,
		&model.KmRate,
		&model.MinResidualPct,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &model, nil
}
