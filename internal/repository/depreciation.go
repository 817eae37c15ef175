package repository

import (
	"context"

	"tripcost/internal/domain"
)

// DepreciationModelRepository defines the persistence operations for
// depreciation models.
type DepreciationModelRepository interface {
	// Create persists a new depreciation model.
	Create(ctx context.Context, model *domain.DepreciationModel) error

	// GetByPowertrainAndSegment retrieves a model matching both exactly.
	GetByPowertrainAndSegment(ctx context.Context, powertrain domain.Powertrain, segment string) (*domain.DepreciationModel, error)

	// GetByPowertrain retrieves any model for the powertrain.
	GetByPowertrain(ctx context.Context, powertrain domain.Powertrain) (*domain.DepreciationModel, error)
}
