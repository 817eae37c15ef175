package repository

import (
	"context"

	"tripcost/internal/domain"
)

// InsurancePolicyRepository defines the persistence operations for
// insurance policies.
type InsurancePolicyRepository interface {
	// Create persists a new policy.
	Create(ctx context.Context, policy *domain.InsurancePolicy) error

	// ListByVehicle retrieves all policies for a vehicle, newest first.
	ListByVehicle(ctx context.Context, vehicleID string) ([]*domain.InsurancePolicy, error)
}
