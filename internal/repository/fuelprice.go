package repository

import (
	"context"

	"tripcost/internal/domain"
)

// FuelPriceRepository defines the persistence operations for fuel price quotes.
type FuelPriceRepository interface {
	// Create persists a new price quote.
	Create(ctx context.Context, price *domain.FuelPrice) error

	// GetLatestByFuelType retrieves the most recent quote for a fuel type.
	GetLatestByFuelType(ctx context.Context, fuelType domain.FuelType) (*domain.FuelPrice, error)

	// ListLatest retrieves the most recent quotes across all fuel types,
	// newest first, capped at limit.
	ListLatest(ctx context.Context, limit int) ([]*domain.FuelPrice, error)
}
