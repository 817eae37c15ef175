package postgres

import (
	"context"
	"database/sql"
	"errors"

	"tripcost/internal/domain"
	"tripcost/internal/repository"
)

// FuelPriceRepository is a PostgreSQL implementation of repository.FuelPriceRepository.
type FuelPriceRepository struct {
	q Querier
}

// NewFuelPriceRepository creates a new PostgreSQL fuel price repository.
func NewFuelPriceRepository(db *sql.DB) *FuelPriceRepository {
	return &FuelPriceRepository{q: db}
}

// Create persists a new price quote.
func (r *FuelPriceRepository) Create(ctx context.Context, price *domain.FuelPrice) error {
	query := `
		INSERT INTO fuel_prices (id, fuel_type, price_eur_per_unit, unit, source, fetched_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.q.ExecContext(ctx, query,
		price.ID,
		string(price.FuelType),
		price.PriceEURPerUnit,
		price.Unit,
		price.Source,
		price.FetchedAt,
	)

	return err
}

// GetLatestByFuelType retrieves the most recent quote for a fuel type.
// Timestamp ties are broken arbitrarily.
func (r *FuelPriceRepository) GetLatestByFuelType(ctx context.Context, fuelType domain.FuelType) (*domain.FuelPrice, error) {
	query := `
		SELECT id, fuel_type, price_eur_per_unit, unit, source, fetched_at
		FROM fuel_prices WHERE fuel_type = $1
		ORDER BY fetched_at DESC LIMIT 1
	`

	var price domain.FuelPrice
	err := r.q.QueryRowContext(ctx, query, string(fuelType)).Scan(
		&price.ID,
		&price.FuelType,
		&price.PriceEURPerUnit,
		&price.Unit,
		&price.Source,
		&price.FetchedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &price, nil
}

// ListLatest retrieves the most recent quotes across all fuel types.
func (r *FuelPriceRepository) ListLatest(ctx context.Context, limit int) ([]*domain.FuelPrice, error) {
	query := `
		SELECT id, fuel_type, price_eur_per_unit, unit, source, fetched_at
		FROM fuel_prices ORDER BY fetched_at DESC LIMIT $1
	`

	rows, err := r.q.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prices []*domain.FuelPrice
	for rows.Next() {
		var price domain.FuelPrice
		if err := rows.Scan(
			&price.ID,
			&price.FuelType,
			&price.PriceEURPerUnit,
			&price.Unit,
			&price.Source,
			&price.FetchedAt,
		); err != nil {
			return nil, err
		}
		prices = append(prices, &price)
	}
	return prices, rows.Err()
}
