package postgres

import (
	"context"
	"database/sql"
	"errors"

	"tripcost/internal/domain"
	"tripcost/internal/repository"
)

// VehicleRepository is a PostgreSQL implementation of repository.VehicleRepository.
type VehicleRepository struct {
	q Querier
}

// NewVehicleRepository creates a new PostgreSQL vehicle repository.
func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{q: db}
}

const vehicleColumns = `id, user_id, make, model, year, current_km, annual_km, powertrain_type, segment, market_value_eur, consumption_l_per_100km, consumption_kwh_per_100km, phev_electric_share, created_at`

// Create persists a new vehicle.
func (r *VehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		INSERT INTO user_vehicles (` + vehicleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	segment := vehicle.Segment
	if segment == "" {
		segment = domain.DefaultSegment
	}

	_, err := r.q.ExecContext(ctx, query,
		vehicle.ID,
		vehicle.UserID,
		nullString(vehicle.Make),
		nullString(vehicle.Model),
		nullInt(vehicle.Year),
		nullFloat(vehicle.CurrentKm),
		nullFloat(vehicle.AnnualKm),
		string(vehicle.Powertrain),
		segment,
		nullFloat(vehicle.MarketValueEUR),
		nullFloat(vehicle.ConsumptionLPer100Km),
		nullFloat(vehicle.ConsumptionKWhPer100Km),
		nullFloat(vehicle.PHEVElectricShare),
		vehicle.CreatedAt,
	)

	return err
}

// GetByID retrieves a vehicle by ID.
func (r *VehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM user_vehicles WHERE id = $1`

	vehicle, err := scanVehicle(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return vehicle, nil
}

// GetAll retrieves all vehicles.
func (r *VehicleRepository) GetAll(ctx context.Context) ([]*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM user_vehicles ORDER BY created_at ASC`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []*domain.Vehicle
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, vehicle)
	}
	return vehicles, rows.Err()
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanVehicle(s scanner) (*domain.Vehicle, error) {
	var (
		vehicle         domain.Vehicle
		makeName, model sql.NullString
		year            sql.NullInt64
		currentKm       sql.NullFloat64
		annualKm        sql.NullFloat64
		marketValue     sql.NullFloat64
		consumptionL    sql.NullFloat64
		consumptionKWh  sql.NullFloat64
		electricShare   sql.NullFloat64
	)

	if err := s.Scan(
		&vehicle.ID,
		&vehicle.UserID,
		&makeName,
		&model,
		&year,
		&currentKm,
		&annualKm,
		&vehicle.Powertrain,
		&vehicle.Segment,
		&marketValue,
		&consumptionL,
		&consumptionKWh,
		&electricShare,
		&vehicle.CreatedAt,
	); err != nil {
		return nil, err
	}

	vehicle.Make = makeName.String
	vehicle.Model = model.String
	if year.Valid {
		y := int(year.Int64)
		vehicle.Year = &y
	}
	vehicle.CurrentKm = floatPtr(currentKm)
	vehicle.AnnualKm = floatPtr(annualKm)
	vehicle.MarketValueEUR = floatPtr(marketValue)
	vehicle.ConsumptionLPer100Km = floatPtr(consumptionL)
	vehicle.ConsumptionKWhPer100Km = floatPtr(consumptionKWh)
	vehicle.PHEVElectricShare = floatPtr(electricShare)

	return &vehicle, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func nullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}

func floatPtr(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}
