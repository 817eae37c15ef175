// Command seed populates the database with demo reference data: one user
// with a vehicle and maintenance history, maintenance cost templates,
// depreciation models and initial fuel price quotes. Each block is skipped
// when data of that kind already exists, so reruns are safe.
package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"tripcost/internal/app"
	"tripcost/internal/config"
	"tripcost/internal/domain"
	"tripcost/internal/repository/postgres"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := app.NewDatabase(ctx, cfg.Database, nil)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	vehicleRepo := postgres.NewVehicleRepository(db)
	maintenanceRepo := postgres.NewMaintenanceRepository(db)
	modelRepo := postgres.NewDepreciationModelRepository(db)
	priceRepo := postgres.NewFuelPriceRepository(db)

	vehicleID := ""

	users, err := userRepo.GetAll(ctx)
	if err != nil {
		log.Fatalf("failed to query users: %v", err)
	}
	if len(users) == 0 {
		user := &domain.User{
			ID:        uuid.New().String(),
			Name:      "Demo User",
			Email:     "demo@example.com",
			CreatedAt: time.Now().UTC(),
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("failed to seed user: %v", err)
		}

		vehicle := &domain.Vehicle{
			ID:                   uuid.New().String(),
			UserID:               user.ID,
			Make:                 "Seat",
			Model:                "Leon",
			Year:                 intPtr(2019),
			CurrentKm:            floatPtr(62000),
			AnnualKm:             floatPtr(15000),
			Powertrain:           domain.PowertrainGasoline,
			Segment:              "compact",
			MarketValueEUR:       floatPtr(14500),
			ConsumptionLPer100Km: floatPtr(6.4),
			CreatedAt:            time.Now().UTC(),
		}
		if err := vehicleRepo.Create(ctx, vehicle); err != nil {
			log.Fatalf("failed to seed vehicle: %v", err)
		}
		vehicleID = vehicle.ID
		log.Printf("Seeded demo user and vehicle %s", vehicle.ID)
	} else if vehicles, err := vehicleRepo.GetAll(ctx); err == nil && len(vehicles) > 0 {
		vehicleID = vehicles[0].ID
	}

	if vehicleID != "" {
		events, err := maintenanceRepo.ListEventsByVehicle(ctx, vehicleID)
		if err != nil {
			log.Fatalf("failed to query maintenance events: %v", err)
		}
		if len(events) == 0 {
			seedEvents := []*domain.MaintenanceEvent{
				{
					ID:         uuid.New().String(),
					VehicleID:  vehicleID,
					Category:   "oil_filter",
					EventDate:  datePtr(2024, time.March, 2),
					OdometerKm: floatPtr(52000),
					CostEUR:    160,
					Workshop:   "Taller Norte",
				},
				{
					ID:         uuid.New().String(),
					VehicleID:  vehicleID,
					Category:   "tires",
					EventDate:  datePtr(2025, time.January, 12),
					OdometerKm: floatPtr(60000),
					CostEUR:    420,
					Workshop:   "Ruedas Express",
				},
			}
			for _, event := range seedEvents {
				if err := maintenanceRepo.CreateEvent(ctx, event); err != nil {
					log.Fatalf("failed to seed maintenance event: %v", err)
				}
			}
			log.Printf("Seeded %d maintenance events", len(seedEvents))
		}
	}

	templates, err := maintenanceRepo.ListTemplatesByPowertrain(ctx, domain.PowertrainGasoline)
	if err != nil {
		log.Fatalf("failed to query maintenance templates: %v", err)
	}
	if len(templates) == 0 {
		seedTemplates := []*domain.MaintenanceTemplate{
			{ID: uuid.New().String(), Powertrain: domain.PowertrainGasoline, Segment: "compact", Category: "oil_filter", CostEUR: 160, EveryKm: floatPtr(15000)},
			{ID: uuid.New().String(), Powertrain: domain.PowertrainGasoline, Segment: "compact", Category: "tires", CostEUR: 420, EveryKm: floatPtr(45000)},
			{ID: uuid.New().String(), Powertrain: domain.PowertrainGasoline, Segment: "compact", Category: "brakes", CostEUR: 280, EveryKm: floatPtr(40000)},
			{ID: uuid.New().String(), Powertrain: domain.PowertrainBEV, Segment: "compact", Category: "tires", CostEUR: 460, EveryKm: floatPtr(40000)},
		}
		for _, template := range seedTemplates {
			if err := maintenanceRepo.CreateTemplate(ctx, template); err != nil {
				log.Fatalf("failed to seed maintenance template: %v", err)
			}
		}
		log.Printf("Seeded %d maintenance templates", len(seedTemplates))
	}

	if _, err := modelRepo.GetByPowertrain(ctx, domain.PowertrainGasoline); err != nil {
		seedModels := []*domain.DepreciationModel{
			{ID: uuid.New().String(), Powertrain: domain.PowertrainGasoline, Segment: "compact", BaseValueEUR: 22000, AnnualRate: 0.13, KmRate: 0.02, MinResidualPct: 0.2},
			{ID: uuid.New().String(), Powertrain: domain.PowertrainBEV, Segment: "compact", BaseValueEUR: 32000, AnnualRate: 0.15, KmRate: 0.025, MinResidualPct: 0.25},
		}
		for _, model := range seedModels {
			if err := modelRepo.Create(ctx, model); err != nil {
				log.Fatalf("failed to seed depreciation model: %v", err)
			}
		}
		log.Printf("Seeded %d depreciation models", len(seedModels))
	}

	if prices, err := priceRepo.ListLatest(ctx, 1); err != nil {
		log.Fatalf("failed to query fuel prices: %v", err)
	} else if len(prices) == 0 {
		now := time.Now().UTC()
		seedPrices := []*domain.FuelPrice{
			{ID: uuid.New().String(), FuelType: domain.FuelGasoline, PriceEURPerUnit: 1.62, Unit: "eur/l", Source: "seed", FetchedAt: now},
			{ID: uuid.New().String(), FuelType: domain.FuelDiesel, PriceEURPerUnit: 1.52, Unit: "eur/l", Source: "seed", FetchedAt: now},
		}
		for _, price := range seedPrices {
			if err := priceRepo.Create(ctx, price); err != nil {
				log.Fatalf("failed to seed fuel price: %v", err)
			}
		}
		log.Printf("Seeded %d fuel price quotes", len(seedPrices))
	}

	log.Println("Seeded database with demo data")
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func datePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}
