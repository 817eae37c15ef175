package tests

import (
	"context"
	"testing"

	"tripcost/internal/domain"
	"tripcost/internal/service"
)

func TestResolver_RequestValuesWin(t *testing.T) {
	vehicleRepo := NewMockVehicleRepository()
	vehicleRepo.AddVehicle(&domain.Vehicle{
		ID:                   "veh-1",
		Powertrain:           domain.PowertrainGasoline,
		ConsumptionLPer100Km: floatPtr(7.0),
		MarketValueEUR:       floatPtr(14500),
	})
	resolver := service.NewVehicleResolver(vehicleRepo)

	input := service.VehicleInput{
		Powertrain:           domain.PowertrainGasoline,
		ConsumptionLPer100Km: floatPtr(6.4),
	}

	resolved, err := resolver.Resolve(context.Background(), input, "veh-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if *resolved.ConsumptionLPer100Km != 6.4 {
		t.Errorf("expected caller value 6.4 to win, got %f", *resolved.ConsumptionLPer100Km)
	}
	// Only the backfilled market value should leave a note.
	if len(resolved.EnergyNotes) != 0 {
		t.Errorf("expected no energy notes, got %v", resolved.EnergyNotes)
	}
	if len(resolved.ValueNotes) != 1 {
		t.Errorf("expected one value note for market value, got %v", resolved.ValueNotes)
	}
}

func TestResolver_BackfillsMissingFields(t *testing.T) {
	vehicleRepo := NewMockVehicleRepository()
	vehicleRepo.AddVehicle(&domain.Vehicle{
		ID:                     "veh-1",
		Powertrain:             domain.PowertrainPHEV,
		ConsumptionLPer100Km:   floatPtr(5.0),
		ConsumptionKWhPer100Km: floatPtr(15.0),
		PHEVElectricShare:      floatPtr(0.4),
	})
	resolver := service.NewVehicleResolver(vehicleRepo)

	input := service.VehicleInput{Powertrain: domain.PowertrainPHEV}

	resolved, err := resolver.Resolve(context.Background(), input, "veh-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resolved.ConsumptionLPer100Km == nil || *resolved.ConsumptionLPer100Km != 5.0 {
		t.Error("expected fuel consumption backfilled from store")
	}
	if resolved.ConsumptionKWhPer100Km == nil || *resolved.ConsumptionKWhPer100Km != 15.0 {
		t.Error("expected electric consumption backfilled from store")
	}
	if resolved.PHEVElectricShare == nil || *resolved.PHEVElectricShare != 0.4 {
		t.Error("expected electric share backfilled from store")
	}
	if len(resolved.EnergyNotes) != 3 {
		t.Errorf("expected three backfill notes, got %v", resolved.EnergyNotes)
	}
}

func TestResolver_UnknownVehicleIDIsNotAnError(t *testing.T) {
	resolver := service.NewVehicleResolver(NewMockVehicleRepository())

	input := service.VehicleInput{Powertrain: domain.PowertrainGasoline}

	resolved, err := resolver.Resolve(context.Background(), input, "no-such-vehicle")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.ConsumptionLPer100Km != nil {
		t.Error("expected consumption to stay unset")
	}
}

func TestResolver_DefaultsSegment(t *testing.T) {
	resolver := service.NewVehicleResolver(NewMockVehicleRepository())

	resolved, err := resolver.Resolve(context.Background(), service.VehicleInput{
		Powertrain: domain.PowertrainGasoline,
	}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.Segment != domain.DefaultSegment {
		t.Errorf("expected segment %q, got %q", domain.DefaultSegment, resolved.Segment)
	}
}

func TestResolver_StoredNilDoesNotOverwrite(t *testing.T) {
	vehicleRepo := NewMockVehicleRepository()
	vehicleRepo.AddVehicle(&domain.Vehicle{
		ID:         "veh-1",
		Powertrain: domain.PowertrainGasoline,
	})
	resolver := service.NewVehicleResolver(vehicleRepo)

	resolved, err := resolver.Resolve(context.Background(), service.VehicleInput{
		Powertrain: domain.PowertrainGasoline,
	}, "veh-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resolved.ConsumptionLPer100Km != nil {
		t.Error("expected consumption to stay unset when store has none")
	}
	if len(resolved.EnergyNotes) != 0 {
		t.Errorf("expected no notes, got %v", resolved.EnergyNotes)
	}
}
