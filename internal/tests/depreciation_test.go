package tests

import (
	"context"
	"testing"

	"tripcost/internal/domain"
	"tripcost/internal/service"
)

func TestDepreciation_BuiltInDefaultModel(t *testing.T) {
	calc := service.NewDepreciationCalculator(NewMockDepreciationModelRepository())

	req := &service.TripCalcRequest{TripKm: 100}
	vehicle := &service.ResolvedVehicle{Powertrain: domain.PowertrainGasoline, Segment: "generic"}

	result, err := calc.Compute(context.Background(), req, vehicle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Default model: base 25000, min residual 0.20 -> floor 5000.
	// Life distance = 15000 * 12 = 180000 km.
	wantPerKm := (25000.0 - 5000.0) / 180000.0
	if !almostEqual(result.PerKmEUR, wantPerKm) {
		t.Errorf("expected per km %f, got %f", wantPerKm, result.PerKmEUR)
	}
	if !almostEqual(result.AmountEUR, wantPerKm*100) {
		t.Errorf("expected amount %f, got %f", wantPerKm*100, result.AmountEUR)
	}

	found := false
	for _, a := range result.Assumptions {
		if a == "built-in default depreciation model" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected default-model assumption, got %v", result.Assumptions)
	}
}

func TestDepreciation_ExactModelMatch(t *testing.T) {
	modelRepo := NewMockDepreciationModelRepository()
	modelRepo.AddModel(&domain.DepreciationModel{
		ID: "m1", Powertrain: domain.PowertrainGasoline, Segment: "compact",
		BaseValueEUR: 22000, AnnualRate: 0.13, KmRate: 0.02, MinResidualPct: 0.2,
	})
	calc := service.NewDepreciationCalculator(modelRepo)

	req := &service.TripCalcRequest{TripKm: 100}
	vehicle := &service.ResolvedVehicle{Powertrain: domain.PowertrainGasoline, Segment: "compact"}

	result, err := calc.Compute(context.Background(), req, vehicle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantPerKm := (22000.0 - 4400.0) / 180000.0
	if !almostEqual(result.PerKmEUR, wantPerKm) {
		t.Errorf("expected per km %f, got %f", wantPerKm, result.PerKmEUR)
	}
}

func TestDepreciation_RelaxesToPowertrainMatch(t *testing.T) {
	modelRepo := NewMockDepreciationModelRepository()
	modelRepo.AddModel(&domain.DepreciationModel{
		ID: "m1", Powertrain: domain.PowertrainBEV, Segment: "suv",
		BaseValueEUR: 32000, AnnualRate: 0.15, KmRate: 0.025, MinResidualPct: 0.25,
	})
	calc := service.NewDepreciationCalculator(modelRepo)

	req := &service.TripCalcRequest{TripKm: 100}
	vehicle := &service.ResolvedVehicle{Powertrain: domain.PowertrainBEV, Segment: "compact"}

	result, err := calc.Compute(context.Background(), req, vehicle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantPerKm := (32000.0 - 8000.0) / 180000.0
	if !almostEqual(result.PerKmEUR, wantPerKm) {
		t.Errorf("expected per km %f from powertrain-only model, got %f", wantPerKm, result.PerKmEUR)
	}
}

func TestDepreciation_AnnualKmScalesLifeDistance(t *testing.T) {
	calc := service.NewDepreciationCalculator(NewMockDepreciationModelRepository())

	req := &service.TripCalcRequest{TripKm: 100}
	vehicle := &service.ResolvedVehicle{
		Powertrain: domain.PowertrainGasoline,
		Segment:    "generic",
		AnnualKm:   floatPtr(30000),
	}

	result, err := calc.Compute(context.Background(), req, vehicle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Life distance = 30000 * 12 = 360000 km.
	wantPerKm := 20000.0 / 360000.0
	if !almostEqual(result.PerKmEUR, wantPerKm) {
		t.Errorf("expected per km %f, got %f", wantPerKm, result.PerKmEUR)
	}
}

func TestDepreciation_MarketValueOverride(t *testing.T) {
	calc := service.NewDepreciationCalculator(NewMockDepreciationModelRepository())

	req := &service.TripCalcRequest{TripKm: 100}
	vehicle := &service.ResolvedVehicle{
		Powertrain:     domain.PowertrainGasoline,
		Segment:        "generic",
		MarketValueEUR: floatPtr(14500),
	}

	result, err := calc.Compute(context.Background(), req, vehicle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !almostEqual(result.ResidualValueEUR, 14500) {
		t.Errorf("expected residual 14500, got %f", result.ResidualValueEUR)
	}
	wantPerKm := (25000.0 - 14500.0) / 180000.0
	if !almostEqual(result.PerKmEUR, wantPerKm) {
		t.Errorf("expected per km %f, got %f", wantPerKm, result.PerKmEUR)
	}
}

func TestDepreciation_MarketValueAboveBaseClampsToZero(t *testing.T) {
	calc := service.NewDepreciationCalculator(NewMockDepreciationModelRepository())

	req := &service.TripCalcRequest{TripKm: 100}
	vehicle := &service.ResolvedVehicle{
		Powertrain:     domain.PowertrainGasoline,
		Segment:        "generic",
		MarketValueEUR: floatPtr(26000), // above the default base value
	}

	result, err := calc.Compute(context.Background(), req, vehicle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.PerKmEUR != 0 || result.AmountEUR != 0 {
		t.Errorf("expected zero depreciation, got per_km=%f amount=%f", result.PerKmEUR, result.AmountEUR)
	}
	if !almostEqual(result.ResidualValueEUR, 26000) {
		t.Errorf("expected residual 26000, got %f", result.ResidualValueEUR)
	}
}

func TestDepreciation_ResidualNeverBelowFloor(t *testing.T) {
	calc := service.NewDepreciationCalculator(NewMockDepreciationModelRepository())

	req := &service.TripCalcRequest{TripKm: 100}
	vehicle := &service.ResolvedVehicle{
		Powertrain: domain.PowertrainGasoline,
		Segment:    "generic",
		Year:       intPtr(1990),
		CurrentKm:  floatPtr(400000),
	}

	result, err := calc.Compute(context.Background(), req, vehicle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Decay on a 30+ year old high-mileage vehicle is far below the floor.
	if !almostEqual(result.ResidualValueEUR, 5000) {
		t.Errorf("expected residual clamped to floor 5000, got %f", result.ResidualValueEUR)
	}
}
