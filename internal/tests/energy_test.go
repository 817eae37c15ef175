package tests

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tripcost/internal/domain"
	"tripcost/internal/service"
)

func TestEnergy_GasolineMixedRoute(t *testing.T) {
	priceRepo := NewMockFuelPriceRepository()
	priceRepo.SetPrice(gasolineQuote(1.62))
	calc := service.NewEnergyCalculator(priceRepo, nil)

	req := &service.TripCalcRequest{TripKm: 100, RouteType: domain.RouteMixed}
	vehicle := &service.ResolvedVehicle{
		Powertrain:           domain.PowertrainGasoline,
		ConsumptionLPer100Km: floatPtr(6.4),
	}

	result, err := calc.Compute(context.Background(), req, vehicle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 100 km * 6.4 l/100km * 1.0 = 6.4 liters, * 1.62 = 10.368 eur.
	if !almostEqual(result.Detail["gasoline_liters"], 6.4) {
		t.Errorf("expected 6.4 liters, got %f", result.Detail["gasoline_liters"])
	}
	if !almostEqual(result.TotalEUR, 10.368) {
		t.Errorf("expected total 10.368, got %f", result.TotalEUR)
	}
	if !almostEqual(result.PerKmEUR, 0.10368) {
		t.Errorf("expected per km 0.10368, got %f", result.PerKmEUR)
	}
}

func TestEnergy_RouteMultipliers(t *testing.T) {
	testCases := []struct {
		route      domain.RouteType
		wantLiters float64
	}{
		{domain.RouteCity, 7.36},    // 6.4 * 1.15
		{domain.RouteMixed, 6.4},    // 6.4 * 1.0
		{domain.RouteHighway, 5.76}, // 6.4 * 0.9
	}

	for _, tc := range testCases {
		t.Run(string(tc.route), func(t *testing.T) {
			priceRepo := NewMockFuelPriceRepository()
			priceRepo.SetPrice(gasolineQuote(1.62))
			calc := service.NewEnergyCalculator(priceRepo, nil)

			req := &service.TripCalcRequest{TripKm: 100, RouteType: tc.route}
			vehicle := &service.ResolvedVehicle{
				Powertrain:           domain.PowertrainGasoline,
				ConsumptionLPer100Km: floatPtr(6.4),
			}

			result, err := calc.Compute(context.Background(), req, vehicle)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !almostEqual(result.Detail["gasoline_liters"], tc.wantLiters) {
				t.Errorf("expected %f liters, got %f", tc.wantLiters, result.Detail["gasoline_liters"])
			}
		})
	}
}

func TestEnergy_DieselUsesDieselQuote(t *testing.T) {
	priceRepo := NewMockFuelPriceRepository()
	priceRepo.SetPrice(gasolineQuote(1.62))
	priceRepo.SetPrice(dieselQuote(1.52))
	calc := service.NewEnergyCalculator(priceRepo, nil)

	req := &service.TripCalcRequest{TripKm: 100, RouteType: domain.RouteMixed}
	vehicle := &service.ResolvedVehicle{
		Powertrain:           domain.PowertrainDiesel,
		ConsumptionLPer100Km: floatPtr(5.0),
	}

	result, err := calc.Compute(context.Background(), req, vehicle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 5 liters * 1.52 = 7.6 eur.
	if !almostEqual(result.TotalEUR, 7.6) {
		t.Errorf("expected total 7.6, got %f", result.TotalEUR)
	}
	if _, ok := result.Detail["diesel_liters"]; !ok {
		t.Error("expected diesel_liters in detail map")
	}
}

func TestEnergy_BatteryElectric(t *testing.T) {
	calc := service.NewEnergyCalculator(NewMockFuelPriceRepository(), nil)

	req := &service.TripCalcRequest{
		TripKm:                    200,
		RouteType:                 domain.RouteHighway,
		ElectricityPriceEURPerKWh: floatPtr(0.25),
	}
	vehicle := &service.ResolvedVehicle{
		Powertrain:             domain.PowertrainBEV,
		ConsumptionKWhPer100Km: floatPtr(18),
	}

	result, err := calc.Compute(context.Background(), req, vehicle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 200 km * 18 kwh/100km * 0.9 = 32.4 kwh, * 0.25 = 8.10 eur.
	if !almostEqual(result.Detail["electric_kwh"], 32.4) {
		t.Errorf("expected 32.4 kwh, got %f", result.Detail["electric_kwh"])
	}
	if !almostEqual(result.TotalEUR, 8.10) {
		t.Errorf("expected total 8.10, got %f", result.TotalEUR)
	}
	if result.Source != "user input" {
		t.Errorf("expected source \"user input\", got %q", result.Source)
	}
}

func TestEnergy_HybridSplitsByElectricShare(t *testing.T) {
	priceRepo := NewMockFuelPriceRepository()
	priceRepo.SetPrice(gasolineQuote(1.62))
	calc := service.NewEnergyCalculator(priceRepo, nil)

	req := &service.TripCalcRequest{
		TripKm:                    50,
		RouteType:                 domain.RouteMixed,
		ElectricityPriceEURPerKWh: floatPtr(0.25),
	}
	vehicle := &service.ResolvedVehicle{
		Powertrain:             domain.PowertrainPHEV,
		ConsumptionLPer100Km:   floatPtr(5.0),
		ConsumptionKWhPer100Km: floatPtr(15.0),
		PHEVElectricShare:      floatPtr(0.4),
	}

	result, err := calc.Compute(context.Background(), req, vehicle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Electric leg: 20 km * 15/100 = 3 kwh; fuel leg: 30 km * 5/100 = 1.5 l.
	if !almostEqual(result.Detail["electric_kwh"], 3.0) {
		t.Errorf("expected 3.0 kwh, got %f", result.Detail["electric_kwh"])
	}
	if !almostEqual(result.Detail["gasoline_liters"], 1.5) {
		t.Errorf("expected 1.5 liters, got %f", result.Detail["gasoline_liters"])
	}

	wantTotal := 3.0*0.25 + 1.5*1.62
	if !almostEqual(result.TotalEUR, wantTotal) {
		t.Errorf("expected total %f, got %f", wantTotal, result.TotalEUR)
	}
}

func TestEnergy_MissingConsumptionNamesField(t *testing.T) {
	priceRepo := NewMockFuelPriceRepository()
	priceRepo.SetPrice(gasolineQuote(1.62))
	calc := service.NewEnergyCalculator(priceRepo, nil)

	req := &service.TripCalcRequest{TripKm: 100}
	vehicle := &service.ResolvedVehicle{Powertrain: domain.PowertrainGasoline}

	_, err := calc.Compute(context.Background(), req, vehicle)
	if !errors.Is(err, service.ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput, got %v", err)
	}
	if !strings.Contains(err.Error(), "consumption_l_per_100km") {
		t.Errorf("expected error to name the missing field, got %q", err.Error())
	}
}

func TestEnergy_MissingElectricityPrice(t *testing.T) {
	calc := service.NewEnergyCalculator(NewMockFuelPriceRepository(), nil)

	req := &service.TripCalcRequest{TripKm: 100}
	vehicle := &service.ResolvedVehicle{
		Powertrain:             domain.PowertrainBEV,
		ConsumptionKWhPer100Km: floatPtr(18),
	}

	_, err := calc.Compute(context.Background(), req, vehicle)
	if !errors.Is(err, service.ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput, got %v", err)
	}
	if !strings.Contains(err.Error(), "electricity_price_eur_per_kwh") {
		t.Errorf("expected error to name the missing field, got %q", err.Error())
	}
}

func TestEnergy_MissingQuoteIsMissingPriceData(t *testing.T) {
	calc := service.NewEnergyCalculator(NewMockFuelPriceRepository(), nil)

	req := &service.TripCalcRequest{TripKm: 100}
	vehicle := &service.ResolvedVehicle{
		Powertrain:           domain.PowertrainGasoline,
		ConsumptionLPer100Km: floatPtr(6.4),
	}

	_, err := calc.Compute(context.Background(), req, vehicle)
	if !errors.Is(err, service.ErrMissingPriceData) {
		t.Fatalf("expected ErrMissingPriceData, got %v", err)
	}
}

func TestEnergy_UnsupportedPowertrain(t *testing.T) {
	calc := service.NewEnergyCalculator(NewMockFuelPriceRepository(), nil)

	req := &service.TripCalcRequest{TripKm: 100}
	vehicle := &service.ResolvedVehicle{Powertrain: domain.Powertrain("hydrogen")}

	_, err := calc.Compute(context.Background(), req, vehicle)
	if !errors.Is(err, service.ErrUnsupportedPowertrain) {
		t.Fatalf("expected ErrUnsupportedPowertrain, got %v", err)
	}
}

func TestEnergy_CacheHitSkipsRepository(t *testing.T) {
	priceRepo := NewMockFuelPriceRepository()
	cache := NewMockPriceCache()
	if err := cache.SetLatest(context.Background(), gasolineQuote(1.60)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cache.SetCallCount = 0
	calc := service.NewEnergyCalculator(priceRepo, cache)

	req := &service.TripCalcRequest{TripKm: 100}
	vehicle := &service.ResolvedVehicle{
		Powertrain:           domain.PowertrainGasoline,
		ConsumptionLPer100Km: floatPtr(6.4),
	}

	if _, err := calc.Compute(context.Background(), req, vehicle); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if priceRepo.GetLatestCallCount != 0 {
		t.Errorf("expected repository untouched on cache hit, got %d calls", priceRepo.GetLatestCallCount)
	}
}

func TestEnergy_CacheMissFillsCache(t *testing.T) {
	priceRepo := NewMockFuelPriceRepository()
	priceRepo.SetPrice(gasolineQuote(1.62))
	cache := NewMockPriceCache()
	calc := service.NewEnergyCalculator(priceRepo, cache)

	req := &service.TripCalcRequest{TripKm: 100}
	vehicle := &service.ResolvedVehicle{
		Powertrain:           domain.PowertrainGasoline,
		ConsumptionLPer100Km: floatPtr(6.4),
	}

	if _, err := calc.Compute(context.Background(), req, vehicle); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if priceRepo.GetLatestCallCount != 1 {
		t.Errorf("expected 1 repository call, got %d", priceRepo.GetLatestCallCount)
	}
	if cache.SetCallCount != 1 {
		t.Errorf("expected cache to be filled after miss, got %d sets", cache.SetCallCount)
	}
}
