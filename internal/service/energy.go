package service

import (
	"context"
	"errors"
	"fmt"

	"tripcost/internal/domain"
	"tripcost/internal/redis"
	"tripcost/internal/repository"
)

// EnergyCalculator computes the energy cost of a trip, branching on
// powertrain type. Fuel quotes are read through the Redis cache with a
// store fallback; electricity prices always come from the caller.
type EnergyCalculator struct {
	priceRepo  repository.FuelPriceRepository
	priceCache redis.PriceCacheInterface
}

// NewEnergyCalculator creates a new EnergyCalculator. priceCache may be nil,
// in which case quotes are always read from the store.
func NewEnergyCalculator(priceRepo repository.FuelPriceRepository, priceCache redis.PriceCacheInterface) *EnergyCalculator {
	return &EnergyCalculator{
		priceRepo:  priceRepo,
		priceCache: priceCache,
	}
}

// Compute calculates the energy cost for the trip. Errors here are fatal to
// the whole trip calculation: ErrMissingInput (naming the absent field),
// ErrMissingPriceData, or ErrUnsupportedPowertrain.
func (c *EnergyCalculator) Compute(ctx context.Context, req *TripCalcRequest, vehicle *ResolvedVehicle) (*EnergyResult, error) {
	switch vehicle.Powertrain {
	case domain.PowertrainGasoline:
		return c.computeCombustion(ctx, req, vehicle, domain.FuelGasoline)
	case domain.PowertrainDiesel:
		return c.computeCombustion(ctx, req, vehicle, domain.FuelDiesel)
	case domain.PowertrainBEV:
		return c.computeElectric(req, vehicle)
	case domain.PowertrainPHEV:
		return c.computeHybrid(ctx, req, vehicle)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedPowertrain, vehicle.Powertrain)
	}
}

// computeCombustion handles gasoline and diesel vehicles.
func (c *EnergyCalculator) computeCombustion(ctx context.Context, req *TripCalcRequest, vehicle *ResolvedVehicle, fuelType domain.FuelType) (*EnergyResult, error) {
	if vehicle.ConsumptionLPer100Km == nil {
		return nil, missingInput("consumption_l_per_100km")
	}

	price, err := c.latestPrice(ctx, fuelType)
	if err != nil {
		return nil, err
	}

	multiplier := req.RouteType.Multiplier()
	liters := req.TripKm * *vehicle.ConsumptionLPer100Km * multiplier / 100
	total := liters * price.PriceEURPerUnit

	assumptions := append([]string{}, vehicle.EnergyNotes...)
	assumptions = append(assumptions,
		fmt.Sprintf("price %.3f eur/l from %s", price.PriceEURPerUnit, price.Source),
		fmt.Sprintf("consumption in l/100km, route multiplier %.2f", multiplier),
	)

	return &EnergyResult{
		TotalEUR: total,
		PerKmEUR: total / req.TripKm,
		Detail: map[string]float64{
			string(fuelType) + "_liters": liters,
		},
		Source:      fmt.Sprintf("%s (%s)", price.Source, price.FetchedAt.Format("2006-01-02")),
		Assumptions: assumptions,
	}, nil
}

// computeElectric handles battery-electric vehicles. The electricity price
// must come from the caller; there is no stored electricity quote.
func (c *EnergyCalculator) computeElectric(req *TripCalcRequest, vehicle *ResolvedVehicle) (*EnergyResult, error) {
	if vehicle.ConsumptionKWhPer100Km == nil {
		return nil, missingInput("consumption_kwh_per_100km")
	}
	if req.ElectricityPriceEURPerKWh == nil {
		return nil, missingInput("electricity_price_eur_per_kwh")
	}

	multiplier := req.RouteType.Multiplier()
	kwh := req.TripKm * *vehicle.ConsumptionKWhPer100Km * multiplier / 100
	total := kwh * *req.ElectricityPriceEURPerKWh

	assumptions := append([]string{}, vehicle.EnergyNotes...)
	assumptions = append(assumptions,
		"electricity price from user input",
		fmt.Sprintf("consumption in kwh/100km, route multiplier %.2f", multiplier),
	)

	return &EnergyResult{
		TotalEUR: total,
		PerKmEUR: total / req.TripKm,
		Detail: map[string]float64{
			"electric_kwh": kwh,
		},
		Source:      "user input",
		Assumptions: assumptions,
	}, nil
}

// computeHybrid handles plug-in hybrids: the trip distance is split by the
// electric share and each leg is costed independently, then summed. The
// fuel leg is always priced as gasoline.
func (c *EnergyCalculator) computeHybrid(ctx context.Context, req *TripCalcRequest, vehicle *ResolvedVehicle) (*EnergyResult, error) {
	if vehicle.ConsumptionLPer100Km == nil {
		return nil, missingInput("consumption_l_per_100km")
	}
	if vehicle.ConsumptionKWhPer100Km == nil {
		return nil, missingInput("consumption_kwh_per_100km")
	}
	if vehicle.PHEVElectricShare == nil {
		return nil, missingInput("phev_electric_share")
	}
	if req.ElectricityPriceEURPerKWh == nil {
		return nil, missingInput("electricity_price_eur_per_kwh")
	}

	price, err := c.latestPrice(ctx, domain.FuelGasoline)
	if err != nil {
		return nil, err
	}

	multiplier := req.RouteType.Multiplier()
	electricKm := req.TripKm * *vehicle.PHEVElectricShare
	fuelKm := req.TripKm - electricKm

	kwh := electricKm * *vehicle.ConsumptionKWhPer100Km * multiplier / 100
	liters := fuelKm * *vehicle.ConsumptionLPer100Km * multiplier / 100

	totalElectric := kwh * *req.ElectricityPriceEURPerKWh
	totalFuel := liters * price.PriceEURPerUnit
	total := totalElectric + totalFuel

	assumptions := append([]string{}, vehicle.EnergyNotes...)
	assumptions = append(assumptions,
		fmt.Sprintf("gasoline price %.3f eur/l from %s", price.PriceEURPerUnit, price.Source),
		"electricity price from user input",
		fmt.Sprintf("electric share %.2f of trip distance", *vehicle.PHEVElectricShare),
		fmt.Sprintf("route multiplier %.2f", multiplier),
	)

	return &EnergyResult{
		TotalEUR: total,
		PerKmEUR: total / req.TripKm,
		Detail: map[string]float64{
			"electric_kwh":    kwh,
			"gasoline_liters": liters,
		},
		Source:      fmt.Sprintf("%s + user input", price.Source),
		Assumptions: assumptions,
	}, nil
}

// latestPrice returns the most recent quote for a fuel type, preferring the
// cache. Cache errors are ignored; the store is the source of truth.
func (c *EnergyCalculator) latestPrice(ctx context.Context, fuelType domain.FuelType) (*domain.FuelPrice, error) {
	if c.priceCache != nil {
		if cached, err := c.priceCache.GetLatest(ctx, fuelType); err == nil && cached != nil {
			return cached, nil
		}
	}

	price, err := c.priceRepo.GetLatestByFuelType(ctx, fuelType)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, missingPrice(fuelType)
		}
		return nil, err
	}

	if c.priceCache != nil {
		_ = c.priceCache.SetLatest(ctx, price)
	}

	return price, nil
}
