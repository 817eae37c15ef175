package service

import (
	"context"
	"time"

	"tripcost/internal/domain"
	"tripcost/internal/redis"
	"tripcost/internal/repository"
)

// TripCostService is the entry point for trip cost calculations. It resolves
// the vehicle profile once, runs the energy calculator (whose errors abort
// the whole calculation), then maintenance, insurance and depreciation,
// which always produce a result, and assembles the full breakdown.
type TripCostService struct {
	resolver     *VehicleResolver
	energy       *EnergyCalculator
	maintenance  *MaintenanceCalculator
	insurance    *InsuranceCalculator
	depreciation *DepreciationCalculator
}

// NewTripCostService creates a new TripCostService wired to the given
// reference data stores. priceCache may be nil.
func NewTripCostService(
	vehicleRepo repository.VehicleRepository,
	priceRepo repository.FuelPriceRepository,
	priceCache redis.PriceCacheInterface,
	maintenanceRepo repository.MaintenanceRepository,
	modelRepo repository.DepreciationModelRepository,
) *TripCostService {
	return &TripCostService{
		resolver:     NewVehicleResolver(vehicleRepo),
		energy:       NewEnergyCalculator(priceRepo, priceCache),
		maintenance:  NewMaintenanceCalculator(maintenanceRepo, vehicleRepo),
		insurance:    NewInsuranceCalculator(),
		depreciation: NewDepreciationCalculator(modelRepo),
	}
}

// ComputeTripCost calculates the full cost breakdown for a trip.
func (s *TripCostService) ComputeTripCost(ctx context.Context, req *TripCalcRequest) (*TripCostResult, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	vehicle, err := s.resolver.Resolve(ctx, req.Vehicle, req.VehicleID)
	if err != nil {
		return nil, err
	}

	energy, err := s.energy.Compute(ctx, req, vehicle)
	if err != nil {
		return nil, err
	}

	maintenance, err := s.maintenance.Compute(ctx, req, vehicle)
	if err != nil {
		return nil, err
	}

	insurance := s.insurance.Compute(req, vehicle)

	depreciation, err := s.depreciation.Compute(ctx, req, vehicle)
	if err != nil {
		return nil, err
	}

	total := energy.TotalEUR + maintenance.AmountEUR + insurance.AmountEUR + depreciation.AmountEUR

	return &TripCostResult{
		TotalEUR:     total,
		PerKmEUR:     total / req.TripKm,
		Energy:       *energy,
		Maintenance:  *maintenance,
		Insurance:    *insurance,
		Depreciation: *depreciation,
		GeneratedAt:  time.Now().UTC(),
	}, nil
}

// validateRequest checks the trip parameters before any calculator runs.
// Powertrain membership is checked by the energy calculator's dispatch.
func (s *TripCostService) validateRequest(req *TripCalcRequest) error {
	if req.TripKm <= 0 {
		return ErrInvalidTripDistance
	}
	if req.TripDays < 0 {
		return ErrInvalidTripDuration
	}

	if req.RouteType == "" {
		req.RouteType = domain.RouteMixed
	} else if !req.RouteType.Valid() {
		return ErrInvalidRouteType
	}

	if share := req.Vehicle.PHEVElectricShare; share != nil && (*share < 0 || *share > 1) {
		return ErrInvalidElectricShare
	}

	if req.Insurance != nil {
		if req.Insurance.CostPeriod == "" {
			req.Insurance.CostPeriod = domain.CostPeriodAnnual
		} else if !req.Insurance.CostPeriod.Valid() {
			return ErrInvalidCostPeriod
		}
		if req.Insurance.Mode == "" {
			req.Insurance.Mode = domain.AllocatePerDay
		}
	}

	return nil
}
