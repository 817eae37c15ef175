package service

import (
	"time"

	"tripcost/internal/domain"
)

// VehicleInput is the caller-supplied vehicle description for a calculation.
// Optional fields are pointers: nil means "not supplied" and may be
// backfilled from a linked stored vehicle.
type VehicleInput struct {
	Powertrain             domain.Powertrain
	ConsumptionLPer100Km   *float64
	ConsumptionKWhPer100Km *float64
	PHEVElectricShare      *float64
	MarketValueEUR         *float64
	Year                   *int
	CurrentKm              *float64
	AnnualKm               *float64
	Segment                string
}

// InsuranceInput is an insurance policy attached to a calculation request.
type InsuranceInput struct {
	CostAmount float64
	CostPeriod domain.CostPeriod
	AnnualKm   *float64
	Mode       domain.AllocationMode
}

// MaintenanceInput selects between real cost history and template estimates.
type MaintenanceInput struct {
	UseRealCosts   bool
	ForceEstimates bool
}

// TripCalcRequest contains the parameters for a trip cost calculation.
type TripCalcRequest struct {
	TripKm                    float64
	TripDays                  int
	RouteType                 domain.RouteType
	VehicleID                 string // optional linked stored vehicle
	Vehicle                   VehicleInput
	ElectricityPriceEURPerKWh *float64
	Insurance                 *InsuranceInput
	Maintenance               MaintenanceInput
}

// EnergyResult is the energy component of a trip cost breakdown.
type EnergyResult struct {
	TotalEUR    float64
	PerKmEUR    float64
	Detail      map[string]float64 // physical quantities, e.g. "gasoline_liters"
	Source      string
	Assumptions []string
}

// ComponentResult is a generic cost component of a trip cost breakdown.
type ComponentResult struct {
	AmountEUR   float64
	PerKmEUR    float64
	Source      string
	Assumptions []string
}

// DepreciationResult is the depreciation component of a trip cost breakdown.
type DepreciationResult struct {
	AmountEUR        float64
	PerKmEUR         float64
	ResidualValueEUR float64
	Source           string
	Assumptions      []string
}

// TripCostResult is the full breakdown returned by the aggregator.
type TripCostResult struct {
	TotalEUR     float64
	PerKmEUR     float64
	Energy       EnergyResult
	Maintenance  ComponentResult
	Insurance    ComponentResult
	Depreciation DepreciationResult
	GeneratedAt  time.Time
}
