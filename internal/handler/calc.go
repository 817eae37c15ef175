package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tripcost/internal/domain"
	"tripcost/internal/service"
)

// CalcHandler handles HTTP requests for trip cost calculations.
type CalcHandler struct {
	tripCostService *service.TripCostService
}

// NewCalcHandler creates a new CalcHandler.
func NewCalcHandler(tripCostService *service.TripCostService) *CalcHandler {
	return &CalcHandler{tripCostService: tripCostService}
}

// VehicleInputRequest is the embedded vehicle description of a calculation
// request. Optional fields are pointers; absent fields may be backfilled
// from the linked stored vehicle.
type VehicleInputRequest struct {
	Powertrain             string   `json:"powertrain"`
	ConsumptionLPer100Km   *float64 `json:"consumption_l_per_100km,omitempty"`
	ConsumptionKWhPer100Km *float64 `json:"consumption_kwh_per_100km,omitempty"`
	PHEVElectricShare      *float64 `json:"phev_electric_share,omitempty"`
	MarketValueEUR         *float64 `json:"market_value_eur,omitempty"`
	Year                   *int     `json:"year,omitempty"`
	CurrentKm              *float64 `json:"current_km,omitempty"`
	AnnualKm               *float64 `json:"annual_km,omitempty"`
	Segment                string   `json:"segment,omitempty"`
}

// InsuranceInputRequest is the optional insurance policy of a calculation
// request.
type InsuranceInputRequest struct {
	CostAmount float64  `json:"cost_amount"`
	CostPeriod string   `json:"cost_period,omitempty"` // annual, monthly
	AnnualKm   *float64 `json:"annual_km,omitempty"`
	Mode       string   `json:"mode,omitempty"` // per_day, per_km
}

// MaintenanceInputRequest selects between real cost history and template
// estimates.
type MaintenanceInputRequest struct {
	UseRealCosts   bool `json:"use_real_costs"`
	ForceEstimates bool `json:"force_estimates"`
}

// CalcTripRequest is the HTTP request body for a trip cost calculation.
type CalcTripRequest struct {
	TripKm                    float64                  `json:"trip_km"`
	TripDays                  int                      `json:"trip_days"`
	RouteType                 string                   `json:"route_type,omitempty"` // city, mixed, highway
	VehicleID                 string                   `json:"vehicle_id,omitempty"`
	Vehicle                   VehicleInputRequest      `json:"vehicle"`
	ElectricityPriceEURPerKWh *float64                 `json:"electricity_price_eur_per_kwh,omitempty"`
	Insurance                 *InsuranceInputRequest   `json:"insurance,omitempty"`
	Maintenance               *MaintenanceInputRequest `json:"maintenance,omitempty"`
}

// EnergyBreakdown is the energy component of a trip cost response.
type EnergyBreakdown struct {
	TotalEUR    float64            `json:"total_eur"`
	PerKmEUR    float64            `json:"per_km_eur"`
	Detail      map[string]float64 `json:"detail"`
	Source      string             `json:"source"`
	Assumptions []string           `json:"assumptions"`
}

// ComponentBreakdown is a generic cost component of a trip cost response.
type ComponentBreakdown struct {
	AmountEUR   float64  `json:"amount_eur"`
	PerKmEUR    float64  `json:"per_km_eur"`
	Source      string   `json:"source"`
	Assumptions []string `json:"assumptions"`
}

// DepreciationBreakdown is the depreciation component of a trip cost response.
type DepreciationBreakdown struct {
	AmountEUR        float64  `json:"amount_eur"`
	PerKmEUR         float64  `json:"per_km_eur"`
	ResidualValueEUR float64  `json:"residual_value_eur"`
	Source           string   `json:"source"`
	Assumptions      []string `json:"assumptions"`
}

// CalcTripResponse is the HTTP response for a trip cost calculation.
type CalcTripResponse struct {
	TotalEUR     float64               `json:"total_eur"`
	PerKmEUR     float64               `json:"per_km_eur"`
	Energy       EnergyBreakdown       `json:"energy"`
	Maintenance  ComponentBreakdown    `json:"maintenance"`
	Insurance    ComponentBreakdown    `json:"insurance"`
	Depreciation DepreciationBreakdown `json:"depreciation"`
	GeneratedAt  string                `json:"generated_at"`
}

// CalculateTrip handles POST /v1/calc/trip
func (h *CalcHandler) CalculateTrip(c *gin.Context) {
	var req CalcTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	calcReq := &service.TripCalcRequest{
		TripKm:                    req.TripKm,
		TripDays:                  req.TripDays,
		RouteType:                 domain.RouteType(req.RouteType),
		VehicleID:                 req.VehicleID,
		ElectricityPriceEURPerKWh: req.ElectricityPriceEURPerKWh,
		Vehicle: service.VehicleInput{
			Powertrain:             domain.Powertrain(req.Vehicle.Powertrain),
			ConsumptionLPer100Km:   req.Vehicle.ConsumptionLPer100Km,
			ConsumptionKWhPer100Km: req.Vehicle.ConsumptionKWhPer100Km,
			PHEVElectricShare:      req.Vehicle.PHEVElectricShare,
			MarketValueEUR:         req.Vehicle.MarketValueEUR,
			Year:                   req.Vehicle.Year,
			CurrentKm:              req.Vehicle.CurrentKm,
			AnnualKm:               req.Vehicle.AnnualKm,
			Segment:                req.Vehicle.Segment,
		},
	}

	if req.Insurance != nil {
		calcReq.Insurance = &service.InsuranceInput{
			CostAmount: req.Insurance.CostAmount,
			CostPeriod: domain.CostPeriod(req.Insurance.CostPeriod),
			AnnualKm:   req.Insurance.AnnualKm,
			Mode:       domain.AllocationMode(req.Insurance.Mode),
		}
	}
	if req.Maintenance != nil {
		calcReq.Maintenance = service.MaintenanceInput{
			UseRealCosts:   req.Maintenance.UseRealCosts,
			ForceEstimates: req.Maintenance.ForceEstimates,
		}
	}

	result, err := h.tripCostService.ComputeTripCost(c.Request.Context(), calcReq)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, CalcTripResponse{
		TotalEUR: result.TotalEUR,
		PerKmEUR: result.PerKmEUR,
		Energy: EnergyBreakdown{
			TotalEUR:    result.Energy.TotalEUR,
			PerKmEUR:    result.Energy.PerKmEUR,
			Detail:      result.Energy.Detail,
			Source:      result.Energy.Source,
			Assumptions: result.Energy.Assumptions,
		},
		Maintenance: ComponentBreakdown{
			AmountEUR:   result.Maintenance.AmountEUR,
			PerKmEUR:    result.Maintenance.PerKmEUR,
			Source:      result.Maintenance.Source,
			Assumptions: result.Maintenance.Assumptions,
		},
		Insurance: ComponentBreakdown{
			AmountEUR:   result.Insurance.AmountEUR,
			PerKmEUR:    result.Insurance.PerKmEUR,
			Source:      result.Insurance.Source,
			Assumptions: result.Insurance.Assumptions,
		},
		Depreciation: DepreciationBreakdown{
			AmountEUR:        result.Depreciation.AmountEUR,
			PerKmEUR:         result.Depreciation.PerKmEUR,
			ResidualValueEUR: result.Depreciation.ResidualValueEUR,
			Source:           result.Depreciation.Source,
			Assumptions:      result.Depreciation.Assumptions,
		},
		GeneratedAt: result.GeneratedAt.Format(time.RFC3339),
	})
}
