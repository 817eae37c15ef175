package service

import (
	"context"
	"fmt"

	"tripcost/internal/domain"
	"tripcost/internal/repository"
)

// DefaultMaintenanceRatePerKm is the last-resort per-km rate used when no
// usable templates exist for a vehicle.
const DefaultMaintenanceRatePerKm = 0.05

// baselineAnnualKm converts months-based template intervals to distance:
// a fixed 15000 km per 12 months.
const baselineAnnualKm = 15000

// MaintenanceCalculator computes a per-km maintenance cost, trying real
// service history first (when requested), then generic templates, then a
// fixed floor rate. Missing data never fails the calculation; only storage
// errors propagate.
type MaintenanceCalculator struct {
	maintenanceRepo repository.MaintenanceRepository
	vehicleRepo     repository.VehicleRepository
}

// NewMaintenanceCalculator creates a new MaintenanceCalculator.
func NewMaintenanceCalculator(
	maintenanceRepo repository.MaintenanceRepository,
	vehicleRepo repository.VehicleRepository,
) *MaintenanceCalculator {
	return &MaintenanceCalculator{
		maintenanceRepo: maintenanceRepo,
		vehicleRepo:     vehicleRepo,
	}
}

// Compute calculates the maintenance component for the trip.
func (c *MaintenanceCalculator) Compute(ctx context.Context, req *TripCalcRequest, vehicle *ResolvedVehicle) (*ComponentResult, error) {
	if req.Maintenance.UseRealCosts && !req.Maintenance.ForceEstimates && req.VehicleID != "" {
		result, err := c.fromHistory(ctx, req.VehicleID, req.TripKm)
		if err != nil {
			return nil, err
		}
		if result != nil {
			return result, nil
		}
	}
	return c.fromTemplates(ctx, vehicle.Powertrain, vehicle.Segment, req.TripKm)
}

// fromHistory derives a per-km rate from recorded maintenance events.
// Returns (nil, nil) when there is no usable history, which falls the
// calculation through to template estimation.
func (c *MaintenanceCalculator) fromHistory(ctx context.Context, vehicleID string, tripKm float64) (*ComponentResult, error) {
	events, err := c.maintenanceRepo.ListEventsByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}

	var totalCost float64
	var readings []float64
	for _, event := range events {
		totalCost += event.CostEUR
		if event.OdometerKm != nil {
			readings = append(readings, *event.OdometerKm)
		}
	}

	span := c.distanceSpan(ctx, vehicleID, readings)
	if span <= 0 {
		return nil, nil
	}

	perKm := totalCost / span
	return &ComponentResult{
		AmountEUR: perKm * tripKm,
		PerKmEUR:  perKm,
		Source:    "user history",
		Assumptions: []string{
			fmt.Sprintf("per km derived from %d maintenance events over %.0f km", len(events), span),
		},
	}, nil
}

// distanceSpan determines the distance the recorded costs cover: the
// odometer range when at least two readings exist, otherwise the stored
// vehicle's current odometer minus the earliest reading.
func (c *MaintenanceCalculator) distanceSpan(ctx context.Context, vehicleID string, readings []float64) float64 {
	if len(readings) >= 2 {
		minOdo, maxOdo := readings[0], readings[0]
		for _, r := range readings[1:] {
			if r < minOdo {
				minOdo = r
			}
			if r > maxOdo {
				maxOdo = r
			}
		}
		return maxOdo - minOdo
	}

	var currentKm float64
	stored, err := c.vehicleRepo.GetByID(ctx, vehicleID)
	if err == nil && stored.CurrentKm != nil {
		currentKm = *stored.CurrentKm
	}

	var earliest float64
	if len(readings) == 1 {
		earliest = readings[0]
	}
	return currentKm - earliest
}

// fromTemplates sums per-km contributions from templates matching the
// vehicle, relaxing the segment match when nothing fits exactly. A zero sum
// falls back to the fixed default rate.
func (c *MaintenanceCalculator) fromTemplates(ctx context.Context, powertrain domain.Powertrain, segment string, tripKm float64) (*ComponentResult, error) {
	templates, err := c.maintenanceRepo.ListTemplates(ctx, powertrain, segment)
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		templates, err = c.maintenanceRepo.ListTemplatesByPowertrain(ctx, powertrain)
		if err != nil {
			return nil, err
		}
	}

	var perKm float64
	for _, template := range templates {
		switch {
		case template.EveryKm != nil && *template.EveryKm > 0:
			perKm += template.CostEUR / *template.EveryKm
		case template.EveryMonths != nil && *template.EveryMonths > 0:
			intervalKm := baselineAnnualKm * float64(*template.EveryMonths) / 12
			perKm += template.CostEUR / intervalKm
		}
	}

	assumptions := []string{"templates by powertrain and segment"}
	if perKm == 0 {
		perKm = DefaultMaintenanceRatePerKm
		assumptions = append(assumptions,
			fmt.Sprintf("default rate floor %.2f eur/km, no usable templates", DefaultMaintenanceRatePerKm))
	}

	return &ComponentResult{
		AmountEUR:   perKm * tripKm,
		PerKmEUR:    perKm,
		Source:      "template estimates",
		Assumptions: assumptions,
	}, nil
}
