package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"tripcost/internal/domain"
	"tripcost/internal/repository"
)

// assumedVehicleLifeYears is the fixed vehicle life used to spread
// depreciable value over distance.
const assumedVehicleLifeYears = 12

// DepreciationCalculator estimates the value loss attributable to a trip
// from an age- and distance-based decay model with a residual floor. An
// unmodeled (powertrain, segment) combination falls back to a built-in
// default model; this calculator never fails on missing reference data.
type DepreciationCalculator struct {
	modelRepo repository.DepreciationModelRepository
	now       func() time.Time
}

// NewDepreciationCalculator creates a new DepreciationCalculator.
func NewDepreciationCalculator(modelRepo repository.DepreciationModelRepository) *DepreciationCalculator {
	return &DepreciationCalculator{
		modelRepo: modelRepo,
		now:       time.Now,
	}
}

// Compute calculates the depreciation component for the trip.
func (c *DepreciationCalculator) Compute(ctx context.Context, req *TripCalcRequest, vehicle *ResolvedVehicle) (*DepreciationResult, error) {
	model, assumptions, err := c.resolveModel(ctx, vehicle.Powertrain, vehicle.Segment)
	if err != nil {
		return nil, err
	}

	currentYear := c.now().Year()
	years := 0
	if vehicle.Year != nil && *vehicle.Year < currentYear {
		years = currentYear - *vehicle.Year
	}

	var currentKm float64
	if vehicle.CurrentKm != nil {
		currentKm = *vehicle.CurrentKm
	}

	decayed := model.BaseValueEUR *
		math.Pow(1-model.AnnualRate, float64(years)) *
		math.Pow(1-model.KmRate, currentKm/10000)
	residualFloor := model.BaseValueEUR * model.MinResidualPct
	residual := math.Max(decayed, residualFloor)

	annualKm := float64(defaultAnnualKm)
	if vehicle.AnnualKm != nil {
		annualKm = *vehicle.AnnualKm
	}
	lifeKm := math.Max(annualKm, 1) * assumedVehicleLifeYears

	perKm := (model.BaseValueEUR - residualFloor) / lifeKm
	amount := perKm * req.TripKm

	if vehicle.MarketValueEUR != nil {
		marketValue := *vehicle.MarketValueEUR
		residual = marketValue
		residualFloor = math.Min(marketValue, model.BaseValueEUR*model.MinResidualPct)
		// A market value above the naive floor must not produce negative
		// depreciation.
		perKm = math.Max((model.BaseValueEUR-marketValue)/lifeKm, 0)
		amount = perKm * req.TripKm
		if len(vehicle.ValueNotes) > 0 {
			assumptions = append(assumptions, vehicle.ValueNotes...)
		} else {
			assumptions = append(assumptions, "market value provided by user")
		}
	}

	assumptions = append(assumptions,
		fmt.Sprintf("annual rate %.2f", model.AnnualRate),
		fmt.Sprintf("km rate %.2f per 10k km", model.KmRate),
		fmt.Sprintf("min residual pct %.2f", model.MinResidualPct),
	)

	return &DepreciationResult{
		AmountEUR:        amount,
		PerKmEUR:         perKm,
		ResidualValueEUR: residual,
		Source:           "depreciation model",
		Assumptions:      assumptions,
	}, nil
}

// resolveModel looks up a depreciation model by (powertrain, segment),
// relaxes to powertrain only, and finally synthesizes a default so the
// calculation always has a model to work with.
func (c *DepreciationCalculator) resolveModel(ctx context.Context, powertrain domain.Powertrain, segment string) (*domain.DepreciationModel, []string, error) {
	model, err := c.modelRepo.GetByPowertrainAndSegment(ctx, powertrain, segment)
	if err == nil {
		return model, []string{"depreciation model for powertrain and segment"}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, nil, err
	}

	model, err = c.modelRepo.GetByPowertrain(ctx, powertrain)
	if err == nil {
		return model, []string{"depreciation model for powertrain"}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, nil, err
	}

	return &domain.DepreciationModel{
		Powertrain:     powertrain,
		Segment:        segment,
		BaseValueEUR:   25000,
		AnnualRate:     0.12,
		KmRate:         0.02,
		MinResidualPct: 0.20,
	}, []string{"built-in default depreciation model"}, nil
}
