package service

import (
	"fmt"

	"tripcost/internal/domain"
)

// defaultAnnualKm is assumed when neither the policy nor the vehicle states
// an annual distance.
const defaultAnnualKm = 15000

// daysPerYear is used to break an annual premium into a per-day rate.
const daysPerYear = 365

// InsuranceCalculator allocates a recurring insurance cost to a trip,
// either by calendar days or by distance. A request without a policy is a
// valid zero-cost outcome, never an error.
type InsuranceCalculator struct{}

// NewInsuranceCalculator creates a new InsuranceCalculator.
func NewInsuranceCalculator() *InsuranceCalculator {
	return &InsuranceCalculator{}
}

// Compute calculates the insurance component for the trip.
func (c *InsuranceCalculator) Compute(req *TripCalcRequest, vehicle *ResolvedVehicle) *ComponentResult {
	if req.Insurance == nil {
		return &ComponentResult{
			AmountEUR:   0,
			PerKmEUR:    0,
			Source:      "not provided",
			Assumptions: []string{"insurance not provided"},
		}
	}

	policy := req.Insurance

	annualCost := policy.CostAmount
	if policy.CostPeriod == domain.CostPeriodMonthly {
		annualCost *= 12
	}

	annualKm := float64(defaultAnnualKm)
	if policy.AnnualKm != nil {
		annualKm = *policy.AnnualKm
	} else if vehicle.AnnualKm != nil {
		annualKm = *vehicle.AnnualKm
	}

	perDay := annualCost / daysPerYear
	perKm := annualCost / annualKm

	var amount, perKmValue float64
	var modeNote string
	if policy.Mode == domain.AllocatePerKm {
		amount = perKm * req.TripKm
		perKmValue = perKm
		modeNote = "insurance allocated per km"
	} else {
		amount = perDay * float64(req.TripDays)
		perKmValue = amount / req.TripKm
		modeNote = "insurance allocated per day"
	}

	return &ComponentResult{
		AmountEUR: amount,
		PerKmEUR:  perKmValue,
		Source:    "user policy",
		Assumptions: []string{
			modeNote,
			fmt.Sprintf("annual cost %.2f eur", annualCost),
		},
	}
}
