package domain

import "time"

// CostPeriod represents the billing period of an insurance policy.
type CostPeriod string

const (
	CostPeriodAnnual  CostPeriod = "annual"
	CostPeriodMonthly CostPeriod = "monthly"
)

// Valid reports whether the cost period is a known billing period.
func (p CostPeriod) Valid() bool {
	return p == CostPeriodAnnual || p == CostPeriodMonthly
}

// AllocationMode represents how an insurance cost is allocated to a trip.
type AllocationMode string

const (
	AllocatePerDay AllocationMode = "per_day"
	AllocatePerKm  AllocationMode = "per_km"
)

// InsurancePolicy is a stored recurring insurance cost for a vehicle.
type InsurancePolicy struct {
	ID         string
	UserID     string
	VehicleID  string
	CostAmount float64
	CostPeriod CostPeriod
	StartDate  *time.Time
	AnnualKm   *float64
	CreatedAt  time.Time
}
