package domain

import "time"

// FuelType represents a priced fuel category.
type FuelType string

const (
	FuelGasoline FuelType = "gasoline"
	FuelDiesel   FuelType = "diesel"
)

// FuelPrice is a dated price quote for one fuel type.
// Multiple quotes accumulate over time; only the most recent per type
// is used for calculations.
type FuelPrice struct {
	ID              string
	FuelType        FuelType
	PriceEURPerUnit float64
	Unit            string // e.g. "eur/l"
	Source          string
	FetchedAt       time.Time
}
