package domain

import "time"

// Powertrain represents the propulsion category of a vehicle.
type Powertrain string

const (
	PowertrainGasoline Powertrain = "gasoline"
	PowertrainDiesel   Powertrain = "diesel"
	PowertrainPHEV     Powertrain = "phev"
	PowertrainBEV      Powertrain = "bev"
)

// Valid reports whether the powertrain is one of the known categories.
func (p Powertrain) Valid() bool {
	switch p {
	case PowertrainGasoline, PowertrainDiesel, PowertrainPHEV, PowertrainBEV:
		return true
	}
	return false
}

// DefaultSegment is the fallback vehicle segment classification.
const DefaultSegment = "generic"

// Vehicle represents a stored user vehicle.
// Optional columns are pointers so "unknown" is distinguishable from zero.
type Vehicle struct {
	ID                     string
	UserID                 string
	Make                   string
	Model                  string
	Year                   *int
	CurrentKm              *float64
	AnnualKm               *float64
	Powertrain             Powertrain
	Segment                string
	MarketValueEUR         *float64
	ConsumptionLPer100Km   *float64
	ConsumptionKWhPer100Km *float64
	PHEVElectricShare      *float64 // 0..1, electric fraction of distance
	CreatedAt              time.Time
}
