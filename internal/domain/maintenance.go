package domain

import "time"

// MaintenanceEvent is one recorded service on a vehicle.
type MaintenanceEvent struct {
	ID         string
	VehicleID  string
	Category   string // e.g. "oil_filter", "tires", "brakes"
	EventDate  *time.Time
	OdometerKm *float64
	CostEUR    float64
	Workshop   string
	Notes      string
}

// MaintenanceTemplate is a generic recurring maintenance cost keyed by
// powertrain and segment. The recurrence interval is either a distance
// (EveryKm) or a time period (EveryMonths); templates with neither set
// contribute nothing to the estimate.
type MaintenanceTemplate struct {
	ID          string
	Powertrain  Powertrain
	Segment     string
	Category    string
	CostEUR     float64
	EveryKm     *float64
	EveryMonths *int
}
