package service

import (
	"context"
	"errors"

	"tripcost/internal/domain"
	"tripcost/internal/repository"
)

// ResolvedVehicle is a vehicle profile merged from the caller's input and,
// where fields were missing, a linked stored vehicle. Caller-supplied values
// are never overwritten. Each backfilled field leaves an assumption note:
// EnergyNotes for consumption fields, ValueNotes for market value.
type ResolvedVehicle struct {
	Powertrain             domain.Powertrain
	Segment                string
	Year                   *int
	CurrentKm              *float64
	AnnualKm               *float64
	ConsumptionLPer100Km   *float64
	ConsumptionKWhPer100Km *float64
	PHEVElectricShare      *float64
	MarketValueEUR         *float64
	EnergyNotes            []string
	ValueNotes             []string
}

// VehicleResolver merges caller vehicle input with a stored vehicle record.
type VehicleResolver struct {
	vehicleRepo repository.VehicleRepository
}

// NewVehicleResolver creates a new VehicleResolver.
func NewVehicleResolver(vehicleRepo repository.VehicleRepository) *VehicleResolver {
	return &VehicleResolver{vehicleRepo: vehicleRepo}
}

// Resolve builds the vehicle profile for a calculation. If vehicleID is set
// and the record exists, missing consumption figures, hybrid share and
// market value are backfilled from it. An unknown vehicleID is not an error;
// the profile simply stays as supplied and downstream calculators fail
// explicitly on fields they require.
func (r *VehicleResolver) Resolve(ctx context.Context, input VehicleInput, vehicleID string) (*ResolvedVehicle, error) {
	segment := input.Segment
	if segment == "" {
		segment = domain.DefaultSegment
	}

	resolved := &ResolvedVehicle{
		Powertrain:             input.Powertrain,
		Segment:                segment,
		Year:                   input.Year,
		CurrentKm:              input.CurrentKm,
		AnnualKm:               input.AnnualKm,
		ConsumptionLPer100Km:   input.ConsumptionLPer100Km,
		ConsumptionKWhPer100Km: input.ConsumptionKWhPer100Km,
		PHEVElectricShare:      input.PHEVElectricShare,
		MarketValueEUR:         input.MarketValueEUR,
	}

	if vehicleID == "" {
		return resolved, nil
	}

	stored, err := r.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return resolved, nil
		}
		return nil, err
	}

	resolved.ConsumptionLPer100Km = fallbackFloat(
		resolved.ConsumptionLPer100Km, stored.ConsumptionLPer100Km,
		"consumption l/100km from saved vehicle", &resolved.EnergyNotes)
	resolved.ConsumptionKWhPer100Km = fallbackFloat(
		resolved.ConsumptionKWhPer100Km, stored.ConsumptionKWhPer100Km,
		"consumption kwh/100km from saved vehicle", &resolved.EnergyNotes)
	resolved.PHEVElectricShare = fallbackFloat(
		resolved.PHEVElectricShare, stored.PHEVElectricShare,
		"phev electric share from saved vehicle", &resolved.EnergyNotes)
	resolved.MarketValueEUR = fallbackFloat(
		resolved.MarketValueEUR, stored.MarketValueEUR,
		"market value from saved vehicle", &resolved.ValueNotes)

	return resolved, nil
}

// fallbackFloat implements the ordered fallback: request value wins, then
// the stored value (recording an assumption note), else the field stays
// unset.
func fallbackFloat(requestVal, storedVal *float64, note string, notes *[]string) *float64 {
	if requestVal != nil {
		return requestVal
	}
	if storedVal != nil {
		*notes = append(*notes, note)
		return storedVal
	}
	return nil
}
