package service

import (
	"errors"
	"fmt"

	"tripcost/internal/domain"
)

var (
	// ErrMissingInput is returned when a field required for the selected
	// powertrain is absent. Always wrapped with the field name.
	ErrMissingInput = errors.New("missing input")

	// ErrMissingPriceData is returned when no price quote exists for a
	// required fuel type.
	ErrMissingPriceData = errors.New("missing price data")

	// ErrUnsupportedPowertrain is returned for powertrain values outside
	// the known enum.
	ErrUnsupportedPowertrain = errors.New("unsupported powertrain type")

	// ErrInvalidTripDistance is returned when trip distance is not positive.
	ErrInvalidTripDistance = errors.New("trip distance must be greater than zero")

	// ErrInvalidTripDuration is returned when trip duration is negative.
	ErrInvalidTripDuration = errors.New("trip duration cannot be negative")

	// ErrInvalidRouteType is returned for route values outside the known enum.
	ErrInvalidRouteType = errors.New("invalid route type")

	// ErrInvalidElectricShare is returned when the PHEV electric share is
	// outside [0, 1].
	ErrInvalidElectricShare = errors.New("phev electric share must be between 0 and 1")

	// ErrInvalidCostPeriod is returned for unknown insurance billing periods.
	ErrInvalidCostPeriod = errors.New("invalid insurance cost period")

	// ErrRefreshInProgress is returned when a fuel price refresh is already
	// running.
	ErrRefreshInProgress = errors.New("fuel price refresh already in progress")

	// ErrPriceFeedUnavailable is returned when the external price feed cannot
	// be reached after retries.
	ErrPriceFeedUnavailable = errors.New("fuel price feed unavailable")
)

// missingInput wraps ErrMissingInput with the name of the absent field.
func missingInput(field string) error {
	return fmt.Errorf("%w: %s", ErrMissingInput, field)
}

// missingPrice wraps ErrMissingPriceData with the fuel type that has no quote.
func missingPrice(fuelType domain.FuelType) error {
	return fmt.Errorf("%w: no quote for %s", ErrMissingPriceData, fuelType)
}
