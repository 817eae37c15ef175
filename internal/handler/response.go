package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripcost/internal/repository"
	"tripcost/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrMissingInput),
		errors.Is(err, service.ErrMissingPriceData),
		errors.Is(err, service.ErrUnsupportedPowertrain),
		errors.Is(err, service.ErrInvalidTripDistance),
		errors.Is(err, service.ErrInvalidTripDuration),
		errors.Is(err, service.ErrInvalidRouteType),
		errors.Is(err, service.ErrInvalidElectricShare),
		errors.Is(err, service.ErrInvalidCostPeriod):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, service.ErrRefreshInProgress):
		return http.StatusConflict

	// Upstream feed failures
	case errors.Is(err, service.ErrPriceFeedUnavailable):
		return http.StatusBadGateway

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
