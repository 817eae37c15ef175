package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tripcost/internal/domain"
	"tripcost/internal/repository"
	"tripcost/internal/service"
)

// latestQuoteLimit caps the latest-quote listing. Two fuel types exist
// today; headroom for more.
const latestQuoteLimit = 10

// FuelPriceHandler handles HTTP requests for fuel prices.
type FuelPriceHandler struct {
	priceRepo   repository.FuelPriceRepository
	feedService *service.PriceFeedService
}

// NewFuelPriceHandler creates a new FuelPriceHandler.
func NewFuelPriceHandler(priceRepo repository.FuelPriceRepository, feedService *service.PriceFeedService) *FuelPriceHandler {
	return &FuelPriceHandler{
		priceRepo:   priceRepo,
		feedService: feedService,
	}
}

// FuelPriceResponse is the HTTP response for a fuel price quote.
type FuelPriceResponse struct {
	ID              string  `json:"id"`
	FuelType        string  `json:"fuel_type"`
	PriceEURPerUnit float64 `json:"price_eur_per_unit"`
	Unit            string  `json:"unit"`
	Source          string  `json:"source"`
	FetchedAt       string  `json:"fetched_at"`
}

// RefreshResponse is the HTTP response for a price refresh.
type RefreshResponse struct {
	QuotesStored int `json:"quotes_stored"`
}

func fuelPriceToResponse(p *domain.FuelPrice) FuelPriceResponse {
	return FuelPriceResponse{
		ID:              p.ID,
		FuelType:        string(p.FuelType),
		PriceEURPerUnit: p.PriceEURPerUnit,
		Unit:            p.Unit,
		Source:          p.Source,
		FetchedAt:       p.FetchedAt.Format(time.RFC3339),
	}
}

// GetLatest handles GET /v1/fuel-prices/latest
// With ?fuel_type=gasoline it returns the single latest quote for that type;
// without it, the latest quotes across all types.
func (h *FuelPriceHandler) GetLatest(c *gin.Context) {
	if fuelType := c.Query("fuel_type"); fuelType != "" {
		price, err := h.priceRepo.GetLatestByFuelType(c.Request.Context(), domain.FuelType(fuelType))
		if err != nil {
			respondError(c, err)
			return
		}
		respondJSON(c, http.StatusOK, fuelPriceToResponse(price))
		return
	}

	prices, err := h.priceRepo.ListLatest(c.Request.Context(), latestQuoteLimit)
	if err != nil {
		respondError(c, err)
		return
	}

	var response []FuelPriceResponse
	for _, p := range prices {
		response = append(response, fuelPriceToResponse(p))
	}

	c.JSON(http.StatusOK, response)
}

// Refresh handles POST /v1/fuel-prices/refresh
func (h *FuelPriceHandler) Refresh(c *gin.Context) {
	stored, err := h.feedService.Refresh(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, RefreshResponse{QuotesStored: stored})
}
