package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tripcost/internal/domain"
	"tripcost/internal/repository"
)

// VehicleHandler handles HTTP requests for vehicles.
type VehicleHandler struct {
	vehicleRepo repository.VehicleRepository
}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler(vehicleRepo repository.VehicleRepository) *VehicleHandler {
	return &VehicleHandler{vehicleRepo: vehicleRepo}
}

// CreateVehicleRequest is the HTTP request body for creating a vehicle.
type CreateVehicleRequest struct {
	UserID                 string   `json:"user_id"`
	Make                   string   `json:"make"`
	Model                  string   `json:"model"`
	Year                   *int     `json:"year,omitempty"`
	CurrentKm              *float64 `json:"current_km,omitempty"`
	AnnualKm               *float64 `json:"annual_km,omitempty"`
	Powertrain             string   `json:"powertrain"`
	Segment                string   `json:"segment,omitempty"`
	MarketValueEUR         *float64 `json:"market_value_eur,omitempty"`
	ConsumptionLPer100Km   *float64 `json:"consumption_l_per_100km,omitempty"`
	ConsumptionKWhPer100Km *float64 `json:"consumption_kwh_per_100km,omitempty"`
	PHEVElectricShare      *float64 `json:"phev_electric_share,omitempty"`
}

// VehicleResponse is the HTTP response for vehicle data.
type VehicleResponse struct {
	ID                     string   `json:"id"`
	UserID                 string   `json:"user_id"`
	Make                   string   `json:"make"`
	Model                  string   `json:"model"`
	Year                   *int     `json:"year,omitempty"`
	CurrentKm              *float64 `json:"current_km,omitempty"`
	AnnualKm               *float64 `json:"annual_km,omitempty"`
	Powertrain             string   `json:"powertrain"`
	Segment                string   `json:"segment"`
	MarketValueEUR         *float64 `json:"market_value_eur,omitempty"`
	ConsumptionLPer100Km   *float64 `json:"consumption_l_per_100km,omitempty"`
	ConsumptionKWhPer100Km *float64 `json:"consumption_kwh_per_100km,omitempty"`
	PHEVElectricShare      *float64 `json:"phev_electric_share,omitempty"`
	CreatedAt              string   `json:"created_at"`
}

func vehicleToResponse(v *domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:                     v.ID,
		UserID:                 v.UserID,
		Make:                   v.Make,
		Model:                  v.Model,
		Year:                   v.Year,
		CurrentKm:              v.CurrentKm,
		AnnualKm:               v.AnnualKm,
		Powertrain:             string(v.Powertrain),
		Segment:                v.Segment,
		MarketValueEUR:         v.MarketValueEUR,
		ConsumptionLPer100Km:   v.ConsumptionLPer100Km,
		ConsumptionKWhPer100Km: v.ConsumptionKWhPer100Km,
		PHEVElectricShare:      v.PHEVElectricShare,
		CreatedAt:              v.CreatedAt.Format(time.RFC3339),
	}
}

// CreateVehicle handles POST /v1/vehicles
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	powertrain := domain.Powertrain(req.Powertrain)
	if !powertrain.Valid() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unsupported powertrain type"})
		return
	}

	if share := req.PHEVElectricShare; share != nil && (*share < 0 || *share > 1) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "phev electric share must be between 0 and 1"})
		return
	}

	segment := req.Segment
	if segment == "" {
		segment = domain.DefaultSegment
	}

	vehicle := &domain.Vehicle{
		ID:                     uuid.New().String(),
		UserID:                 req.UserID,
		Make:                   req.Make,
		Model:                  req.Model,
		Year:                   req.Year,
		CurrentKm:              req.CurrentKm,
		AnnualKm:               req.AnnualKm,
		Powertrain:             powertrain,
		Segment:                segment,
		MarketValueEUR:         req.MarketValueEUR,
		ConsumptionLPer100Km:   req.ConsumptionLPer100Km,
		ConsumptionKWhPer100Km: req.ConsumptionKWhPer100Km,
		PHEVElectricShare:      req.PHEVElectricShare,
		CreatedAt:              time.Now().UTC(),
	}

	if err := h.vehicleRepo.Create(c.Request.Context(), vehicle); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, vehicleToResponse(vehicle))
}

// GetVehicle handles GET /v1/vehicles/:id
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	vehicle, err := h.vehicleRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, vehicleToResponse(vehicle))
}

// GetAll handles GET /v1/vehicles
func (h *VehicleHandler) GetAll(c *gin.Context) {
	vehicles, err := h.vehicleRepo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	var response []VehicleResponse
	for _, v := range vehicles {
		response = append(response, vehicleToResponse(v))
	}

	c.JSON(http.StatusOK, response)
}
