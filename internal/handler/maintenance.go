package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tripcost/internal/domain"
	"tripcost/internal/repository"
)

// MaintenanceHandler handles HTTP requests for maintenance events.
type MaintenanceHandler struct {
	maintenanceRepo repository.MaintenanceRepository
}

// NewMaintenanceHandler creates a new MaintenanceHandler.
func NewMaintenanceHandler(maintenanceRepo repository.MaintenanceRepository) *MaintenanceHandler {
	return &MaintenanceHandler{maintenanceRepo: maintenanceRepo}
}

// CreateMaintenanceEventRequest is the HTTP request body for recording a
// maintenance event.
type CreateMaintenanceEventRequest struct {
	VehicleID  string   `json:"vehicle_id"`
	Category   string   `json:"category"`
	EventDate  string   `json:"event_date,omitempty"` // YYYY-MM-DD
	OdometerKm *float64 `json:"odometer_km,omitempty"`
	CostEUR    float64  `json:"cost_eur"`
	Workshop   string   `json:"workshop,omitempty"`
	Notes      string   `json:"notes,omitempty"`
}

// MaintenanceEventResponse is the HTTP response for maintenance event data.
type MaintenanceEventResponse struct {
	ID         string   `json:"id"`
	VehicleID  string   `json:"vehicle_id"`
	Category   string   `json:"category"`
	EventDate  string   `json:"event_date,omitempty"`
	OdometerKm *float64 `json:"odometer_km,omitempty"`
	CostEUR    float64  `json:"cost_eur"`
	Workshop   string   `json:"workshop,omitempty"`
	Notes      string   `json:"notes,omitempty"`
}

func maintenanceEventToResponse(e *domain.MaintenanceEvent) MaintenanceEventResponse {
	resp := MaintenanceEventResponse{
		ID:         e.ID,
		VehicleID:  e.VehicleID,
		Category:   e.Category,
		OdometerKm: e.OdometerKm,
		CostEUR:    e.CostEUR,
		Workshop:   e.Workshop,
		Notes:      e.Notes,
	}
	if e.EventDate != nil {
		resp.EventDate = e.EventDate.Format("2006-01-02")
	}
	return resp
}

// CreateEvent handles POST /v1/maintenance-events
func (h *MaintenanceHandler) CreateEvent(c *gin.Context) {
	var req CreateMaintenanceEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.VehicleID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "vehicle_id is required"})
		return
	}
	if req.CostEUR < 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "cost_eur cannot be negative"})
		return
	}

	var eventDate *time.Time
	if req.EventDate != "" {
		parsed, err := time.Parse("2006-01-02", req.EventDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "event_date must be YYYY-MM-DD"})
			return
		}
		eventDate = &parsed
	}

	event := &domain.MaintenanceEvent{
		ID:         uuid.New().String(),
		VehicleID:  req.VehicleID,
		Category:   req.Category,
		EventDate:  eventDate,
		OdometerKm: req.OdometerKm,
		CostEUR:    req.CostEUR,
		Workshop:   req.Workshop,
		Notes:      req.Notes,
	}

	if err := h.maintenanceRepo.CreateEvent(c.Request.Context(), event); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, maintenanceEventToResponse(event))
}

// ListEvents handles GET /v1/maintenance-events?vehicle_id=...
func (h *MaintenanceHandler) ListEvents(c *gin.Context) {
	vehicleID := c.Query("vehicle_id")
	if vehicleID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "vehicle_id query parameter is required"})
		return
	}

	events, err := h.maintenanceRepo.ListEventsByVehicle(c.Request.Context(), vehicleID)
	if err != nil {
		respondError(c, err)
		return
	}

	var response []MaintenanceEventResponse
	for _, e := range events {
		response = append(response, maintenanceEventToResponse(e))
	}

	c.JSON(http.StatusOK, response)
}
