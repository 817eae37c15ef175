package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tripcost/internal/domain"
	"tripcost/internal/repository"
)

// InsuranceHandler handles HTTP requests for insurance policies.
type InsuranceHandler struct {
	policyRepo repository.InsurancePolicyRepository
}

// NewInsuranceHandler creates a new InsuranceHandler.
func NewInsuranceHandler(policyRepo repository.InsurancePolicyRepository) *InsuranceHandler {
	return &InsuranceHandler{policyRepo: policyRepo}
}

// CreatePolicyRequest is the HTTP request body for storing an insurance
// policy.
type CreatePolicyRequest struct {
	UserID     string   `json:"user_id"`
	VehicleID  string   `json:"vehicle_id"`
	CostAmount float64  `json:"cost_amount"`
	CostPeriod string   `json:"cost_period,omitempty"` // annual, monthly
	StartDate  string   `json:"start_date,omitempty"`  // YYYY-MM-DD
	AnnualKm   *float64 `json:"annual_km,omitempty"`
}

// PolicyResponse is the HTTP response for insurance policy data.
type PolicyResponse struct {
	ID         string   `json:"id"`
	UserID     string   `json:"user_id"`
	VehicleID  string   `json:"vehicle_id"`
	CostAmount float64  `json:"cost_amount"`
	CostPeriod string   `json:"cost_period"`
	StartDate  string   `json:"start_date,omitempty"`
	AnnualKm   *float64 `json:"annual_km,omitempty"`
	CreatedAt  string   `json:"created_at"`
}

func policyToResponse(p *domain.InsurancePolicy) PolicyResponse {
	resp := PolicyResponse{
		ID:         p.ID,
		UserID:     p.UserID,
		VehicleID:  p.VehicleID,
		CostAmount: p.CostAmount,
		CostPeriod: string(p.CostPeriod),
		AnnualKm:   p.AnnualKm,
		CreatedAt:  p.CreatedAt.Format(time.RFC3339),
	}
	if p.StartDate != nil {
		resp.StartDate = p.StartDate.Format("2006-01-02")
	}
	return resp
}

// CreatePolicy handles POST /v1/insurance-policies
func (h *InsuranceHandler) CreatePolicy(c *gin.Context) {
	var req CreatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.VehicleID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "vehicle_id is required"})
		return
	}
	if req.CostAmount <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "cost_amount must be greater than zero"})
		return
	}

	period := domain.CostPeriod(req.CostPeriod)
	if period == "" {
		period = domain.CostPeriodAnnual
	} else if !period.Valid() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid insurance cost period"})
		return
	}

	var startDate *time.Time
	if req.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "start_date must be YYYY-MM-DD"})
			return
		}
		startDate = &parsed
	}

	policy := &domain.InsurancePolicy{
		ID:         uuid.New().String(),
		UserID:     req.UserID,
		VehicleID:  req.VehicleID,
		CostAmount: req.CostAmount,
		CostPeriod: period,
		StartDate:  startDate,
		AnnualKm:   req.AnnualKm,
		CreatedAt:  time.Now().UTC(),
	}

	if err := h.policyRepo.Create(c.Request.Context(), policy); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, policyToResponse(policy))
}

// ListPolicies handles GET /v1/insurance-policies?vehicle_id=...
func (h *InsuranceHandler) ListPolicies(c *gin.Context) {
	vehicleID := c.Query("vehicle_id")
	if vehicleID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "vehicle_id query parameter is required"})
		return
	}

	policies, err := h.policyRepo.ListByVehicle(c.Request.Context(), vehicleID)
	if err != nil {
		respondError(c, err)
		return
	}

	var response []PolicyResponse
	for _, p := range policies {
		response = append(response, policyToResponse(p))
	}

	c.JSON(http.StatusOK, response)
}
