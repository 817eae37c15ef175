package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"tripcost/internal/handler"
	"tripcost/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	CalcHandler        *handler.CalcHandler
	VehicleHandler     *handler.VehicleHandler
	MaintenanceHandler *handler.MaintenanceHandler
	InsuranceHandler   *handler.InsuranceHandler
	FuelPriceHandler   *handler.FuelPriceHandler
	UserHandler        *handler.UserHandler
	RedisClient        *redis.Client
	NewRelicApp        *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// User routes.
		users := v1.Group("/users")
		{
			users.POST("/register", deps.UserHandler.Register)
			users.GET("", deps.UserHandler.GetAll)
		}

		// Vehicle routes.
		vehicles := v1.Group("/vehicles")
		{
			vehicles.POST("", deps.VehicleHandler.CreateVehicle)
			vehicles.GET("", deps.VehicleHandler.GetAll)
			vehicles.GET("/:id", deps.VehicleHandler.GetVehicle)
		}

		// Maintenance event routes.
		maintenance := v1.Group("/maintenance-events")
		{
			maintenance.POST("", deps.MaintenanceHandler.CreateEvent)
			maintenance.GET("", deps.MaintenanceHandler.ListEvents)
		}

		// Insurance policy routes.
		insurance := v1.Group("/insurance-policies")
		{
			insurance.POST("", deps.InsuranceHandler.CreatePolicy)
			insurance.GET("", deps.InsuranceHandler.ListPolicies)
		}

		// Fuel price routes.
		prices := v1.Group("/fuel-prices")
		{
			prices.GET("/latest", deps.FuelPriceHandler.GetLatest)
			prices.POST("/refresh", deps.FuelPriceHandler.Refresh)
		}

		// Trip cost calculation.
		v1.POST("/calc/trip", deps.CalcHandler.CalculateTrip)
	}

	return router
}
