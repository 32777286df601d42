package http

import (
	"github.com/gin-gonic/gin"

	"github.com/o1iviachen/my-protein-buddy/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Food lookup endpoints
		foods := v1.Group("/foods")
		{
			foods.POST("/search", handler.SearchFoods)
			foods.GET("/barcode/:code", handler.ResolveBarcode)
		}

		// Per-user ledger endpoints
		authed := v1.Group("")
		authed.Use(AuthMiddleware(cfg.Auth.JWTSecret))
		{
			authed.GET("/ledger/:date", handler.GetDay)
			authed.POST("/ledger/:date/foods", handler.LogFood)
			authed.DELETE("/ledger/:date/foods", handler.RemoveFood)
			authed.GET("/recent", handler.GetRecentFoods)
			authed.GET("/goal", handler.GetProteinGoal)
			authed.PUT("/goal", handler.SetProteinGoal)
			authed.POST("/goal/calculate", handler.CalculateProteinGoal)
		}
	}

	return router
}
