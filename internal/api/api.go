// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/rcabanilla/schoolclinic/backend-go/internal/api/handlers"
	"github.com/rcabanilla/schoolclinic/backend-go/internal/api/middleware"
	"github.com/rcabanilla/schoolclinic/backend-go/internal/service"
)

type Services struct {
	NutritionService *service.NutritionService
	InventoryService *service.InventoryService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.NutritionService != nil {
			nutritionHandler := handlers.NewNutritionHandler(services.NutritionService)
			nutritionGroup := apiGroup.Group("/nutrition")
			{
				nutritionGroup.POST("/classify", nutritionHandler.Classify)
				nutritionGroup.GET("/bands", nutritionHandler.GetBands)
			}
		}

		if services.InventoryService != nil {
			inventoryHandler := handlers.NewInventoryHandler(services.InventoryService)
			inventoryGroup := apiGroup.Group("/inventory")
			{
				inventoryGroup.GET("/items/:id", inventoryHandler.GetItem)
				inventoryGroup.GET("/batches/:id/in", inventoryHandler.GetBatchIn)
				inventoryGroup.GET("/batches/:id/disposals/total", inventoryHandler.GetDisposalTotal)
				inventoryGroup.GET("/batches/:id/adjustments/totals", inventoryHandler.GetAdjustmentTotals)
				inventoryGroup.GET("/summary", inventoryHandler.GetSummary)
				inventoryGroup.POST("/adjustments/preview", inventoryHandler.PreviewAdjustment)
				inventoryGroup.POST("/adjustments", inventoryHandler.ApplyAdjustment)
			}
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
