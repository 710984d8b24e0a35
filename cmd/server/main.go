// backend-go/cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rcabanilla/schoolclinic/backend-go/internal/api"
	"github.com/rcabanilla/schoolclinic/backend-go/internal/cache"
	"github.com/rcabanilla/schoolclinic/backend-go/internal/config"
	"github.com/rcabanilla/schoolclinic/backend-go/internal/reference"
	"github.com/rcabanilla/schoolclinic/backend-go/internal/repository/postgres"
	"github.com/rcabanilla/schoolclinic/backend-go/internal/service"
	"github.com/rcabanilla/schoolclinic/backend-go/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	if cfg.Server.Mode == "debug" {
		logger.SetLevel("debug")
		gin.SetMode(gin.DebugMode)
	} else {
		logger.SetLevel("info")
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Load reference tables once; classification degrades to Unknown if
	// this fails, the server still starts.
	tables, err := reference.Load(cfg.App.ReferenceDir)
	if err != nil {
		logger.Log.Warn().Err(err).Str("dir", cfg.App.ReferenceDir).
			Msg("reference tables unavailable, classifications will be Unknown")
		tables = nil
	} else {
		logger.Log.Info().
			Int("bmi_bands", tables.BMIBandCount()).
			Int("height_bands", tables.HeightForAgeBandCount()).
			Msg("reference tables loaded")
	}

	// Initialize cache
	inventoryCache, err := cache.NewInventoryCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("cache unavailable, falling back to noop")
		inventoryCache = cache.NewNoopInventoryCache()
	}

	// Initialize services
	services := &api.Services{
		NutritionService: service.NewNutritionService(tables),
		InventoryService: service.NewInventoryService(postgres.NewInventoryRepository(db), inventoryCache),
	}

	// Initialize HTTP server
	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
