package app

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/mfontes/hspulse/config"
	"github.com/mfontes/hspulse/internal/api"
	"github.com/mfontes/hspulse/internal/ingestion"
	"github.com/mfontes/hspulse/internal/service"
)

// InitializeApp sets up all application dependencies for API mode and
// returns a fully configured Gin router, a cleanup function for graceful
// shutdown, and any error encountered during initialization.
//
// Responsibilities:
//   - Creates the process-wide dataset cache.
//   - Wires the workbook loader, dataset service and HTTP handler layers.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes (readiness attempts a cached
//     dataset load, so the first probe also warms the cache).
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	cache := ingestion.NewDatasetCache()
	loader := newDatasetLoader(cache, cfg)
	svc := service.NewDatasetService(loader)
	handler := api.NewHandler(svc)

	router := api.NewRouter(handler)

	healthHandler := api.NewHealthHandler(func() error {
		_, err := loader.Trade(context.Background(), "hs7102")
		return err
	})
	healthHandler.Register(router)

	cleanup := func() {
		cache.Clear()
	}

	return router, cleanup, nil
}
