package main

//
//  @title           hspulse API
//  @version         1.0
//  @description     Trade-statistics workbook parsing & aggregation service.
//  @termsOfService  https://github.com/mfontes/hspulse
//  @contact.name    API Support
//  @contact.url     https://github.com/mfontes/hspulse
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        records
//  @tag.description Normalized long-form trade records
//
//  @tag.name        summary
//  @tag.description World totals and partner rankings
//
//  @tag.name        production
//  @tag.description Yearly production dataset
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mfontes/hspulse/config"
	_ "github.com/mfontes/hspulse/docs" // swagger docs
	"github.com/mfontes/hspulse/internal/app"
	"github.com/mfontes/hspulse/internal/ingestion"
	"github.com/mfontes/hspulse/internal/logger"
)

// startServer initializes and starts the HTTP server in a separate
// goroutine and returns the server instance for shutdown handling.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown terminates the HTTP server and runs cleanup when an OS
// interrupt signal (SIGINT, SIGTERM) is received.
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// main is the entry point of the hspulse application.
//
// Modes (selected via --mode flag):
//   - api:    starts the REST API serving the normalized datasets.
//   - ingest: parses the configured workbooks and archives the records
//     in Postgres.
//
// Flags:
//   - --mode:  Execution mode ("api" or "ingest"). Default: "api".
//   - --port:  Port for the API server. Defaults to SERVER_PORT.
//   - --force: Re-ingest sources already present in the ingestion log.
func main() {
	ctx := context.Background()

	config.LoadConfig()
	logger.Init()

	mode := flag.String("mode", "api", "Mode: api or ingest")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	force := flag.Bool("force", false, "Reprocess workbooks even if already ingested")
	flag.Parse()

	switch *mode {
	case "ingest":
		logger.L().Info().Msg("running ingestion")

		db, err := app.InitPostgres(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("postgres init failed")
		}
		defer func() { _ = db.Close() }()

		sources := []ingestion.WorkbookSource{
			{Path: config.AppConfig.Workbooks.Trade7102File, Dataset: ingestion.DiamondDataset7102()},
			{Path: config.AppConfig.Workbooks.Lab7104File, Dataset: ingestion.LabGrownDataset7104()},
		}
		cache := ingestion.NewDatasetCache()
		if err := ingestion.ProcessWorkbooks(ctx, sources, db, cache, *force); err != nil {
			logger.L().Fatal().Err(err).Msg("ingestion failed")
		}
		logger.L().Info().Msg("ingestion finished")

	case "api":
		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init failed")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
