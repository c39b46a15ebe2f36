package main

//
//  @title           tradechart API
//  @version         1.0
//  @description     Trade ingestion, period aggregation and zoomable chart windows.
//  @termsOfService  https://github.com/guttosm/tradechart
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/tradechart
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        trades
//  @tag.description Raw trade table
//
//  @tag.name        chart
//  @tag.description Aggregated series, windows, tree-map totals and zoom presets
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goose "github.com/pressly/goose/v3"

	"github.com/guttosm/tradechart/config"
	_ "github.com/guttosm/tradechart/docs" // swagger docs
	"github.com/guttosm/tradechart/internal/app"
	"github.com/guttosm/tradechart/internal/ingestion"
	"github.com/guttosm/tradechart/internal/logger"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
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

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., DB connections).
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

// runMigrations applies every pending goose migration found in dir.
func runMigrations(db *sql.DB, dir string) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// main is the entry point of the tradechart application.
//
// Modes (selected via --mode flag):
//   - ingest:  Loads every *.csv trade file from --dir into PostgreSQL.
//   - migrate: Applies the SQL migrations under --migrations.
//   - api:     Starts the REST API serving trades, chart windows and totals.
//
// Flags:
//   - --mode:       Execution mode ("ingest", "migrate" or "api"). Default: "ingest".
//   - --dir:        Directory containing .csv input files. Default: "./data/input".
//   - --parallel:   Files processed concurrently (0 = auto, up to CPU count, max 8).
//   - --force:      Reload files that were already ingested.
//   - --migrations: Directory with goose migrations. Default: "./db/migrations".
//   - --port:       Port for the API server. Defaults to value from config (SERVER_PORT).
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	mode := flag.String("mode", "ingest", "Mode: ingest, migrate or api")
	dir := flag.String("dir", "./data/input", "Directory with .csv trade files")
	parallel := flag.Int("parallel", 0, "How many files to process concurrently (0=auto up to CPU, max 8)")
	force := flag.Bool("force", false, "Reload files even if already ingested (deletes their existing trades)")
	migrations := flag.String("migrations", "./db/migrations", "Directory with goose migrations")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	switch *mode {
	case "ingest":
		logger.L().Info().Str("dir", *dir).Msg("running ingestion")

		db, err := app.InitPostgres(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}
		defer func() { _ = db.Close() }()

		if err := ingestion.ProcessDirectory(ctx, *dir, db, *parallel, *force); err != nil {
			logger.L().Fatal().Err(err).Msg("ingestion failed")
		}
		logger.L().Info().Msg("ingestion completed successfully")

	case "migrate":
		db, err := app.InitPostgres(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}
		defer func() { _ = db.Close() }()

		if err := runMigrations(db, *migrations); err != nil {
			logger.L().Fatal().Err(err).Msg("migration failed")
		}
		logger.L().Info().Str("dir", *migrations).Msg("migrations applied")

	case "api":
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
