package app

import (
	"fmt"
	"os"
	"time"
	_ "time/tzdata" // zone database for AGGREGATION_TIMEZONE on minimal images

	"github.com/gin-gonic/gin"

	"github.com/guttosm/tradechart/config"
	"github.com/guttosm/tradechart/internal/aggregation"
	"github.com/guttosm/tradechart/internal/api"
	"github.com/guttosm/tradechart/internal/domain/models"
	"github.com/guttosm/tradechart/internal/logger"
	"github.com/guttosm/tradechart/internal/service"
	"github.com/guttosm/tradechart/internal/storage"
	"github.com/guttosm/tradechart/internal/window"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Resolves the aggregation time zone and the zoom preset table.
//   - Connects to PostgreSQL using InitPostgres().
//   - Initializes the repository, chart service and HTTP handler layers.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close resources (e.g., DB connection).
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	loc, err := loadLocation(cfg.Chart.Timezone)
	if err != nil {
		return nil, nil, err
	}
	presets, err := loadPresets(cfg.Chart.PresetsFile)
	if err != nil {
		return nil, nil, err
	}

	// indirection for unit testing
	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	repo := storage.NewTradesRepository(db)

	svc := service.NewChartService(repo, service.Options{
		Aggregator: aggregation.New(loc),
		Presets:    presets,
		MaxPoints:  cfg.Chart.MaxPoints,
	})

	handler := api.NewHandler(svc)
	router := api.NewRouter(handler, cfg.Server.RateLimitPerIP)

	healthHandler := api.NewHealthHandler(db.PingContext)
	healthHandler.Register(router)

	logger.L().Info().
		Str("timezone", loc.String()).
		Int("presets", len(presets)).
		Int("max_points", cfg.Chart.MaxPoints).
		Msg("chart service configured")

	cleanup := func() {
		_ = db.Close()
	}

	return router, cleanup, nil
}

// loadLocation resolves an IANA zone name; empty means UTC.
func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid AGGREGATION_TIMEZONE %q: %w", name, err)
	}
	return loc, nil
}

// loadPresets reads the preset table from path, or returns the built-in
// presets when path is empty.
func loadPresets(path string) ([]models.ZoomPreset, error) {
	if path == "" {
		return window.DefaultPresets(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open presets file: %w", err)
	}
	defer f.Close()

	presets, err := window.LoadPresets(f)
	if err != nil {
		return nil, fmt.Errorf("load presets from %s: %w", path, err)
	}
	return presets, nil
}
