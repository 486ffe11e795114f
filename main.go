package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/pucklab/puckcast/pkg/config"
	"github.com/pucklab/puckcast/pkg/database"
	"github.com/pucklab/puckcast/pkg/handlers"
	"github.com/pucklab/puckcast/pkg/logging"
	"github.com/pucklab/puckcast/pkg/middleware"
	"github.com/pucklab/puckcast/pkg/repositories"
	"github.com/pucklab/puckcast/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath, Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	db, err := database.Connect(ctx, cfg.Database.ConnectionString(), cfg.Database.MaxConnections)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := runMigrations(cfg, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	predictor := services.NewPredictor(logger)
	if err := predictor.LoadFromFile(cfg.Model.Path); err != nil {
		logger.Warn("Prediction model unavailable, serving zero probabilities", zap.Error(err))
	}

	standingsRepo := repositories.NewStandingsRepository(db)
	standingsService := services.NewStandingsService(standingsRepo, predictor, cfg.Model.CurrentSeasonID, logger)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, predictor, logger).RegisterRoutes(mux)
	handlers.NewStandingsHandler(standingsService, logger).RegisterRoutes(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting puckcast",
		zap.String("addr", addr),
		zap.String("version", cfg.Version),
		zap.Int64("season_id", cfg.Model.CurrentSeasonID),
		zap.Bool("model_loaded", predictor.Loaded()))

	handler := middleware.RequestLogger(logger)(mux)
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

// runMigrations opens a short-lived database/sql connection for the migration
// tool and closes it once the schema is current.
func runMigrations(cfg *config.Config, logger *zap.Logger) error {
	sqlDB, err := sql.Open("pgx", cfg.Database.ConnectionString())
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	return database.RunMigrations(sqlDB, cfg.MigrationsPath, logger)
}
