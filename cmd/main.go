package main

import (
	"os"

	"github.com/s/librekpi/internal/config"
	"github.com/s/librekpi/internal/database"
	"github.com/s/librekpi/internal/logger"
)

func main() {
	// ---------------------------
	// 0. Configuration
	// ---------------------------
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", configPath).Msg("failed to load configuration")
	}

	// ---------------------------
	// 1. Logging
	// ---------------------------
	logger.Configure(logger.Config{
		Level:  logger.LogLevel(cfg.Logging.Level),
		Pretty: cfg.Logging.Format == "pretty",
	})

	// ---------------------------
	// 2. Database
	// ---------------------------
	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to get database handle")
	}
	defer sqlDB.Close()

	// ---------------------------
	// 3. Migrations
	// ---------------------------
	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			logger.Fatal().Err(err).Msg("migration failed")
		}
		logger.Info().Msg("schema migrated")
	}

	// ---------------------------
	// 4. Seed data
	// ---------------------------
	if cfg.Database.Seed {
		if err := database.Seed(db); err != nil {
			logger.Error().Err(err).Msg("seeding failed")
			return
		}
		logger.Info().Msg("demo data seeded")
	}

	logger.Info().
		Str("driver", cfg.Database.Driver).
		Str("dialect", db.Dialector.Name()).
		Msg("database ready")
}
