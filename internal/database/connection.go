package database

import (
	"fmt"
	"time"

	_ "github.com/lib/pq" // registers the "postgres" database/sql driver
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/s/librekpi/internal/config"
	"github.com/s/librekpi/internal/logger"
)

// retryDelay is the pause between connection attempts; the database
// container may need a few seconds to accept connections.
var retryDelay = 2 * time.Second

// Dialector builds the gorm dialector for the configured driver.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	dsn := cfg.DSN()

	switch cfg.Database.Driver {
	case "postgres":
		return postgres.New(postgres.Config{
			DriverName: cfg.Database.SQLDriver,
			DSN:        dsn,
		}), nil
	case "mysql":
		return mysql.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// Connect opens the database and configures the pool, retrying up to
// cfg.Database.ConnectRetries times.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLogLevel(cfg.Logging.Level)),
	}

	var db *gorm.DB
	for i := 0; i < cfg.Database.ConnectRetries; i++ {
		db, err = gorm.Open(dialector, gormCfg)
		if err == nil {
			break
		}

		logger.Warn().Err(err).Int("attempt", i+1).Msg("database connection attempt failed")
		time.Sleep(retryDelay)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", cfg.Database.ConnectRetries, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime())

	logger.Info().
		Str("driver", cfg.Database.Driver).
		Str("sql_driver", cfg.Database.SQLDriver).
		Msg("connected to database")

	return db, nil
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "debug":
		return gormlogger.Info
	case "warn":
		return gormlogger.Warn
	case "error":
		return gormlogger.Error
	default:
		return gormlogger.Silent
	}
}
