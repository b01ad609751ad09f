package config

import (
	"fmt"

	"github.com/blaisecz/sleep-records/internal/domain"
	"github.com/blaisecz/sleep-records/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDatabase opens the record store and migrates its schema. DATABASE_URL
// selects PostgreSQL when it is a postgres:// URL and a SQLite file otherwise.
func NewDatabase(cfg *Config, log *logger.Logger) (*gorm.DB, error) {
	logLevel := gormlogger.Silent
	if cfg.LogLevel == "debug" {
		logLevel = gormlogger.Info
	}
	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	}

	driver := "sqlite"
	dialector := sqlite.Open(cfg.DatabaseURL)
	if cfg.UsesPostgres() {
		driver = "postgres"
		dialector = postgres.Open(cfg.DatabaseURL)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}

	if driver == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database instance: %w", err)
		}
		// SQLite allows a single writer; serialize access through one connection.
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info().Str("driver", driver).Msg("Database connection established")
	return db, nil
}

// Migrate creates or updates the sleep_records table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.SleepRecord{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
