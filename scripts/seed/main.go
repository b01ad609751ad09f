// Command seed fills an empty sleep record store with 30 nights of sample data.
package main

import (
	"context"
	"math/rand"
	"time"

	"github.com/blaisecz/sleep-records/internal/config"
	"github.com/blaisecz/sleep-records/internal/repository"
	"github.com/blaisecz/sleep-records/internal/seed"
	"github.com/blaisecz/sleep-records/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("Failed to load configuration")
	}
	log := logger.Init(cfg.LogLevel, "console", "stdout")

	db, err := config.NewDatabase(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	created, err := seed.Run(context.Background(), repository.NewSleepRecordRepository(db), rng, time.Now(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("Seed failed")
	}
	log.Info().Int("created", created).Str("database", cfg.DatabaseURL).Msg("Done")
}
