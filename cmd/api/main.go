// Sleep Records API
//
// REST API for recording nightly sleep and getting feedback on it.
//
//	@title			Sleep Records API
//	@version		1.0
//	@description	Record nightly sleep, review statistics and badges, and get AI sleep advice.
//
//	@BasePath	/api
//
//	@tag.name			sleep-records
//	@tag.description	Sleep record management, statistics and badges
//
//	@tag.name			ai
//	@tag.description	AI sleep advice and feedback
//
//	@tag.name			health
//	@tag.description	Liveness check
package main

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blaisecz/sleep-records/internal/api"
	"github.com/blaisecz/sleep-records/internal/api/handler"
	"github.com/blaisecz/sleep-records/internal/cache"
	"github.com/blaisecz/sleep-records/internal/config"
	"github.com/blaisecz/sleep-records/internal/langfuse"
	"github.com/blaisecz/sleep-records/internal/llm"
	"github.com/blaisecz/sleep-records/internal/repository"
	"github.com/blaisecz/sleep-records/internal/seed"
	"github.com/blaisecz/sleep-records/internal/service"
	"github.com/blaisecz/sleep-records/internal/telemetry"
	"github.com/blaisecz/sleep-records/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.Init(cfg.LogLevel, cfg.LogFormat, cfg.LogOutput)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	telemetry.InitPropagator()
	shutdownTracer, err := telemetry.InitTracer(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize tracing")
	}

	db, err := config.NewDatabase(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	// Initialize repositories
	recordRepo := repository.NewSleepRecordRepository(db)

	if cfg.Seed {
		log.Info().Msg("Seeding database with sample data (SEED=true)")
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		if _, err := seed.Run(ctx, recordRepo, rng, time.Now(), log); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed database")
		}
	}

	adviceCache := cache.NewNoopAdviceCache()
	if cfg.RedisURL != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer client.Close()
		adviceCache = cache.NewRedisAdviceCache(client, cfg.AdviceCacheTTL)
		log.Info().Dur("ttl", cfg.AdviceCacheTTL).Msg("Advice cache enabled")
	}

	lfConfig := langfuse.Config{
		BaseURL:     cfg.LangfuseBaseURL,
		PublicKey:   cfg.LangfusePublicKey,
		SecretKey:   cfg.LangfuseSecretKey,
		Environment: cfg.LangfuseEnv,
	}
	langfuseClient := langfuse.NewClient(lfConfig, log)

	systemPrompt, err := langfuse.LoadPrompt(ctx, langfuse.PromptConfig{
		Config:   lfConfig,
		Name:     cfg.LangfuseAdvicePrompt,
		Label:    cfg.LangfusePromptLabel,
		SavePath: cfg.AdvicePromptFile,
	}, log)
	if err != nil {
		log.Info().Msg("Using built-in advice prompt")
		systemPrompt = service.DefaultAdviceSystemPrompt
	}

	// Initialize OpenAI client (nil if not configured; advice then uses the local fallback)
	openaiClient := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIAdviceModel, cfg.OpenAIBaseURL)
	if openaiClient == nil {
		log.Warn().Msg("OpenAI API key not configured, advice will use the local fallback")
	}

	// Initialize services
	recordService := service.NewSleepRecordService(recordRepo, adviceCache, log)
	badgeService := service.NewBadgeService(recordRepo, nil)
	advisorService := service.NewAdvisorService(service.AdvisorDeps{
		Repo:         recordRepo,
		LLM:          openaiClient,
		Cache:        adviceCache,
		Langfuse:     langfuseClient,
		Logger:       log,
		SystemPrompt: systemPrompt,
		Model:        cfg.OpenAIAdviceModel,
	})

	// Initialize handlers
	recordHandler := handler.NewSleepRecordHandler(recordService, badgeService, log)
	adviceHandler := handler.NewAdviceHandler(advisorService, langfuseClient, log)

	router := api.NewRouter(recordHandler, adviceHandler, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.Setup(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	if err := langfuseClient.Flush(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("Langfuse flush incomplete")
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("Tracer shutdown failed")
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
