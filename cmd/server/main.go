// Command server runs the wellness companion HTTP API.
//
// It loads configuration from the environment (optionally from a .env file),
// opens the SQLite store, seeds the knowledge base, wires the optional remote
// services (language model, emotion classifier, Redis streaks), and serves
// the REST API with graceful shutdown.
//
// @title        AyurMitra Wellness API
// @version      1.0
// @description  Ayurvedic wellness companion backend: chat, dosha assessments, tracking, and recommendations.
// @BasePath     /api/v1
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/ayurmitra/wellness-backend/docs"
	"github.com/ayurmitra/wellness-backend/internal/breaker"
	"github.com/ayurmitra/wellness-backend/internal/config"
	"github.com/ayurmitra/wellness-backend/internal/emotion"
	httpapi "github.com/ayurmitra/wellness-backend/internal/http"
	"github.com/ayurmitra/wellness-backend/internal/knowledge"
	"github.com/ayurmitra/wellness-backend/internal/llm"
	"github.com/ayurmitra/wellness-backend/internal/observability"
	"github.com/ayurmitra/wellness-backend/internal/repo"
	"github.com/ayurmitra/wellness-backend/internal/streak"
	"github.com/ayurmitra/wellness-backend/internal/sysutil"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	log.Info().Str("version", version).Str("port", cfg.Port).Msg("starting wellness backend")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Tracing (optional).
	var shutdownOTel func(context.Context) error
	if cfg.OTEL.Enabled {
		var err error
		shutdownOTel, err = observability.SetupOTel(ctx, cfg.OTEL, version)
		if err != nil {
			log.Fatal().Err(err).Msg("otel setup failed")
		}
		log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("tracing enabled")
	}

	// Storage.
	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database failed")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	if err := knowledge.Seed(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("knowledge seeding failed")
	}

	// Remote services; each is optional and degrades to a local fallback.
	breakers := breaker.NewRegistry(breaker.Settings{
		ConsecutiveFailures: uint32(cfg.Breaker.ConsecutiveFailures),
		Timeout:             cfg.Breaker.OpenTimeout,
	})

	llmClient := llm.NewClient(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.Timeout, breakers)
	if !llmClient.Enabled() {
		log.Warn().Msg("no LLM endpoint configured, replies use the deterministic fallback")
	}

	var remote emotion.Remote
	if cfg.Emotion.BaseURL != "" {
		remote = emotion.NewHTTPRemote(cfg.Emotion.BaseURL, cfg.Emotion.APIKey, cfg.Emotion.Timeout, breakers)
	} else {
		log.Warn().Msg("no emotion endpoint configured, classification is keyword-only")
	}

	var streaks *streak.Tracker
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unreachable, streaks disabled")
		} else {
			streaks = &streak.Tracker{Client: rdb}
		}
	}

	// HTTP surface.
	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, db, httpapi.Deps{
		LLM:     llmClient,
		Remote:  remote,
		Streaks: streaks,
	}, cfg)

	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.BasePath = cfg.APIBasePath
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		log.Fatal().Err(err).Msg("server failed")
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	if shutdownOTel != nil {
		if err := shutdownOTel(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("otel shutdown failed")
		}
	}
	log.Info().Msg("stopped")
}
