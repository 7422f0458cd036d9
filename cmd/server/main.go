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
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nekogravitycat/court-reservation-backend/internal/app"
	"github.com/nekogravitycat/court-reservation-backend/internal/auth"
	"github.com/nekogravitycat/court-reservation-backend/internal/config"
	"github.com/nekogravitycat/court-reservation-backend/internal/db"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/mq"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/storage"
	"github.com/nekogravitycat/court-reservation-backend/internal/timeslot"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger := newLogger(cfg)
	log.Logger = logger
	ctx = logger.WithContext(ctx)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	grid, err := timeslot.NewGrid(cfg.SlotOpenHour, cfg.SlotCloseHour, cfg.SlotStepMinutes)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid slot grid")
	}

	// Connect DB
	pool, err := db.NewPool(ctx, cfg.DBDSN, int32(cfg.DBMaxConns))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to db")
	}
	defer pool.Close()

	store, err := storage.NewLocalStorage(cfg.StorageDir, cfg.PublicBaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init storage")
	}

	// Redis is optional: without it public endpoints are not rate limited.
	var rdb *redis.Client
	if cfg.RateLimit.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RateLimit.RedisAddr,
			Password: cfg.RateLimit.RedisPassword,
			DB:       cfg.RateLimit.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			logger.Warn().Err(err).Str("addr", cfg.RateLimit.RedisAddr).Msg("redis unreachable, rate limiter will fail open")
		}
		cancel()
		defer rdb.Close()
	}

	containerCfg := app.Config{
		IsProduction:  cfg.IsProduction,
		ProdOrigins:   cfg.ProdOrigins,
		Logger:        logger,
		DBPool:        pool,
		JWTSecret:     cfg.JWTSecret,
		JWTTTL:        cfg.JWTAccessTokenTTL,
		BcryptCost:    cfg.BcryptCost,
		Grid:          grid,
		Location:      cfg.Location,
		Storage:       store,
		ProofMaxBytes: cfg.ProofMaxBytes,
		RateLimit:     cfg.RateLimit,
		Redis:         rdb,
	}

	// Lifecycle events are optional.
	if cfg.AMQPURL != "" {
		publisher, err := mq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			logger.Warn().Err(err).Msg("rabbitmq unavailable, reservation events disabled")
		} else {
			defer publisher.Close()
			containerCfg.Events = publisher
		}
	}

	container, err := app.NewContainer(containerCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build container")
	}

	if cfg.BootstrapAdminUsername != "" && cfg.BootstrapAdminPassword != "" {
		err := container.AdminService.EnsureAccount(ctx, cfg.BootstrapAdminUsername, cfg.BootstrapAdminPassword, "Administrator", auth.RoleSuperAdmin)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to bootstrap admin account")
		}
	}

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           container.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run server in separate goroutine
	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("server running")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exited gracefully")
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if cfg.IsProduction {
		return zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()
}
