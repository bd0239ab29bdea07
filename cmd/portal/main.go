package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hotelchain/booking-portal/internal/api"
	"github.com/hotelchain/booking-portal/internal/api/handler"
	"github.com/hotelchain/booking-portal/internal/audit"
	"github.com/hotelchain/booking-portal/internal/core/ports"
	"github.com/hotelchain/booking-portal/internal/core/session"
	"github.com/hotelchain/booking-portal/internal/gateway"
	"github.com/hotelchain/booking-portal/internal/infrastructure/config"
	mongodb "github.com/hotelchain/booking-portal/internal/infrastructure/db/mongo"
	redisdb "github.com/hotelchain/booking-portal/internal/infrastructure/db/redis"
	"github.com/hotelchain/booking-portal/pkg/logger"
)

func main() {
	cfg := config.Load(slog.Default())

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	var sessionRepo ports.SessionRepository
	switch cfg.SessionBackend {
	case "mongo":
		sessionRepo = mongodb.NewSessionRepository(db)
	default:
		sessionRepo = redisdb.NewSessionRepository(rdb, cfg.SessionTTL)
	}

	if cfg.SessionSecret == "" {
		if cfg.Env != "development" {
			log.Fatal().Msg("SESSION_SECRET is required outside development")
		}
		cfg.SessionSecret = "development-only-secret"
		log.Warn().Msg("SESSION_SECRET not set, using development default")
	}

	sessions := session.NewManager(sessionRepo, cfg.SessionSecret, cfg.SessionTTL, log)
	sessions.Start(ctx)
	gw := gateway.NewClient(cfg.Gateway.BaseURL, cfg.Gateway.Timeout, log)

	dispatcher := audit.NewDispatcher(cfg.AuditWorkers, mongodb.NewAuditRepository(db), log)
	dispatcher.Start(ctx)

	e := api.NewRouter(api.Dependencies{
		Gateway:   gw,
		Sessions:  sessions,
		InFlight:  redisdb.NewInFlightGuard(rdb),
		Audit:     dispatcher,
		Readiness: handler.NewReadinessHandler(db, rdb, gateway.NewDashboardClient(gw)),
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("booking portal started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
}
