package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sportshub/config"
	_ "sportshub/docs"
	"sportshub/internal/adapters/auth"
	deliveryhttp "sportshub/internal/delivery/http"
	"sportshub/internal/delivery/http/controllers"
	"sportshub/internal/domain"
	"sportshub/internal/monitoring"
	"sportshub/internal/repository/postgres"
	"sportshub/internal/repository/redis"
	"sportshub/internal/services"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// @title Sportshub API
// @version 1.0
// @description Manage sports venues and the events held at them.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := config.NewLogger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	err = db.PingContext(pingCtx)
	cancel()
	if err != nil {
		logger.Error("ping database", "err", err)
		os.Exit(1)
	}

	checks := map[string]controllers.Pinger{"postgres": db}
	var cache domain.ViewCache = domain.NopViewCache{}
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			// Lists still work uncached.
			logger.Warn("redis unavailable, view cache disabled", "err", err)
		} else {
			defer client.Close()
			viewCache := redis.NewViewCache(client, cfg.CacheTTL)
			cache = viewCache
			checks["redis"] = viewCache
			go func() {
				err := viewCache.WatchStale(ctx, func(collection string) {
					monitoring.StaleNotification(collection)
					logger.Debug("views stale", "collection", collection)
				})
				if err != nil {
					logger.Warn("stale notifications stopped", "err", err)
				}
			}()
		}
	}

	venueRepo := postgres.NewVenueRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	userRepo := postgres.NewUserRepository(db)

	venueService := services.NewVenueService(venueRepo, cache, logger)
	eventService := services.NewEventService(eventRepo, cache, logger)
	authService := services.NewAuthService(userRepo, auth.NewBcryptHasher(bcrypt.DefaultCost), auth.NewJWTIssuer(cfg.JWTSecret), cfg.JWTExpiry)

	handler := deliveryhttp.NewHandler(deliveryhttp.Controllers{
		Auth:   controllers.NewAuthController(logger, authService),
		Venue:  controllers.NewVenueController(logger, venueService),
		Event:  controllers.NewEventController(logger, eventService),
		Meta:   controllers.NewMetaController(logger, checks),
		Tokens: auth.NewJWTVerifier(cfg.JWTSecret),
	}, logger, cfg.CORSAllowedOrigins)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.Environment, "cache", cfg.RedisURL != "")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}
}
