package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/Dykstra-Hamel/DH-portal-sub000/internal/config"
	"github.com/Dykstra-Hamel/DH-portal-sub000/internal/logger"
	"github.com/Dykstra-Hamel/DH-portal-sub000/internal/metrics"
	"github.com/Dykstra-Hamel/DH-portal-sub000/internal/platform/validation"
	"github.com/Dykstra-Hamel/DH-portal-sub000/internal/version"

	// Domain slices (factories)
	companies "github.com/Dykstra-Hamel/DH-portal-sub000/internal/companies"
	notify "github.com/Dykstra-Hamel/DH-portal-sub000/internal/notify"
	settings "github.com/Dykstra-Hamel/DH-portal-sub000/internal/settings"
)

func main() {
	if handleCLICommand(os.Args[1:]) {
		return
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.AppEnv)
	log.Info().Str("addr", cfg.AppAddr).Str("version", version.String()).Msg("starting api server")

	// Init Postgres
	pgCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid DATABASE_URL")
	}
	pgPool, err := pgxpool.NewWithConfig(context.Background(), pgCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to create pg pool")
	}
	defer pgPool.Close()

	// Init Redis/Valkey
	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})
	defer redisClient.Close()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middlewares
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Secure())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSAllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(metrics.HTTPMiddleware())

	// Validator
	e.Validator = validation.New()

	// Register domain routes via factories
	companies.Register(e, pgPool)
	settings.Register(e, pgPool, cfg)
	notify.Register(e, pgPool, cfg)

	// Health endpoint pings DB and Redis
	e.GET("/healthz", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 500*time.Millisecond)
		defer cancel()

		dbStatus := "ok"
		dbStart := time.Now()
		if err := pgPool.Ping(ctx); err != nil {
			dbStatus = "down"
		}
		metrics.ObserveDBPing(time.Since(dbStart).Seconds())
		metrics.SetDBUp(dbStatus == "ok")

		cacheStatus := "ok"
		cacheStart := time.Now()
		if _, err := redisClient.Ping(ctx).Result(); err != nil {
			cacheStatus = "down"
		}
		metrics.ObserveRedisPing(time.Since(cacheStart).Seconds())
		metrics.SetRedisUp(cacheStatus == "ok")

		return c.JSON(http.StatusOK, map[string]any{
			"status":  "ok",
			"version": version.String(),
			"time":    time.Now().UTC().Format(time.RFC3339),
			"db":      dbStatus,
			"cache":   cacheStatus,
		})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Start server
	go func() {
		if err := e.Start(cfg.AppAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
	log.Info().Msg("server stopped")
}
