package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/peptok-ca/Builder-enterprise-peptok-sub001/internal/adapter/notify"
	"github.com/peptok-ca/Builder-enterprise-peptok-sub001/internal/adapter/rtc"
	"github.com/peptok-ca/Builder-enterprise-peptok-sub001/internal/config"
	"github.com/peptok-ca/Builder-enterprise-peptok-sub001/internal/repository"
	"github.com/peptok-ca/Builder-enterprise-peptok-sub001/internal/service"
	v1 "github.com/peptok-ca/Builder-enterprise-peptok-sub001/internal/transport/http/v1"
	"github.com/peptok-ca/Builder-enterprise-peptok-sub001/policy"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg := config.Load()
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	log.Info().Int("http_port", cfg.HTTPPort).Str("database", cfg.DatabaseURL).
		Msg("starting mentorship service")

	// Initialize store
	db, err := repository.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize store")
	}
	defer db.Close()

	// Initialize collaborators
	tokens := rtc.NewTokenProvider(cfg.TokenSecret, cfg.TokenTTL, cfg.MeetingBaseURL)
	notifier := notify.NewClient(cfg.NotifierURL)

	// Initialize policy engine
	ctx := context.Background()
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize policy engine")
	}

	// Initialize service and handlers
	svc := service.New(db, tokens, notifier, policyEngine, cfg)
	h := v1.NewHandler(svc)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	h.RegisterRoutes(e)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	log.Info().Int("port", cfg.HTTPPort).Msg("API started")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to shut down server gracefully")
	}

	log.Info().Msg("stopped")
}
