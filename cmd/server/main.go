package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/joeruch23/colorado-weather-network/internal/adapter/cdot"
	"github.com/joeruch23/colorado-weather-network/internal/adapter/cotrip"
	"github.com/joeruch23/colorado-weather-network/internal/adapter/httpadapter"
	"github.com/joeruch23/colorado-weather-network/internal/adapter/nws"
	"github.com/joeruch23/colorado-weather-network/internal/adapter/openai"
	"github.com/joeruch23/colorado-weather-network/internal/adapter/openmeteo"
	"github.com/joeruch23/colorado-weather-network/internal/chat"
	"github.com/joeruch23/colorado-weather-network/internal/config"
	"github.com/joeruch23/colorado-weather-network/internal/observability"
	"github.com/joeruch23/colorado-weather-network/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	alerts := nws.NewClient(cfg, logger, metrics)
	weather := openmeteo.NewClient(cfg, logger, metrics)
	roads := cotrip.NewClient(cfg, logger, metrics)
	closures := cdot.NewClient(cfg, logger, metrics)

	svc := service.New(alerts, weather, roads, logger)

	// Answer polishing is feature-flagged via OPENAI_ENABLED / OPENAI_API_KEY.
	var polisher chat.Polisher
	if cfg.OpenAIEnabled {
		polisher = openai.NewClient(cfg, logger, metrics)
		logger.Info("openai polish enabled", "model", cfg.OpenAIModel)
	} else {
		logger.Info("openai polish disabled")
	}

	responder := chat.NewResponder(svc, polisher, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, responder, closures, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
