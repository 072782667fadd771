package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/evindia/evbot/internal/api/router"
	"github.com/evindia/evbot/internal/app/bootstrap"
	"github.com/evindia/evbot/internal/catalog"
	appconfig "github.com/evindia/evbot/internal/config"
	"github.com/evindia/evbot/internal/dialogue"
	"github.com/evindia/evbot/internal/observability/metrics"
	"github.com/evindia/evbot/internal/telegram"
	"github.com/evindia/evbot/pkg/logging"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting evbot",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	if cfg.TelegramToken == "" {
		logger.Error("TELEGRAM_BOT_TOKEN is required")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	catalogStore, db, err := bootstrap.BuildCatalogStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to build catalog store", "error", err)
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
	}
	catalogSvc := catalog.NewService(catalogStore, logger)

	redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true)
	if redisClient != nil {
		defer redisClient.Close()
	}
	store := bootstrap.BuildConversationStore(redisClient, logger)

	assistant, cleanup, err := bootstrap.BuildAssistant(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to build assistant", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	pipelineMetrics := metrics.NewPipelineMetrics(nil)

	orchestrator := dialogue.NewOrchestrator(dialogue.Config{
		Catalog:        catalogSvc,
		Store:          store,
		Assistant:      assistant,
		Logger:         logger,
		Metrics:        pipelineMetrics,
		CatalogTimeout: cfg.CatalogTimeout,
		InteractionCap: cfg.InteractionCap,
		HistoryLimit:   cfg.HistoryLimit,
	})

	bot, err := telegram.NewBot(telegram.Config{
		Token:        cfg.TelegramToken,
		AdminUserID:  cfg.AdminUserID,
		Orchestrator: orchestrator,
		Catalog:      catalogSvc,
		Store:        store,
		Logger:       logger,
	})
	if err != nil {
		logger.Error("failed to connect to telegram", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: router.New(&router.Config{
			Logger:         logger,
			Catalog:        catalogSvc,
			Store:          store,
			Assistant:      assistant,
			MetricsHandler: promhttp.Handler(),
		}),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	// Long-poll until shutdown.
	if err := bot.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("bot stopped", "error", err)
	}

	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
