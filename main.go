package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"sales-agent/agent"
	"sales-agent/catalog"
	"sales-agent/chatlog"
	"sales-agent/config"
	"sales-agent/llmclient"
	"sales-agent/messenger"
	"sales-agent/retrieval"
	"sales-agent/web"
	"sales-agent/web/handlers"
	"sales-agent/web/middleware"

	"go.uber.org/zap"
)

func main() {
	// Initialize logger with default level to load config
	tempLogger, err := config.InitLogger("info")
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	cfg := config.Load(tempLogger)

	// Re-initialize logger with configured level
	logger, err := config.InitLogger(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Failed to re-initialize logger with configured level: %v\n", err)
		os.Exit(1)
	}
	defer config.Cleanup()

	store := catalog.NewFileStore(cfg.ProductsPath, cfg.StoreInfoPath, logger)
	client := llmclient.New(cfg, logger)
	embedder := retrieval.NewCachedEmbedder(cfg, client, logger)
	index := retrieval.NewProductIndex(cfg, embedder, logger)

	// Create context that listens for interrupt signals
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// The index loads in the background; messages arriving before it is
	// ready fall through to the keyword strategies.
	go index.Load(ctx)

	filter := retrieval.NewFilter(store, index, cfg.SearchTopK, logger)
	salesAgent := agent.New(cfg, filter, client, logger)

	log := chatlog.New(cfg.HistoryLimit)
	sender := messenger.NewClient(cfg, logger)
	limiter := middleware.NewSenderRateLimiter(cfg.RateLimitMessagesPerMin, cfg.RateLimitBurstSize, logger)

	webhookHandler := handlers.NewWebhookHandler(cfg, salesAgent, sender, log, limiter, logger)
	monitorHandler := handlers.NewMonitorHandler(log, index, logger)
	webServer := web.NewServer(webhookHandler, monitorHandler, logger, cfg)

	port := fmt.Sprintf(":%d", cfg.WebPort)
	logger.Info("Starting sales agent web server", zap.String("port", port))
	if err := webServer.Start(ctx, port); err != nil {
		logger.Error("Web server error", zap.Error(err))
		os.Exit(1)
	}
}
