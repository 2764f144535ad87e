package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/truthguard/truthguard/internal/api/router"
	"github.com/truthguard/truthguard/internal/classify"
	appconfig "github.com/truthguard/truthguard/internal/config"
	"github.com/truthguard/truthguard/internal/contacts"
	"github.com/truthguard/truthguard/internal/detector"
	"github.com/truthguard/truthguard/internal/history"
	"github.com/truthguard/truthguard/internal/http/handlers"
	"github.com/truthguard/truthguard/internal/observability/metrics"
	"github.com/truthguard/truthguard/internal/session"
	"github.com/truthguard/truthguard/internal/sink"
	"github.com/truthguard/truthguard/internal/threats"
	"github.com/truthguard/truthguard/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting truthguard API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redisClient := buildRedisClient(ctx, cfg, logger)
	defer func() { _ = redisClient.Close() }()

	registry := detector.NewRegistry()
	analysisMetrics := metrics.NewAnalysisMetrics(nil)
	historyStore := history.NewStore(redisClient, nil, logger)
	contactStore := contacts.NewStore(redisClient, nil, logger)
	classifier := classify.NewGemini(cfg.GeminiAPIKey, cfg.GeminiModel, registry, logger)

	// Analysis records flow through the Postgres outbox when a database
	// is configured, otherwise straight to the log.
	var records sink.Sink = sink.NewLogSink(logger)
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to create pgx pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		store := sink.NewOutboxStore(pool)
		records = sink.NewOutboxSink(store)
		deliverer := sink.NewDeliverer(store, sink.NewDocumentHandler(logger), logger).
			WithInterval(cfg.SinkPollInterval).
			WithBatchSize(int32(cfg.SinkBatchSize))
		go deliverer.Start(ctx)
		logger.Info("outbox delivery enabled", "interval", cfg.SinkPollInterval, "batch_size", cfg.SinkBatchSize)
	}

	fetchClient := &http.Client{Timeout: cfg.MediaFetchTimeout}
	manager := session.NewManager(fetchClient, analysisMetrics, logger)
	controller := session.NewController(classifier, registry, historyStore, records, analysisMetrics, logger)

	feed := threats.NewFeed()

	routerCfg := &router.Config{
		Logger:         logger,
		Sessions:       handlers.NewSessionsHandler(manager, controller, registry, historyStore, logger),
		History:        handlers.NewHistoryHandler(historyStore, logger),
		Contacts:       handlers.NewContactsHandler(contactStore, logger),
		Detectors:      handlers.NewDetectorsHandler(registry),
		Threats:        threats.NewHandler(feed, cfg.ThreatRefreshInterval, logger),
		MetricsHandler: promhttp.Handler(),
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func buildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) *redis.Client {
	options := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		options.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(options)
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not reachable, history and contacts will degrade", "error", err)
	}
	return client
}
