package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/medeiros-dev/notification-validator/configs"
	"github.com/medeiros-dev/notification-validator/internal/domain"
	"github.com/medeiros-dev/notification-validator/internal/infrastructure/broker"
	"github.com/medeiros-dev/notification-validator/internal/observability/metrics"
	"github.com/medeiros-dev/notification-validator/internal/observability/tracing"
	"github.com/medeiros-dev/notification-validator/internal/usecases/queuevalidator"
	"github.com/medeiros-dev/notification-validator/internal/usecases/validatepayload"
	"github.com/medeiros-dev/notification-validator/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := configs.NewConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.InitializeLogger(cfg.LogDevelopment); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			log.Printf("Error syncing logger: %v", err)
		}
	}()

	logger.L().Info("Starting notification validator consumer...",
		zap.Strings("kafkaBrokers", cfg.KafkaBrokers),
		zap.String("kafkaTopic", cfg.KafkaTopic),
		zap.String("kafkaGroupID", cfg.KafkaGroupID),
		zap.String("metricsServerAddress", cfg.MetricsServerAddress),
	)

	if cfg.OtelEndpoint != "" {
		if _, err := tracing.InitTracer(cfg); err != nil {
			logger.L().Fatal("Failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			tracing.ShutdownTracer(shutdownCtx)
		}()
	}

	metrics.InitMetrics()
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", metrics.MetricsHandler())
	metricsServer := &http.Server{
		Addr:              cfg.MetricsServerAddress,
		Handler:           metricsMux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.L().Info("Starting metrics server", zap.String("address", cfg.MetricsServerAddress))
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Error("Metrics server ListenAndServe failed", zap.Error(err))
		}
	}()

	messageBroker, err := broker.NewKafkaBroker(broker.Config{Brokers: cfg.KafkaBrokers})
	if err != nil {
		logger.L().Fatal("Failed to initialize Kafka broker", zap.Error(err))
	}
	defer func() {
		if err := messageBroker.Close(); err != nil {
			logger.L().Error("Error closing kafka broker", zap.Error(err))
		}
	}()

	validator := validatepayload.NewValidatePayloadUseCase(
		domain.AccountTier(cfg.DefaultAccountTier), cfg.MaxBatchSize, cfg.BatchConcurrency,
	)
	queueValidator := queuevalidator.NewQueueValidator(messageBroker, validator, configs.GetQueueValidatorConfig())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		if err := queueValidator.Handle(ctx); err != nil {
			logger.L().Error("Kafka consumer Handle exited with error", zap.Error(err))
		} else {
			logger.L().Info("Kafka consumer Handle exited cleanly.")
		}
	}()

	select {
	case sig := <-sigChan:
		logger.L().Info("Received signal, shutting down gracefully...", zap.String("signal", sig.String()))
	case <-consumerDone:
		logger.L().Warn("Kafka consumer stopped unexpectedly, shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.L().Error("Metrics server shutdown error", zap.Error(err))
	}

	cancel()
	logger.L().Info("Waiting for Kafka consumer to stop...")
	<-consumerDone

	logger.L().Info("Notification validator consumer shut down complete.")
}
