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

	"github.com/gin-gonic/gin"
	"github.com/medeiros-dev/notification-validator/configs"
	"github.com/medeiros-dev/notification-validator/internal/observability/metrics"
	"github.com/medeiros-dev/notification-validator/internal/observability/tracing"
	"github.com/medeiros-dev/notification-validator/internal/usecases/validatepayload"
	"github.com/medeiros-dev/notification-validator/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := configs.NewConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.InitializeLogger(cfg.LogDevelopment); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			log.Printf("Error syncing logger: %v", err)
		}
	}()

	if cfg.OtelEndpoint != "" {
		if _, err := tracing.InitTracer(cfg); err != nil {
			logger.L().Fatal("Failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			tracing.ShutdownTracer(shutdownCtx)
		}()
	} else {
		logger.L().Info("OTEL_EXPORTER_OTLP_ENDPOINT not set, spans are not exported")
	}

	metrics.InitMetrics()

	if !cfg.LogDevelopment {
		gin.SetMode(gin.ReleaseMode)
	}
	router := newRouter(cfg.OtelServiceName, validatepayload.NewValidatePayload(cfg))

	server := &http.Server{
		Addr:              cfg.HTTPServerAddress,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.L().Info("Server starting",
			zap.String("address", cfg.HTTPServerAddress),
			zap.String("defaultAccountTier", cfg.DefaultAccountTier),
			zap.Int("maxBatchSize", cfg.MaxBatchSize),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal("Failed to start server", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	logger.L().Info("Received signal, shutting down gracefully...", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Error("Server shutdown error", zap.Error(err))
	}
	logger.L().Info("Notification validator API shut down complete.")
}
