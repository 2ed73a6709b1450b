package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/medeiros-dev/notification-validator/internal/observability/metrics"
	"github.com/medeiros-dev/notification-validator/internal/usecases/validatepayload"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func newRouter(serviceName string, validateHandler *validatepayload.ValidatePayloadHandler) *gin.Engine {
	srv := gin.New()
	srv.Use(gin.Recovery())
	srv.Use(otelgin.Middleware(serviceName))
	srv.Use(httpMetricsMiddleware())

	validateHandler.RegisterRoutes(srv)

	srv.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	srv.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	return srv
}

// httpMetricsMiddleware records request counts and latencies per route.
// Scrapes of /metrics are not recorded.
func httpMetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		if endpoint == "/metrics" {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		status := c.Writer.Status()
		metrics.HttpRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
		metrics.HttpRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}
}
