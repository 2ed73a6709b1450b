package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Variant label used when a payload's shape is not recognized.
const UnrecognizedVariant = "unrecognized"

var (
	ValidationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_validator_validations_total",
			Help: "Total number of payload validations, labeled by variant and outcome.",
		},
		[]string{"variant", "valid"},
	)

	ViolationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_validator_violations_total",
			Help: "Total number of field violations reported, labeled by variant, field and kind.",
		},
		[]string{"variant", "field", "kind"},
	)

	UnrecognizedShapesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_validator_unrecognized_shapes_total",
			Help: "Total number of payloads whose version or notificationType could not be determined, labeled by reason.",
		},
		[]string{"reason"},
	)

	ValidationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "notification_validator_validation_duration_seconds",
			Help:    "Histogram of single payload validation durations.",
			Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
		},
	)

	HttpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_validator_http_requests_total",
			Help: "Total number of HTTP requests processed, labeled by endpoint and status code.",
		},
		[]string{"endpoint", "status"},
	)

	HttpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "notification_validator_http_request_duration_seconds",
			Help:    "Histogram of latencies for HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	KafkaPublishTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_validator_kafka_publish_total",
			Help: "Total number of Kafka publish attempts, labeled by destination and result.",
		},
		[]string{"destination", "result"},
	)

	KafkaPublishDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "notification_validator_kafka_publish_duration_seconds",
			Help:    "Histogram of Kafka publish durations.",
			Buckets: prometheus.DefBuckets,
		},
	)

	MessagesReceived = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "notification_validator_messages_received_total",
			Help: "Total number of messages received and unmarshalled from the broker.",
		},
	)

	MessagesRetried = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_validator_messages_retried_total",
			Help: "Total number of messages sent for retry, by variant.",
		},
		[]string{"variant"},
	)

	MessagesDLQ = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_validator_messages_dlq_total",
			Help: "Total number of messages moved to the Dead Letter Queue, by cause.",
		},
		[]string{"cause"},
	)

	ProcessingDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "notification_validator_message_processing_duration_seconds",
			Help:    "Histogram of message processing duration in seconds, by success status.",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"success"},
	)

	registerOnce sync.Once
)

// InitMetrics registers the collectors with the default registry. Calling it
// more than once is a no-op.
func InitMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			ValidationsTotal,
			ViolationsTotal,
			UnrecognizedShapesTotal,
			ValidationDuration,
			HttpRequestsTotal,
			HttpRequestDuration,
			KafkaPublishTotal,
			KafkaPublishDuration,
			MessagesReceived,
			MessagesRetried,
			MessagesDLQ,
			ProcessingDuration,
		)
	})
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// ObserveProcessing records how long one queued message took.
func ObserveProcessing(success bool, start time.Time) {
	ProcessingDuration.WithLabelValues(strconv.FormatBool(success)).Observe(time.Since(start).Seconds())
}
