package broker

import (
	"strconv"

	"github.com/medeiros-dev/notification-validator/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	RetryHeader        = "x-retry-count"
	DLQReasonHeader    = "x-dlq-reason"
	VariantHeader      = "x-notification-variant"
	ValidationIDHeader = "x-validation-id"
)

// getRetryCount reads the retry header. A missing or malformed value is 0.
func getRetryCount(headers []kafka.Header) int {
	for _, h := range headers {
		if h.Key == RetryHeader {
			count, err := strconv.Atoi(string(h.Value))
			if err == nil {
				return count
			}
			logger.L().Warn("Invalid retry header value",
				zap.String("headerKey", RetryHeader),
				zap.ByteString("headerValue", h.Value),
				zap.Error(err),
			)
			return 0
		}
	}
	return 0
}

// setHeader returns a copy of headers with key set to value, replacing an
// existing entry in place or appending a new one.
func setHeader(headers []kafka.Header, key, value string) []kafka.Header {
	newHeaders := make([]kafka.Header, 0, len(headers)+1)
	found := false
	for _, h := range headers {
		if h.Key == key {
			newHeaders = append(newHeaders, kafka.Header{Key: key, Value: []byte(value)})
			found = true
			continue
		}
		newHeaders = append(newHeaders, h)
	}
	if !found {
		newHeaders = append(newHeaders, kafka.Header{Key: key, Value: []byte(value)})
	}
	return newHeaders
}

func updateRetryHeader(headers []kafka.Header, retryCount int) []kafka.Header {
	return setHeader(headers, RetryHeader, strconv.Itoa(retryCount))
}
