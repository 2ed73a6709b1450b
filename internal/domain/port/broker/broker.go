package broker

import (
	"context"
	"time"

	"github.com/medeiros-dev/notification-validator/internal/domain"
	"github.com/segmentio/kafka-go"
)

// Causes recorded when a message is moved to the Dead Letter Queue.
const (
	CauseInvalidPayload   = "invalid_payload"
	CauseUnmarshal        = "unmarshal_error"
	CauseRetriesExhausted = "retries_exhausted"
	CausePanic            = "panic"
)

// Message is one validation request fetched from the broker, together with
// the operations that settle it (Ack, Forward, Retry, MoveToDLQ).
type Message interface {
	// Data returns the unmarshalled validation request.
	Data() domain.ValidationRequest
	// GetRetryCount returns how many times the message was already retried.
	GetRetryCount() int
	// Headers returns the message headers (e.g., for trace propagation).
	Headers() []kafka.Header
	// Ack commits the message without publishing anything.
	Ack(ctx context.Context) error
	// Forward publishes the payload to the valid topic, tagged with its
	// variant and validation id, and acknowledges the original.
	Forward(ctx context.Context, variant string, validationID string) error
	// Retry republishes the message with an incremented retry count after delay.
	Retry(ctx context.Context, delay time.Duration) error
	// MoveToDLQ publishes the message to the Dead Letter Queue with reason as
	// the x-dlq-reason header and acknowledges the original.
	MoveToDLQ(ctx context.Context, cause string, reason error) error
}

// MessageBroker consumes validation requests from the broker.
type MessageBroker interface {
	// Consume runs the fetch loop until ctx is cancelled, handing each
	// decoded message to consumeFunc. consumeFunc settles the message itself.
	Consume(ctx context.Context, consumeFunc func(ctx context.Context, msg Message) error) error
	// Close releases the reader and writer.
	Close() error
}

// HeaderCarrier adapts kafka-go headers to OpenTelemetry's TextMapCarrier so
// trace context can be injected into and extracted from messages.
type HeaderCarrier struct {
	Headers *[]kafka.Header
}

func (c HeaderCarrier) Get(key string) string {
	for _, h := range *c.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c HeaderCarrier) Set(key, value string) {
	for i, h := range *c.Headers {
		if h.Key == key {
			(*c.Headers)[i].Value = []byte(value)
			return
		}
	}
	*c.Headers = append(*c.Headers, kafka.Header{Key: key, Value: []byte(value)})
}

func (c HeaderCarrier) Keys() []string {
	keys := make([]string, 0, len(*c.Headers))
	for _, h := range *c.Headers {
		keys = append(keys, h.Key)
	}
	return keys
}
