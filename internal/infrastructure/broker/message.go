package broker

import (
	"context"
	"fmt"
	"time"

	"github.com/medeiros-dev/notification-validator/internal/domain"
	"github.com/medeiros-dev/notification-validator/internal/domain/port/broker"
	"github.com/medeiros-dev/notification-validator/internal/observability/metrics"
	"github.com/medeiros-dev/notification-validator/internal/validation"
	"github.com/medeiros-dev/notification-validator/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
)

// KafkaMessage wraps a kafka-go message and implements broker.Message.
type KafkaMessage struct {
	broker       *KafkaBroker
	kafkaMsg     kafka.Message
	unmarshalled domain.ValidationRequest
}

func (m *KafkaMessage) Data() domain.ValidationRequest {
	return m.unmarshalled
}

func (m *KafkaMessage) Headers() []kafka.Header {
	return m.kafkaMsg.Headers
}

func (m *KafkaMessage) GetRetryCount() int {
	return getRetryCount(m.kafkaMsg.Headers)
}

// Ack commits the offset for the current message.
func (m *KafkaMessage) Ack(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Debug("Acknowledging Kafka message (committing offset)",
		zap.Int64("offset", m.kafkaMsg.Offset),
		zap.String("topic", m.kafkaMsg.Topic),
	)
	err := m.broker.reader.CommitMessages(ctx, m.kafkaMsg)
	if err != nil {
		log.Error("Failed to commit Kafka message offset",
			zap.Int64("offset", m.kafkaMsg.Offset),
			zap.String("topic", m.kafkaMsg.Topic),
			zap.Error(err),
		)
	}
	return err
}

// Forward publishes the original request to the valid topic and commits it.
func (m *KafkaMessage) Forward(ctx context.Context, variant string, validationID string) error {
	log := logger.FromContext(ctx)

	headers := setHeader(m.kafkaMsg.Headers, VariantHeader, variant)
	headers = setHeader(headers, ValidationIDHeader, validationID)
	propagation.TraceContext{}.Inject(ctx, broker.HeaderCarrier{Headers: &headers})

	out := kafka.Message{
		Topic:   m.broker.validTopic,
		Key:     m.kafkaMsg.Key,
		Value:   m.kafkaMsg.Value,
		Headers: headers,
		Time:    time.Now(),
	}
	if err := m.broker.publish(ctx, destinationValid, out); err != nil {
		log.Error("Failed to forward valid payload",
			zap.String("validationID", validationID),
			zap.String("validTopic", m.broker.validTopic),
			zap.Error(err),
		)
		return fmt.Errorf("failed to forward message: %w", err)
	}

	if err := m.Ack(ctx); err != nil {
		return fmt.Errorf("failed to ack original message after forward: %w", err)
	}

	log.Info("Valid payload forwarded",
		zap.String("validationID", validationID),
		zap.String("variant", variant),
		zap.String("validTopic", m.broker.validTopic),
	)
	return nil
}

// Retry waits for delay, republishes the message on its original topic with
// an incremented retry count and commits the original.
func (m *KafkaMessage) Retry(ctx context.Context, delay time.Duration) error {
	log := logger.FromContext(ctx)
	nextRetryCount := m.GetRetryCount() + 1

	log.Info("Preparing message for retry",
		zap.Int64("offset", m.kafkaMsg.Offset),
		zap.String("topic", m.kafkaMsg.Topic),
		zap.Int("nextRetryCount", nextRetryCount),
		zap.Duration("delay", delay),
	)

	if delay > 0 {
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-timer.C:
		}
	}

	headers := updateRetryHeader(m.kafkaMsg.Headers, nextRetryCount)
	propagation.TraceContext{}.Inject(ctx, broker.HeaderCarrier{Headers: &headers})

	retryMsg := kafka.Message{
		Topic:   m.kafkaMsg.Topic,
		Key:     m.kafkaMsg.Key,
		Value:   m.kafkaMsg.Value,
		Headers: headers,
		Time:    time.Now(),
	}
	if err := m.broker.publish(ctx, destinationRetry, retryMsg); err != nil {
		log.Error("Failed to publish retry message", zap.Error(err))
		return fmt.Errorf("failed to publish retry message: %w", err)
	}

	metrics.MessagesRetried.WithLabelValues(m.variantLabel()).Inc()

	if err := m.Ack(ctx); err != nil {
		return fmt.Errorf("failed to ack original message after retry: %w", err)
	}

	log.Info("Retry message published and original message acknowledged",
		zap.Int("nextRetryCount", nextRetryCount),
	)
	return nil
}

// MoveToDLQ publishes the message to the DLQ topic with reason in the
// x-dlq-reason header. Without a DLQ topic the message is only committed.
func (m *KafkaMessage) MoveToDLQ(ctx context.Context, cause string, reason error) error {
	log := logger.FromContext(ctx)
	currentAttempt := m.GetRetryCount()

	if m.broker.dlqTopic == "" {
		log.Warn("DLQ topic not configured. Discarding message.",
			zap.String("cause", cause),
			zap.Error(reason),
		)
		metrics.MessagesDLQ.WithLabelValues(cause).Inc()
		return m.Ack(ctx)
	}

	log.Warn("Moving message to DLQ",
		zap.String("dlqTopic", m.broker.dlqTopic),
		zap.String("cause", cause),
		zap.Int("attempt", currentAttempt),
		zap.Error(reason),
	)

	headers := setHeader(m.kafkaMsg.Headers, DLQReasonHeader, reason.Error())
	headers = updateRetryHeader(headers, currentAttempt)
	propagation.TraceContext{}.Inject(ctx, broker.HeaderCarrier{Headers: &headers})

	dlqMsg := kafka.Message{
		Topic:   m.broker.dlqTopic,
		Key:     m.kafkaMsg.Key,
		Value:   m.kafkaMsg.Value,
		Headers: headers,
		Time:    time.Now(),
	}
	if err := m.broker.publish(ctx, destinationDLQ, dlqMsg); err != nil {
		log.Error("Failed to publish message to DLQ",
			zap.String("dlqTopic", m.broker.dlqTopic),
			zap.Error(err),
		)
		return fmt.Errorf("failed to publish message to DLQ: %w", err)
	}

	metrics.MessagesDLQ.WithLabelValues(cause).Inc()

	if err := m.Ack(ctx); err != nil {
		return fmt.Errorf("failed to ack original message after DLQ: %w", err)
	}

	log.Info("Message published to DLQ and original message acknowledged",
		zap.String("dlqTopic", m.broker.dlqTopic),
	)
	return nil
}

func (m *KafkaMessage) variantLabel() string {
	shape, err := validation.Discriminate(m.unmarshalled.Payload)
	if err != nil {
		return metrics.UnrecognizedVariant
	}
	return shape.Variant.String()
}
