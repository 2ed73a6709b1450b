package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/medeiros-dev/notification-validator/configs"
	"github.com/medeiros-dev/notification-validator/internal/domain"
	"github.com/medeiros-dev/notification-validator/internal/domain/port/broker"
	"github.com/medeiros-dev/notification-validator/internal/observability/metrics"
	"github.com/medeiros-dev/notification-validator/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Publish destinations, used as metric labels.
const (
	destinationValid = "valid"
	destinationRetry = "retry"
	destinationDLQ   = "dlq"
)

const publishTimeout = 10 * time.Second

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaBroker implements broker.MessageBroker on kafka-go. A single reader
// consumes the request topic; a single writer publishes to the valid, retry
// and DLQ destinations.
type KafkaBroker struct {
	writer     messageWriter
	reader     messageReader
	topic      string
	groupID    string
	validTopic string
	dlqTopic   string
	mu         sync.Mutex
}

type Config struct {
	Brokers []string
}

func NewKafkaBroker(cfg Config) (*KafkaBroker, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers cannot be empty")
	}

	appConfig := configs.GetConfig()
	if appConfig == nil {
		return nil, errors.New("configuration not loaded")
	}
	if appConfig.KafkaTopic == "" {
		return nil, fmt.Errorf("KAFKA_TOPIC must be set")
	}
	if appConfig.KafkaGroupID == "" {
		return nil, fmt.Errorf("KAFKA_GROUP_ID must be set")
	}
	if appConfig.KafkaValidTopic == "" {
		return nil, fmt.Errorf("KAFKA_VALID_TOPIC must be set")
	}
	if appConfig.KafkaDLQTopic == "" {
		logger.L().Warn("KAFKA_DLQ_TOPIC is not set. Invalid and failed messages will be discarded.")
	}

	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		Topic:          appConfig.KafkaTopic,
		GroupID:        appConfig.KafkaGroupID,
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		CommitInterval: 0,    // commits are explicit
	})

	logger.L().Info("Kafka Broker initialized",
		zap.String("topic", appConfig.KafkaTopic),
		zap.String("groupID", appConfig.KafkaGroupID),
		zap.String("validTopic", appConfig.KafkaValidTopic),
		zap.String("dlqTopic", appConfig.KafkaDLQTopic),
		zap.Strings("brokers", cfg.Brokers),
	)

	return newKafkaBroker(r, w, appConfig.KafkaTopic, appConfig.KafkaGroupID, appConfig.KafkaValidTopic, appConfig.KafkaDLQTopic), nil
}

func newKafkaBroker(r messageReader, w messageWriter, topic, groupID, validTopic, dlqTopic string) *KafkaBroker {
	return &KafkaBroker{
		reader:     r,
		writer:     w,
		topic:      topic,
		groupID:    groupID,
		validTopic: validTopic,
		dlqTopic:   dlqTopic,
	}
}

// Consume fetches messages until ctx is cancelled. Messages that cannot be
// decoded as a validation request are moved to the DLQ without reaching
// consumeFunc.
func (kb *KafkaBroker) Consume(
	ctx context.Context,
	consumeFunc func(ctx context.Context, msg broker.Message) error,
) error {
	logger.L().Info("Starting Kafka consumer loop",
		zap.String("topic", kb.topic),
		zap.String("groupID", kb.groupID),
	)

	for {
		message, err := kb.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				logger.L().Info("Context cancelled, stopping consumer loop",
					zap.String("topic", kb.topic),
					zap.Error(err),
				)
				return nil
			}
			logger.L().Error("Error fetching message from Kafka, continuing loop",
				zap.String("topic", kb.topic),
				zap.Error(err),
			)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(time.Second):
			}
			continue
		}

		logger.L().Debug("Fetched Kafka message",
			zap.String("topic", message.Topic),
			zap.Int("partition", message.Partition),
			zap.Int64("offset", message.Offset),
			zap.ByteString("key", message.Key),
		)

		processingCtx := propagation.TraceContext{}.Extract(ctx, broker.HeaderCarrier{Headers: &message.Headers})

		var data domain.ValidationRequest
		if err := json.Unmarshal(message.Value, &data); err != nil {
			logger.FromContext(processingCtx).Error("Error unmarshalling message, moving to DLQ",
				zap.String("topic", message.Topic),
				zap.Int64("offset", message.Offset),
				zap.Error(err),
			)
			poison := &KafkaMessage{broker: kb, kafkaMsg: message}
			if dlqErr := poison.MoveToDLQ(processingCtx, broker.CauseUnmarshal, fmt.Errorf("unmarshalling error: %w", err)); dlqErr != nil {
				logger.L().Error("Failed to move undecodable message to DLQ. Message may be redelivered.",
					zap.Int64("offset", message.Offset),
					zap.Error(dlqErr),
				)
			}
			continue
		}

		metrics.MessagesReceived.Inc()

		appMsg := &KafkaMessage{
			broker:       kb,
			kafkaMsg:     message,
			unmarshalled: data,
		}

		if err := consumeFunc(processingCtx, appMsg); err != nil {
			logger.FromContext(processingCtx).Error("Error returned by consumeFunc",
				zap.Int64("offset", message.Offset),
				zap.String("topic", message.Topic),
				zap.Error(err),
			)
		}

		if ctx.Err() != nil {
			logger.L().Info("Context cancelled during processing, stopping consumer loop",
				zap.String("topic", kb.topic),
			)
			return nil
		}
	}
}

// publish writes msg and records the outcome under destination.
func (kb *KafkaBroker) publish(ctx context.Context, destination string, msg kafka.Message) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	start := time.Now()
	err := kb.writer.WriteMessages(ctxTimeout, msg)
	metrics.KafkaPublishDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.KafkaPublishTotal.WithLabelValues(destination, "error").Inc()
		return err
	}
	metrics.KafkaPublishTotal.WithLabelValues(destination, "success").Inc()
	return nil
}

// Close closes the reader and the writer, returning every error encountered.
func (kb *KafkaBroker) Close() error {
	kb.mu.Lock()
	defer kb.mu.Unlock()

	var err error
	if kb.reader != nil {
		logger.L().Info("Closing Kafka reader...")
		err = multierr.Append(err, kb.reader.Close())
	}
	if kb.writer != nil {
		logger.L().Info("Closing Kafka writer...")
		err = multierr.Append(err, kb.writer.Close())
	}

	if err != nil {
		logger.L().Error("Errors occurred during Kafka resource closing", zap.Error(err))
		return fmt.Errorf("error closing Kafka resources: %w", err)
	}
	logger.L().Info("Kafka resources closed successfully.")
	return nil
}
