package queuevalidator

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/medeiros-dev/notification-validator/internal/domain/port/broker"
	"github.com/medeiros-dev/notification-validator/internal/interfaces"
	"github.com/medeiros-dev/notification-validator/internal/observability/metrics"
	"github.com/medeiros-dev/notification-validator/internal/observability/tracing"
	"github.com/medeiros-dev/notification-validator/pkg/backoff"
	"github.com/medeiros-dev/notification-validator/pkg/logger"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const DefaultMaxRetries = 3

// errorSeparator joins validation errors into the x-dlq-reason header.
const errorSeparator = "; "

type QueueValidatorUseCase struct {
	messageBroker broker.MessageBroker
	validator     interfaces.PayloadValidator
	maxRetries    int
	baseDelay     time.Duration
	semaphore     chan struct{}
	inFlight      sync.WaitGroup
}

func NewQueueValidatorUseCase(
	messageBroker broker.MessageBroker,
	validator interfaces.PayloadValidator,
	maxRetries int,
	baseDelay time.Duration,
	semaphore chan struct{},
) *QueueValidatorUseCase {
	if maxRetries <= 0 {
		logger.L().Warn("Invalid maxRetries provided, defaulting",
			zap.Int("providedMaxRetries", maxRetries),
			zap.Int("defaultMaxRetries", DefaultMaxRetries),
		)
		maxRetries = DefaultMaxRetries
	}
	if cap(semaphore) == 0 {
		semaphore = make(chan struct{}, 1)
	}
	return &QueueValidatorUseCase{
		messageBroker: messageBroker,
		validator:     validator,
		maxRetries:    maxRetries,
		baseDelay:     baseDelay,
		semaphore:     semaphore,
	}
}

// Execute consumes until ctx is cancelled, validating each message on a
// bounded pool of goroutines. It returns once in-flight messages are settled.
func (u *QueueValidatorUseCase) Execute(ctx context.Context) error {
	consumeFunc := func(ctx context.Context, msg broker.Message) error {
		u.semaphore <- struct{}{}

		headers := msg.Headers()
		parentCtx := propagation.TraceContext{}.Extract(ctx, broker.HeaderCarrier{Headers: &headers})
		consumerCtx, span := tracing.Tracer.Start(parentCtx, "QueueValidator.processMessage", trace.WithSpanKind(trace.SpanKindConsumer))

		u.inFlight.Add(1)
		go func(processingCtx context.Context, message broker.Message) {
			defer u.inFlight.Done()
			defer span.End()
			defer func() { <-u.semaphore }()

			u.processMessage(processingCtx, message)
		}(consumerCtx, msg)

		return nil
	}

	logger.L().Info("QueueValidatorUseCase starting consumption...")
	err := u.messageBroker.Consume(ctx, consumeFunc)
	u.inFlight.Wait()
	return err
}

// processMessage validates one message and settles it: valid payloads are
// forwarded, invalid ones are moved to the DLQ with their errors.
func (u *QueueValidatorUseCase) processMessage(ctx context.Context, msg broker.Message) {
	log := logger.FromContext(ctx)
	startTime := time.Now()

	defer func() {
		if r := recover(); r != nil {
			log.Error("CRITICAL: Panic recovered in processMessage",
				zap.Any("panicValue", r),
				zap.String("stacktrace", string(debug.Stack())),
			)
			metrics.ObserveProcessing(false, startTime)
			panicErr := fmt.Errorf("panic recovered: %v", r)
			if dlqErr := msg.MoveToDLQ(context.Background(), broker.CausePanic, panicErr); dlqErr != nil {
				log.Error("Failed to move message to DLQ after panic", zap.Error(dlqErr))
			}
		}
	}()

	currentAttempt := msg.GetRetryCount() + 1
	report := u.validator.Validate(ctx, msg.Data())

	if !report.Result.Valid {
		reason := errors.New(strings.Join(report.Result.Errors, errorSeparator))
		log.Info("Payload invalid, moving message to DLQ",
			zap.Strings("errors", report.Result.Errors),
			zap.Int("attempt", currentAttempt),
		)
		if err := msg.MoveToDLQ(ctx, broker.CauseInvalidPayload, reason); err != nil {
			log.Error("Error moving invalid payload to DLQ", zap.Error(err))
		}
		metrics.ObserveProcessing(false, startTime)
		return
	}

	variant := report.Variant.String()
	validationID := uuid.New().String()
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("notification.variant", variant),
		attribute.String("validation.id", validationID),
	)

	if err := msg.Forward(ctx, variant, validationID); err != nil {
		metrics.ObserveProcessing(false, startTime)
		u.handleForwardError(ctx, msg, err, currentAttempt)
		return
	}

	log.Info("Payload valid, forwarded",
		zap.String("variant", variant),
		zap.String("validationID", validationID),
		zap.Int("attempt", currentAttempt),
	)
	metrics.ObserveProcessing(true, startTime)
}

// handleForwardError retries with backoff while attempts remain and moves the
// message to the DLQ otherwise.
func (u *QueueValidatorUseCase) handleForwardError(ctx context.Context, msg broker.Message, forwardErr error, currentAttempt int) {
	log := logger.FromContext(ctx)
	log.Error("Error forwarding valid payload",
		zap.Int("attempt", currentAttempt),
		zap.Int("maxRetries", u.maxRetries),
		zap.Error(forwardErr),
	)

	if currentAttempt < u.maxRetries {
		delay := backoff.CalculateRetryDelay(currentAttempt+1, u.baseDelay)
		log.Info("Scheduling retry",
			zap.Int("attempt", currentAttempt+1),
			zap.Duration("backoffDuration", delay),
		)
		retryErr := msg.Retry(ctx, delay)
		if retryErr == nil {
			return
		}
		log.Error("Failed to schedule retry, moving to DLQ",
			zap.Error(retryErr),
			zap.NamedError("forwardError", forwardErr),
		)
		forwardErr = fmt.Errorf("failed to schedule retry: %w; forward error: %w", retryErr, forwardErr)
	} else {
		log.Warn("Max retries reached, moving to DLQ",
			zap.Int("attempt", currentAttempt),
			zap.Int("maxRetries", u.maxRetries),
		)
	}

	if dlqErr := msg.MoveToDLQ(ctx, broker.CauseRetriesExhausted, forwardErr); dlqErr != nil {
		log.Error("Critical: Failed to move message to DLQ after forward failure", zap.Error(dlqErr))
	}
}
