package validatepayload

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/medeiros-dev/notification-validator/internal/domain"
	"github.com/medeiros-dev/notification-validator/internal/interfaces"
	"github.com/medeiros-dev/notification-validator/internal/observability/metrics"
	"github.com/medeiros-dev/notification-validator/internal/observability/tracing"
	"github.com/medeiros-dev/notification-validator/internal/validation"
	"github.com/medeiros-dev/notification-validator/pkg/logger"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var ErrBatchTooLarge = errors.New("batch exceeds the maximum number of payloads")

// ValidatePayloadUseCase defines the contract for the validate payload use case.
type ValidatePayloadUseCase interface {
	interfaces.PayloadValidator
	Execute(ctx context.Context, input ValidatePayloadInputDTO) (ValidatePayloadOutputDTO, error)
	ExecuteBatch(ctx context.Context, input ValidateBatchInputDTO) (ValidateBatchOutputDTO, error)
}

type validatePayloadUseCase struct {
	defaultTier  domain.AccountTier
	maxBatchSize int
	concurrency  int
}

func NewValidatePayloadUseCase(defaultTier domain.AccountTier, maxBatchSize, concurrency int) ValidatePayloadUseCase {
	if !defaultTier.Valid() {
		defaultTier = domain.AccountTierFree
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	return &validatePayloadUseCase{
		defaultTier:  defaultTier,
		maxBatchSize: maxBatchSize,
		concurrency:  concurrency,
	}
}

// Validate runs the validator on req and records metrics for the outcome.
func (u *validatePayloadUseCase) Validate(ctx context.Context, req domain.ValidationRequest) validation.Report {
	_, span := tracing.Tracer.Start(ctx, "ValidatePayloadUseCase.Validate")
	defer span.End()

	tier := req.AccountTier
	if tier == "" {
		tier = u.defaultTier
	}

	start := time.Now()
	report := validation.Check(req.Payload, req.FeatureFlags, tier)
	metrics.ValidationDuration.Observe(time.Since(start).Seconds())

	variant := metrics.UnrecognizedVariant
	if report.Recognized {
		variant = report.Variant.String()
	} else {
		metrics.UnrecognizedShapesTotal.WithLabelValues(report.Reason).Inc()
	}
	metrics.ValidationsTotal.WithLabelValues(variant, strconv.FormatBool(report.Result.Valid)).Inc()
	for _, v := range report.Violations {
		metrics.ViolationsTotal.WithLabelValues(variant, v.Field, v.Kind.String()).Inc()
	}

	span.SetAttributes(
		attribute.String("notification.variant", variant),
		attribute.Bool("validation.valid", report.Result.Valid),
		attribute.Int("validation.errors", len(report.Result.Errors)),
	)

	logger.FromContext(ctx).Debug("Payload validated",
		zap.String("variant", variant),
		zap.String("accountTier", string(tier)),
		zap.Bool("valid", report.Result.Valid),
		zap.Strings("errors", report.Result.Errors),
	)
	return report
}

func (u *validatePayloadUseCase) Execute(ctx context.Context, input ValidatePayloadInputDTO) (ValidatePayloadOutputDTO, error) {
	ctx, span := tracing.Tracer.Start(ctx, "ValidatePayloadUseCase.Execute")
	defer span.End()

	if err := ctx.Err(); err != nil {
		return ValidatePayloadOutputDTO{}, err
	}
	return u.output(ctx, input), nil
}

// ExecuteBatch validates every item concurrently. Results keep the input order.
func (u *validatePayloadUseCase) ExecuteBatch(ctx context.Context, input ValidateBatchInputDTO) (ValidateBatchOutputDTO, error) {
	ctx, span := tracing.Tracer.Start(ctx, "ValidatePayloadUseCase.ExecuteBatch")
	defer span.End()
	span.SetAttributes(attribute.Int("batch.size", len(input.Items)))

	if u.maxBatchSize > 0 && len(input.Items) > u.maxBatchSize {
		return ValidateBatchOutputDTO{}, ErrBatchTooLarge
	}

	results := make([]ValidatePayloadOutputDTO, len(input.Items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.concurrency)
	for i, item := range input.Items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = u.output(gctx, item)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ValidateBatchOutputDTO{}, err
	}

	out := ValidateBatchOutputDTO{Results: results}
	for _, r := range results {
		if r.Valid {
			out.Valid++
		} else {
			out.Invalid++
		}
	}
	return out, nil
}

func (u *validatePayloadUseCase) output(ctx context.Context, input ValidatePayloadInputDTO) ValidatePayloadOutputDTO {
	report := u.Validate(ctx, input.request())
	out := ValidatePayloadOutputDTO{
		ID:               uuid.New().String(),
		ValidationResult: report.Result,
	}
	if report.Recognized {
		out.Variant = report.Variant.String()
	}
	return out
}
