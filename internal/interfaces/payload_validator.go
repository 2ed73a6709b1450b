package interfaces

import (
	"context"

	"github.com/medeiros-dev/notification-validator/internal/domain"
	"github.com/medeiros-dev/notification-validator/internal/validation"
)

// PayloadValidator validates one request and reports the variant it resolved
// to. The queue validator depends on this rather than on the HTTP use case.
type PayloadValidator interface {
	Validate(ctx context.Context, req domain.ValidationRequest) validation.Report
}
