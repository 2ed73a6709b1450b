package validatepayload

import (
	"github.com/medeiros-dev/notification-validator/configs"
	"github.com/medeiros-dev/notification-validator/internal/domain"
)

func NewValidatePayloadUseCaseFromConfig(cfg *configs.Config) ValidatePayloadUseCase {
	return NewValidatePayloadUseCase(domain.AccountTier(cfg.DefaultAccountTier), cfg.MaxBatchSize, cfg.BatchConcurrency)
}

func NewValidatePayload(cfg *configs.Config) *ValidatePayloadHandler {
	return NewValidatePayloadHandler(NewValidatePayloadUseCaseFromConfig(cfg))
}
