package validatepayload

import "github.com/medeiros-dev/notification-validator/internal/domain"

// ValidatePayloadInputDTO is one payload with the flags and tier it is
// validated under. An empty tier falls back to DEFAULT_ACCOUNT_TIER.
type ValidatePayloadInputDTO struct {
	Payload      any                 `json:"payload"`
	FeatureFlags domain.FeatureFlags `json:"featureFlags"`
	AccountTier  string              `json:"accountTier" binding:"omitempty,oneof=free premium"`
}

func (in ValidatePayloadInputDTO) request() domain.ValidationRequest {
	return domain.ValidationRequest{
		Payload:      in.Payload,
		FeatureFlags: in.FeatureFlags,
		AccountTier:  domain.AccountTier(in.AccountTier),
	}
}

type ValidatePayloadOutputDTO struct {
	ID      string `json:"id"`
	Variant string `json:"variant,omitempty"`
	domain.ValidationResult
}

type ValidateBatchInputDTO struct {
	Items []ValidatePayloadInputDTO `json:"items" binding:"required,dive"`
}

type ValidateBatchOutputDTO struct {
	Results []ValidatePayloadOutputDTO `json:"results"`
	Valid   int                        `json:"valid"`
	Invalid int                        `json:"invalid"`
}
