package domain

// ValidationResult is the outcome of validating one payload. Errors is empty
// exactly when Valid is true.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

func NewValidationResult(errs []string) ValidationResult {
	if errs == nil {
		errs = []string{}
	}
	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// ValidationRequest is the envelope accepted by the HTTP API and the queue
// validator: an untyped payload plus the context it is validated under.
type ValidationRequest struct {
	Payload      any          `json:"payload"`
	FeatureFlags FeatureFlags `json:"featureFlags"`
	AccountTier  AccountTier  `json:"accountTier"`
}
