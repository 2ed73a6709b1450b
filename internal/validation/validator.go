// Package validation checks untyped notification payloads against the
// versioned per-channel field rules.
//
// Everything in this package is pure: no I/O, no shared mutable state, and the
// input payload is never modified. Calls may run concurrently without
// coordination.
package validation

import "github.com/medeiros-dev/notification-validator/internal/domain"

// Report is the detailed outcome of a validation, for callers that need more
// than the result (metrics, routing).
type Report struct {
	Variant    domain.Variant
	Recognized bool
	// Reason is set when the shape was not recognized.
	Reason     string
	Shape      Shape
	Violations []Violation
	Result     domain.ValidationResult
}

// Check discriminates raw and, if its variant is recognized, checks its
// fields. An unrecognized shape short-circuits with a single error.
func Check(raw any, flags domain.FeatureFlags, tier domain.AccountTier) Report {
	shape, err := Discriminate(raw)
	if err != nil {
		return Report{Reason: err.Error(), Result: domain.NewValidationResult([]string{err.Error()})}
	}
	violations := CheckFields(shape, flags, tier)
	return Report{
		Variant:    shape.Variant,
		Recognized: true,
		Shape:      shape,
		Violations: violations,
		Result:     domain.NewValidationResult(Messages(violations)),
	}
}

// Validate returns whether raw is a valid payload under flags and tier, with
// every reason it is not.
func Validate(raw any, flags domain.FeatureFlags, tier domain.AccountTier) domain.ValidationResult {
	return Check(raw, flags, tier).Result
}

// Parse validates raw and, when it is valid, returns the typed payload. The
// payload is nil for invalid input.
func Parse(raw any, flags domain.FeatureFlags, tier domain.AccountTier) (domain.Payload, domain.ValidationResult) {
	report := Check(raw, flags, tier)
	if !report.Result.Valid {
		return nil, report.Result
	}
	return Decode(report.Shape), report.Result
}
