package validation

import (
	"fmt"

	"github.com/medeiros-dev/notification-validator/internal/domain"
)

// lookup treats an explicit null the same as an absent key.
func lookup(raw map[string]any, name string) (any, bool) {
	value, ok := raw[name]
	if !ok || value == nil {
		return nil, false
	}
	return value, true
}

// CheckFields walks the rules of shape's variant and returns every violation,
// in rule order. Fields not named by the rules are ignored. A conditional
// field that is absent is never an error.
func CheckFields(shape Shape, flags domain.FeatureFlags, tier domain.AccountTier) []Violation {
	rules, ok := Rules(shape.Variant)
	if !ok {
		panic(fmt.Sprintf("validation: no field rules for variant %s", shape.Variant))
	}

	var violations []Violation
	for _, rule := range rules {
		value, present := lookup(shape.Raw, rule.Name)
		switch rule.Kind {
		case Required:
			if !present || !rule.Type.Accepts(value) {
				violations = append(violations, Violation{Field: rule.Name, Kind: MissingRequiredField})
			}
		case Optional:
			if present && !rule.Type.Accepts(value) {
				violations = append(violations, Violation{Field: rule.Name, Kind: TypeMismatch})
			}
		case Conditional:
			if !present {
				continue
			}
			if !rule.Type.Accepts(value) {
				violations = append(violations, Violation{Field: rule.Name, Kind: TypeMismatch})
			}
			if !rule.Condition(shape.Variant.Version, flags, tier) {
				violations = append(violations, Violation{Field: rule.Name, Kind: ConditionNotMet})
			}
		}
	}
	return violations
}
