package validation

import (
	"fmt"
	"slices"

	"github.com/medeiros-dev/notification-validator/internal/domain"
)

type FieldKind int

const (
	Required FieldKind = iota + 1
	Optional
	Conditional
)

func (k FieldKind) String() string {
	switch k {
	case Required:
		return "required"
	case Optional:
		return "optional"
	case Conditional:
		return "conditional"
	}
	return fmt.Sprintf("FieldKind(%d)", int(k))
}

// FieldType checks the dynamic type of a present value.
type FieldType struct {
	Name    string
	accepts func(value any) bool
}

func (t FieldType) Accepts(value any) bool {
	return t.accepts != nil && t.accepts(value)
}

var (
	String = FieldType{Name: "string", accepts: func(value any) bool {
		_, ok := value.(string)
		return ok
	}}

	// Flags is an object whose known keys, when present, are booleans.
	// Unknown keys are ignored.
	Flags = FieldType{Name: "flags", accepts: acceptsFlags}
)

// Enum accepts strings from a fixed set.
func Enum(values ...string) FieldType {
	return FieldType{
		Name: fmt.Sprintf("enum%v", values),
		accepts: func(value any) bool {
			s, ok := value.(string)
			return ok && slices.Contains(values, s)
		},
	}
}

func acceptsFlags(value any) bool {
	switch v := value.(type) {
	case domain.FeatureFlags, *domain.FeatureFlags:
		return true
	case map[string]any:
		for _, key := range []string{domain.FlagEnableDeepLinks, domain.FlagEnablePriority} {
			flag, present := v[key]
			if !present || flag == nil {
				continue
			}
			if _, ok := flag.(bool); !ok {
				return false
			}
		}
		return true
	}
	return false
}

// FieldRule describes one field of a variant. Condition is set only for
// Conditional fields.
type FieldRule struct {
	Name      string
	Kind      FieldKind
	Type      FieldType
	Condition Condition
}

var (
	eventTypeRule = FieldRule{
		Name: "eventType",
		Kind: Required,
		Type: Enum(string(domain.EventTypeMarketing), string(domain.EventTypeTransactional)),
	}
	featureFlagsRule = FieldRule{Name: "featureFlags", Kind: Optional, Type: Flags}
	deepLinkRule     = FieldRule{Name: "deepLinkUrl", Kind: Conditional, Type: String, Condition: deepLinkCondition}
	priorityRule     = FieldRule{
		Name:      "priority",
		Kind:      Conditional,
		Type:      Enum(string(domain.PriorityNormal), string(domain.PriorityHigh)),
		Condition: PriorityEligible,
	}
)

func required(name string) FieldRule { return FieldRule{Name: name, Kind: Required, Type: String} }
func optional(name string) FieldRule { return FieldRule{Name: name, Kind: Optional, Type: String} }

// ruleTable is declared in message order: errors come out in the order the
// rules are listed here.
var ruleTable = MustRules(map[domain.Variant][]FieldRule{
	domain.VariantEmailV1: {
		eventTypeRule, required("to"), required("subject"), required("body"),
		featureFlagsRule, deepLinkRule,
	},
	domain.VariantPushV1: {
		eventTypeRule, required("deviceToken"), required("message"),
		featureFlagsRule, priorityRule,
	},
	domain.VariantInAppV1: {
		eventTypeRule, required("userId"), required("title"), required("message"),
	},
	domain.VariantEmailV2: {
		eventTypeRule, required("to"), optional("subject"), required("body"),
		featureFlagsRule, optional("footer"), deepLinkRule,
	},
	domain.VariantPushV2: {
		eventTypeRule, required("deviceToken"), required("message"),
		featureFlagsRule, priorityRule,
	},
	domain.VariantInAppV2: {
		eventTypeRule, required("userId"), required("title"), required("message"),
		optional("imageUrl"),
	},
})

// MustRules checks a rule table and panics if it is malformed: an unknown
// variant, a missing variant, a duplicate field, a conditional rule without
// a condition or a non-conditional rule with one.
func MustRules(table map[domain.Variant][]FieldRule) map[domain.Variant][]FieldRule {
	if err := checkRules(table); err != nil {
		panic(err)
	}
	return table
}

func checkRules(table map[domain.Variant][]FieldRule) error {
	known := domain.Variants()
	for variant := range table {
		if !slices.Contains(known, variant) {
			return fmt.Errorf("validation: rules for unknown variant %s", variant)
		}
	}
	for _, variant := range known {
		rules, ok := table[variant]
		if !ok {
			return fmt.Errorf("validation: no rules for variant %s", variant)
		}
		seen := make(map[string]bool, len(rules))
		for _, rule := range rules {
			if rule.Name == "" || rule.Type.accepts == nil {
				return fmt.Errorf("validation: %s has a rule without name or type", variant)
			}
			if seen[rule.Name] {
				return fmt.Errorf("validation: %s declares %q twice", variant, rule.Name)
			}
			seen[rule.Name] = true
			switch rule.Kind {
			case Required, Optional:
				if rule.Condition != nil {
					return fmt.Errorf("validation: %s field %q is %s but has a condition", variant, rule.Name, rule.Kind)
				}
			case Conditional:
				if rule.Condition == nil {
					return fmt.Errorf("validation: %s field %q is conditional without a condition", variant, rule.Name)
				}
			default:
				return fmt.Errorf("validation: %s field %q has kind %s", variant, rule.Name, rule.Kind)
			}
		}
	}
	return nil
}

// Rules returns the field rules for a variant.
func Rules(variant domain.Variant) ([]FieldRule, bool) {
	rules, ok := ruleTable[variant]
	return rules, ok
}
