package validation

type ViolationKind int

const (
	MissingRequiredField ViolationKind = iota + 1
	TypeMismatch
	ConditionNotMet
)

// Reason is the text appended to the field name in error messages.
func (k ViolationKind) Reason() string {
	switch k {
	case MissingRequiredField:
		return "is required"
	case TypeMismatch:
		return "has invalid type"
	case ConditionNotMet:
		return "is not allowed under current flags/tier"
	}
	return "is invalid"
}

// String returns a label-friendly name, used for metrics.
func (k ViolationKind) String() string {
	switch k {
	case MissingRequiredField:
		return "missing_required_field"
	case TypeMismatch:
		return "type_mismatch"
	case ConditionNotMet:
		return "condition_not_met"
	}
	return "unknown"
}

// Violation is one problem found on one field.
type Violation struct {
	Field string
	Kind  ViolationKind
}

func (v Violation) String() string {
	return v.Field + " " + v.Kind.Reason()
}

// Messages renders violations in order.
func Messages(violations []Violation) []string {
	msgs := make([]string, 0, len(violations))
	for _, v := range violations {
		msgs = append(msgs, v.String())
	}
	return msgs
}
