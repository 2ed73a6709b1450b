package validation

import "github.com/medeiros-dev/notification-validator/internal/domain"

const (
	fieldVersion          = "version"
	fieldNotificationType = "notificationType"

	ReasonInvalidVersion          = "invalid or missing version"
	ReasonInvalidNotificationType = "invalid or missing notificationType"
)

// UnrecognizedShapeError is returned by Discriminate when the payload's
// variant cannot be determined.
type UnrecognizedShapeError struct {
	Reason string
}

func (e *UnrecognizedShapeError) Error() string {
	return e.Reason
}

// Shape is a raw payload whose variant has been resolved. Raw is the caller's
// map, not a copy, and must not be modified.
type Shape struct {
	Variant domain.Variant
	Raw     map[string]any
}

// Discriminate resolves the variant of raw from its version and
// notificationType fields. Input that is not a string-keyed mapping is
// reported as an invalid version, since no version can be read from it.
func Discriminate(raw any) (Shape, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return Shape{}, &UnrecognizedShapeError{Reason: ReasonInvalidVersion}
	}

	version, _ := m[fieldVersion].(string)
	if !domain.Version(version).Valid() {
		return Shape{}, &UnrecognizedShapeError{Reason: ReasonInvalidVersion}
	}

	notificationType, _ := m[fieldNotificationType].(string)
	if !domain.NotificationType(notificationType).Valid() {
		return Shape{}, &UnrecognizedShapeError{Reason: ReasonInvalidNotificationType}
	}

	return Shape{
		Variant: domain.Variant{
			Version:          domain.Version(version),
			NotificationType: domain.NotificationType(notificationType),
		},
		Raw: m,
	}, nil
}
