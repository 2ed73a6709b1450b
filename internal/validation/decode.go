package validation

import "github.com/medeiros-dev/notification-validator/internal/domain"

// Decode builds the typed payload for a shape. It is the one place raw values
// become typed fields, and is only meaningful for a shape that CheckFields
// found no violations in: wrongly typed values decode as zero values.
func Decode(shape Shape) domain.Payload {
	raw := shape.Raw
	env := domain.Envelope{
		Version:          shape.Variant.Version,
		NotificationType: shape.Variant.NotificationType,
		EventType:        domain.EventType(str(raw, "eventType")),
	}

	switch shape.Variant {
	case domain.VariantEmailV1:
		return domain.EmailV1{
			Envelope:     env,
			To:           str(raw, "to"),
			Subject:      str(raw, "subject"),
			Body:         str(raw, "body"),
			FeatureFlags: optFlags(raw, "featureFlags"),
			DeepLinkURL:  optStr(raw, "deepLinkUrl"),
		}
	case domain.VariantPushV1:
		return domain.PushV1{
			Envelope:     env,
			DeviceToken:  str(raw, "deviceToken"),
			Message:      str(raw, "message"),
			FeatureFlags: optFlags(raw, "featureFlags"),
			Priority:     optPriority(raw, "priority"),
		}
	case domain.VariantInAppV1:
		return domain.InAppV1{
			Envelope: env,
			UserID:   str(raw, "userId"),
			Title:    str(raw, "title"),
			Message:  str(raw, "message"),
		}
	case domain.VariantEmailV2:
		return domain.EmailV2{
			Envelope:     env,
			To:           str(raw, "to"),
			Subject:      optStr(raw, "subject"),
			Body:         str(raw, "body"),
			FeatureFlags: optFlags(raw, "featureFlags"),
			DeepLinkURL:  optStr(raw, "deepLinkUrl"),
			Footer:       optStr(raw, "footer"),
		}
	case domain.VariantPushV2:
		return domain.PushV2{
			Envelope:     env,
			DeviceToken:  str(raw, "deviceToken"),
			Message:      str(raw, "message"),
			FeatureFlags: optFlags(raw, "featureFlags"),
			Priority:     optPriority(raw, "priority"),
		}
	case domain.VariantInAppV2:
		return domain.InAppV2{
			Envelope: env,
			UserID:   str(raw, "userId"),
			Title:    str(raw, "title"),
			Message:  str(raw, "message"),
			ImageURL: optStr(raw, "imageUrl"),
		}
	}
	return nil
}

func str(raw map[string]any, name string) string {
	s, _ := raw[name].(string)
	return s
}

func optStr(raw map[string]any, name string) *string {
	s, ok := raw[name].(string)
	if !ok {
		return nil
	}
	return &s
}

func optPriority(raw map[string]any, name string) *domain.Priority {
	s, ok := raw[name].(string)
	if !ok || !domain.Priority(s).Valid() {
		return nil
	}
	p := domain.Priority(s)
	return &p
}

func optFlags(raw map[string]any, name string) *domain.FeatureFlags {
	switch v := raw[name].(type) {
	case map[string]any:
		flags := domain.FeatureFlagsFromMap(v)
		return &flags
	case domain.FeatureFlags:
		return &v
	case *domain.FeatureFlags:
		if v == nil {
			return nil
		}
		flags := *v
		return &flags
	}
	return nil
}
