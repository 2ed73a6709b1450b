package validation

import "github.com/medeiros-dev/notification-validator/internal/domain"

// HasDeepLink reports whether p is an email payload that carries a deep link
// URL and deep links are enabled in flags. Callers such as a renderer deciding
// whether to show a deep-link button branch on it before calling DeepLinkURL.
func HasDeepLink(p domain.Payload, flags domain.FeatureFlags) bool {
	return DeepLinkEligible(flags) && deepLinkOf(p) != nil
}

// DeepLinkURL returns the deep link of p.
//
// Precondition: HasDeepLink(p, flags) returned true. It panics otherwise.
func DeepLinkURL(p domain.Payload) string {
	url := deepLinkOf(p)
	if url == nil {
		panic("validation: DeepLinkURL called on a payload without a deep link")
	}
	return *url
}

// HasPriority reports whether p is a push payload that carries a valid
// priority and priority is allowed for its version under flags and tier.
func HasPriority(p domain.Payload, flags domain.FeatureFlags, tier domain.AccountTier) bool {
	if p == nil {
		return false
	}
	priority := priorityOf(p)
	return priority != nil && priority.Valid() && PriorityEligible(p.Variant().Version, flags, tier)
}

// PriorityOf returns the priority of p.
//
// Precondition: HasPriority(p, flags, tier) returned true. It panics otherwise.
func PriorityOf(p domain.Payload) domain.Priority {
	priority := priorityOf(p)
	if priority == nil {
		panic("validation: PriorityOf called on a payload without a priority")
	}
	return *priority
}

func deepLinkOf(p domain.Payload) *string {
	switch v := p.(type) {
	case domain.EmailV1:
		return v.DeepLinkURL
	case *domain.EmailV1:
		if v != nil {
			return v.DeepLinkURL
		}
	case domain.EmailV2:
		return v.DeepLinkURL
	case *domain.EmailV2:
		if v != nil {
			return v.DeepLinkURL
		}
	}
	return nil
}

func priorityOf(p domain.Payload) *domain.Priority {
	switch v := p.(type) {
	case domain.PushV1:
		return v.Priority
	case *domain.PushV1:
		if v != nil {
			return v.Priority
		}
	case domain.PushV2:
		return v.Priority
	case *domain.PushV2:
		if v != nil {
			return v.Priority
		}
	}
	return nil
}
