// Package samples holds example payloads with the flags and tier each one is
// meant to be validated under.
package samples

import "github.com/medeiros-dev/notification-validator/internal/domain"

type Sample struct {
	Name        string
	Payload     map[string]any
	Flags       domain.FeatureFlags
	AccountTier domain.AccountTier
}

// All returns fresh copies of the sample payloads, so callers may modify them.
func All() []Sample {
	return []Sample{
		{
			Name: "validV1Email",
			Payload: map[string]any{
				"version":          "v1",
				"notificationType": "Email",
				"eventType":        "Marketing",
				"to":               "user@example.com",
				"subject":          "Hello",
				"body":             "Welcome!",
				"featureFlags":     map[string]any{"enableDeepLinks": true},
				"deepLinkUrl":      "https://app.site/activate",
			},
			Flags:       domain.FeatureFlags{EnableDeepLinks: true},
			AccountTier: domain.AccountTierPremium,
		},
		{
			Name: "invalidV1Email",
			Payload: map[string]any{
				"version":          "v1",
				"notificationType": "Email",
				"eventType":        "Marketing",
				"to":               "user@example.com",
				"body":             "No subject!",
				"deepLinkUrl":      "https://app.site/should-fail-feature",
			},
			AccountTier: domain.AccountTierFree,
		},
		{
			Name: "validV2PushPremium",
			Payload: map[string]any{
				"version":          "v2",
				"notificationType": "Push",
				"eventType":        "Transactional",
				"deviceToken":      "abcd-efgh",
				"message":          "Your reward is ready",
				"priority":         "high",
				"featureFlags":     map[string]any{"enablePriority": true},
			},
			Flags:       domain.FeatureFlags{EnablePriority: true},
			AccountTier: domain.AccountTierPremium,
		},
		{
			Name: "invalidV2PushFree",
			Payload: map[string]any{
				"version":          "v2",
				"notificationType": "Push",
				"eventType":        "Transactional",
				"deviceToken":      "abcd-zzzz",
				"message":          "You got XP",
				"priority":         "high",
			},
			AccountTier: domain.AccountTierFree,
		},
		{
			Name: "missingVersionEmail",
			Payload: map[string]any{
				"notificationType": "Email",
				"to":               "a@b.com",
				"subject":          "x",
				"body":             "y",
			},
			AccountTier: domain.AccountTierFree,
		},
	}
}
