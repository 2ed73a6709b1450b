package validation

import "github.com/medeiros-dev/notification-validator/internal/domain"

// Condition decides whether a conditional field may be present for a payload
// of the given version under the caller's flags and tier.
type Condition func(version domain.Version, flags domain.FeatureFlags, tier domain.AccountTier) bool

// DeepLinkEligible is the same rule for v1 and v2 email.
func DeepLinkEligible(flags domain.FeatureFlags) bool {
	return flags.EnableDeepLinks
}

// PriorityEligible gates push priority. v1 needs the enablePriority flag and
// a premium account; v2 only needs a premium account.
func PriorityEligible(version domain.Version, flags domain.FeatureFlags, tier domain.AccountTier) bool {
	switch version {
	case domain.VersionV1:
		return flags.EnablePriority && tier == domain.AccountTierPremium
	case domain.VersionV2:
		return tier == domain.AccountTierPremium
	}
	return false
}

func deepLinkCondition(_ domain.Version, flags domain.FeatureFlags, _ domain.AccountTier) bool {
	return DeepLinkEligible(flags)
}
