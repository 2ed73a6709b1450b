package domain

import "fmt"

type Version string

const (
	VersionV1 Version = "v1"
	VersionV2 Version = "v2"
)

func (v Version) Valid() bool {
	return v == VersionV1 || v == VersionV2
}

type NotificationType string

const (
	NotificationTypeEmail NotificationType = "Email"
	NotificationTypePush  NotificationType = "Push"
	NotificationTypeInApp NotificationType = "InApp"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationTypeEmail, NotificationTypePush, NotificationTypeInApp:
		return true
	}
	return false
}

type EventType string

const (
	EventTypeMarketing     EventType = "Marketing"
	EventTypeTransactional EventType = "Transactional"
)

func (e EventType) Valid() bool {
	return e == EventTypeMarketing || e == EventTypeTransactional
}

type AccountTier string

const (
	AccountTierFree    AccountTier = "free"
	AccountTierPremium AccountTier = "premium"
)

func (t AccountTier) Valid() bool {
	return t == AccountTierFree || t == AccountTierPremium
}

type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	return p == PriorityNormal || p == PriorityHigh
}

// Variant is one (version, notificationType) pair. It selects the field rules
// a payload is checked against.
type Variant struct {
	Version          Version          `json:"version"`
	NotificationType NotificationType `json:"notificationType"`
}

func (v Variant) String() string {
	return fmt.Sprintf("%s/%s", v.Version, v.NotificationType)
}

var (
	VariantEmailV1 = Variant{VersionV1, NotificationTypeEmail}
	VariantPushV1  = Variant{VersionV1, NotificationTypePush}
	VariantInAppV1 = Variant{VersionV1, NotificationTypeInApp}
	VariantEmailV2 = Variant{VersionV2, NotificationTypeEmail}
	VariantPushV2  = Variant{VersionV2, NotificationTypePush}
	VariantInAppV2 = Variant{VersionV2, NotificationTypeInApp}
)

// Variants returns the six known variants in a fixed order.
func Variants() []Variant {
	return []Variant{
		VariantEmailV1, VariantPushV1, VariantInAppV1,
		VariantEmailV2, VariantPushV2, VariantInAppV2,
	}
}
