package validation

import (
	"testing"

	"github.com/medeiros-dev/notification-validator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want domain.Payload
	}{
		{
			name: "v1 push with flags and priority",
			raw:  pushPayload("v1", map[string]any{"priority": "normal", "featureFlags": map[string]any{"enablePriority": true}}),
			want: domain.PushV1{
				Envelope:     domain.Envelope{Version: domain.VersionV1, NotificationType: domain.NotificationTypePush, EventType: domain.EventTypeTransactional},
				DeviceToken:  "abcd-efgh",
				Message:      "Ping",
				FeatureFlags: &domain.FeatureFlags{EnablePriority: true},
				Priority:     ptr(domain.PriorityNormal),
			},
		},
		{
			name: "v1 in-app",
			raw:  inAppPayload("v1", nil),
			want: domain.InAppV1{
				Envelope: domain.Envelope{Version: domain.VersionV1, NotificationType: domain.NotificationTypeInApp, EventType: domain.EventTypeMarketing},
				UserID:   "user-1",
				Title:    "Hi",
				Message:  "Hello there",
			},
		},
		{
			name: "v2 email with optional fields",
			raw:  emailV2(map[string]any{"subject": "Re", "footer": "bye", "featureFlags": &domain.FeatureFlags{EnableDeepLinks: true}}),
			want: domain.EmailV2{
				Envelope:     domain.Envelope{Version: domain.VersionV2, NotificationType: domain.NotificationTypeEmail, EventType: domain.EventTypeTransactional},
				To:           "user@example.com",
				Subject:      ptr("Re"),
				Body:         "Receipt",
				FeatureFlags: &domain.FeatureFlags{EnableDeepLinks: true},
				Footer:       ptr("bye"),
			},
		},
		{
			name: "v2 push without priority",
			raw:  pushPayload("v2", nil),
			want: domain.PushV2{
				Envelope:    domain.Envelope{Version: domain.VersionV2, NotificationType: domain.NotificationTypePush, EventType: domain.EventTypeTransactional},
				DeviceToken: "abcd-efgh",
				Message:     "Ping",
			},
		},
		{
			name: "v2 in-app with image",
			raw:  inAppPayload("v2", map[string]any{"imageUrl": "https://img"}),
			want: domain.InAppV2{
				Envelope: domain.Envelope{Version: domain.VersionV2, NotificationType: domain.NotificationTypeInApp, EventType: domain.EventTypeMarketing},
				UserID:   "user-1",
				Title:    "Hi",
				Message:  "Hello there",
				ImageURL: ptr("https://img"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shape, err := Discriminate(tt.raw)
			require.NoError(t, err)
			got := Decode(shape)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, shape.Variant, got.Variant())
		})
	}
}

func TestDecode_UnknownVariant(t *testing.T) {
	assert.Nil(t, Decode(Shape{Variant: domain.Variant{Version: "v3"}}))
}
