package text

import (
	"bytes"
	"testing"

	"github.com/medeiros-dev/notification-validator/internal/app/registry"
	"github.com/medeiros-dev/notification-validator/internal/domain"
	"github.com/medeiros-dev/notification-validator/internal/domain/port/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextRenderer_Render(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		result   domain.ValidationResult
		expected string
	}{
		{
			name:     "valid",
			label:    "validV2PushPremium",
			result:   domain.NewValidationResult(nil),
			expected: "validV2PushPremium: valid\n",
		},
		{
			name:  "invalid keeps error order",
			label: "invalidV1Email",
			result: domain.NewValidationResult([]string{
				"subject is required",
				"deepLinkUrl is not allowed under current flags/tier",
			}),
			expected: "invalidV1Email: invalid\n" +
				"  - subject is required\n" +
				"  - deepLinkUrl is not allowed under current flags/tier\n",
		},
	}

	r := &TextRenderer{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, r.Render(&buf, tt.label, tt.result))
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestTextRenderer_Registered(t *testing.T) {
	factory, err := registry.GetRendererFactory(RendererName)
	require.NoError(t, err)

	r, err := factory(renderer.Options{})
	require.NoError(t, err)
	assert.IsType(t, &TextRenderer{}, r)
}
