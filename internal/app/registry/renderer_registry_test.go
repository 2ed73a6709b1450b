package registry

import (
	"io"
	"testing"

	"github.com/medeiros-dev/notification-validator/internal/domain"
	"github.com/medeiros-dev/notification-validator/internal/domain/port/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockRenderer struct {
	opts renderer.Options
}

func (m *MockRenderer) Render(w io.Writer, label string, result domain.ValidationResult) error {
	return nil
}

func mockFactory(opts renderer.Options) (renderer.Renderer, error) {
	return &MockRenderer{opts: opts}, nil
}

func resetRegistry() {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	rendererRegistry = make(map[string]RendererFactory)
}

func TestRegisterRendererFactory(t *testing.T) {
	resetRegistry()
	t.Cleanup(resetRegistry)

	t.Run("Register New Factory", func(t *testing.T) {
		err := RegisterRendererFactory("test-renderer", mockFactory)
		assert.NoError(t, err)

		registryMutex.RLock()
		_, exists := rendererRegistry["test-renderer"]
		registryMutex.RUnlock()
		assert.True(t, exists)
	})

	t.Run("Register Duplicate Factory", func(t *testing.T) {
		_ = RegisterRendererFactory("duplicate-renderer", mockFactory)

		err := RegisterRendererFactory("duplicate-renderer", mockFactory)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already registered")
	})
}

func TestGetRendererFactory(t *testing.T) {
	resetRegistry()
	t.Cleanup(resetRegistry)

	t.Run("Get Existing Factory", func(t *testing.T) {
		err := RegisterRendererFactory("get-renderer", mockFactory)
		require.NoError(t, err)

		factory, err := GetRendererFactory("get-renderer")
		assert.NoError(t, err)
		assert.NotNil(t, factory)

		instance, err := factory(renderer.Options{Pretty: true})
		assert.NoError(t, err)
		assert.Equal(t, &MockRenderer{opts: renderer.Options{Pretty: true}}, instance)
	})

	t.Run("Get Non-Existent Factory", func(t *testing.T) {
		_, err := GetRendererFactory("non-existent-renderer")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no renderer factory registered")
	})
}

func TestRendererNames(t *testing.T) {
	resetRegistry()
	t.Cleanup(resetRegistry)

	assert.Empty(t, RendererNames())

	require.NoError(t, RegisterRendererFactory("text", mockFactory))
	require.NoError(t, RegisterRendererFactory("json", mockFactory))

	assert.Equal(t, []string{"json", "text"}, RendererNames())
}
