package registry

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/medeiros-dev/notification-validator/internal/domain/port/renderer"
)

// RendererFactory defines the signature for functions that create renderer.Renderer instances.
type RendererFactory func(opts renderer.Options) (renderer.Renderer, error)

var (
	rendererRegistry = make(map[string]RendererFactory)
	registryMutex    sync.RWMutex
)

// RegisterRendererFactory registers a new renderer factory.
// It should be called during initialization (e.g., in an init() block).
func RegisterRendererFactory(name string, factory RendererFactory) error {
	registryMutex.Lock()
	defer registryMutex.Unlock()

	if _, exists := rendererRegistry[name]; exists {
		return fmt.Errorf("renderer factory already registered: %s", name)
	}
	rendererRegistry[name] = factory
	return nil
}

// GetRendererFactory retrieves a renderer factory by name.
func GetRendererFactory(name string) (RendererFactory, error) {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	factory, exists := rendererRegistry[name]
	if !exists {
		return nil, fmt.Errorf("no renderer factory registered for name: %s", name)
	}
	return factory, nil
}

// RendererNames lists the registered renderer names in sorted order.
func RendererNames() []string {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	return slices.Sorted(maps.Keys(rendererRegistry))
}
