package text

import (
	"fmt"
	"io"

	"github.com/medeiros-dev/notification-validator/internal/app/registry"
	"github.com/medeiros-dev/notification-validator/internal/domain"
	"github.com/medeiros-dev/notification-validator/internal/domain/port/renderer"
	"github.com/medeiros-dev/notification-validator/pkg/logger"
	"go.uber.org/zap"
)

const RendererName = "text"

// TextRenderer prints "label: valid" or "label: invalid" followed by one
// indented line per error.
type TextRenderer struct{}

func NewTextRendererFactory(_ renderer.Options) (renderer.Renderer, error) {
	return &TextRenderer{}, nil
}

func init() {
	if err := registry.RegisterRendererFactory(RendererName, NewTextRendererFactory); err != nil {
		panic(fmt.Sprintf("Failed to register renderer factory '%s': %v", RendererName, err))
	}
	logger.L().Debug("Renderer factory registered", zap.String("rendererName", RendererName))
}

func (r *TextRenderer) Render(w io.Writer, label string, result domain.ValidationResult) error {
	status := "valid"
	if !result.Valid {
		status = "invalid"
	}
	if _, err := fmt.Fprintf(w, "%s: %s\n", label, status); err != nil {
		return err
	}
	for _, e := range result.Errors {
		if _, err := fmt.Fprintf(w, "  - %s\n", e); err != nil {
			return err
		}
	}
	return nil
}
