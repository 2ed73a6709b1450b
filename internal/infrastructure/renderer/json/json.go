package json

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/medeiros-dev/notification-validator/internal/app/registry"
	"github.com/medeiros-dev/notification-validator/internal/domain"
	"github.com/medeiros-dev/notification-validator/internal/domain/port/renderer"
	"github.com/medeiros-dev/notification-validator/pkg/logger"
	"go.uber.org/zap"
)

const RendererName = "json"

// JSONRenderer writes one JSON object per result, newline terminated.
type JSONRenderer struct {
	pretty bool
}

type document struct {
	Label  string   `json:"label"`
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

func NewJSONRendererFactory(opts renderer.Options) (renderer.Renderer, error) {
	return &JSONRenderer{pretty: opts.Pretty}, nil
}

func init() {
	if err := registry.RegisterRendererFactory(RendererName, NewJSONRendererFactory); err != nil {
		panic(fmt.Sprintf("Failed to register renderer factory '%s': %v", RendererName, err))
	}
	logger.L().Debug("Renderer factory registered", zap.String("rendererName", RendererName))
}

func (r *JSONRenderer) Render(w io.Writer, label string, result domain.ValidationResult) error {
	errs := result.Errors
	if errs == nil {
		errs = []string{}
	}

	enc := json.NewEncoder(w)
	if r.pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(document{Label: label, Valid: result.Valid, Errors: errs}); err != nil {
		return fmt.Errorf("failed to encode result %q: %w", label, err)
	}
	return nil
}
