package renderer

import (
	"io"

	"github.com/medeiros-dev/notification-validator/internal/domain"
)

// Options configure a renderer at construction time.
type Options struct {
	// Pretty asks for indented output where the format supports it.
	Pretty bool
}

// Renderer writes one labelled validation result to w.
type Renderer interface {
	Render(w io.Writer, label string, result domain.ValidationResult) error
}
