package render

import (
	"context"

	"github.com/skyportal/prefsgen/pkg/schema"
)

// Renderer converts a preference form into a byte representation: HTML for
// the vanilla renderer, a collected submission payload for the TUI renderer.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form schema.Form, options RenderOptions) ([]byte, error)
}
