// Package template defines the rendering seam HTML renderers rely on, so the
// concrete engine can be swapped without touching renderer code.
package template

import (
	"io"
)

// TemplateRenderer is the engine contract: load-and-render by template name,
// render ad hoc template strings, and seed globals shared by every template.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	GlobalContext(data any) error
}
