// Package prefsgen generates preferences dialogs from declarative schemas.
// The root package re-exports the common entry points; the full surface lives
// under pkg/.
package prefsgen

import (
	"context"
	"io/fs"

	"github.com/skyportal/prefsgen/pkg/orchestrator"
	"github.com/skyportal/prefsgen/pkg/render"
	"github.com/skyportal/prefsgen/pkg/renderers/vanilla"
	"github.com/skyportal/prefsgen/pkg/schema"
)

// Form is the dialog contract: a titled, brand-keyed preference schema.
type Form = schema.Form

// Schema is an ordered list of preference entries.
type Schema = schema.Schema

// Entry models one preference field.
type Entry = schema.Entry

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface server-side validation errors.
type RenderOptions = render.RenderOptions

// NewForm validates and builds a Form.
func NewForm(title, brand string, s Schema) (Form, error) {
	return schema.NewForm(title, brand, s)
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML renders a preferences dialog for the supplied form using the
// named renderer. It is the simplest entry point for callers that just want
// HTML output.
func GenerateHTML(ctx context.Context, form Form, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Form:     &form,
		Renderer: rendererName,
	})
}

// GenerateHTMLFromDocument converts a JSON Schema document into a form and
// renders it, delegating to the orchestrator.
func GenerateHTMLFromDocument(ctx context.Context, document []byte, title, brand, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Document: document,
		Title:    title,
		Brand:    brand,
		Renderer: rendererName,
	})
}

// EmbeddedTemplates exposes the built-in vanilla renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}
