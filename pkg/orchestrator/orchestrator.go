package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"go.uber.org/zap"

	"github.com/skyportal/prefsgen/pkg/jsonschema"
	"github.com/skyportal/prefsgen/pkg/render"
	"github.com/skyportal/prefsgen/pkg/renderers/vanilla"
	"github.com/skyportal/prefsgen/pkg/schema"
	"github.com/skyportal/prefsgen/pkg/uischema"
)

const defaultRendererName = "vanilla"

// Decorator mutates a form before rendering. uischema.Decorator is the
// canonical implementation.
type Decorator interface {
	Decorate(form *schema.Form) error
}

// Transformer runs before decorators and may reshape the form based on
// request-scoped state.
type Transformer func(ctx context.Context, form *schema.Form) error

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithDecorators registers decorators that run against the form before
// rendering, in registration order.
func WithDecorators(decorators ...Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithTransformer registers a Transformer that runs before decorators.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithOverlayFS supplies an fs.FS holding overlay documents. Pass nil to
// disable the embedded defaults.
func WithOverlayFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.overlayFS = fsys
		o.overlaySpecified = true
	}
}

// WithLogger injects a structured logger. The default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates the pipeline from preference schema to rendered
// output. It applies sensible defaults (vanilla renderer, embedded overlays)
// while remaining open to dependency injection for advanced callers.
type Orchestrator struct {
	registry          *render.Registry
	defaultRenderer   string
	decorators        []Decorator
	transformer       Transformer
	overlayFS         fs.FS
	overlaySpecified  bool
	overlayConfigured bool
	logger            *zap.Logger
	initialiseErr     error
	defaultsApplied   bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to render a preferences dialog.
type Request struct {
	// Form supplies the dialog contract directly. Takes precedence over
	// Document.
	Form *schema.Form

	// Document carries a standalone JSON Schema describing the preference
	// fields. Used together with Title and Brand when Form is nil.
	Document []byte

	// Title and Brand complete the form contract when Document is used.
	Title string
	Brand string

	// Renderer names the renderer to use. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	// RenderOptions carries per-request instructions such as prefilled values
	// or server-side errors that renderers can surface.
	RenderOptions render.RenderOptions
}

// Generate resolves the form, applies transformer and decorators, and renders
// the result with the selected renderer.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
		if err := o.initialiseErr; err != nil {
			return nil, err
		}
	}

	form, err := o.resolveForm(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := o.applyTransformer(ctx, &form); err != nil {
		return nil, err
	}
	if err := o.applyDecorators(&form); err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	o.logger.Debug("rendering preferences dialog",
		zap.String("brand", form.Brand),
		zap.String("renderer", renderer.Name()),
		zap.Int("entries", len(form.Schema)))

	output, err := renderer.Render(ctx, form, req.RenderOptions)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

func (o *Orchestrator) resolveForm(_ context.Context, req Request) (schema.Form, error) {
	if req.Form != nil {
		if err := req.Form.Schema.Validate(); err != nil {
			return schema.Form{}, fmt.Errorf("orchestrator: validate form: %w", err)
		}
		form := *req.Form
		form.Schema = append(schema.Schema(nil), req.Form.Schema...)
		return form, nil
	}

	if len(req.Document) == 0 {
		return schema.Form{}, errors.New("orchestrator: form or document is required")
	}

	entries, err := jsonschema.FromBytes(req.Document)
	if err != nil {
		return schema.Form{}, fmt.Errorf("orchestrator: convert document: %w", err)
	}
	form, err := schema.NewForm(req.Title, req.Brand, entries)
	if err != nil {
		return schema.Form{}, fmt.Errorf("orchestrator: build form: %w", err)
	}
	return form, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDecorators(form *schema.Form) error {
	for _, decorator := range o.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(form); err != nil {
			return fmt.Errorf("orchestrator: decorate form: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) applyTransformer(ctx context.Context, form *schema.Form) error {
	if o.transformer == nil {
		return nil
	}
	if err := o.transformer(ctx, form); err != nil {
		return fmt.Errorf("orchestrator: transform form: %w", err)
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	o.ensureOverlayDecorator()

	o.defaultsApplied = true
}

func (o *Orchestrator) ensureOverlayDecorator() {
	if o.overlayConfigured {
		return
	}
	o.overlayConfigured = true

	if !o.overlaySpecified && o.overlayFS == nil {
		o.overlayFS = uischema.EmbeddedFS()
	}
	if o.overlayFS == nil {
		return
	}

	store, err := uischema.LoadFS(o.overlayFS)
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: load overlays: %w", err)
		return
	}
	if store.Empty() {
		return
	}

	o.decorators = append(o.decorators, uischema.NewDecorator(store))
}
