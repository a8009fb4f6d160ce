// Package vanilla renders the preferences dialog as framework-free HTML:
// a modal wrapper, one required text input per text entry, a fieldset of
// checkboxes per group, and inline "Required" chrome for rejected submits.
package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/skyportal/prefsgen/pkg/render"
	rendertemplate "github.com/skyportal/prefsgen/pkg/render/template"
	"github.com/skyportal/prefsgen/pkg/render/template/gotemplate"
	"github.com/skyportal/prefsgen/pkg/schema"
)

// Option customises the renderer configuration.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	theme            *themeConfig
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Renderer implements render.Renderer with pongo2-backed HTML templates.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	theme     *themeConfig
	sanitizer *bluemonday.Policy
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates: renderer,
		theme:     cfg.theme,
		sanitizer: bluemonday.StrictPolicy(),
	}, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "vanilla"
}

// ContentType reports the MIME type of the rendered output.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the dialog markup. Values override schema defaults by
// dotted path; errors become inline messages next to their control.
func (r *Renderer) Render(_ context.Context, form schema.Form, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	mapping := render.MapErrorPayload(form, opts.Errors)

	fields := make([]string, 0, len(form.Schema))
	for _, entry := range form.Schema {
		html, err := r.renderEntry(entry, opts.Values, mapping.Fields)
		if err != nil {
			return nil, err
		}
		fields = append(fields, html)
	}

	result, err := r.templates.RenderTemplate("templates/form.tmpl", map[string]any{
		"title":      form.Title,
		"brand":      form.Brand,
		"fields":     fields,
		"formErrors": mapping.Form,
		"theme":      r.themeContext(),
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) renderEntry(entry schema.Entry, values map[string]any, errs map[string][]string) (string, error) {
	switch entry.Kind {
	case schema.KindText:
		return r.renderTextField(entry, values, errs)
	case schema.KindCheckboxGroup:
		return r.renderCheckboxGroup(entry, values)
	default:
		return "", fmt.Errorf("vanilla renderer: entry %q has unknown kind %q", entry.Name, entry.Kind)
	}
}

func (r *Renderer) renderTextField(entry schema.Entry, values map[string]any, errs map[string][]string) (string, error) {
	value := ""
	if entry.Text != nil {
		value = entry.Text.Default
	}
	if override, ok := values[entry.Name]; ok {
		if s, isString := override.(string); isString {
			value = s
		}
	}

	result, err := r.templates.RenderTemplate("templates/components/text_field.tmpl", map[string]any{
		"id":      fieldID(entry.Name),
		"name":    entry.Name,
		"label":   entry.DisplayLabel(),
		"value":   value,
		"tooltip": r.sanitize(entry.Tooltip),
		"errors":  errs[entry.Name],
	})
	if err != nil {
		return "", fmt.Errorf("vanilla renderer: render field %q: %w", entry.Name, err)
	}
	return result, nil
}

func (r *Renderer) renderCheckboxGroup(entry schema.Entry, values map[string]any) (string, error) {
	if entry.Group == nil {
		return "", fmt.Errorf("vanilla renderer: entry %q has no checkboxes", entry.Name)
	}

	checkboxes := make([]map[string]any, 0, len(entry.Group.Checkboxes))
	for _, box := range entry.Group.Checkboxes {
		path := entry.Name + "." + box.Name
		checked := box.Default
		if override, ok := values[path]; ok {
			if b, isBool := override.(bool); isBool {
				checked = b
			}
		}
		checkboxes = append(checkboxes, map[string]any{
			"id":      fieldID(path),
			"name":    path,
			"label":   box.DisplayLabel(),
			"checked": checked,
			"tooltip": r.sanitize(box.Tooltip),
		})
	}

	result, err := r.templates.RenderTemplate("templates/components/checkbox_group.tmpl", map[string]any{
		"name":       entry.Name,
		"label":      entry.DisplayLabel(),
		"checkboxes": checkboxes,
	})
	if err != nil {
		return "", fmt.Errorf("vanilla renderer: render group %q: %w", entry.Name, err)
	}
	return result, nil
}

// sanitize strips any markup from annotation strings before they reach the
// title attribute. Tooltips come from overlay documents, which are data, not
// trusted markup.
func (r *Renderer) sanitize(raw string) string {
	if raw == "" {
		return ""
	}
	return strings.TrimSpace(r.sanitizer.Sanitize(raw))
}

func fieldID(path string) string {
	return "prefs-" + strings.ReplaceAll(path, ".", "-")
}
