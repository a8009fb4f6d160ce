// Package tui drives a preferences dialog over the terminal: each schema
// entry becomes a survey prompt, required text fields re-prompt until filled,
// and the session ends with the brand-keyed payload of a successful submit.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/skyportal/prefsgen/pkg/dialog"
	"github.com/skyportal/prefsgen/pkg/render"
	"github.com/skyportal/prefsgen/pkg/schema"
)

// Renderer implements render.Renderer for terminal-driven sessions.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	onSubmit     dialog.SubmitFunc
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = newSurveyDriver()
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render runs one dialog session: open, prompt every entry, submit. The
// returned bytes are the serialized submission payload. An interrupt takes
// the cancel path and surfaces ErrAborted with nothing submitted.
func (r *Renderer) Render(ctx context.Context, form schema.Form, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	onSubmit := r.onSubmit
	if onSubmit == nil {
		onSubmit = func(map[string]any) error { return nil }
	}

	d, err := dialog.New(form, onSubmit)
	if err != nil {
		return nil, err
	}

	d.Open()
	if err := seedValues(d, opts.Values); err != nil {
		_ = d.Cancel()
		return nil, err
	}

	if err := r.announce(ctx, form, opts.Errors); err != nil {
		_ = d.Cancel()
		return nil, err
	}

	for _, entry := range form.Schema {
		if err := r.promptEntry(ctx, d, entry, opts.Errors); err != nil {
			_ = d.Cancel()
			return nil, err
		}
	}

	payload, err := d.Submit()
	if err != nil {
		return nil, err
	}
	return r.serialize(payload)
}

func (r *Renderer) announce(ctx context.Context, form schema.Form, errs map[string][]string) error {
	if err := r.driver.Info(ctx, form.Title); err != nil {
		return err
	}
	if len(errs) == 0 {
		return nil
	}
	mapping := render.MapErrorPayload(form, errs)
	for _, msg := range mapping.Form {
		if err := r.driver.Info(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) promptEntry(ctx context.Context, d *dialog.Dialog, entry schema.Entry, errs map[string][]string) error {
	switch entry.Kind {
	case schema.KindText:
		return r.promptText(ctx, d, entry, errs)
	case schema.KindCheckboxGroup:
		return r.promptGroup(ctx, d, entry)
	default:
		return fmt.Errorf("tui: entry %q has unknown kind %q", entry.Name, entry.Kind)
	}
}

func (r *Renderer) promptText(ctx context.Context, d *dialog.Dialog, entry schema.Entry, errs map[string][]string) error {
	current, _ := d.Value(entry.Name)
	defaultVal, _ := current.(string)

	for _, msg := range errs[entry.Name] {
		if err := r.driver.Info(ctx, fmt.Sprintf("%s: %s", entry.Name, msg)); err != nil {
			return err
		}
	}

	for {
		response, err := r.driver.Input(ctx, InputConfig{
			Message: entry.DisplayLabel(),
			Default: defaultVal,
			Help:    entry.Tooltip,
		})
		if err != nil {
			return err
		}

		if strings.TrimSpace(response) == "" {
			if err := r.driver.Info(ctx, fmt.Sprintf("%s: %s", entry.Name, dialog.RequiredMessage)); err != nil {
				return err
			}
			continue
		}

		return d.SetValue(entry.Name, response)
	}
}

func (r *Renderer) promptGroup(ctx context.Context, d *dialog.Dialog, entry schema.Entry) error {
	if entry.Group == nil {
		return fmt.Errorf("tui: entry %q has no checkboxes", entry.Name)
	}

	options := make([]string, 0, len(entry.Group.Checkboxes))
	var defaults []int
	for i, box := range entry.Group.Checkboxes {
		options = append(options, box.DisplayLabel())
		checked := box.Default
		if current, ok := d.Value(entry.Name + "." + box.Name); ok {
			if b, isBool := current.(bool); isBool {
				checked = b
			}
		}
		if checked {
			defaults = append(defaults, i)
		}
	}

	help := entry.Tooltip
	if help == "" {
		help = groupHelp(entry.Group.Checkboxes)
	}

	indices, err := r.driver.MultiSelect(ctx, MultiSelectConfig{
		Message:  entry.DisplayLabel(),
		Options:  options,
		Defaults: defaults,
		Help:     help,
	})
	if err != nil {
		return err
	}

	selected := make(map[int]struct{}, len(indices))
	for _, idx := range indices {
		selected[idx] = struct{}{}
	}
	for i, box := range entry.Group.Checkboxes {
		_, on := selected[i]
		if err := d.SetValue(entry.Name+"."+box.Name, on); err != nil {
			return err
		}
	}
	return nil
}

// groupHelp folds per-checkbox tooltips into a single help string, since a
// multi-select prompt has one help line for the whole group.
func groupHelp(boxes []schema.Checkbox) string {
	var parts []string
	for _, box := range boxes {
		if box.Tooltip == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", box.DisplayLabel(), box.Tooltip))
	}
	return strings.Join(parts, " | ")
}

func seedValues(d *dialog.Dialog, values map[string]any) error {
	if len(values) == 0 {
		return nil
	}
	paths := make([]string, 0, len(values))
	for path := range values {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		if err := d.SetValue(path, values[path]); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) serialize(payload map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(payload)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(payload)), nil
	default:
		return json.Marshal(payload)
	}
}

func flattenForm(values map[string]any) string {
	flattened := url.Values{}
	flatten("", values, flattened)
	return flattened.Encode()
}

func flatten(prefix string, value any, out url.Values) {
	switch v := value.(type) {
	case map[string]any:
		for key, val := range v {
			next := key
			if prefix != "" {
				next = prefix + "." + key
			}
			flatten(next, val, out)
		}
	default:
		out.Set(prefix, fmt.Sprint(v))
	}
}

func prettyPrint(values map[string]any) string {
	var b strings.Builder
	writePretty(&b, "", values)
	return b.String()
}

func writePretty(b *strings.Builder, prefix string, value any) {
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			next := key
			if prefix != "" {
				next = prefix + "." + key
			}
			writePretty(b, next, v[key])
		}
	default:
		if prefix != "" {
			fmt.Fprintf(b, "%s=%v\n", prefix, v)
		}
	}
}
