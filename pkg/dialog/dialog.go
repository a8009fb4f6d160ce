// Package dialog implements the preferences dialog lifecycle: a modal form
// seeded from a preference schema that validates required text fields and, on
// a successful submit, forwards a single brand-keyed payload to an injected
// callback before closing.
package dialog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/skyportal/prefsgen/pkg/schema"
)

// Phase is the dialog visibility state. There are no intermediate states:
// the dialog is either closed or open.
type Phase int

const (
	PhaseClosed Phase = iota
	PhaseOpen
)

func (p Phase) String() string {
	switch p {
	case PhaseOpen:
		return "open"
	default:
		return "closed"
	}
}

// SubmitFunc receives the submission payload, {brand: formState}. The caller
// owns dispatching it into shared application state and any persistence.
type SubmitFunc func(payload map[string]any) error

// Dialog drives one preferences form. It owns its transient FormState
// exclusively; edits are discarded on cancel and only leave the dialog as the
// payload of a successful submit.
type Dialog struct {
	form     schema.Form
	onSubmit SubmitFunc
	state    *FormState
	phase    Phase
}

// New validates the inbound contract and returns a closed dialog. All props
// are required; a missing one is a contract violation, not a runtime
// condition to recover from.
func New(form schema.Form, onSubmit SubmitFunc) (*Dialog, error) {
	if strings.TrimSpace(form.Title) == "" {
		return nil, errors.New("dialog: title is required")
	}
	if strings.TrimSpace(form.Brand) == "" {
		return nil, errors.New("dialog: brand is required")
	}
	if onSubmit == nil {
		return nil, errors.New("dialog: onSubmit is required")
	}
	if err := form.Schema.Validate(); err != nil {
		return nil, err
	}
	return &Dialog{
		form:     form,
		onSubmit: onSubmit,
		phase:    PhaseClosed,
	}, nil
}

// Form returns the schema the dialog was built from.
func (d *Dialog) Form() schema.Form {
	return d.form
}

// Phase reports whether the dialog is currently open.
func (d *Dialog) Phase() Phase {
	return d.phase
}

// Open transitions Closed → Open and seeds FormState from the schema
// defaults. Opening an already open dialog resets its edits.
func (d *Dialog) Open() {
	d.state = NewFormState(d.form.Schema)
	d.phase = PhaseOpen
}

// Cancel transitions Open → Closed, discarding all edits.
func (d *Dialog) Cancel() error {
	if d.phase != PhaseOpen {
		return ErrNotOpen
	}
	d.state = nil
	d.phase = PhaseClosed
	return nil
}

// SetValue records an edit at a dotted field path while the dialog is open.
func (d *Dialog) SetValue(path string, value any) error {
	if d.phase != PhaseOpen {
		return ErrNotOpen
	}
	return d.state.Set(path, value)
}

// Value reads the current value at a dotted field path.
func (d *Dialog) Value(path string) (any, bool) {
	if d.phase != PhaseOpen {
		return nil, false
	}
	return d.state.Get(path)
}

// Values returns a copy of the in-progress form state.
func (d *Dialog) Values() map[string]any {
	if d.phase != PhaseOpen {
		return nil
	}
	return d.state.Values()
}

// Reset re-synchronises the dialog with an externally supplied schema. The
// new defaults replace any in-progress edits: external truth wins when the
// schema changes while the form is open.
func (d *Dialog) Reset(form schema.Form) error {
	if strings.TrimSpace(form.Title) == "" || strings.TrimSpace(form.Brand) == "" {
		return errors.New("dialog: replacement form is missing title or brand")
	}
	if err := form.Schema.Validate(); err != nil {
		return err
	}
	d.form = form
	if d.phase == PhaseOpen {
		d.state.Reset(form.Schema)
	}
	return nil
}

// Validate checks every required text field and returns inline messages keyed
// by field path. Checkbox groups always validate: a bool is always set.
func (d *Dialog) Validate() map[string][]string {
	if d.phase != PhaseOpen {
		return nil
	}

	var fields map[string][]string
	for _, entry := range d.form.Schema {
		if entry.Kind != schema.KindText {
			continue
		}
		value, _ := d.state.Get(entry.Name)
		text, _ := value.(string)
		if strings.TrimSpace(text) != "" {
			continue
		}
		if fields == nil {
			fields = make(map[string][]string)
		}
		fields[entry.Name] = append(fields[entry.Name], RequiredMessage)
	}
	return fields
}

// Submit validates the form and, when valid, wraps the current state as
// {brand: values}, forwards it to the submit callback exactly once, and
// closes the dialog. A validation failure returns *ValidationError and keeps
// the dialog open without invoking the callback. An error from the callback
// also keeps the dialog open so the user can retry.
func (d *Dialog) Submit() (map[string]any, error) {
	if d.phase != PhaseOpen {
		return nil, ErrNotOpen
	}

	if fields := d.Validate(); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	payload := map[string]any{
		d.form.Brand: d.state.Values(),
	}
	if err := d.onSubmit(payload); err != nil {
		return nil, fmt.Errorf("dialog: submit: %w", err)
	}

	d.state = nil
	d.phase = PhaseClosed
	return payload, nil
}
