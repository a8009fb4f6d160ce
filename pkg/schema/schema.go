package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Kind discriminates the supported preference entry variants. The set is
// deliberately closed: every entry is either a required text field or a group
// of boolean toggles, so renderers can be exhaustive instead of sniffing value
// shapes at render time.
type Kind string

const (
	KindText          Kind = "text"
	KindCheckboxGroup Kind = "checkboxGroup"
)

// Checkbox is a single boolean toggle inside a checkbox group.
type Checkbox struct {
	Name    string `json:"name" yaml:"name"`
	Label   string `json:"label,omitempty" yaml:"label,omitempty"`
	Default bool   `json:"default" yaml:"default"`
	Tooltip string `json:"tooltip,omitempty" yaml:"tooltip,omitempty"`
}

// TextEntry carries the variant payload for a required single-line input.
type TextEntry struct {
	Default     string `json:"default" yaml:"default"`
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
}

// GroupEntry carries the variant payload for a labeled checkbox group.
type GroupEntry struct {
	Checkboxes []Checkbox `json:"checkboxes" yaml:"checkboxes"`
}

// Entry models one preference field. Exactly one of Text or Group is set,
// matching Kind. Tooltip and Label are presentation annotations that
// decorators (pkg/uischema) may fill in after construction.
type Entry struct {
	Name    string      `json:"name" yaml:"name"`
	Kind    Kind        `json:"kind" yaml:"kind"`
	Label   string      `json:"label,omitempty" yaml:"label,omitempty"`
	Tooltip string      `json:"tooltip,omitempty" yaml:"tooltip,omitempty"`
	Text    *TextEntry  `json:"text,omitempty" yaml:"text,omitempty"`
	Group   *GroupEntry `json:"group,omitempty" yaml:"group,omitempty"`
}

// Text constructs a required text entry with the supplied default value.
func Text(name, defaultValue string) Entry {
	return Entry{
		Name: name,
		Kind: KindText,
		Text: &TextEntry{Default: defaultValue},
	}
}

// CheckboxGroup constructs a checkbox-group entry from the supplied toggles.
func CheckboxGroup(name string, boxes ...Checkbox) Entry {
	group := &GroupEntry{Checkboxes: append([]Checkbox(nil), boxes...)}
	return Entry{
		Name:  name,
		Kind:  KindCheckboxGroup,
		Group: group,
	}
}

// Validate checks that the entry is a well-formed member of the union.
func (e Entry) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return errors.New("schema: entry name is required")
	}
	switch e.Kind {
	case KindText:
		if e.Text == nil {
			return fmt.Errorf("schema: entry %q: text variant payload is missing", e.Name)
		}
		if e.Group != nil {
			return fmt.Errorf("schema: entry %q: text entry carries a group payload", e.Name)
		}
	case KindCheckboxGroup:
		if e.Group == nil {
			return fmt.Errorf("schema: entry %q: group variant payload is missing", e.Name)
		}
		if e.Text != nil {
			return fmt.Errorf("schema: entry %q: group entry carries a text payload", e.Name)
		}
		if len(e.Group.Checkboxes) == 0 {
			return fmt.Errorf("schema: entry %q: checkbox group is empty", e.Name)
		}
		seen := make(map[string]struct{}, len(e.Group.Checkboxes))
		for _, box := range e.Group.Checkboxes {
			if strings.TrimSpace(box.Name) == "" {
				return fmt.Errorf("schema: entry %q: checkbox name is required", e.Name)
			}
			if _, dup := seen[box.Name]; dup {
				return fmt.Errorf("schema: entry %q: duplicate checkbox %q", e.Name, box.Name)
			}
			seen[box.Name] = struct{}{}
		}
	default:
		return fmt.Errorf("schema: entry %q: unknown kind %q", e.Name, e.Kind)
	}
	return nil
}

// DisplayLabel returns the label to render for the entry, falling back to a
// humanised version of the field name.
func (e Entry) DisplayLabel() string {
	if e.Label != "" {
		return e.Label
	}
	return DefaultLabeler(e.Name)
}

// DisplayLabel returns the label to render for the checkbox.
func (c Checkbox) DisplayLabel() string {
	if c.Label != "" {
		return c.Label
	}
	return DefaultLabeler(c.Name)
}

// Schema is an ordered list of preference entries. Order is declaration
// order; renderers must not reorder entries on their own.
type Schema []Entry

// Validate checks every entry and rejects duplicate field names.
func (s Schema) Validate() error {
	seen := make(map[string]struct{}, len(s))
	for _, entry := range s {
		if err := entry.Validate(); err != nil {
			return err
		}
		if _, dup := seen[entry.Name]; dup {
			return fmt.Errorf("schema: duplicate entry %q", entry.Name)
		}
		seen[entry.Name] = struct{}{}
	}
	return nil
}

// Entry looks up an entry by field name.
func (s Schema) Entry(name string) (Entry, bool) {
	for _, entry := range s {
		if entry.Name == name {
			return entry, true
		}
	}
	return Entry{}, false
}

// Defaults materialises the initial form state: text entries map to their
// default string, checkbox groups to a nested map of booleans.
func (s Schema) Defaults() map[string]any {
	out := make(map[string]any, len(s))
	for _, entry := range s {
		switch entry.Kind {
		case KindText:
			if entry.Text != nil {
				out[entry.Name] = entry.Text.Default
			} else {
				out[entry.Name] = ""
			}
		case KindCheckboxGroup:
			if entry.Group == nil {
				continue
			}
			group := make(map[string]any, len(entry.Group.Checkboxes))
			for _, box := range entry.Group.Checkboxes {
				group[box.Name] = box.Default
			}
			out[entry.Name] = group
		}
	}
	return out
}

// FieldPaths returns every dotted value path the schema produces: the entry
// name for text entries, "entry.checkbox" for each group member.
func (s Schema) FieldPaths() []string {
	var out []string
	for _, entry := range s {
		switch entry.Kind {
		case KindText:
			out = append(out, entry.Name)
		case KindCheckboxGroup:
			if entry.Group == nil {
				continue
			}
			for _, box := range entry.Group.Checkboxes {
				out = append(out, entry.Name+"."+box.Name)
			}
		}
	}
	return out
}

// Form is what the dialog and renderers consume: a titled schema plus the
// brand key the submission payload is nested under.
type Form struct {
	Title  string `json:"title" yaml:"title"`
	Brand  string `json:"brand" yaml:"brand"`
	Schema Schema `json:"schema" yaml:"schema"`
}

// NewForm validates the contract props up front. A missing title or brand is
// a programming error on the caller's side, not a recoverable condition.
func NewForm(title, brand string, s Schema) (Form, error) {
	if strings.TrimSpace(title) == "" {
		return Form{}, errors.New("schema: form title is required")
	}
	if strings.TrimSpace(brand) == "" {
		return Form{}, errors.New("schema: form brand is required")
	}
	if err := s.Validate(); err != nil {
		return Form{}, err
	}
	return Form{Title: title, Brand: brand, Schema: s}, nil
}
