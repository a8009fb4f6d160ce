package uischema

import (
	"github.com/skyportal/prefsgen/pkg/schema"
)

// Decorator applies overlay annotations to a form.
type Decorator struct {
	store *Store
}

// NewDecorator builds a Decorator backed by the provided store. When store is
// nil or empty, the decorator becomes a no-op.
func NewDecorator(store *Store) *Decorator {
	return &Decorator{store: store}
}

// Decorate augments the supplied form in place. Wildcard annotations apply
// first so a brand's own entry can override them. Overlay paths that match no
// field are ignored, which lets one document annotate many brands.
func (d *Decorator) Decorate(form *schema.Form) error {
	if d == nil || d.store == nil || d.store.Empty() || form == nil {
		return nil
	}

	if wildcard, ok := d.store.Brand(BrandWildcard); ok {
		applyBrand(form, wildcard)
	}
	if brand, ok := d.store.Brand(form.Brand); ok {
		applyBrand(form, brand)
	}
	return nil
}

func applyBrand(form *schema.Form, brand Brand) {
	if brand.Title != "" {
		form.Title = brand.Title
	}

	for idx := range form.Schema {
		applyEntry(&form.Schema[idx], brand.Fields)
	}

	if len(brand.Order) > 0 {
		form.Schema = reorder(form.Schema, brand.Order)
	}
}

func applyEntry(entry *schema.Entry, fields map[string]FieldConfig) {
	if cfg, ok := lookup(fields, entry.Name, entry.Name); ok {
		if cfg.Label != "" {
			entry.Label = cfg.Label
		}
		if cfg.Tooltip != "" {
			entry.Tooltip = cfg.Tooltip
		}
		if cfg.Placeholder != "" && entry.Text != nil {
			text := *entry.Text
			text.Placeholder = cfg.Placeholder
			entry.Text = &text
		}
	}

	if entry.Group == nil {
		return
	}
	boxes := append([]schema.Checkbox(nil), entry.Group.Checkboxes...)
	for i := range boxes {
		path := entry.Name + "." + boxes[i].Name
		cfg, ok := lookup(fields, path, boxes[i].Name)
		if !ok {
			continue
		}
		if cfg.Label != "" {
			boxes[i].Label = cfg.Label
		}
		if cfg.Tooltip != "" {
			boxes[i].Tooltip = cfg.Tooltip
		}
	}
	entry.Group = &schema.GroupEntry{Checkboxes: boxes}
}

// lookup resolves an annotation by full dotted path, falling back to the bare
// leaf name so one annotation can cover a field wherever it nests.
func lookup(fields map[string]FieldConfig, path, leaf string) (FieldConfig, bool) {
	if cfg, ok := fields[path]; ok {
		return cfg, true
	}
	if leaf != path {
		if cfg, ok := fields[leaf]; ok {
			return cfg, true
		}
	}
	return FieldConfig{}, false
}

// reorder moves the named entries to the front in overlay order. Entries the
// overlay does not name keep their relative order after them.
func reorder(entries schema.Schema, order []string) schema.Schema {
	index := make(map[string]int, len(entries))
	for i, entry := range entries {
		index[entry.Name] = i
	}

	out := make(schema.Schema, 0, len(entries))
	taken := make(map[string]bool, len(order))
	for _, name := range order {
		i, ok := index[name]
		if !ok || taken[name] {
			continue
		}
		taken[name] = true
		out = append(out, entries[i])
	}
	for _, entry := range entries {
		if !taken[entry.Name] {
			out = append(out, entry)
		}
	}
	return out
}
