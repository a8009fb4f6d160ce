package uischema

import "strings"

// Store keeps the parsed annotations from overlay documents. It is safe for
// concurrent readers when treated as immutable after construction.
type Store struct {
	brands map[string]Brand
}

// BrandWildcard matches every form brand. Annotations registered under it are
// applied first, then overridden by the brand's own entry when one exists.
const BrandWildcard = "*"

// Brand describes the overlay annotations for a single form brand.
type Brand struct {
	ID     string
	Source string
	Title  string
	Order  []string
	Fields map[string]FieldConfig
}

// FieldConfig customises how one field is presented. Keys in overlay documents
// are dotted field paths or bare leaf names.
type FieldConfig struct {
	Label       string `json:"label,omitempty" yaml:"label,omitempty"`
	Tooltip     string `json:"tooltip,omitempty" yaml:"tooltip,omitempty"`
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
}

func (c FieldConfig) empty() bool {
	return c.Label == "" && c.Tooltip == "" && c.Placeholder == ""
}

// NormalizeFieldPath canonicalises overlay field keys into dotted notation.
func NormalizeFieldPath(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return ""
	}
	replacer := strings.NewReplacer(
		"[", ".",
		"]", "",
		"/", ".",
	)
	normalised := replacer.Replace(trimmed)
	for strings.Contains(normalised, "..") {
		normalised = strings.ReplaceAll(normalised, "..", ".")
	}
	return strings.Trim(normalised, ".")
}
