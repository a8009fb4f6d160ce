// Package jsonschema converts JSON Schema object definitions into preference
// schemas. String properties become text entries; objects whose properties are
// all booleans become checkbox groups. Anything else is rejected with a typed
// error naming the offending path.
package jsonschema

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/skyportal/prefsgen/pkg/schema"
)

// UnsupportedTypeError reports a property whose shape has no preference
// control mapping.
type UnsupportedTypeError struct {
	Path string
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("jsonschema: property %q has unsupported type %q", e.Path, e.Type)
}

// FromBytes parses a standalone JSON Schema document and converts it.
func FromBytes(data []byte) (schema.Schema, error) {
	if len(data) == 0 {
		return nil, errors.New("jsonschema: document is empty")
	}
	var root openapi3.Schema
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("jsonschema: parse document: %w", err)
	}
	return Convert(&root)
}

// FromDocument loads a full OpenAPI document and converts the named component
// schema. References inside the document are resolved before conversion.
func FromDocument(ctx context.Context, data []byte, component string) (schema.Schema, error) {
	if len(data) == 0 {
		return nil, errors.New("jsonschema: document is empty")
	}
	if component == "" {
		return nil, errors.New("jsonschema: component name is required")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: false,
	}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("jsonschema: load document: %w", err)
	}

	if doc.Components == nil {
		return nil, errors.New("jsonschema: document has no components")
	}
	ref, ok := doc.Components.Schemas[component]
	if !ok {
		return nil, fmt.Errorf("jsonschema: component schema %q not found", component)
	}
	if ref.Value == nil {
		return nil, fmt.Errorf("jsonschema: component schema %q is an unresolved reference", component)
	}
	return Convert(ref.Value)
}

// Convert maps a resolved object schema onto an ordered preference schema.
// Property order follows sorted property names so the result is stable across
// runs.
func Convert(root *openapi3.Schema) (schema.Schema, error) {
	if root == nil {
		return nil, errors.New("jsonschema: schema is nil")
	}
	if !hasType(root.Type, openapi3.TypeObject) {
		return nil, &UnsupportedTypeError{Path: "", Type: typeName(root.Type)}
	}

	names := make([]string, 0, len(root.Properties))
	for name := range root.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make(schema.Schema, 0, len(names))
	for _, name := range names {
		ref := root.Properties[name]
		if ref == nil || ref.Value == nil {
			return nil, fmt.Errorf("jsonschema: property %q is an unresolved reference", name)
		}
		entry, err := convertProperty(name, ref.Value)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := entries.Validate(); err != nil {
		return nil, fmt.Errorf("jsonschema: converted schema invalid: %w", err)
	}
	return entries, nil
}

func convertProperty(name string, prop *openapi3.Schema) (schema.Entry, error) {
	switch {
	case hasType(prop.Type, openapi3.TypeString):
		entry := schema.Text(name, stringDefault(prop.Default))
		entry.Tooltip = prop.Description
		return entry, nil

	case hasType(prop.Type, openapi3.TypeObject):
		boxes, err := convertGroup(name, prop)
		if err != nil {
			return schema.Entry{}, err
		}
		entry := schema.CheckboxGroup(name, boxes...)
		entry.Tooltip = prop.Description
		return entry, nil

	default:
		return schema.Entry{}, &UnsupportedTypeError{Path: name, Type: typeName(prop.Type)}
	}
}

func convertGroup(parent string, prop *openapi3.Schema) ([]schema.Checkbox, error) {
	names := make([]string, 0, len(prop.Properties))
	for name := range prop.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	boxes := make([]schema.Checkbox, 0, len(names))
	for _, name := range names {
		path := parent + "." + name
		ref := prop.Properties[name]
		if ref == nil || ref.Value == nil {
			return nil, fmt.Errorf("jsonschema: property %q is an unresolved reference", path)
		}
		if !hasType(ref.Value.Type, openapi3.TypeBoolean) {
			return nil, &UnsupportedTypeError{Path: path, Type: typeName(ref.Value.Type)}
		}
		boxes = append(boxes, schema.Checkbox{
			Name:    name,
			Default: boolDefault(ref.Value.Default),
			Tooltip: ref.Value.Description,
		})
	}
	return boxes, nil
}

func hasType(types *openapi3.Types, want string) bool {
	if types == nil {
		return false
	}
	for _, t := range types.Slice() {
		if t == want {
			return true
		}
	}
	return false
}

func typeName(types *openapi3.Types) string {
	if types == nil || len(types.Slice()) == 0 {
		return "unknown"
	}
	slice := types.Slice()
	if len(slice) == 1 {
		return slice[0]
	}
	return fmt.Sprintf("%v", slice)
}

func stringDefault(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return ""
}

func boolDefault(value any) bool {
	if b, ok := value.(bool); ok {
		return b
	}
	return false
}
