package schema

import (
	"fmt"
	"sort"
)

// Dropped records a key that Infer could not map onto the entry union.
type Dropped struct {
	Key    string
	Reason string
}

// Infer derives a Schema from a raw preference object, the shape older
// callers hand around after decoding JSON or YAML: string values become text
// entries, flat mappings of booleans become checkbox groups. Anything else is
// reported in the returned Dropped slice instead of being silently ignored,
// so callers can log or reject malformed documents.
//
// Keys are visited in sorted order to keep output deterministic regardless of
// map iteration order.
func Infer(raw map[string]any) (Schema, []Dropped) {
	if len(raw) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var (
		out     Schema
		dropped []Dropped
	)
	for _, key := range keys {
		switch value := raw[key].(type) {
		case string:
			out = append(out, Text(key, value))
		case map[string]any:
			boxes, reason := checkboxesFromMap(value)
			if reason != "" {
				dropped = append(dropped, Dropped{Key: key, Reason: reason})
				continue
			}
			out = append(out, CheckboxGroup(key, boxes...))
		case map[string]bool:
			out = append(out, CheckboxGroup(key, checkboxesFromBoolMap(value)...))
		default:
			dropped = append(dropped, Dropped{
				Key:    key,
				Reason: fmt.Sprintf("unsupported value type %T", raw[key]),
			})
		}
	}
	return out, dropped
}

func checkboxesFromMap(raw map[string]any) ([]Checkbox, string) {
	if len(raw) == 0 {
		return nil, "empty mapping"
	}

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	boxes := make([]Checkbox, 0, len(names))
	for _, name := range names {
		value, ok := raw[name].(bool)
		if !ok {
			return nil, fmt.Sprintf("sub-field %q is %T, not bool", name, raw[name])
		}
		boxes = append(boxes, Checkbox{Name: name, Default: value})
	}
	return boxes, ""
}

func checkboxesFromBoolMap(raw map[string]bool) []Checkbox {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	boxes := make([]Checkbox, 0, len(names))
	for _, name := range names {
		boxes = append(boxes, Checkbox{Name: name, Default: raw[name]})
	}
	return boxes
}
