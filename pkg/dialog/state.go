package dialog

import (
	"fmt"
	"strings"

	"github.com/skyportal/prefsgen/pkg/schema"
)

// FormState holds the in-progress, uncommitted field values of an open
// dialog. Values mirror the schema shape: strings for text entries, nested
// maps of booleans for checkbox groups. State is owned by a single Dialog and
// is never shared.
type FormState struct {
	values map[string]any
}

// NewFormState seeds state from the schema defaults.
func NewFormState(s schema.Schema) *FormState {
	return &FormState{values: s.Defaults()}
}

// Values returns a deep copy of the current values so callers cannot mutate
// dialog-owned state.
func (s *FormState) Values() map[string]any {
	if s == nil {
		return nil
	}
	return cloneValues(s.values)
}

// Get resolves a dotted path ("notifications.includeCommentsFromBots").
func (s *FormState) Get(path string) (any, bool) {
	if s == nil || s.values == nil || path == "" {
		return nil, false
	}
	current := any(s.values)
	for _, segment := range strings.Split(path, ".") {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = node[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Set writes a value at a dotted path. The path must resolve inside the
// schema-shaped map; Set does not invent intermediate containers, so a typo
// in a field name surfaces as an error instead of a stray key in the payload.
func (s *FormState) Set(path string, value any) error {
	if s == nil || s.values == nil {
		return fmt.Errorf("dialog: state is not initialised")
	}
	segments := strings.Split(path, ".")
	if len(segments) == 0 || path == "" {
		return fmt.Errorf("dialog: empty field path")
	}

	node := s.values
	for i, segment := range segments {
		if i == len(segments)-1 {
			if _, ok := node[segment]; !ok {
				return fmt.Errorf("dialog: unknown field %q", path)
			}
			node[segment] = value
			return nil
		}
		child, ok := node[segment].(map[string]any)
		if !ok {
			return fmt.Errorf("dialog: unknown field %q", path)
		}
		node = child
	}
	return nil
}

// Reset replaces all values with the defaults of the supplied schema.
func (s *FormState) Reset(sc schema.Schema) {
	if s == nil {
		return
	}
	s.values = sc.Defaults()
}

func cloneValues(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	out := make(map[string]any, len(src))
	for key, value := range src {
		if nested, ok := value.(map[string]any); ok {
			out[key] = cloneValues(nested)
			continue
		}
		out[key] = value
	}
	return out
}
