// Package profile keeps user preference profiles. Submitted payloads arrive
// keyed by brand and are deep-merged into the stored profile, so one widget's
// submit never clobbers another widget's preferences.
package profile

import (
	"errors"
	"sync"
)

// Store holds preference values for a single user profile. Safe for
// concurrent use.
type Store struct {
	mu    sync.RWMutex
	prefs map[string]any
}

// NewStore builds an empty profile store.
func NewStore() *Store {
	return &Store{prefs: make(map[string]any)}
}

// Apply deep-merges a submission payload into the profile. The payload is the
// dialog submit shape: values nested under their brand key. Maps merge
// recursively; scalars and slices replace the stored value.
func (s *Store) Apply(payload map[string]any) error {
	if len(payload) == 0 {
		return errors.New("profile: payload is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs = merge(s.prefs, payload)
	return nil
}

// Brand returns a deep copy of the stored preferences for one brand.
func (s *Store) Brand(brand string) (map[string]any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.prefs[brand]
	if !ok {
		return nil, false
	}
	values, ok := raw.(map[string]any)
	if !ok {
		return nil, false
	}
	return copyMap(values), true
}

// Preferences returns a deep copy of the full profile.
func (s *Store) Preferences() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyMap(s.prefs)
}

// SubmitTo adapts the store into a dialog submit callback.
func (s *Store) SubmitTo() func(payload map[string]any) error {
	return s.Apply
}

func merge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for key, value := range src {
		if next, ok := value.(map[string]any); ok {
			if existing, ok := dst[key].(map[string]any); ok {
				dst[key] = merge(existing, next)
				continue
			}
			dst[key] = merge(nil, next)
			continue
		}
		dst[key] = value
	}
	return dst
}

func copyMap(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for key, value := range src {
		if nested, ok := value.(map[string]any); ok {
			out[key] = copyMap(nested)
			continue
		}
		out[key] = value
	}
	return out
}
