package dialog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// RequiredMessage is the inline message surfaced next to an empty required
// text field.
const RequiredMessage = "Required"

// ErrMissingRequiredField tags validation failures caused by empty required
// text fields so callers can branch with errors.Is.
var ErrMissingRequiredField = errors.New("dialog: missing required field")

// ErrNotOpen is returned when Submit, Cancel, or SetValue are called on a
// dialog that is not open.
var ErrNotOpen = errors.New("dialog: dialog is not open")

// ValidationError aggregates per-field messages from a failed submit. The
// dialog stays open when it is returned.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "dialog: validation failed"
	}
	paths := make([]string, 0, len(e.Fields))
	for path := range e.Fields {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return fmt.Sprintf("dialog: validation failed for %s", strings.Join(paths, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrMissingRequiredField
}
