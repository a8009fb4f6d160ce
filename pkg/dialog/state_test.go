package dialog

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/skyportal/prefsgen/pkg/schema"
)

func TestFormState_GetSet(t *testing.T) {
	s := NewFormState(schema.Schema{
		schema.Text("displayName", "Alice"),
		schema.CheckboxGroup("notifications", schema.Checkbox{Name: "mentions", Default: true}),
	})

	if got, ok := s.Get("displayName"); !ok || got != "Alice" {
		t.Fatalf("get displayName: %v %v", got, ok)
	}
	if got, ok := s.Get("notifications.mentions"); !ok || got != true {
		t.Fatalf("get nested: %v %v", got, ok)
	}
	if _, ok := s.Get("notifications.missing"); ok {
		t.Fatalf("expected miss for unknown sub-field")
	}

	if err := s.Set("notifications.mentions", false); err != nil {
		t.Fatalf("set nested: %v", err)
	}
	if got, _ := s.Get("notifications.mentions"); got != false {
		t.Fatalf("nested write lost: %v", got)
	}
}

func TestFormState_ValuesIsACopy(t *testing.T) {
	s := NewFormState(schema.Schema{
		schema.CheckboxGroup("notifications", schema.Checkbox{Name: "mentions"}),
	})

	snapshot := s.Values()
	snapshot["notifications"].(map[string]any)["mentions"] = true

	if got, _ := s.Get("notifications.mentions"); got != false {
		t.Fatalf("external mutation leaked into state")
	}
}

func TestFormState_Reset(t *testing.T) {
	s := NewFormState(schema.Schema{schema.Text("displayName", "")})
	if err := s.Set("displayName", "Alice"); err != nil {
		t.Fatalf("set: %v", err)
	}

	s.Reset(schema.Schema{schema.Text("displayName", "Bob")})

	want := map[string]any{"displayName": "Bob"}
	if diff := cmp.Diff(want, s.Values()); diff != "" {
		t.Fatalf("reset mismatch (-want +got):\n%s", diff)
	}
}
