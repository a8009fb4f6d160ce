package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInfer_StringsAndBoolMappings(t *testing.T) {
	raw := map[string]any{
		"displayName": "",
		"notifications": map[string]any{
			"includeCommentsFromBots": false,
			"mentions":                true,
		},
	}

	got, dropped := Infer(raw)
	if len(dropped) != 0 {
		t.Fatalf("unexpected dropped keys: %+v", dropped)
	}

	want := Schema{
		Text("displayName", ""),
		CheckboxGroup("notifications",
			Checkbox{Name: "includeCommentsFromBots", Default: false},
			Checkbox{Name: "mentions", Default: true},
		),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("schema mismatch (-want +got):\n%s", diff)
	}
}

func TestInfer_ReportsUnsupportedShapes(t *testing.T) {
	raw := map[string]any{
		"displayName": "Alice",
		"fontSize":    14,
		"tags":        []any{"a", "b"},
		"nested": map[string]any{
			"deep": map[string]any{"flag": true},
		},
	}

	got, dropped := Infer(raw)

	if len(got) != 1 || got[0].Name != "displayName" {
		t.Fatalf("expected only displayName to survive, got %+v", got)
	}

	droppedKeys := make(map[string]bool, len(dropped))
	for _, d := range dropped {
		if d.Reason == "" {
			t.Fatalf("dropped key %q has no reason", d.Key)
		}
		droppedKeys[d.Key] = true
	}
	for _, key := range []string{"fontSize", "tags", "nested"} {
		if !droppedKeys[key] {
			t.Fatalf("expected %q to be reported as dropped, got %+v", key, dropped)
		}
	}
}

func TestInfer_Empty(t *testing.T) {
	got, dropped := Infer(nil)
	if got != nil || dropped != nil {
		t.Fatalf("expected nil results for nil input, got %v / %v", got, dropped)
	}
}

func TestInfer_Deterministic(t *testing.T) {
	raw := map[string]any{
		"b": "2",
		"a": "1",
		"c": "3",
	}

	first, _ := Infer(raw)
	for i := 0; i < 10; i++ {
		again, _ := Infer(raw)
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("inference order not stable:\n%s", diff)
		}
	}
	if first[0].Name != "a" || first[2].Name != "c" {
		t.Fatalf("expected sorted key order, got %+v", first)
	}
}
