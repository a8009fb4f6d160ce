package profile_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/skyportal/prefsgen/pkg/dialog"
	"github.com/skyportal/prefsgen/pkg/profile"
	"github.com/skyportal/prefsgen/pkg/schema"
)

func TestStore_ApplyMergesByBrand(t *testing.T) {
	store := profile.NewStore()

	if err := store.Apply(map[string]any{
		"followups": map[string]any{
			"name": "Alice",
			"comments": map[string]any{
				"includeCommentsFromBots": false,
			},
		},
	}); err != nil {
		t.Fatalf("apply: %v", err)
	}

	if err := store.Apply(map[string]any{
		"followups": map[string]any{
			"comments": map[string]any{
				"includeCommentsFromBots": true,
			},
		},
	}); err != nil {
		t.Fatalf("apply: %v", err)
	}

	got, ok := store.Brand("followups")
	if !ok {
		t.Fatalf("brand followups missing")
	}
	want := map[string]any{
		"name": "Alice",
		"comments": map[string]any{
			"includeCommentsFromBots": true,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("merged prefs mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_BrandsAreIndependent(t *testing.T) {
	store := profile.NewStore()

	if err := store.Apply(map[string]any{"a": map[string]any{"x": "1"}}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := store.Apply(map[string]any{"b": map[string]any{"y": "2"}}); err != nil {
		t.Fatalf("apply: %v", err)
	}

	a, ok := store.Brand("a")
	if !ok || a["x"] != "1" {
		t.Fatalf("brand a lost after unrelated submit: %#v", a)
	}
	b, ok := store.Brand("b")
	if !ok || b["y"] != "2" {
		t.Fatalf("brand b missing: %#v", b)
	}
}

func TestStore_CopiesAreDetached(t *testing.T) {
	store := profile.NewStore()
	if err := store.Apply(map[string]any{"a": map[string]any{"x": "1"}}); err != nil {
		t.Fatalf("apply: %v", err)
	}

	got, _ := store.Brand("a")
	got["x"] = "mutated"

	again, _ := store.Brand("a")
	if again["x"] != "1" {
		t.Fatalf("store exposed internal state: %#v", again)
	}
}

func TestStore_EmptyPayload(t *testing.T) {
	store := profile.NewStore()
	if err := store.Apply(nil); err == nil {
		t.Fatalf("expected error for empty payload")
	}
}

func TestStore_SubmitTo(t *testing.T) {
	form, err := schema.NewForm("Preferences", "followups", schema.Schema{
		schema.Text("name", ""),
	})
	if err != nil {
		t.Fatalf("new form: %v", err)
	}

	store := profile.NewStore()
	d, err := dialog.New(form, store.SubmitTo())
	if err != nil {
		t.Fatalf("new dialog: %v", err)
	}

	d.Open()
	if err := d.SetValue("name", "Alice"); err != nil {
		t.Fatalf("set value: %v", err)
	}
	if _, err := d.Submit(); err != nil {
		t.Fatalf("submit: %v", err)
	}

	got, ok := store.Brand("followups")
	if !ok || got["name"] != "Alice" {
		t.Fatalf("submit did not reach the store: %#v", got)
	}
}
