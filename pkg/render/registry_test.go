package render

import (
	"context"
	"testing"

	"github.com/skyportal/prefsgen/pkg/schema"
)

type fakeRenderer struct {
	name string
}

func (f *fakeRenderer) Name() string        { return f.name }
func (f *fakeRenderer) ContentType() string { return "text/plain" }
func (f *fakeRenderer) Render(context.Context, schema.Form, RenderOptions) ([]byte, error) {
	return []byte(f.name), nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	registry := NewRegistry()

	if err := registry.Register(&fakeRenderer{name: "tui"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := registry.Register(&fakeRenderer{name: "tui"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected error for nil renderer")
	}
	if err := registry.Register(&fakeRenderer{}); err == nil {
		t.Fatalf("expected error for unnamed renderer")
	}

	renderer, err := registry.Get("tui")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if renderer.Name() != "tui" {
		t.Fatalf("unexpected renderer %q", renderer.Name())
	}

	if _, err := registry.Get("missing"); err == nil {
		t.Fatalf("expected not-found error")
	}
	if !registry.Has("tui") || registry.Has("missing") {
		t.Fatalf("Has reports wrong membership")
	}
}

func TestRegistry_ListIsSorted(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(&fakeRenderer{name: "vanilla"})
	registry.MustRegister(&fakeRenderer{name: "tui"})

	got := registry.List()
	if len(got) != 2 || got[0] != "tui" || got[1] != "vanilla" {
		t.Fatalf("unexpected list order: %v", got)
	}
}
