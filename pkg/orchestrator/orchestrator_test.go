package orchestrator_test

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/skyportal/prefsgen/pkg/orchestrator"
	"github.com/skyportal/prefsgen/pkg/render"
	"github.com/skyportal/prefsgen/pkg/schema"
)

func prefsForm(t *testing.T) schema.Form {
	t.Helper()

	form, err := schema.NewForm("Preferences", "followups", schema.Schema{
		schema.Text("name", ""),
		schema.CheckboxGroup("comments",
			schema.Checkbox{Name: "includeCommentsFromBots"},
		),
	})
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	return form
}

func TestGenerate_DefaultRenderer(t *testing.T) {
	o := orchestrator.New()

	form := prefsForm(t)
	output, err := o.Generate(context.Background(), orchestrator.Request{Form: &form})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	html := string(output)
	if !strings.Contains(html, `data-brand="followups"`) {
		t.Fatalf("default renderer output unexpected:\n%s", html)
	}
}

func TestGenerate_EmbeddedOverlayTooltip(t *testing.T) {
	o := orchestrator.New()

	form := prefsForm(t)
	output, err := o.Generate(context.Background(), orchestrator.Request{Form: &form})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if !strings.Contains(string(output), "posted programmatically using API tokens") {
		t.Fatalf("bundled tooltip annotation not applied:\n%s", output)
	}
}

func TestGenerate_OverlayDisabled(t *testing.T) {
	o := orchestrator.New(orchestrator.WithOverlayFS(nil))

	form := prefsForm(t)
	output, err := o.Generate(context.Background(), orchestrator.Request{Form: &form})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if strings.Contains(string(output), "posted programmatically") {
		t.Fatalf("overlay should be disabled:\n%s", output)
	}
}

func TestGenerate_CustomOverlayFS(t *testing.T) {
	fsys := fstest.MapFS{
		"overlay.yaml": &fstest.MapFile{Data: []byte(`
brands:
  followups:
    title: Custom title
`)},
	}
	o := orchestrator.New(orchestrator.WithOverlayFS(fsys))

	form := prefsForm(t)
	output, err := o.Generate(context.Background(), orchestrator.Request{Form: &form})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(output), `aria-label="Custom title"`) {
		t.Fatalf("overlay title not applied:\n%s", output)
	}
}

func TestGenerate_FromDocument(t *testing.T) {
	doc := `{
  "type": "object",
  "properties": {
    "maxNumSources": {"type": "string", "default": "25"}
  }
}`

	o := orchestrator.New()
	output, err := o.Generate(context.Background(), orchestrator.Request{
		Document: []byte(doc),
		Title:    "Source preferences",
		Brand:    "sources",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	html := string(output)
	if !strings.Contains(html, `name="maxNumSources"`) || !strings.Contains(html, `value="25"`) {
		t.Fatalf("document-derived form not rendered:\n%s", html)
	}
}

func TestGenerate_Transformer(t *testing.T) {
	o := orchestrator.New(orchestrator.WithTransformer(
		func(_ context.Context, form *schema.Form) error {
			form.Title = "Transformed"
			return nil
		},
	))

	form := prefsForm(t)
	output, err := o.Generate(context.Background(), orchestrator.Request{Form: &form})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(output), `aria-label="Transformed"`) {
		t.Fatalf("transformer not applied:\n%s", output)
	}
	if form.Title != "Preferences" {
		t.Fatalf("caller's form mutated: %q", form.Title)
	}
}

func TestGenerate_UnknownRenderer(t *testing.T) {
	o := orchestrator.New()

	form := prefsForm(t)
	_, err := o.Generate(context.Background(), orchestrator.Request{
		Form:     &form,
		Renderer: "does-not-exist",
	})
	if err == nil {
		t.Fatalf("expected error for unknown renderer")
	}
}

func TestGenerate_MissingInput(t *testing.T) {
	o := orchestrator.New()
	if _, err := o.Generate(context.Background(), orchestrator.Request{}); err == nil {
		t.Fatalf("expected error when neither form nor document supplied")
	}
}

func TestGenerate_NamedRenderer(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(stubRenderer{name: "stub", output: "stub-output"})

	o := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer("stub"),
		orchestrator.WithOverlayFS(nil),
	)

	form := prefsForm(t)
	output, err := o.Generate(context.Background(), orchestrator.Request{Form: &form})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(output) != "stub-output" {
		t.Fatalf("unexpected output %q", output)
	}
}

type stubRenderer struct {
	name   string
	output string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }

func (s stubRenderer) Render(context.Context, schema.Form, render.RenderOptions) ([]byte, error) {
	return []byte(s.output), nil
}
