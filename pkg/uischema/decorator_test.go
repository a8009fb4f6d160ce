package uischema_test

import (
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/skyportal/prefsgen/pkg/schema"
	"github.com/skyportal/prefsgen/pkg/uischema"
)

func buildForm(t *testing.T) schema.Form {
	t.Helper()

	form, err := schema.NewForm("Preferences", "followups", schema.Schema{
		schema.Text("name", ""),
		schema.CheckboxGroup("comments",
			schema.Checkbox{Name: "includeCommentsFromBots"},
			schema.Checkbox{Name: "excludeArchived"},
		),
	})
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	return form
}

func storeFrom(t *testing.T, doc string) *uischema.Store {
	t.Helper()

	store, err := uischema.LoadFS(fstest.MapFS{
		"overlay.yaml": &fstest.MapFile{Data: []byte(doc)},
	})
	if err != nil {
		t.Fatalf("load overlay: %v", err)
	}
	return store
}

func TestDecorator_AppliesAnnotations(t *testing.T) {
	store := storeFrom(t, `
brands:
  followups:
    title: Followup preferences
    order: [comments, name]
    fields:
      name:
        label: Display name
        placeholder: e.g. Alice
      comments.includeCommentsFromBots:
        tooltip: Bot comments are those posted programmatically using API tokens
`)

	form := buildForm(t)
	if err := uischema.NewDecorator(store).Decorate(&form); err != nil {
		t.Fatalf("decorate: %v", err)
	}

	if form.Title != "Followup preferences" {
		t.Fatalf("title not applied: %q", form.Title)
	}

	wantOrder := []string{"comments", "name"}
	gotOrder := make([]string, 0, len(form.Schema))
	for _, entry := range form.Schema {
		gotOrder = append(gotOrder, entry.Name)
	}
	if diff := cmp.Diff(wantOrder, gotOrder); diff != "" {
		t.Fatalf("entry order mismatch (-want +got):\n%s", diff)
	}

	name := form.Schema[1]
	if name.Label != "Display name" {
		t.Fatalf("label not applied: %q", name.Label)
	}
	if name.Text == nil || name.Text.Placeholder != "e.g. Alice" {
		t.Fatalf("placeholder not applied: %#v", name.Text)
	}

	boxes := form.Schema[0].Group.Checkboxes
	if boxes[0].Tooltip == "" {
		t.Fatalf("checkbox tooltip not applied: %#v", boxes[0])
	}
	if boxes[1].Tooltip != "" {
		t.Fatalf("unannotated checkbox gained a tooltip: %#v", boxes[1])
	}
}

func TestDecorator_WildcardAndOverride(t *testing.T) {
	store := storeFrom(t, `
brands:
  "*":
    fields:
      includeCommentsFromBots:
        tooltip: generic tooltip
  followups:
    fields:
      comments.includeCommentsFromBots:
        tooltip: brand tooltip
`)

	form := buildForm(t)
	if err := uischema.NewDecorator(store).Decorate(&form); err != nil {
		t.Fatalf("decorate: %v", err)
	}

	var comments schema.Entry
	for _, entry := range form.Schema {
		if entry.Name == "comments" {
			comments = entry
		}
	}
	if got := comments.Group.Checkboxes[0].Tooltip; got != "brand tooltip" {
		t.Fatalf("brand overlay should win over wildcard, got %q", got)
	}
}

func TestDecorator_BareLeafMatchesNestedCheckbox(t *testing.T) {
	store := storeFrom(t, `
brands:
  "*":
    fields:
      includeCommentsFromBots:
        tooltip: leaf tooltip
`)

	form := buildForm(t)
	if err := uischema.NewDecorator(store).Decorate(&form); err != nil {
		t.Fatalf("decorate: %v", err)
	}

	for _, entry := range form.Schema {
		if entry.Name != "comments" {
			continue
		}
		if got := entry.Group.Checkboxes[0].Tooltip; got != "leaf tooltip" {
			t.Fatalf("leaf annotation not applied, got %q", got)
		}
	}
}

func TestDecorator_NoMatchIsNoOp(t *testing.T) {
	store := storeFrom(t, `
brands:
  otherBrand:
    fields:
      name:
        label: Should not apply
`)

	form := buildForm(t)
	want := buildForm(t)
	if err := uischema.NewDecorator(store).Decorate(&form); err != nil {
		t.Fatalf("decorate: %v", err)
	}
	if diff := cmp.Diff(want, form); diff != "" {
		t.Fatalf("form changed without a matching brand (-want +got):\n%s", diff)
	}
}

func TestDecorator_NilStore(t *testing.T) {
	form := buildForm(t)
	if err := uischema.NewDecorator(nil).Decorate(&form); err != nil {
		t.Fatalf("decorate with nil store: %v", err)
	}
}
