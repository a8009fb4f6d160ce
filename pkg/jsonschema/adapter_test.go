package jsonschema_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/skyportal/prefsgen/pkg/jsonschema"
	"github.com/skyportal/prefsgen/pkg/schema"
)

const prefsSchema = `{
  "type": "object",
  "properties": {
    "maxNumSources": {
      "type": "string",
      "default": "25",
      "description": "Cap on displayed sources"
    },
    "comments": {
      "type": "object",
      "properties": {
        "includeCommentsFromBots": {"type": "boolean", "default": false},
        "excludeArchived": {"type": "boolean", "default": true}
      }
    }
  }
}`

func TestFromBytes(t *testing.T) {
	got, err := jsonschema.FromBytes([]byte(prefsSchema))
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	want := schema.Schema{
		{
			Name: "comments",
			Kind: schema.KindCheckboxGroup,
			Group: &schema.GroupEntry{Checkboxes: []schema.Checkbox{
				{Name: "excludeArchived", Default: true},
				{Name: "includeCommentsFromBots", Default: false},
			}},
		},
		{
			Name:    "maxNumSources",
			Kind:    schema.KindText,
			Tooltip: "Cap on displayed sources",
			Text:    &schema.TextEntry{Default: "25"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("schema mismatch (-want +got):\n%s", diff)
	}
}

func TestFromBytes_Deterministic(t *testing.T) {
	first, err := jsonschema.FromBytes([]byte(prefsSchema))
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := jsonschema.FromBytes([]byte(prefsSchema))
		if err != nil {
			t.Fatalf("convert: %v", err)
		}
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("conversion not deterministic (-first +again):\n%s", diff)
		}
	}
}

func TestFromBytes_UnsupportedTypes(t *testing.T) {
	cases := []struct {
		name     string
		doc      string
		wantPath string
	}{
		{
			name:     "numeric property",
			doc:      `{"type": "object", "properties": {"count": {"type": "integer"}}}`,
			wantPath: "count",
		},
		{
			name:     "non-boolean group member",
			doc:      `{"type": "object", "properties": {"group": {"type": "object", "properties": {"inner": {"type": "string"}}}}}`,
			wantPath: "group.inner",
		},
		{
			name:     "non-object root",
			doc:      `{"type": "array"}`,
			wantPath: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := jsonschema.FromBytes([]byte(tc.doc))
			var unsupported *jsonschema.UnsupportedTypeError
			if !errors.As(err, &unsupported) {
				t.Fatalf("expected UnsupportedTypeError, got %v", err)
			}
			if unsupported.Path != tc.wantPath {
				t.Fatalf("path = %q, want %q", unsupported.Path, tc.wantPath)
			}
		})
	}
}

func TestFromDocument(t *testing.T) {
	doc := `{
  "openapi": "3.0.3",
  "info": {"title": "prefs", "version": "1.0.0"},
  "paths": {},
  "components": {
    "schemas": {
      "WidgetPrefs": {
        "type": "object",
        "properties": {
          "displayName": {"type": "string"}
        }
      }
    }
  }
}`

	got, err := jsonschema.FromDocument(context.Background(), []byte(doc), "WidgetPrefs")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if len(got) != 1 || got[0].Name != "displayName" || got[0].Kind != schema.KindText {
		t.Fatalf("unexpected schema: %#v", got)
	}

	if _, err := jsonschema.FromDocument(context.Background(), []byte(doc), "Missing"); err == nil {
		t.Fatalf("expected error for unknown component")
	}
}

func TestFromBytes_EmptyDocument(t *testing.T) {
	if _, err := jsonschema.FromBytes(nil); err == nil {
		t.Fatalf("expected error for empty document")
	}
}
