package model

import (
	"encoding/json"
	"strings"
	"testing"
)

const articleJSON = `{
  "id": "article",
  "name": "Article",
  "contentGroups": [{"id": "g1", "name": "Content"}],
  "elements": [
    {"type": "text", "id": "title", "name": "Title", "is_required": true},
    {"type": "modular_content", "id": "related", "name": "Related",
     "allowed_content_types": [{"id": "article"}, {"id": "page"}],
     "item_count_limit": {"condition": "at_most", "value": 3}},
    {"type": "rich_text", "id": "body", "name": "Body"},
    {"type": "guidelines", "id": "g", "guidelines": "<p>Be brief</p>"},
    {"type": "snippet", "id": "seo-ref", "snippet": {"id": "seo"}},
    {"type": "taxonomy", "id": "tags", "name": "Tags", "taxonomy_group": {"id": "topics"}}
  ]
}`

func TestUnmarshalContentType(t *testing.T) {
	var ct ContentType
	if err := json.Unmarshal([]byte(articleJSON), &ct); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	wantKinds := []Kind{KindText, KindLinkedItems, KindRichText, KindGuidelines, KindSnippet, KindTaxonomy}
	if len(ct.Elements) != len(wantKinds) {
		t.Fatalf("got %d elements, want %d", len(ct.Elements), len(wantKinds))
	}
	for i, k := range wantKinds {
		if got := ct.Elements[i].Kind(); got != k {
			t.Errorf("element %d kind = %q, want %q", i, got, k)
		}
	}

	related, ok := ct.Elements[1].(LinkedItemsField)
	if !ok {
		t.Fatalf("element 1 is %T, want LinkedItemsField", ct.Elements[1])
	}
	if len(related.AllowedContentTypes) != 2 {
		t.Errorf("allowed types = %v", related.AllowedContentTypes)
	}
	if related.ItemCountLimit == nil || related.ItemCountLimit.Value != 3 {
		t.Errorf("item count limit = %v", related.ItemCountLimit)
	}
	if !IsRequired(ct.Elements[0]) {
		t.Error("title should be required")
	}
	if ref := ct.Elements[4].(SnippetField); ref.Snippet.ID != "seo" {
		t.Errorf("snippet ref = %q, want seo", ref.Snippet.ID)
	}
}

func TestUnmarshalFieldErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"unknown type", `{"type": "hologram", "id": "x"}`, `unknown element type "hologram"`},
		{"missing type", `{"id": "x", "name": "X"}`, "missing element type"},
		{"not an object", `[1, 2]`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalField([]byte(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestFieldsUnmarshalReportsIndex(t *testing.T) {
	var fs Fields
	err := json.Unmarshal([]byte(`[{"type":"text","id":"a","name":"A"},{"type":"nope","id":"b"}]`), &fs)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "element 1") {
		t.Errorf("error = %q, want element index", err)
	}
}

func TestFieldsMarshalRoundTrip(t *testing.T) {
	var ct ContentType
	if err := json.Unmarshal([]byte(articleJSON), &ct); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	data, err := json.Marshal(ct)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var again ContentType
	if err := json.Unmarshal(data, &again); err != nil {
		t.Fatalf("re-Unmarshal: %v\n%s", err, data)
	}
	if len(again.Elements) != len(ct.Elements) {
		t.Fatalf("got %d elements after round trip, want %d", len(again.Elements), len(ct.Elements))
	}
	for i := range ct.Elements {
		if again.Elements[i].Kind() != ct.Elements[i].Kind() {
			t.Errorf("element %d kind changed: %q -> %q", i, ct.Elements[i].Kind(), again.Elements[i].Kind())
		}
	}
}

func TestMarshalFieldPutsTypeFirst(t *testing.T) {
	data, err := MarshalField(NumberField{FieldHeader: FieldHeader{ID: "n"}, Named: Named{Name: "Count"}})
	if err != nil {
		t.Fatalf("MarshalField: %v", err)
	}
	want := `{"type":"number","id":"n","name":"Count"}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

func TestAnnotatedFieldJSON(t *testing.T) {
	tests := []struct {
		name  string
		field AnnotatedField
		want  string
	}{
		{
			name:  "own field",
			field: AnnotatedField{Field: DateTimeField{FieldHeader: FieldHeader{ID: "d"}, Named: Named{Name: "Date"}}},
			want:  `{"type":"date_time","id":"d","name":"Date","fromSnippet":false}`,
		},
		{
			name: "from snippet",
			field: AnnotatedField{
				Field:  URLSlugField{FieldHeader: FieldHeader{ID: "s"}, Named: Named{Name: "Slug"}},
				Origin: &SnippetOrigin{ID: "seo", Name: "SEO"},
			},
			want: `{"type":"url_slug","id":"s","name":"Slug","fromSnippet":{"id":"seo","name":"SEO"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.field)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("got  %s\nwant %s", data, tt.want)
			}

			var back AnnotatedField
			if err := json.Unmarshal(data, &back); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if back.FromSnippet() != tt.field.FromSnippet() {
				t.Errorf("FromSnippet = %v, want %v", back.FromSnippet(), tt.field.FromSnippet())
			}
			if back.Kind() != tt.field.Kind() {
				t.Errorf("Kind = %q, want %q", back.Kind(), tt.field.Kind())
			}
		})
	}
}
