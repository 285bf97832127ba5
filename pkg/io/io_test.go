package io

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/modelgraph/pkg/errors"
	"github.com/matzehuels/modelgraph/pkg/graph"
	"github.com/matzehuels/modelgraph/pkg/model"
)

const sampleDocument = `{
  "contentTypes": [
    {
      "id": "article",
      "name": "Article",
      "elements": [
        {"type": "text", "id": "title", "name": "Title", "is_required": true},
        {"type": "modular_content", "id": "rel", "name": "Related", "allowed_content_types": [{"id": "page"}]},
        {"type": "snippet", "id": "seo", "snippet": {"id": "s1"}}
      ]
    },
    {"id": "page", "name": "Page", "elements": []}
  ],
  "snippets": [
    {"id": "s1", "name": "SEO", "elements": [{"type": "text", "id": "meta", "name": "Meta"}]}
  ],
  "taxonomies": [
    {"id": "tx", "name": "Topics", "terms": [{"id": "t1", "name": "News", "terms": []}]}
  ]
}`

func TestReadDocument(t *testing.T) {
	doc, err := ReadDocument(strings.NewReader(sampleDocument))
	if err != nil {
		t.Fatalf("ReadDocument: %v", err)
	}
	if len(doc.ContentTypes) != 2 || len(doc.Snippets) != 1 || len(doc.Taxonomies) != 1 {
		t.Fatalf("doc = %+v", doc)
	}
	els := doc.ContentTypes[0].Elements
	if len(els) != 3 {
		t.Fatalf("elements = %d, want 3", len(els))
	}
	if _, ok := els[1].(model.LinkedItemsField); !ok {
		t.Errorf("element 1 = %T, want LinkedItemsField", els[1])
	}
	if !model.IsRequired(els[0]) {
		t.Error("title should be required")
	}
}

func TestReadDocumentRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", `{`},
		{"array", `[]`},
		{"null", `null`},
		{"missing contentTypes", `{"snippets": [], "taxonomies": []}`},
		{"missing snippets", `{"contentTypes": [], "taxonomies": []}`},
		{"missing taxonomies", `{"contentTypes": [], "snippets": []}`},
		{"null taxonomies", `{"contentTypes": [], "snippets": [], "taxonomies": null}`},
		{"unknown element type", `{"contentTypes": [{"id": "a", "elements": [{"type": "hologram", "id": "x"}]}], "snippets": [], "taxonomies": []}`},
		{"element without type", `{"contentTypes": [{"id": "a", "elements": [{"id": "x"}]}], "snippets": [], "taxonomies": []}`},
		{"content type without id", `{"contentTypes": [{"name": "Article", "elements": []}], "snippets": [], "taxonomies": []}`},
		{"content type with empty id", `{"contentTypes": [{"id": "", "name": "Article", "elements": []}], "snippets": [], "taxonomies": []}`},
		{"snippet without id", `{"contentTypes": [], "snippets": [{"name": "SEO", "elements": []}], "taxonomies": []}`},
		{"taxonomy without id", `{"contentTypes": [], "snippets": [], "taxonomies": [{"name": "Topics", "terms": []}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadDocument(strings.NewReader(tt.input))
			if !errors.Is(err, errors.ErrCodeInvalidDocument) {
				t.Fatalf("err = %v, want INVALID_DOCUMENT", err)
			}
			if !strings.Contains(errors.UserMessage(err), "invalid content model format") {
				t.Errorf("message = %q", errors.UserMessage(err))
			}
		})
	}
}

func TestReadDocumentEmptyCollections(t *testing.T) {
	doc, err := ReadDocument(strings.NewReader(`{"contentTypes": [], "snippets": [], "taxonomies": []}`))
	if err != nil {
		t.Fatalf("ReadDocument: %v", err)
	}
	if len(doc.ContentTypes)+len(doc.Snippets)+len(doc.Taxonomies) != 0 {
		t.Errorf("doc = %+v, want empty", doc)
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	doc, err := ReadDocument(strings.NewReader(sampleDocument))
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "export.json")
	if err := ExportDocument(doc, path); err != nil {
		t.Fatalf("ExportDocument: %v", err)
	}
	got, err := ImportDocument(path)
	if err != nil {
		t.Fatalf("ImportDocument: %v", err)
	}
	if !reflect.DeepEqual(got, doc) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, doc)
	}
}

func TestWriteDocumentEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteDocument(model.Document{}, &buf); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadDocument(&buf); err != nil {
		t.Errorf("empty document does not re-import: %v", err)
	}
}

func TestImportDocumentMissingFile(t *testing.T) {
	if _, err := ImportDocument(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestExportFrame(t *testing.T) {
	frame := graph.Frame{
		View:   "default",
		Nodes:  []graph.Node{{ID: "a", Kind: graph.KindContentType, Width: 172, Height: 76}},
		Edges:  []graph.Edge{},
		Width:  172,
		Height: 76,
	}
	path := filepath.Join(t.TempDir(), "frame.json")
	if err := ExportFrame(frame, path); err != nil {
		t.Fatalf("ExportFrame: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got, err := graph.ReadFrame(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if got.View != "default" || len(got.Nodes) != 1 || got.Width != 172 {
		t.Errorf("frame = %+v", got)
	}
}

func TestExportFilename(t *testing.T) {
	ts := time.Date(2025, 1, 31, 9, 30, 15, 0, time.FixedZone("CET", 3600))
	got := ExportFilename("my-env", ts)
	want := "model-visualizer-export-my-env-2025-01-31-0830UTC.json"
	if got != want {
		t.Errorf("ExportFilename = %q, want %q", got, want)
	}
}

func ExampleExportFilename() {
	ts := time.Date(2024, 12, 24, 18, 5, 0, 0, time.UTC)
	fmt.Println(ExportFilename("production", ts))
	// Output: model-visualizer-export-production-2024-12-24-1805UTC.json
}
