package model

import (
	"fmt"
	"testing"
)

func TestLabel(t *testing.T) {
	tests := []struct {
		field Field
		want  string
	}{
		{TextField{}, "Text"},
		{RichTextField{}, "Rich Text"},
		{NumberField{}, "Number"},
		{MultipleChoiceField{}, "Multiple Choice"},
		{DateTimeField{}, "Date & Time"},
		{AssetField{}, "Asset"},
		{LinkedItemsField{}, "Linked Items"},
		{SubpagesField{}, "Subpages"},
		{URLSlugField{}, "URL Slug"},
		{GuidelinesField{}, "Guidelines"},
		{TaxonomyField{}, "Taxonomy"},
		{CustomField{}, "Custom"},
		{SnippetField{}, "Snippet"},
		{AnnotatedField{Field: SubpagesField{}}, "Subpages"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Label(tt.field); got != tt.want {
				t.Errorf("Label(%T) = %q, want %q", tt.field, got, tt.want)
			}
		})
	}
}

func TestName(t *testing.T) {
	if name, ok := Name(TextField{Named: Named{Name: "Title"}}); !ok || name != "Title" {
		t.Errorf("Name(text) = %q, %v", name, ok)
	}
	if _, ok := Name(GuidelinesField{}); ok {
		t.Error("guidelines should be unnamed")
	}
	if _, ok := Name(SnippetField{}); ok {
		t.Error("snippet reference should be unnamed")
	}
}

func TestIsRequirable(t *testing.T) {
	for _, f := range []Field{TextField{}, AssetField{}, TaxonomyField{}, CustomField{}} {
		if !IsRequirable(f) {
			t.Errorf("%T should be requirable", f)
		}
	}
	for _, f := range []Field{GuidelinesField{}, SnippetField{}} {
		if IsRequirable(f) {
			t.Errorf("%T should not be requirable", f)
		}
	}
}

func TestIsRelationship(t *testing.T) {
	targets := []Ref{{ID: "a"}}
	tests := []struct {
		name  string
		field Field
		want  bool
	}{
		{"linked items with targets", LinkedItemsField{AllowedContentTypes: targets}, true},
		{"linked items without list", LinkedItemsField{}, false},
		{"subpages with targets", SubpagesField{AllowedContentTypes: targets}, true},
		{"rich text with targets", RichTextField{AllowedContentTypes: targets}, true},
		{"rich text with empty list", RichTextField{AllowedContentTypes: []Ref{}}, true},
		{"plain rich text", RichTextField{}, false},
		{"taxonomy", TaxonomyField{}, false},
		{"annotated", AnnotatedField{Field: LinkedItemsField{AllowedContentTypes: targets}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRelationship(tt.field); got != tt.want {
				t.Errorf("IsRelationship() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestItemCountLimitString(t *testing.T) {
	tests := []struct {
		limit ItemCountLimit
		want  string
	}{
		{ItemCountLimit{AtLeast, 2}, "At least 2 items"},
		{ItemCountLimit{AtMost, 5}, "At most 5 items"},
		{ItemCountLimit{Exactly, 1}, "Exactly 1 item"},
	}
	for _, tt := range tests {
		if got := tt.limit.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestCountLimit(t *testing.T) {
	limit := &ItemCountLimit{Exactly, 1}
	if CountLimit(SubpagesField{ItemCountLimit: limit}) != limit {
		t.Error("subpages limit not returned")
	}
	if CountLimit(TextField{}) != nil {
		t.Error("text field should have no limit")
	}
}

func ExampleLabel() {
	fields := Fields{
		TextField{Named: Named{Name: "Title"}},
		LinkedItemsField{Named: Named{Name: "Authors"}},
		DateTimeField{Named: Named{Name: "Published"}},
	}
	for _, f := range fields {
		name, _ := Name(f)
		fmt.Printf("%s: %s\n", name, Label(f))
	}
	// Output:
	// Title: Text
	// Authors: Linked Items
	// Published: Date & Time
}
