package graph

import (
	"fmt"
	"testing"

	"github.com/matzehuels/modelgraph/pkg/model"
)

func refs(ids ...string) []model.Ref {
	out := make([]model.Ref, len(ids))
	for i, id := range ids {
		out[i] = model.Ref{ID: id}
	}
	return out
}

func linked(id string, targets ...string) model.LinkedItemsField {
	return model.LinkedItemsField{
		FieldHeader:         model.FieldHeader{ID: id},
		Named:               model.Named{Name: id},
		AllowedContentTypes: refs(targets...),
	}
}

func richText(id string, targets ...string) model.RichTextField {
	return model.RichTextField{
		FieldHeader:         model.FieldHeader{ID: id},
		Named:               model.Named{Name: id},
		AllowedContentTypes: refs(targets...),
	}
}

func resolved(types ...model.ContentType) []model.ResolvedType {
	return model.Normalize(types, nil)
}

func edgeIDs(g Graph) []string {
	ids := make([]string, len(g.Edges))
	for i, e := range g.Edges {
		ids[i] = e.ID
	}
	return ids
}

func TestBuildArticlePage(t *testing.T) {
	g := Build(resolved(
		model.ContentType{ID: "a", Name: "Article", Elements: model.Fields{linked("rel", "a", "b")}},
		model.ContentType{ID: "b", Name: "Page"},
	), Options{IncludeRichTextEdges: true})

	if got := fmt.Sprint(g.NodeIDs()); got != "[a b]" {
		t.Fatalf("nodes = %s, want [a b]", got)
	}
	if len(g.Edges) != 1 {
		t.Fatalf("edges = %v, want one", edgeIDs(g))
	}
	e := g.Edges[0]
	if e.Source != "a" || e.Target != "b" {
		t.Errorf("edge %s->%s, want a->b", e.Source, e.Target)
	}
	if e.ID != "a-rel-b" || e.SourceAnchor != "source-rel" || e.TargetAnchor != "target" {
		t.Errorf("edge = %+v", e)
	}
	if e.Kind != EdgeRelationship || e.RichText {
		t.Errorf("edge kind = %s rich=%v", e.Kind, e.RichText)
	}

	a, _ := g.Node("a")
	if fmt.Sprint(a.SelfReferenceFieldIDs) != "[rel]" {
		t.Errorf("self references = %v, want [rel]", a.SelfReferenceFieldIDs)
	}
	if a.Kind != KindContentType || a.Label != "Article" {
		t.Errorf("node a = %+v", a)
	}
}

func TestBuildDedup(t *testing.T) {
	g := Build(resolved(
		model.ContentType{ID: "a", Elements: model.Fields{linked("rel", "b", "b", "b"), linked("other", "b")}},
		model.ContentType{ID: "b"},
	), Options{})

	want := "[a-rel-b a-other-b]"
	if got := fmt.Sprint(edgeIDs(g)); got != want {
		t.Errorf("edges = %s, want %s", got, want)
	}
}

func TestBuildDanglingTarget(t *testing.T) {
	g := Build(resolved(
		model.ContentType{ID: "a", Elements: model.Fields{linked("rel", "ghost")}},
	), Options{})

	if len(g.Edges) != 0 {
		t.Errorf("edges = %v, want none", edgeIDs(g))
	}
}

func TestBuildRichTextToggle(t *testing.T) {
	types := resolved(
		model.ContentType{ID: "a", Elements: model.Fields{linked("rel", "b"), richText("body", "b", "c")}},
		model.ContentType{ID: "b", Elements: model.Fields{richText("plain")}},
		model.ContentType{ID: "c"},
	)

	without := Build(types, Options{IncludeRichTextEdges: false})
	with := Build(types, Options{IncludeRichTextEdges: true})

	for _, e := range without.Edges {
		if e.RichText {
			t.Errorf("rich text edge %s present without flag", e.ID)
		}
	}
	if got := fmt.Sprint(edgeIDs(without)); got != "[a-rel-b]" {
		t.Errorf("without rich text = %s", got)
	}
	if got := fmt.Sprint(edgeIDs(with)); got != "[a-rel-b a-body-b a-body-c]" {
		t.Errorf("with rich text = %s", got)
	}
	for _, e := range with.Edges[1:] {
		if !e.RichText {
			t.Errorf("edge %s should be rich text derived", e.ID)
		}
	}
}

func TestBuildInlinedSnippetEdges(t *testing.T) {
	types := []model.ContentType{
		{ID: "a", Elements: model.Fields{model.SnippetField{FieldHeader: model.FieldHeader{ID: "ref"}, Snippet: model.Ref{ID: "s"}}}},
		{ID: "b"},
	}
	snippets := []model.Snippet{{ID: "s", Name: "S", Elements: model.Fields{linked("author", "b")}}}

	g := Build(model.Normalize(types, snippets), Options{})
	if got := fmt.Sprint(edgeIDs(g)); got != "[a-author-b]" {
		t.Errorf("edges = %s, want [a-author-b]", got)
	}
}

func TestBuildSnippetUsage(t *testing.T) {
	ref := func(id, snippet string) model.SnippetField {
		return model.SnippetField{FieldHeader: model.FieldHeader{ID: id}, Snippet: model.Ref{ID: snippet}}
	}
	types := []model.ContentType{
		{ID: "article", Elements: model.Fields{ref("seo-ref", "seo"), ref("missing-ref", "ghost")}},
		{ID: "plain", Elements: model.Fields{linked("rel", "article")}},
	}
	snippets := []model.Snippet{{ID: "seo", Name: "SEO"}, {ID: "unused", Name: "Unused"}}

	g := BuildSnippetUsage(types, snippets)

	if got := fmt.Sprint(g.NodeIDs()); got != "[seo unused article plain]" {
		t.Fatalf("nodes = %s", got)
	}
	if got := fmt.Sprint(g.VisibleNodeIDs()); got != "[seo unused article]" {
		t.Errorf("visible = %s, want plain hidden", got)
	}
	if len(g.Edges) != 1 {
		t.Fatalf("edges = %v, want one", edgeIDs(g))
	}
	e := g.Edges[0]
	want := Edge{
		ID: "seo-article-seo-ref", Source: "seo", Target: "article",
		SourceAnchor: "source", TargetAnchor: "target-seo-ref", Kind: EdgeSnippet,
	}
	if e != want {
		t.Errorf("edge = %+v\nwant   %+v", e, want)
	}

	article, _ := g.Node("article")
	if len(article.Fields) != 2 || article.Fields[0].Kind() != model.KindSnippet {
		t.Errorf("snippet view should show raw fields, got %d", len(article.Fields))
	}
}

func TestBuildTaxonomyUsage(t *testing.T) {
	tags := model.TaxonomyField{
		FieldHeader:   model.FieldHeader{ID: "tags"},
		Named:         model.Named{Name: "Tags"},
		TaxonomyGroup: model.Ref{ID: "topics"},
	}
	types := resolved(
		model.ContentType{ID: "article", Elements: model.Fields{tags}},
		model.ContentType{ID: "page"},
	)
	taxonomies := []model.Taxonomy{{
		ID:   "topics",
		Name: "Topics",
		Terms: []model.Term{
			{ID: "t1", Name: "Go", Terms: []model.Term{{ID: "t3", Name: "Generics"}}},
			{ID: "t2", Name: "Rust"},
		},
	}}

	g := BuildTaxonomyUsage(types, taxonomies)

	if got := fmt.Sprint(g.VisibleNodeIDs()); got != "[topics article]" {
		t.Errorf("visible = %s", got)
	}
	topics, _ := g.Node("topics")
	if fmt.Sprint(topics.Terms) != "[Go Rust]" {
		t.Errorf("terms = %v, want first level only", topics.Terms)
	}
	if len(g.Edges) != 1 {
		t.Fatalf("edges = %v", edgeIDs(g))
	}
	e := g.Edges[0]
	if e.ID != "topics-article-tags" || e.SourceAnchor != "source-topics" || e.TargetAnchor != "target-tags" {
		t.Errorf("edge = %+v", e)
	}
}
