package view

import (
	"github.com/matzehuels/modelgraph/pkg/graph"
)

type relationships struct{}

func (relationships) graph(p Props) graph.Graph {
	return graph.Build(p.Resolved, graph.Options{IncludeRichTextEdges: p.IncludeRichText})
}

func (r relationships) Nodes(p Props) []graph.Node { return r.graph(p).Nodes }
func (r relationships) Edges(p Props) []graph.Edge { return r.graph(p).Edges }

func (relationships) SidebarItems(p Props) []Item {
	items := make([]Item, len(p.ContentTypes))
	for i, t := range p.ContentTypes {
		items[i] = Item{ID: t.ID, Name: t.Name}
	}
	return items
}

type snippetUsage struct{}

func (snippetUsage) Nodes(p Props) []graph.Node {
	return graph.BuildSnippetUsage(p.ContentTypes, p.Snippets).Nodes
}

func (snippetUsage) Edges(p Props) []graph.Edge {
	return graph.BuildSnippetUsage(p.ContentTypes, p.Snippets).Edges
}

func (snippetUsage) SidebarItems(p Props) []Item {
	items := make([]Item, len(p.Snippets))
	for i, s := range p.Snippets {
		items[i] = Item{ID: s.ID, Name: s.Name}
	}
	return items
}

type taxonomyUsage struct{}

func (taxonomyUsage) Nodes(p Props) []graph.Node {
	return graph.BuildTaxonomyUsage(p.Resolved, p.Taxonomies).Nodes
}

func (taxonomyUsage) Edges(p Props) []graph.Edge {
	return graph.BuildTaxonomyUsage(p.Resolved, p.Taxonomies).Edges
}

func (taxonomyUsage) SidebarItems(p Props) []Item {
	items := make([]Item, len(p.Taxonomies))
	for i, t := range p.Taxonomies {
		items[i] = Item{ID: t.ID, Name: t.Name}
	}
	return items
}
