// Package view registers the ways a content model can be drawn.
//
// Each view is a [Renderer] producing the nodes, edges and sidebar entries
// for a [Props] value. The registry is fixed: default, snippet and taxonomy.
package view

import (
	"github.com/matzehuels/modelgraph/pkg/errors"
	"github.com/matzehuels/modelgraph/pkg/graph"
	"github.com/matzehuels/modelgraph/pkg/model"
)

// ID identifies a view.
type ID string

// View identifiers.
const (
	Default  ID = "default"
	Snippet  ID = "snippet"
	Taxonomy ID = "taxonomy"
)

// Props is the input every renderer receives.
type Props struct {
	ContentTypes []model.ContentType
	Snippets     []model.Snippet
	Taxonomies   []model.Taxonomy
	// Resolved holds ContentTypes with snippets inlined.
	Resolved        []model.ResolvedType
	IncludeRichText bool
}

// NewProps normalizes a document into renderer input.
func NewProps(doc model.Document, includeRichText bool) Props {
	return Props{
		ContentTypes:    doc.ContentTypes,
		Snippets:        doc.Snippets,
		Taxonomies:      doc.Taxonomies,
		Resolved:        model.Normalize(doc.ContentTypes, doc.Snippets),
		IncludeRichText: includeRichText,
	}
}

// Item is a sidebar entry.
type Item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Renderer builds the graph of a view.
type Renderer interface {
	Nodes(Props) []graph.Node
	Edges(Props) []graph.Edge
	SidebarItems(Props) []Item
}

// Build runs both halves of a renderer.
func Build(r Renderer, p Props) graph.Graph {
	return graph.Graph{Nodes: r.Nodes(p), Edges: r.Edges(p)}
}

// Info describes a registered view.
type Info struct {
	ID          ID       `json:"id"`
	Label       string   `json:"label"`
	Description string   `json:"description"`
	Renderer    Renderer `json:"-"`
}

var registry = []Info{
	{
		ID:          Default,
		Label:       "Default View",
		Description: "Shows relationships between content types",
		Renderer:    relationships{},
	},
	{
		ID:          Snippet,
		Label:       "Snippet View",
		Description: "Shows how snippets are used across content types",
		Renderer:    snippetUsage{},
	},
	{
		ID:          Taxonomy,
		Label:       "Taxonomy View",
		Description: "Shows how taxonomies are used across content types",
		Renderer:    taxonomyUsage{},
	},
}

// All returns the registered views in menu order.
func All() []Info {
	return append([]Info(nil), registry...)
}

// Lookup returns the view with the given id.
func Lookup(id ID) (Info, error) {
	for _, info := range registry {
		if info.ID == id {
			return info, nil
		}
	}
	return Info{}, errors.New(errors.ErrCodeInvalidView, "unknown view %q (valid: default, snippet, taxonomy)", id)
}

// Next returns the view after id in menu order, wrapping around.
func Next(id ID) ID {
	for i, info := range registry {
		if info.ID == id {
			return registry[(i+1)%len(registry)].ID
		}
	}
	return Default
}
