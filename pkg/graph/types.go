package graph

import "github.com/matzehuels/modelgraph/pkg/model"

// =============================================================================
// Constants
// =============================================================================

// NodeKind identifies the entity a node stands for.
type NodeKind string

// Node kinds.
const (
	KindContentType NodeKind = "contentType"
	KindSnippet     NodeKind = "snippet"
	KindTaxonomy    NodeKind = "taxonomy"
)

// EdgeKind identifies the relation an edge stands for.
type EdgeKind string

// Edge kinds.
const (
	EdgeRelationship EdgeKind = "relationship"
	EdgeSnippet      EdgeKind = "snippet"
	EdgeTaxonomy     EdgeKind = "taxonomy"
)

// Anchor names shared by all views.
const (
	AnchorSource = "source"
	AnchorTarget = "target"
)

// SourceAnchor returns the anchor of a field's outgoing connection point.
func SourceAnchor(id string) string { return AnchorSource + "-" + id }

// TargetAnchor returns the anchor of a field's incoming connection point.
func TargetAnchor(id string) string { return AnchorTarget + "-" + id }

// =============================================================================
// Graph
// =============================================================================

// Graph is the node and edge list of one build pass.
//
// Nodes are rebuilt wholesale on every pass; Hidden and Expanded are
// annotations layered on afterwards by the visibility controller.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node returns the node with the given id.
func (g Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// NodeIDs returns the ids of all nodes in order.
func (g Graph) NodeIDs() []string {
	ids := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		ids[i] = n.ID
	}
	return ids
}

// VisibleNodeIDs returns the ids of nodes that are not hidden, in order.
func (g Graph) VisibleNodeIDs() []string {
	var ids []string
	for _, n := range g.Nodes {
		if !n.Hidden {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

// Clone returns a copy whose node and edge slices can be modified without
// affecting g. Field slices are shared.
func (g Graph) Clone() Graph {
	return Graph{
		Nodes: append([]Node(nil), g.Nodes...),
		Edges: append([]Edge(nil), g.Edges...),
	}
}

// =============================================================================
// Node
// =============================================================================

// Position is a point on the canvas. Layout output uses top-left corners.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is a content type, snippet or taxonomy box.
type Node struct {
	ID    string   `json:"id"`
	Kind  NodeKind `json:"kind"`
	Label string   `json:"label"`

	Fields                []model.AnnotatedField `json:"elements,omitempty"`
	ContentGroups         []model.ContentGroup   `json:"contentGroups,omitempty"`
	Terms                 []string               `json:"terms,omitempty"`
	SelfReferenceFieldIDs []string               `json:"selfReferenceFieldIds,omitempty"`

	Position Position `json:"position"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	Hidden   bool     `json:"hidden"`
	Expanded bool     `json:"expanded"`
}

// SelfReferences reports whether the field with the given id can reference
// the node's own type.
func (n Node) SelfReferences(fieldID string) bool {
	for _, id := range n.SelfReferenceFieldIDs {
		if id == fieldID {
			return true
		}
	}
	return false
}

// =============================================================================
// Edge
// =============================================================================

// Edge is a directed connection between two nodes, attached to anchors on
// either side.
type Edge struct {
	ID           string   `json:"id"`
	Source       string   `json:"source"`
	Target       string   `json:"target"`
	SourceAnchor string   `json:"sourceAnchor"`
	TargetAnchor string   `json:"targetAnchor"`
	Kind         EdgeKind `json:"kind"`
	RichText     bool     `json:"isRichTextDerived"`
}
