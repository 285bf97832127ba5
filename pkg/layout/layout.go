package layout

import (
	"fmt"
	"math"

	"github.com/matzehuels/modelgraph/pkg/dag"
	"github.com/matzehuels/modelgraph/pkg/dag/transform"
	"github.com/matzehuels/modelgraph/pkg/graph"
)

// Size returns the box size of a node: the base size when collapsed, grown
// by one row height per renderable row when expanded.
func Size(n graph.Node, opts Options) (w, h float64) {
	opts.SetDefaults()
	w, h = opts.NodeWidth, opts.NodeHeight
	if n.Expanded {
		h += opts.RowHeight * float64(graph.RowCount(n))
	}
	return w, h
}

// Layout positions the visible nodes and returns them in input order with
// Width, Height and a top-left Position set. Hidden nodes, nodes without an
// id and edges with a hidden or missing endpoint are ignored; edges are only
// used for placement and are not modified.
//
// Invalid options yield an INVALID_LAYOUT error.
func Layout(nodes []graph.Node, edges []graph.Edge, opts Options) ([]graph.Node, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	g := dag.New()
	visible := make([]graph.Node, 0, len(nodes))
	placed := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if n.Hidden {
			continue
		}
		n.Width, n.Height = Size(n, opts)
		if err := g.AddNode(dag.Node{ID: n.ID, Width: n.Width, Height: n.Height}); err != nil {
			continue
		}
		placed[n.ID] = true
		visible = append(visible, n)
	}
	if len(visible) == 0 {
		return visible, nil
	}

	addEdges(g, edges, placed)
	transform.BreakCycles(g, opts.acyclicer())
	transform.Rank(g, opts.ranker())
	transform.Subdivide(g)
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("layered graph: %w", err)
	}

	orders := order(g)
	cross := assignCross(g, orders, opts)
	ranks := assignRanks(g, orders, opts)

	minX, minY := math.Inf(1), math.Inf(1)
	for i := range visible {
		n := &visible[i]
		dn, _ := g.Node(n.ID)
		c, r := cross[n.ID], ranks[dn.Row]
		cx, cy := c, r
		if opts.horizontal() {
			cx, cy = r, c
		}
		n.Position = graph.Position{X: cx - n.Width/2, Y: cy - n.Height/2}
		minX = min(minX, n.Position.X)
		minY = min(minY, n.Position.Y)
	}
	for i := range visible {
		visible[i].Position.X -= minX
		visible[i].Position.Y -= minY
	}
	return visible, nil
}

// addEdges adds one DAG edge per distinct pair of placed endpoints. Self
// loops are skipped.
func addEdges(g *dag.DAG, edges []graph.Edge, placed map[string]bool) {
	for _, e := range edges {
		if !placed[e.Source] || !placed[e.Target] || e.Source == e.Target {
			continue
		}
		if g.HasEdge(e.Source, e.Target) {
			continue
		}
		_ = g.AddEdge(dag.Edge{From: e.Source, To: e.Target})
	}
}
