package transform

import (
	"fmt"

	"github.com/matzehuels/modelgraph/pkg/dag"
)

// Subdivide replaces every edge spanning more than one row with a chain of
// single-row edges through [dag.NodeKindVirtual] nodes:
//
//	Before: article (row 0) → tag (row 3)
//	After:  article → _v:article:tag:1 → _v:article:tag:2 → tag
//
// Virtual nodes have zero size and carry the edge source as MasterID. The
// returned map lists, for each subdivided edge, the virtual node IDs from
// top to bottom.
func Subdivide(g *dag.DAG) map[dag.Edge][]string {
	gen := newIDGen(g.Nodes())
	chains := make(map[dag.Edge][]string)

	for _, e := range g.Edges() {
		src, srcOK := g.Node(e.From)
		dst, dstOK := g.Node(e.To)
		if !srcOK || !dstOK || dst.Row <= src.Row+1 {
			continue
		}

		g.RemoveEdge(e.From, e.To)
		prev := src.ID
		var chain []string
		for row := src.Row + 1; row < dst.Row; row++ {
			id := gen.next(e, row)
			_ = g.AddNode(dag.Node{ID: id, Row: row, Kind: dag.NodeKindVirtual, MasterID: src.ID})
			_ = g.AddEdge(dag.Edge{From: prev, To: id})
			chain = append(chain, id)
			prev = id
		}
		_ = g.AddEdge(dag.Edge{From: prev, To: dst.ID})
		chains[e] = chain
	}
	return chains
}

type idGen struct {
	used map[string]struct{}
}

func newIDGen(nodes []*dag.Node) *idGen {
	m := make(map[string]struct{}, len(nodes)*2)
	for _, n := range nodes {
		m[n.ID] = struct{}{}
	}
	return &idGen{used: m}
}

func (gen *idGen) next(e dag.Edge, row int) string {
	prefix := fmt.Sprintf("_v:%s:%s:%d", e.From, e.To, row)
	id := prefix
	for i := 1; ; i++ {
		if _, exists := gen.used[id]; !exists {
			gen.used[id] = struct{}{}
			return id
		}
		id = fmt.Sprintf("%s#%d", prefix, i)
	}
}
