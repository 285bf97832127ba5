// Package dag provides the layered graph structure behind the modelgraph
// layout engine.
//
// # Overview
//
// The layout follows the classic layered ("Sugiyama") approach: nodes are
// assigned to rows, ordered within their row to reduce crossings, and only
// then given coordinates. [DAG] is the data structure those phases share. It
// keeps adjacency lists in both directions, an index of nodes per row, and
// the insertion order of nodes and edges so results are reproducible for the
// same input.
//
// # Basic Usage
//
//	g := dag.New()
//	g.AddNode(dag.Node{ID: "article", Width: 172, Height: 76})
//	g.AddNode(dag.Node{ID: "author", Width: 172, Height: 76})
//	g.AddEdge(dag.Edge{From: "article", To: "author"})
//
// Rows are assigned by the [transform] subpackage, which also breaks cycles
// and subdivides long edges with [NodeKindVirtual] nodes. After those steps
// [DAG.Validate] confirms every edge connects consecutive rows.
//
// # Edge Crossings
//
// [CountCrossings] and [CountLayerCrossings] count crossings between
// adjacent rows with a Fenwick tree in O(E log V). [CountPairCrossingsWithPos]
// answers the local question used by adjacent transposition.
//
// # Concurrency
//
// A DAG is not safe for concurrent mutation. The layout builds a fresh graph
// for every pass, so no sharing happens in practice.
//
// [transform]: github.com/matzehuels/modelgraph/pkg/dag/transform
package dag
