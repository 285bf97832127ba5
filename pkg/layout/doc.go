// Package layout computes a layered drawing of a content-model graph.
//
// # Pipeline
//
// [Layout] is a pure function of the visible subgraph. Every call runs the
// full pipeline on a fresh [dag.DAG]:
//
//  1. Hidden nodes and edges touching them are dropped
//  2. Nodes are sized: collapsed boxes are NodeWidth × NodeHeight, expanded
//     boxes grow by RowHeight per field row (or per term for taxonomies)
//  3. Cycles are broken by reversing feedback edges (ranking only)
//  4. Nodes are ranked and long edges subdivided with virtual nodes
//  5. Rows are ordered by barycenter sweeps plus adjacent transposition,
//     keeping the ordering with the fewest crossings
//  6. Cross-axis coordinates are assigned by median alignment, solved as an
//     isotonic regression that respects the separation constraints
//  7. Centers are converted to top-left positions shifted to start at 0
//
// The same input always yields the same positions.
//
// # Options
//
// [Options] mirrors the knobs of classic layered layouts: rank direction,
// alignment, ranker, acyclicer and the node, edge and rank separations.
// [Options.Validate] rejects unknown values with an INVALID_LAYOUT error.
//
// [dag.DAG]: github.com/matzehuels/modelgraph/pkg/dag
package layout
