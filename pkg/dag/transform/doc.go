// Package transform prepares a [dag.DAG] for layered drawing.
//
// # Overview
//
// Content models are cyclic more often than not: an article links to related
// articles, a page lists its subpages, two types reference each other. The
// layout works on layers, so the graph is brought into shape in three steps:
//
//  1. [BreakCycles] reverses a feedback edge set so the graph is acyclic
//  2. [Rank] assigns every node a row ([RankerLongestPath] or [RankerTightTree])
//  3. [Subdivide] splits edges spanning several rows with virtual nodes
//
// After these steps every edge connects consecutive rows and [dag.DAG.Validate]
// succeeds.
//
// # Cycle Breaking
//
// Two heuristics are available. [AcyclicerDFS] reverses the back edges of a
// depth-first search; [AcyclicerGreedy] reverses the edges that point
// backwards in an Eades-Lin-Smyth vertex sequence. Reversal only affects
// ranking: callers keep their own edge list for rendering.
//
// # Usage
//
//	transform.BreakCycles(g, transform.AcyclicerDFS)
//	transform.Rank(g, transform.RankerTightTree)
//	chains := transform.Subdivide(g)
//
// [dag.DAG]: github.com/matzehuels/modelgraph/pkg/dag
package transform
