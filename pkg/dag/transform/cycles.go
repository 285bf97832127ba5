package transform

import "github.com/matzehuels/modelgraph/pkg/dag"

// Acyclicer selects the feedback edge heuristic used by [BreakCycles].
type Acyclicer string

const (
	// AcyclicerDFS reverses the back edges found by a depth-first search
	// started from the sources in insertion order.
	AcyclicerDFS Acyclicer = "dfs"
	// AcyclicerGreedy uses the Eades-Lin-Smyth heuristic, which tends to
	// reverse fewer edges on dense cyclic graphs.
	AcyclicerGreedy Acyclicer = "greedy"
)

// BreakCycles makes g acyclic by reversing a set of feedback edges and
// returns the edges as they were before reversal.
//
// A reversed edge that would duplicate an existing edge is dropped instead,
// as are self loops.
// Both heuristics are deterministic for a given insertion order.
func BreakCycles(g *dag.DAG, strategy Acyclicer) []dag.Edge {
	var feedback []dag.Edge
	switch strategy {
	case AcyclicerGreedy:
		feedback = greedyFeedback(g)
	default:
		feedback = dfsFeedback(g)
	}

	for _, e := range feedback {
		g.RemoveEdge(e.From, e.To)
		if e.From != e.To && !g.HasEdge(e.To, e.From) {
			_ = g.AddEdge(dag.Edge{From: e.To, To: e.From})
		}
	}
	return feedback
}

func dfsFeedback(g *dag.DAG) []dag.Edge {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, g.NodeCount())
	var back []dag.Edge

	var visit func(id string)
	visit = func(id string) {
		color[id] = gray
		for _, child := range g.Children(id) {
			switch color[child] {
			case white:
				visit(child)
			case gray:
				back = append(back, dag.Edge{From: id, To: child})
			}
		}
		color[id] = black
	}

	for _, n := range g.Sources() {
		if color[n.ID] == white {
			visit(n.ID)
		}
	}
	for _, n := range g.Nodes() {
		if color[n.ID] == white {
			visit(n.ID)
		}
	}
	return back
}

// greedyFeedback computes a vertex sequence by repeatedly peeling sinks to
// the back and sources to the front, otherwise taking the node with the
// largest out-degree minus in-degree. Edges pointing backwards in the
// sequence form the feedback set.
func greedyFeedback(g *dag.DAG) []dag.Edge {
	nodes := g.Nodes()
	removed := make(map[string]bool, len(nodes))
	in := make(map[string]int, len(nodes))
	out := make(map[string]int, len(nodes))
	for _, n := range nodes {
		in[n.ID] = g.InDegree(n.ID)
		out[n.ID] = g.OutDegree(n.ID)
	}

	take := func(id string) {
		removed[id] = true
		for _, c := range g.Children(id) {
			in[c]--
		}
		for _, p := range g.Parents(id) {
			out[p]--
		}
	}

	var front, back []string
	for remaining := len(nodes); remaining > 0; {
		progressed := false
		for _, n := range nodes {
			if !removed[n.ID] && out[n.ID] == 0 {
				take(n.ID)
				back = append(back, n.ID)
				remaining--
				progressed = true
			}
		}
		for _, n := range nodes {
			if !removed[n.ID] && in[n.ID] == 0 {
				take(n.ID)
				front = append(front, n.ID)
				remaining--
				progressed = true
			}
		}
		if progressed || remaining == 0 {
			continue
		}

		best, bestDelta := "", 0
		for _, n := range nodes {
			if removed[n.ID] {
				continue
			}
			if d := out[n.ID] - in[n.ID]; best == "" || d > bestDelta {
				best, bestDelta = n.ID, d
			}
		}
		take(best)
		front = append(front, best)
		remaining--
	}

	pos := make(map[string]int, len(nodes))
	for i, id := range front {
		pos[id] = i
	}
	for i := range back {
		pos[back[len(back)-1-i]] = len(front) + i
	}

	var feedback []dag.Edge
	for _, e := range g.Edges() {
		if pos[e.From] > pos[e.To] {
			feedback = append(feedback, e)
		}
	}
	return feedback
}
