package transform

import "github.com/matzehuels/modelgraph/pkg/dag"

// Ranker selects the rank assignment used by the layout.
type Ranker string

const (
	// RankerLongestPath places every node one row below its deepest parent.
	// Sources all land in row 0.
	RankerLongestPath Ranker = "longest-path"
	// RankerTightTree starts from the longest-path ranking and pulls nodes
	// down towards their children, shortening edges that leave sources and
	// other early nodes.
	RankerTightTree Ranker = "tight-tree"
)

// Rank assigns rows with the given ranker. g must be acyclic.
func Rank(g *dag.DAG, r Ranker) {
	switch r {
	case RankerLongestPath:
		AssignLayers(g)
	default:
		AssignLayers(g)
		TightenLayers(g)
	}
}

// AssignLayers assigns rows with a longest-path traversal: sources go to row
// 0 and every other node to one plus the maximum row of its parents.
//
// The traversal is Kahn's topological sort, so it runs in O(V + E). Rows of
// nodes on a cycle are not meaningful; run [BreakCycles] first.
func AssignLayers(g *dag.DAG) {
	order := topoOrder(g)
	rows := make(map[string]int, len(order))
	for _, id := range order {
		rows[id] = 0
	}
	for _, id := range order {
		for _, child := range g.Children(id) {
			if r := rows[id] + 1; r > rows[child] {
				rows[child] = r
			}
		}
	}
	g.SetRows(rows)
}

// TightenLayers moves each node with children as far down as its children
// allow (one row above the nearest child), visiting nodes in reverse
// topological order so that chains are pulled down together. Rows are then
// shifted so the smallest row is 0.
func TightenLayers(g *dag.DAG) {
	order := topoOrder(g)
	rows := make(map[string]int, len(order))
	for _, n := range g.Nodes() {
		rows[n.ID] = n.Row
	}

	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		children := g.Children(id)
		if len(children) == 0 {
			continue
		}
		nearest := rows[children[0]]
		for _, c := range children[1:] {
			nearest = min(nearest, rows[c])
		}
		if nearest-1 > rows[id] {
			rows[id] = nearest - 1
		}
	}

	lowest := 0
	for i, id := range order {
		if i == 0 || rows[id] < lowest {
			lowest = rows[id]
		}
	}
	for id := range rows {
		rows[id] -= lowest
	}
	g.SetRows(rows)
}

// topoOrder returns the nodes in Kahn order, seeded by insertion order.
// Nodes on a cycle are appended last in insertion order.
func topoOrder(g *dag.DAG) []string {
	nodes := g.Nodes()
	inDegree := make(map[string]int, len(nodes))
	queue := make([]string, 0, len(nodes))
	for _, n := range nodes {
		d := g.InDegree(n.ID)
		inDegree[n.ID] = d
		if d == 0 {
			queue = append(queue, n.ID)
		}
	}

	order := make([]string, 0, len(nodes))
	seen := make(map[string]bool, len(nodes))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)
		seen[id] = true
		for _, child := range g.Children(id) {
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}
	for _, n := range nodes {
		if !seen[n.ID] {
			order = append(order, n.ID)
		}
	}
	return order
}
