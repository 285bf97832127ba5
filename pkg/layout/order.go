package layout

import (
	"cmp"
	"maps"
	"slices"

	"github.com/matzehuels/modelgraph/pkg/dag"
)

const (
	maxOrderIterations = 24
	maxStaleIterations = 4
	maxTransposePasses = 8
)

// order returns a per-row node ordering with few edge crossings. Rows start in
// insertion order; each iteration runs one barycenter sweep (alternating
// down and up) followed by adjacent transposition, and the ordering with the
// fewest crossings seen is kept.
func order(g *dag.DAG) map[int][]string {
	rows := g.RowIDs()
	cur := make(map[int][]string, len(rows))
	for _, r := range rows {
		cur[r] = dag.NodeIDs(g.NodesInRow(r))
	}

	best := cloneOrders(cur)
	bestCross := dag.CountCrossings(g, best)
	stale := 0
	for i := 0; i < maxOrderIterations && bestCross > 0; i++ {
		if i%2 == 0 {
			sweep(g, cur, rows, true)
		} else {
			sweep(g, cur, rows, false)
		}
		transpose(g, cur, rows)

		if c := dag.CountCrossings(g, cur); c < bestCross {
			best, bestCross = cloneOrders(cur), c
			stale = 0
		} else if stale++; stale >= maxStaleIterations {
			break
		}
	}
	return best
}

// sweep reorders every row by the barycenter of its neighbours in the row
// already fixed: parents when sweeping down, children when sweeping up.
func sweep(g *dag.DAG, orders map[int][]string, rows []int, down bool) {
	if down {
		for _, r := range rows[min(1, len(rows)):] {
			orders[r] = byBarycenter(orders[r], g.Parents, dag.PosMap(orders[r-1]))
		}
		return
	}
	for i := len(rows) - 2; i >= 0; i-- {
		r := rows[i]
		orders[r] = byBarycenter(orders[r], g.Children, dag.PosMap(orders[r+1]))
	}
}

// byBarycenter stably sorts row by mean neighbour position. Nodes without
// neighbours in the fixed row keep their current index as key.
func byBarycenter(row []string, neighbours func(string) []string, fixed map[string]int) []string {
	type keyed struct {
		id  string
		key float64
	}
	ks := make([]keyed, len(row))
	for i, id := range row {
		sum, n := 0.0, 0
		for _, nb := range neighbours(id) {
			if p, ok := fixed[nb]; ok {
				sum += float64(p)
				n++
			}
		}
		key := float64(i)
		if n > 0 {
			key = sum / float64(n)
		}
		ks[i] = keyed{id, key}
	}
	slices.SortStableFunc(ks, func(a, b keyed) int { return cmp.Compare(a.key, b.key) })

	out := make([]string, len(ks))
	for i, k := range ks {
		out[i] = k.id
	}
	return out
}

// transpose swaps adjacent nodes while doing so reduces the crossings
// against both neighbouring rows.
func transpose(g *dag.DAG, orders map[int][]string, rows []int) {
	for range maxTransposePasses {
		improved := false
		for _, r := range rows {
			row := orders[r]
			up := dag.PosMap(orders[r-1])
			down := dag.PosMap(orders[r+1])
			for i := 0; i+1 < len(row); i++ {
				v, w := row[i], row[i+1]
				if pairCrossings(g, w, v, up, down) < pairCrossings(g, v, w, up, down) {
					row[i], row[i+1] = w, v
					improved = true
				}
			}
		}
		if !improved {
			return
		}
	}
}

func pairCrossings(g *dag.DAG, left, right string, up, down map[string]int) int {
	return dag.CountPairCrossingsWithPos(g, left, right, up, true) +
		dag.CountPairCrossingsWithPos(g, left, right, down, false)
}

func cloneOrders(orders map[int][]string) map[int][]string {
	out := maps.Clone(orders)
	for r, ids := range out {
		out[r] = slices.Clone(ids)
	}
	return out
}
