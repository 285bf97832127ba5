package dag

import (
	"cmp"
	"maps"
	"slices"
)

// CountCrossings returns the total number of edge crossings for the given
// row orderings, summed over every pair of consecutive rows. Rows missing
// from orders are treated as empty.
//
//	orders := map[int][]string{
//	    0: {"article", "page"},            // rank 0, left to right
//	    1: {"author", "tag", "_v:page:1"}, // rank 1, including a virtual node
//	}
//	n := dag.CountCrossings(g, orders)
//
// The ordering phase of the layout uses it to keep the best ordering seen
// across barycenter sweeps.
func CountCrossings(g *DAG, orders map[int][]string) int {
	rows := slices.Sorted(maps.Keys(orders))
	total := 0
	for _, r := range rows {
		if lower, ok := orders[r+1]; ok {
			total += CountLayerCrossings(g, orders[r], lower)
		}
	}
	return total
}

// CountLayerCrossings counts crossings between the edges running from upper
// to lower.
//
// Edges (u1,v1) and (u2,v2) cross iff pos(u1) < pos(u2) and pos(v1) > pos(v2),
// so sorting edges by upper position turns the count into an inversion count
// over lower positions, computed with a Fenwick tree in O(E log V).
func CountLayerCrossings(g *DAG, upper, lower []string) int {
	if len(upper) == 0 || len(lower) == 0 {
		return 0
	}
	lowerPos := PosMap(lower)

	type span struct{ top, bottom int }
	var spans []span
	for i, id := range upper {
		for _, child := range g.Children(id) {
			if p, ok := lowerPos[child]; ok {
				spans = append(spans, span{i, p})
			}
		}
	}
	if len(spans) < 2 {
		return 0
	}
	slices.SortFunc(spans, func(a, b span) int {
		if c := cmp.Compare(a.top, b.top); c != 0 {
			return c
		}
		return cmp.Compare(a.bottom, b.bottom)
	})

	tree := make([]int, len(lower)+1)
	seen, crossings := 0, 0
	for _, s := range spans {
		atOrLeft := 0
		for i := s.bottom + 1; i > 0; i -= i & -i {
			atOrLeft += tree[i]
		}
		crossings += seen - atOrLeft
		seen++
		for i := s.bottom + 1; i < len(tree); i += i & -i {
			tree[i]++
		}
	}
	return crossings
}

// CountPairCrossings counts the crossings between edges of left and edges of
// right when left is placed immediately before right. With useParents the
// edges to the row above are considered, otherwise those to the row below.
func CountPairCrossings(g *DAG, left, right string, adjOrder []string, useParents bool) int {
	return CountPairCrossingsWithPos(g, left, right, PosMap(adjOrder), useParents)
}

// CountPairCrossingsWithPos is [CountPairCrossings] with a precomputed
// position map for the adjacent row.
//
// The transposition step of the layout compares the counts for (left, right)
// and (right, left) to decide whether swapping two neighbours helps.
func CountPairCrossingsWithPos(g *DAG, left, right string, adjPos map[string]int, useParents bool) int {
	neighbours := g.Children
	if useParents {
		neighbours = g.Parents
	}

	crossings := 0
	for _, ln := range neighbours(left) {
		lp, ok := adjPos[ln]
		if !ok {
			continue
		}
		for _, rn := range neighbours(right) {
			if rp, ok := adjPos[rn]; ok && lp > rp {
				crossings++
			}
		}
	}
	return crossings
}
