package layout

import (
	"maps"
	"slices"

	"github.com/matzehuels/modelgraph/pkg/dag"
)

const alignRounds = 4

// placement assigns cross-axis centers row by row.
type placement struct {
	g      *dag.DAG
	orders map[int][]string
	rows   []int
	opts   Options
	x      map[string]float64
}

// assignCross returns the cross-axis center of every node, real and virtual.
// Rows are first packed tightly, then repeatedly pulled toward the median of
// their neighbours. Alignments toward parents (UL, UR) finish with the
// downward pass so the final row positions follow the parents.
func assignCross(g *dag.DAG, orders map[int][]string, opts Options) map[string]float64 {
	p := &placement{
		g:      g,
		orders: orders,
		rows:   slices.Sorted(maps.Keys(orders)),
		opts:   opts,
		x:      make(map[string]float64, g.NodeCount()),
	}
	for _, r := range p.rows {
		row := orders[r]
		pos := 0.0
		for i, id := range row {
			if i > 0 {
				pos += p.gap(row[i-1], id)
			}
			p.x[id] = pos
		}
	}

	for range alignRounds {
		if opts.alignToParents() {
			p.align(false)
			p.align(true)
		} else {
			p.align(true)
			p.align(false)
		}
	}
	return p.x
}

// align runs one pass over all rows. With toParents the rows are visited top
// to bottom and aligned to the row above, otherwise bottom to top.
func (p *placement) align(toParents bool) {
	visit := func(r int) {
		row := p.orders[r]
		desired := make([]float64, len(row))
		for i, id := range row {
			nbs := p.g.Children(id)
			if toParents {
				nbs = p.g.Parents(id)
			}
			desired[i] = p.median(id, nbs)
		}
		p.place(row, desired)
	}
	if toParents {
		for _, r := range p.rows {
			visit(r)
		}
		return
	}
	for i := len(p.rows) - 1; i >= 0; i-- {
		visit(p.rows[i])
	}
}

// median returns the median position of nbs, or the current position of id
// when it has none. Even counts pick the lower or upper middle depending on
// the horizontal bias of the alignment.
func (p *placement) median(id string, nbs []string) float64 {
	if len(nbs) == 0 {
		return p.x[id]
	}
	xs := make([]float64, len(nbs))
	for i, nb := range nbs {
		xs[i] = p.x[nb]
	}
	slices.Sort(xs)
	if len(xs)%2 == 1 {
		return xs[len(xs)/2]
	}
	if p.opts.rightMedian() {
		return xs[len(xs)/2]
	}
	return xs[len(xs)/2-1]
}

// place positions row as close as possible (least squares) to desired while
// keeping the minimum gap between neighbours. Substituting y_i = x_i - off_i,
// where off_i is the cumulative minimum gap, turns the constraints into
// y_i <= y_{i+1}, which pool-adjacent-violators solves exactly.
func (p *placement) place(row []string, desired []float64) {
	n := len(row)
	if n == 0 {
		return
	}
	off := make([]float64, n)
	for i := 1; i < n; i++ {
		off[i] = off[i-1] + p.gap(row[i-1], row[i])
	}

	type block struct {
		sum   float64
		count int
		start int
	}
	mean := func(b block) float64 { return b.sum / float64(b.count) }

	blocks := make([]block, 0, n)
	for i := range n {
		blocks = append(blocks, block{sum: desired[i] - off[i], count: 1, start: i})
		for len(blocks) > 1 {
			last, prev := blocks[len(blocks)-1], blocks[len(blocks)-2]
			if mean(prev) <= mean(last) {
				break
			}
			blocks = append(blocks[:len(blocks)-2], block{
				sum:   prev.sum + last.sum,
				count: prev.count + last.count,
				start: prev.start,
			})
		}
	}

	for bi, b := range blocks {
		end := n
		if bi+1 < len(blocks) {
			end = blocks[bi+1].start
		}
		m := mean(b)
		for i := b.start; i < end; i++ {
			p.x[row[i]] = m + off[i]
		}
	}
}

// gap is the minimum center distance between adjacent nodes a and b.
func (p *placement) gap(a, b string) float64 {
	na, _ := p.g.Node(a)
	nb, _ := p.g.Node(b)
	return (p.crossSize(na)+p.crossSize(nb))/2 + (p.sep(na)+p.sep(nb))/2
}

func (p *placement) sep(n *dag.Node) float64 {
	if n.IsVirtual() {
		return p.opts.EdgeSep
	}
	return p.opts.NodeSep
}

func (p *placement) crossSize(n *dag.Node) float64 {
	if p.opts.horizontal() {
		return n.Height
	}
	return n.Width
}

// assignRanks returns the rank-axis center of every row. Each row is as thick
// as its largest node, and consecutive rows are RankSep apart.
func assignRanks(g *dag.DAG, orders map[int][]string, opts Options) map[int]float64 {
	rows := slices.Sorted(maps.Keys(orders))
	centers := make(map[int]float64, len(rows))
	pos, prev := 0.0, 0.0
	for i, r := range rows {
		size := 0.0
		for _, id := range orders[r] {
			n, _ := g.Node(id)
			size = max(size, rankSize(n, opts))
		}
		if i == 0 {
			pos = size / 2
		} else {
			pos += prev/2 + opts.RankSep + size/2
		}
		centers[r] = pos
		prev = size
	}
	return centers
}

func rankSize(n *dag.Node, opts Options) float64 {
	if opts.horizontal() {
		return n.Width
	}
	return n.Height
}
