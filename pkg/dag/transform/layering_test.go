package transform

import (
	"testing"

	"github.com/matzehuels/modelgraph/pkg/dag"
)

func rowsOf(g *dag.DAG) map[string]int {
	rows := make(map[string]int)
	for _, n := range g.Nodes() {
		rows[n.ID] = n.Row
	}
	return rows
}

func TestAssignLayers(t *testing.T) {
	g := build(t, []string{"a", "b", "c", "d"}, [][2]string{{"a", "b"}, {"b", "c"}, {"a", "c"}, {"d", "c"}})
	AssignLayers(g)

	want := map[string]int{"a": 0, "b": 1, "c": 2, "d": 0}
	for id, row := range want {
		if got := rowsOf(g)[id]; got != row {
			t.Errorf("row(%s) = %d, want %d", id, got, row)
		}
	}
}

func TestTightenLayers(t *testing.T) {
	// d only points at c, so it moves down next to b.
	g := build(t, []string{"a", "b", "c", "d"}, [][2]string{{"a", "b"}, {"b", "c"}, {"d", "c"}})
	Rank(g, RankerTightTree)

	want := map[string]int{"a": 0, "b": 1, "c": 2, "d": 1}
	for id, row := range want {
		if got := rowsOf(g)[id]; got != row {
			t.Errorf("row(%s) = %d, want %d", id, got, row)
		}
	}
}

func TestRankLongestPathKeepsSourcesAtTop(t *testing.T) {
	g := build(t, []string{"a", "b", "c", "d"}, [][2]string{{"a", "b"}, {"b", "c"}, {"d", "c"}})
	Rank(g, RankerLongestPath)

	if got := rowsOf(g)["d"]; got != 0 {
		t.Errorf("row(d) = %d, want 0", got)
	}
}

func TestRankRespectsEdges(t *testing.T) {
	g := build(t,
		[]string{"a", "b", "c", "d", "e"},
		[][2]string{{"a", "b"}, {"a", "e"}, {"b", "c"}, {"c", "d"}, {"e", "d"}},
	)
	for _, r := range []Ranker{RankerLongestPath, RankerTightTree} {
		Rank(g, r)
		rows := rowsOf(g)
		for _, e := range g.Edges() {
			if rows[e.To] <= rows[e.From] {
				t.Errorf("%s: edge %s->%s goes from row %d to %d", r, e.From, e.To, rows[e.From], rows[e.To])
			}
		}
	}
}

func TestSubdivide(t *testing.T) {
	g := build(t, []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}, {"a", "c"}})
	AssignLayers(g)

	chains := Subdivide(g)

	if len(chains) != 1 {
		t.Fatalf("got %d subdivided edges, want 1", len(chains))
	}
	chain := chains[dag.Edge{From: "a", To: "c"}]
	if len(chain) != 1 {
		t.Fatalf("chain = %v, want one virtual node", chain)
	}
	v, ok := g.Node(chain[0])
	if !ok || !v.IsVirtual() || v.Row != 1 || v.MasterID != "a" {
		t.Errorf("virtual node = %+v", v)
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	if g.NodeCount() != 4 || len(g.Edges()) != 4 {
		t.Errorf("nodes=%d edges=%d, want 4/4", g.NodeCount(), len(g.Edges()))
	}
}
