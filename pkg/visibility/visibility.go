// Package visibility tracks which nodes are expanded or isolated and derives
// the visible part of a graph from that state.
//
// State is per session and never persisted. [State.Reset] restores the
// initial values: nothing expanded, no isolation, rich text edges included.
package visibility

import (
	"slices"

	"github.com/matzehuels/modelgraph/pkg/graph"
)

// Mode is the isolation mode.
type Mode string

// Isolation modes.
const (
	ModeNone Mode = ""
	// ModeSingle shows the target node only.
	ModeSingle Mode = "single"
	// ModeRelated shows the target and its direct neighbours.
	ModeRelated Mode = "related"
)

// Isolation restricts the visible graph to one node or its neighbourhood.
type Isolation struct {
	Target string `json:"nodeId"`
	Mode   Mode   `json:"mode"`
}

// Active reports whether an isolation is in effect.
func (i Isolation) Active() bool { return i.Mode != ModeNone }

// State holds the expansion set, the isolation and the rich text flag.
//
// The zero value is not ready for use; use [New].
type State struct {
	expanded        map[string]struct{}
	isolation       Isolation
	includeRichText bool
}

// New returns the initial state.
func New() *State {
	s := &State{}
	s.Reset()
	return s
}

// Reset restores the initial state.
func (s *State) Reset() {
	s.expanded = make(map[string]struct{})
	s.isolation = Isolation{}
	s.includeRichText = true
}

// Toggle flips the expansion of a node.
func (s *State) Toggle(id string) {
	s.SetExpanded(id, !s.IsExpanded(id))
}

// SetExpanded forces the expansion of a node.
func (s *State) SetExpanded(id string, expanded bool) {
	if expanded {
		s.expanded[id] = struct{}{}
	} else {
		delete(s.expanded, id)
	}
}

// IsExpanded reports whether the node is expanded.
func (s *State) IsExpanded(id string) bool {
	_, ok := s.expanded[id]
	return ok
}

// Expanded returns the expanded node ids in ascending order.
func (s *State) Expanded() []string {
	ids := make([]string, 0, len(s.expanded))
	for id := range s.expanded {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// ExpandAll expands every node in ids.
func (s *State) ExpandAll(ids []string) {
	for _, id := range ids {
		s.expanded[id] = struct{}{}
	}
}

// CollapseAll collapses every node in ids.
func (s *State) CollapseAll(ids []string) {
	for _, id := range ids {
		delete(s.expanded, id)
	}
}

// ToggleAll collapses ids when all of them are expanded and expands them
// otherwise.
func (s *State) ToggleAll(ids []string) {
	for _, id := range ids {
		if !s.IsExpanded(id) {
			s.ExpandAll(ids)
			return
		}
	}
	s.CollapseAll(ids)
}

// AllExpanded reports whether every node in ids is expanded. An empty list
// counts as not expanded.
func (s *State) AllExpanded(ids []string) bool {
	if len(ids) == 0 {
		return false
	}
	for _, id := range ids {
		if !s.IsExpanded(id) {
			return false
		}
	}
	return true
}

// IsolateSingle shows only the node and expands it.
func (s *State) IsolateSingle(id string) {
	s.isolation = Isolation{Target: id, Mode: ModeSingle}
	s.SetExpanded(id, true)
}

// IsolateRelated shows only the node and its direct neighbours.
func (s *State) IsolateRelated(id string) {
	s.isolation = Isolation{Target: id, Mode: ModeRelated}
}

// ResetIsolation shows every node again.
func (s *State) ResetIsolation() {
	s.isolation = Isolation{}
}

// Isolation returns the current isolation.
func (s *State) Isolation() Isolation { return s.isolation }

// SetIncludeRichText controls whether rich text derived edges are visible.
func (s *State) SetIncludeRichText(include bool) { s.includeRichText = include }

// IncludeRichText reports whether rich text derived edges are visible.
func (s *State) IncludeRichText() bool { return s.includeRichText }

// Snapshot is a serializable copy of a [State].
type Snapshot struct {
	Expanded        []string   `json:"expandedNodeIds"`
	Isolation       *Isolation `json:"isolation"`
	IncludeRichText bool       `json:"includeRichTextEdges"`
}

// Snapshot returns a copy of the state.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{Expanded: s.Expanded(), IncludeRichText: s.includeRichText}
	if s.isolation.Active() {
		iso := s.isolation
		snap.Isolation = &iso
	}
	return snap
}

// =============================================================================
// Derivation
// =============================================================================

// IsNodeRelated reports whether node is target itself or shares an edge
// with it in either direction. Only direct neighbours count.
func IsNodeRelated(node, target string, edges []graph.Edge) bool {
	if node == target {
		return true
	}
	for _, e := range edges {
		if (e.Source == node && e.Target == target) || (e.Source == target && e.Target == node) {
			return true
		}
	}
	return false
}

// Apply returns a copy of g annotated with the state.
//
// A node is hidden when it was hidden by the builder, when a single isolation
// targets another node, or when a related isolation targets a node it is not
// related to. Expanded is set from the expansion set. Edges are kept when
// both endpoints are visible and they are not rich text derived while rich
// text is excluded.
func (s *State) Apply(g graph.Graph) graph.Graph {
	out := g.Clone()

	candidates := g.Edges
	if !s.includeRichText {
		candidates = nil
		for _, e := range g.Edges {
			if !e.RichText {
				candidates = append(candidates, e)
			}
		}
	}

	visible := make(map[string]bool, len(out.Nodes))
	for i := range out.Nodes {
		n := &out.Nodes[i]
		n.Expanded = s.IsExpanded(n.ID)
		switch s.isolation.Mode {
		case ModeSingle:
			n.Hidden = n.Hidden || n.ID != s.isolation.Target
		case ModeRelated:
			n.Hidden = n.Hidden || !IsNodeRelated(n.ID, s.isolation.Target, candidates)
		}
		visible[n.ID] = !n.Hidden
	}

	out.Edges = out.Edges[:0]
	for _, e := range candidates {
		if visible[e.Source] && visible[e.Target] {
			out.Edges = append(out.Edges, e)
		}
	}
	return out
}
