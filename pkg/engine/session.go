// Package engine ties the content model, views, visibility and layout into a
// single interactive session.
//
// A [Session] owns a document, the selected view and its visibility state.
// Every mutator is a state transition followed by a full synchronous
// recomputation, after which [Session.Frame] returns the new positioned
// output:
//
//	s, err := engine.New(doc, engine.WithView(view.Snippet))
//	if err != nil {
//	    return err
//	}
//	s.ToggleNode("article")
//	frame := s.Frame()
//
// Sessions are not safe for concurrent use; callers that share one (such as
// the HTTP server) must serialize access.
package engine

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/modelgraph/pkg/graph"
	"github.com/matzehuels/modelgraph/pkg/layout"
	"github.com/matzehuels/modelgraph/pkg/model"
	"github.com/matzehuels/modelgraph/pkg/observability"
	"github.com/matzehuels/modelgraph/pkg/view"
	"github.com/matzehuels/modelgraph/pkg/visibility"
)

// Option configures a [Session].
type Option func(*options)

type options struct {
	view   view.ID
	layout layout.Options
	logger *log.Logger
}

// WithView selects the initial view. Defaults to [view.Default].
func WithView(id view.ID) Option {
	return func(o *options) { o.view = id }
}

// WithLayout sets the layout options. Zero fields take layout defaults.
func WithLayout(opts layout.Options) Option {
	return func(o *options) { o.layout = opts }
}

// WithLogger sets the logger used for debug output about rebuilds and
// layout passes.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Session is the state of one visualization.
type Session struct {
	doc    model.Document
	props  view.Props
	view   view.Info
	state  *visibility.State
	layout layout.Options
	logger *log.Logger

	// built is the view graph with rich text edges always included; the
	// visibility state decides whether they show.
	built graph.Graph
	// current is built annotated with the state and laid out.
	current graph.Graph
	frame   graph.Frame
}

// New creates a session over doc. It fails with INVALID_VIEW for an unknown
// view and INVALID_LAYOUT for invalid layout options.
func New(doc model.Document, opts ...Option) (*Session, error) {
	o := options{view: view.Default}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.Default()
	}
	if err := o.layout.Validate(); err != nil {
		return nil, err
	}
	info, err := view.Lookup(o.view)
	if err != nil {
		return nil, err
	}

	s := &Session{
		doc:    doc,
		view:   info,
		state:  visibility.New(),
		layout: o.layout,
		logger: o.logger,
	}
	s.rebuild()
	return s, nil
}

// =============================================================================
// Visibility Operations
// =============================================================================

// ToggleNode flips the expansion of a node.
func (s *Session) ToggleNode(id string) {
	s.state.Toggle(id)
	s.recompute()
}

// SetExpanded forces the expansion of a node.
func (s *Session) SetExpanded(id string, expanded bool) {
	s.state.SetExpanded(id, expanded)
	s.recompute()
}

// ExpandAll expands every visible node. Nodes hidden by the view or by
// isolation keep their state.
func (s *Session) ExpandAll() {
	s.state.ExpandAll(s.placedIDs())
	s.recompute()
}

// CollapseAll collapses every visible node.
func (s *Session) CollapseAll() {
	s.state.CollapseAll(s.placedIDs())
	s.recompute()
}

// ToggleAll collapses every visible node when all of them are expanded and
// expands them otherwise.
func (s *Session) ToggleAll() {
	s.state.ToggleAll(s.placedIDs())
	s.recompute()
}

// placedIDs returns the ids of the nodes in the current frame.
func (s *Session) placedIDs() []string {
	ids := make([]string, len(s.frame.Nodes))
	for i, n := range s.frame.Nodes {
		ids[i] = n.ID
	}
	return ids
}

// IsolateSingle shows only the given node, expanded.
func (s *Session) IsolateSingle(id string) {
	s.state.IsolateSingle(id)
	s.recompute()
}

// IsolateRelated shows the given node and its direct neighbours.
func (s *Session) IsolateRelated(id string) {
	s.state.IsolateRelated(id)
	s.recompute()
}

// ResetIsolation clears any isolation.
func (s *Session) ResetIsolation() {
	s.state.ResetIsolation()
	s.recompute()
}

// Reset clears isolation and collapses every node of the view, including
// nodes the view hides. The rich text setting is kept.
func (s *Session) Reset() {
	s.state.ResetIsolation()
	s.state.CollapseAll(s.built.NodeIDs())
	s.recompute()
}

// SetIncludeRichText shows or hides rich text derived edges.
func (s *Session) SetIncludeRichText(include bool) {
	s.state.SetIncludeRichText(include)
	s.recompute()
}

// ToggleRichText flips the rich text edge setting.
func (s *Session) ToggleRichText() {
	s.SetIncludeRichText(!s.state.IncludeRichText())
}

// =============================================================================
// View and Document
// =============================================================================

// SwitchView selects another view. The visibility state is reset and the
// graph rebuilt, even when id is the current view.
func (s *Session) SwitchView(id view.ID) error {
	info, err := view.Lookup(id)
	if err != nil {
		return err
	}
	s.view = info
	s.state.Reset()
	s.rebuild()
	return nil
}

// Reseed replaces the document and rebuilds the current view. The
// visibility state is kept; ids that no longer exist simply match nothing.
func (s *Session) Reseed(doc model.Document) {
	s.doc = doc
	s.rebuild()
}

// =============================================================================
// Getters
// =============================================================================

// Frame returns the output of the last recomputation.
func (s *Session) Frame() graph.Frame { return s.frame }

// View returns the selected view.
func (s *Session) View() view.Info { return s.view }

// State returns a copy of the visibility state.
func (s *Session) State() visibility.Snapshot { return s.state.Snapshot() }

// Graph returns every node of the current view, hidden ones included, with
// visibility applied and visible nodes positioned.
func (s *Session) Graph() graph.Graph { return s.current }

// Document returns the document the session was seeded with.
func (s *Session) Document() model.Document { return s.doc }

// Layout returns the effective layout options.
func (s *Session) Layout() layout.Options { return s.layout }

// Rows returns the row descriptors of a node in the current view.
func (s *Session) Rows(id string) ([]graph.Row, bool) {
	n, ok := s.built.Node(id)
	if !ok {
		return nil, false
	}
	return graph.Rows(n, s.doc.Snippets), true
}

// SidebarItems returns the sidebar entries of the current view.
func (s *Session) SidebarItems() []view.Item {
	return s.view.Renderer.SidebarItems(s.props)
}

// =============================================================================
// Recomputation
// =============================================================================

func (s *Session) rebuild() {
	start := time.Now()
	s.props = view.NewProps(s.doc, true)
	s.built = view.Build(s.view.Renderer, s.props)
	elapsed := time.Since(start)

	s.logger.Debug("built view graph",
		"view", s.view.ID,
		"nodes", len(s.built.Nodes),
		"edges", len(s.built.Edges),
		"duration", elapsed)
	observability.Engine().OnBuild(string(s.view.ID), len(s.built.Nodes), len(s.built.Edges), elapsed)

	s.recompute()
}

func (s *Session) recompute() {
	start := time.Now()
	g := s.state.Apply(s.built)
	placed, err := layout.Layout(g.Nodes, g.Edges, s.layout)
	if err != nil {
		// Options are validated in New, so this is a broken layering
		// invariant; keep the previous frame.
		s.logger.Error("layout failed", "view", s.view.ID, "err", err)
		s.current = g
		return
	}

	byID := make(map[string]graph.Node, len(placed))
	for _, n := range placed {
		byID[n.ID] = n
	}
	for i, n := range g.Nodes {
		if p, ok := byID[n.ID]; ok {
			g.Nodes[i] = p
		}
	}

	w, h := graph.Extent(placed)
	s.current = g
	s.frame = graph.Frame{
		View:   string(s.view.ID),
		Nodes:  placed,
		Edges:  g.Edges,
		Width:  w,
		Height: h,
	}
	elapsed := time.Since(start)

	s.logger.Debug("laid out frame",
		"view", s.view.ID,
		"nodes", len(placed),
		"edges", len(g.Edges),
		"duration", elapsed)
	observability.Engine().OnLayout(string(s.view.ID), len(placed), elapsed)
}
