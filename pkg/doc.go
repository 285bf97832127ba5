// Package pkg holds the libraries behind modelgraph, which draws the content
// model of a headless CMS environment as an interactive graph.
//
// # Layout
//
//   - [model]: content types, snippets, taxonomies and their elements
//   - [io]: import and export of content model documents and frames
//   - [integrations/kontent]: management API client with caching and retry
//   - [graph] and [view]: builds the graph a view draws from a document
//   - [visibility]: expansion and isolation state over a graph
//   - [layout] with [dag]: layered positioning of the visible nodes
//   - [engine]: a session tying the pieces together, one frame per change
//   - [render/nodelink]: Graphviz DOT and SVG output of a frame
//   - [cache], [snapshot], [config]: storage and configuration
//
// # Data Flow
//
//	Management API or exported JSON
//	         ↓
//	    [model.Document]
//	         ↓
//	    view builder (graph + row data)
//	         ↓
//	    visibility (expanded, isolation, rich text edges)
//	         ↓
//	    layout (rank, order, position)
//	         ↓
//	    [graph.Frame] → JSON, DOT, SVG, terminal, HTTP
//
// # Quick Start
//
//	doc, err := io.ImportDocument("model.json")
//	if err != nil {
//	    return err
//	}
//	s, err := engine.New(doc, engine.WithView(view.Snippet))
//	if err != nil {
//	    return err
//	}
//	s.ExpandAll()
//	frame := s.Frame()
//	dot := nodelink.ToDOT(frame, nodelink.Options{Rows: s.Rows})
package pkg
