// Package nodelink renders layout frames as Graphviz node-link diagrams.
//
// # Overview
//
// The frame produced by an engine session already carries final positions,
// so the generated DOT pins every node (pos="x,y!") and uses the neato
// engine, which keeps pinned nodes in place and only routes edges. The
// drawing therefore matches the frame one to one.
//
// # Usage
//
//	dot := nodelink.ToDOT(session.Frame(), nodelink.Options{Rows: session.Rows})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// The DOT source can also be rendered with an external Graphviz install:
//
//	neato -Tsvg frame.dot > frame.svg
//
// # Styling
//
// Content types are rounded boxes, snippets are dashed boxes and taxonomies
// are notes. Expanded nodes list their rows below the name. Rich text edges
// are dashed and taxonomy edges dotted.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
