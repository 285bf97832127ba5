// Package render turns engine frames into drawable output.
//
// Frames are already laid out, so renderers only draw: they never move
// nodes. The [nodelink] subpackage produces Graphviz DOT with pinned
// positions and renders it to SVG in-process.
//
//	dot := nodelink.ToDOT(frame, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [nodelink]: github.com/matzehuels/modelgraph/pkg/render/nodelink
package render
