package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/modelgraph/pkg/graph"
)

// pointsPerInch converts frame units (treated as points) to Graphviz inches.
const pointsPerInch = 72.0

// Options configures DOT generation.
type Options struct {
	// Rows returns the rows of an expanded node. When nil, expanded nodes
	// are drawn with their name only. A session's Rows method fits here.
	Rows func(id string) ([]graph.Row, bool)
}

// ToDOT converts a frame to Graphviz DOT with every node pinned at its
// frame position. Frame y grows downwards; Graphviz y grows upwards, so y
// is flipped against the frame height.
func ToDOT(f graph.Frame, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, fixedsize=true];\n")
	buf.WriteString("  edge [arrowsize=0.7];\n")
	buf.WriteString("\n")

	for _, n := range f.Nodes {
		fmt.Fprintf(&buf, "  %s [%s];\n", quote(n.ID), strings.Join(nodeAttrs(n, f.Height, opts), ", "))
	}

	buf.WriteString("\n")
	for _, e := range f.Edges {
		attrs := edgeAttrs(e)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %s -> %s;\n", quote(e.Source), quote(e.Target))
			continue
		}
		fmt.Fprintf(&buf, "  %s -> %s [%s];\n", quote(e.Source), quote(e.Target), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n graph.Node, height float64, opts Options) []string {
	cx := n.Position.X + n.Width/2
	cy := height - (n.Position.Y + n.Height/2)
	attrs := []string{
		"label=" + quote(label(n, opts)),
		fmt.Sprintf("pos=\"%s,%s!\"", inches(cx), inches(cy)),
		"width=" + inches(n.Width),
		"height=" + inches(n.Height),
	}
	switch n.Kind {
	case graph.KindSnippet:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=\"#f4f0ff\"")
	case graph.KindTaxonomy:
		attrs = append(attrs, "shape=note", "style=filled", "fillcolor=\"#eefaf0\"")
	}
	return attrs
}

func label(n graph.Node, opts Options) string {
	if !n.Expanded || opts.Rows == nil {
		return n.Label
	}
	rows, ok := opts.Rows(n.ID)
	if !ok || len(rows) == 0 {
		return n.Label
	}
	lines := []string{n.Label}
	for _, r := range rows {
		line := r.Name + " : " + r.KindLabel
		if r.Required {
			line += " *"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func edgeAttrs(e graph.Edge) []string {
	switch {
	case e.RichText:
		return []string{"style=dashed"}
	case e.Kind == graph.EdgeTaxonomy:
		return []string{"style=dotted"}
	case e.Kind == graph.EdgeSnippet:
		return []string{"color=\"#7a5af8\""}
	}
	return nil
}

func inches(v float64) string {
	return strconv.FormatFloat(v/pointsPerInch, 'f', 4, 64)
}

var quoter = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

// quote returns s as a DOT string literal. Newlines become centered line
// breaks.
func quote(s string) string {
	return `"` + quoter.Replace(s) + `"`
}

// RenderSVG renders DOT source to SVG with the neato engine.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's svg tag, whose width and height are
// in points, with one sized from the viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
