package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/modelgraph/pkg/errors"
	mgio "github.com/matzehuels/modelgraph/pkg/io"
	"github.com/matzehuels/modelgraph/pkg/render/nodelink"
)

// Render output formats.
const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// renderCommand creates the render command for drawing content models.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output string
		format string
		flags  sessionFlags
	)

	cmd := &cobra.Command{
		Use:   "render [model.json]",
		Short: "Render a content model as Graphviz DOT or SVG",
		Long: `Render a content model as Graphviz DOT or SVG.

Nodes are pinned at the positions computed by the layout engine, so the
drawing matches 'layout' output. Expanded nodes list their elements.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], output, format, &flags)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", formatSVG, "output format: svg, dot")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input, output, format string, flags *sessionFlags) error {
	if format != formatDOT && format != formatSVG {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (must be one of: svg, dot)", format)
	}

	doc, err := mgio.ImportDocument(input)
	if err != nil {
		return fmt.Errorf("load model %s: %w", input, err)
	}
	s, err := c.newSession(doc, flags)
	if err != nil {
		return err
	}

	frame := s.Frame()
	data := []byte(nodelink.ToDOT(frame, nodelink.Options{Rows: s.Rows}))
	if format == formatSVG {
		prog := newProgress(c.Logger)
		if data, err = nodelink.RenderSVG(ctx, string(data)); err != nil {
			return fmt.Errorf("render svg: %w", err)
		}
		prog.done("Rendered SVG")
	}

	path := outputPath(input, output, "."+format)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}

	printSuccess("Rendered %s view", s.View().ID)
	printFile(path)
	printStats(len(frame.Nodes), len(frame.Edges), frame.Width, frame.Height)
	return nil
}
