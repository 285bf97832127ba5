package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	mgio "github.com/matzehuels/modelgraph/pkg/io"
)

// layoutCommand creates the layout command for computing frames.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		flags  sessionFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [model.json]",
		Short: "Lay out a content model and write the frame as JSON",
		Long: `Lay out a content model and write the frame as JSON.

The input is an exported content model (see 'fetch'). The output frame holds
the visible nodes with their positions and sizes, the visible edges and the
extent of the drawing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(args[0], output, &flags)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.frame.json)")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runLayout(input, output string, flags *sessionFlags) error {
	doc, err := mgio.ImportDocument(input)
	if err != nil {
		return fmt.Errorf("load model %s: %w", input, err)
	}

	prog := newProgress(c.Logger)
	s, err := c.newSession(doc, flags)
	if err != nil {
		return err
	}
	frame := s.Frame()
	prog.done(fmt.Sprintf("Laid out %d nodes", len(frame.Nodes)))

	path := outputPath(input, output, ".frame.json")
	if err := mgio.ExportFrame(frame, path); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}

	printSuccess("Layout complete")
	printFile(path)
	printStats(len(frame.Nodes), len(frame.Edges), frame.Width, frame.Height)
	printNewline()
	printNextStep("Render", appName+" render "+input)

	return nil
}
