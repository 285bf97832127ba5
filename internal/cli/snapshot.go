package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/modelgraph/pkg/snapshot"
)

// snapshotCommand creates the snapshot inspection command.
func (c *CLI) snapshotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Inspect stored content model snapshots",
	}

	cmd.AddCommand(c.snapshotListCommand())
	cmd.AddCommand(c.snapshotPathCommand())

	return cmd
}

func (c *CLI) snapshotListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			store, err := cfg.Snapshot.Open(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			infos, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			writeSnapshots(cmd.OutOrStdout(), infos)
			return nil
		},
	}
}

func writeSnapshots(w io.Writer, infos []snapshot.Info) {
	if len(infos) == 0 {
		fmt.Fprintln(w, StyleDim.Render("No snapshots"))
		return
	}
	for _, info := range infos {
		fmt.Fprintf(w, "%s  %s  %s\n",
			StyleHighlight.Render(fmt.Sprintf("%-24s", info.EnvironmentID)),
			info.SavedAt.Local().Format(time.DateTime),
			StyleDim.Render(formatBytes(info.Size)))
	}
}

func (c *CLI) snapshotPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the snapshot directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if cfg.Snapshot.Backend != snapshot.BackendFile {
				return fmt.Errorf("snapshot backend %q has no directory", cfg.Snapshot.Backend)
			}
			dir := cfg.Snapshot.Dir
			if dir == "" {
				if dir, err = snapshot.DefaultDir(); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

func formatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}
