package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/modelgraph/internal/server"
	mgio "github.com/matzehuels/modelgraph/pkg/io"
)

// serveCommand creates the serve command running the inspect API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr  string
		watch string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve engine sessions over HTTP",
		Long: `Serve engine sessions over HTTP.

Sessions are created with POST /api/sessions from a model in the request
body or a stored snapshot (?snapshot=<env>). With --watch, sessions created
without a body use the watched file and are reseeded whenever it changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if watch != "" {
				// Fail early on an unreadable model.
				if _, err := mgio.ImportDocument(watch); err != nil {
					return err
				}
			}

			ctx := cmd.Context()
			snaps, err := cfg.Snapshot.Open(ctx)
			if err != nil {
				return err
			}
			defer snaps.Close()

			srv := server.New(server.Config{
				Addr:      cfg.Server.Addr,
				Layout:    cfg.Layout,
				Logger:    c.Logger,
				Snapshots: snaps,
				WatchFile: watch,
				Watch:     watch != "",
			})
			printInfo("Listening on %s", StyleLink.Render("http://"+cfg.Server.Addr))
			return srv.Serve(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: server.addr)")
	cmd.Flags().StringVar(&watch, "watch", "", "model file to seed sessions from and watch for changes")

	return cmd
}
