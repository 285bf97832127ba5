package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/modelgraph/pkg/config"
	mgio "github.com/matzehuels/modelgraph/pkg/io"
	"github.com/matzehuels/modelgraph/pkg/integrations/kontent"
)

type fetchOpts struct {
	environment string
	output      string
	snapshot    bool
	refresh     bool
	noCache     bool
}

// fetchCommand creates the fetch command for downloading a content model.
func (c *CLI) fetchCommand() *cobra.Command {
	var opts fetchOpts

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch an environment's content model from the management API",
		Long: `Fetch an environment's content model from the management API.

Content types, snippets and taxonomies are listed concurrently and written as
one export file. The API key is read from MODELGRAPH_MAPI_KEY or the config
file. Responses are cached; use --refresh to bypass the cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFetch(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.environment, "environment", "e", "", "environment id (default: kontent.environment_id)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: model-visualizer-export-<env>-<time>UTC.json)")
	cmd.Flags().BoolVar(&opts.snapshot, "snapshot", false, "also store the model in the snapshot store")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached responses")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runFetch(ctx context.Context, opts fetchOpts) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	if opts.environment != "" {
		cfg.Kontent.EnvironmentID = opts.environment
	}
	if opts.noCache {
		cfg.Cache.Backend = config.CacheNone
	}

	store, err := cfg.Cache.Open(ctx)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer store.Close()

	kopts := cfg.Kontent.KontentOptions(cfg.Cache)
	kopts.Logger = c.Logger
	client, err := kontent.NewClient(store, kopts)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Fetching content model of %s...", client.EnvironmentID()))
	spinner.Start()
	doc, err := client.FetchDocument(ctx, opts.refresh)
	if err != nil {
		spinner.StopWithError("Fetch failed")
		return err
	}
	spinner.Stop()

	path := opts.output
	if path == "" {
		path = mgio.ExportFilename(client.EnvironmentID(), time.Now())
	}
	if err := mgio.ExportDocument(doc, path); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}

	printSuccess("Fetched %s", StyleHighlight.Render(client.EnvironmentID()))
	printFile(path)
	printDetail("%d content types · %d snippets · %d taxonomies",
		len(doc.ContentTypes), len(doc.Snippets), len(doc.Taxonomies))

	if opts.snapshot {
		snaps, err := cfg.Snapshot.Open(ctx)
		if err != nil {
			return fmt.Errorf("open snapshot store: %w", err)
		}
		defer snaps.Close()
		if err := snaps.Save(ctx, client.EnvironmentID(), doc); err != nil {
			return err
		}
		printSuccess("Saved snapshot")
	}

	printNewline()
	printNextStep("Explore", appName+" explore "+path)
	return nil
}
