package kontent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/modelgraph/pkg/cache"
	mgerrors "github.com/matzehuels/modelgraph/pkg/errors"
	"github.com/matzehuels/modelgraph/pkg/integrations"
	"github.com/matzehuels/modelgraph/pkg/model"
)

// DefaultBaseURL is the Management API v2 endpoint.
const DefaultBaseURL = "https://manage.kontent.ai/v2"

// DefaultTTL is how long fetched collections stay cached.
const DefaultTTL = time.Hour

// maxPages bounds pagination in case the API keeps returning tokens.
const maxPages = 1000

// Collection names, also used in cache keys.
const (
	CollectionTypes      = "types"
	CollectionSnippets   = "snippets"
	CollectionTaxonomies = "taxonomies"
)

// Options configures [NewClient].
type Options struct {
	EnvironmentID string
	APIKey        string
	BaseURL       string        // defaults to DefaultBaseURL
	TTL           time.Duration // defaults to DefaultTTL
	Keyer         cache.Keyer   // defaults to cache.NewDefaultKeyer()
	Logger        *log.Logger   // defaults to log.Default()
}

// Client lists the content model of one environment.
type Client struct {
	*integrations.Client
	baseURL       string
	environmentID string
	keyer         cache.Keyer
	logger        *log.Logger
}

// NewClient validates opts and creates a client caching into c. A nil cache
// disables caching.
func NewClient(c cache.Cache, opts Options) (*Client, error) {
	if err := mgerrors.ValidateEnvironmentID(opts.EnvironmentID); err != nil {
		return nil, err
	}
	if opts.APIKey == "" {
		return nil, mgerrors.New(mgerrors.ErrCodeInvalidConfig, "management API key is required (set MODELGRAPH_MAPI_KEY)")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if err := mgerrors.ValidateURL(opts.BaseURL); err != nil {
		return nil, err
	}
	if opts.TTL == 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Keyer == nil {
		opts.Keyer = cache.NewDefaultKeyer()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	headers := map[string]string{
		"Authorization": "Bearer " + opts.APIKey,
		"Accept":        "application/json",
	}
	return &Client{
		Client:        integrations.NewClient(c, "", opts.TTL, headers),
		baseURL:       strings.TrimSuffix(opts.BaseURL, "/"),
		environmentID: opts.EnvironmentID,
		keyer:         opts.Keyer,
		logger:        opts.Logger,
	}, nil
}

// EnvironmentID returns the environment the client reads from.
func (c *Client) EnvironmentID() string { return c.environmentID }

// FetchDocument loads types, snippets and taxonomies concurrently. With
// refresh the cache is bypassed.
func (c *Client) FetchDocument(ctx context.Context, refresh bool) (model.Document, error) {
	var doc model.Document
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		doc.ContentTypes, err = c.ContentTypes(ctx, refresh)
		return err
	})
	g.Go(func() (err error) {
		doc.Snippets, err = c.Snippets(ctx, refresh)
		return err
	})
	g.Go(func() (err error) {
		doc.Taxonomies, err = c.Taxonomies(ctx, refresh)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.Document{}, err
	}
	return doc, nil
}

// ContentTypes lists every content type of the environment.
func (c *Client) ContentTypes(ctx context.Context, refresh bool) ([]model.ContentType, error) {
	var out []model.ContentType
	err := c.cached(ctx, CollectionTypes, refresh, &out, func() error {
		out = out[:0]
		return list(ctx, c, CollectionTypes, func(p typesPage) pagination {
			for _, t := range p.Types {
				out = append(out, t.model())
			}
			return p.Pagination
		})
	})
	return out, err
}

// Snippets lists every content type snippet of the environment.
func (c *Client) Snippets(ctx context.Context, refresh bool) ([]model.Snippet, error) {
	var out []model.Snippet
	err := c.cached(ctx, CollectionSnippets, refresh, &out, func() error {
		out = out[:0]
		return list(ctx, c, CollectionSnippets, func(p snippetsPage) pagination {
			for _, s := range p.Snippets {
				out = append(out, s.model())
			}
			return p.Pagination
		})
	})
	return out, err
}

// Taxonomies lists every taxonomy group of the environment.
func (c *Client) Taxonomies(ctx context.Context, refresh bool) ([]model.Taxonomy, error) {
	var out []model.Taxonomy
	err := c.cached(ctx, CollectionTaxonomies, refresh, &out, func() error {
		out = out[:0]
		return list(ctx, c, CollectionTaxonomies, func(p taxonomiesPage) pagination {
			for _, t := range p.Taxonomies {
				out = append(out, t.model())
			}
			return p.Pagination
		})
	})
	return out, err
}

func (c *Client) cached(ctx context.Context, collection string, refresh bool, v any, fetch func() error) error {
	start := time.Now()
	key := c.keyer.CollectionKey(c.environmentID, collection)
	if err := c.Cached(ctx, key, refresh, v, fetch); err != nil {
		return classify(err, collection)
	}
	c.logger.Debug("loaded collection", "environment", c.environmentID, "collection", collection, "duration", time.Since(start))
	return nil
}

// list walks every page of a collection, handing each to page, which returns
// the page's pagination.
func list[P any](ctx context.Context, c *Client, collection string, page func(P) pagination) error {
	url := fmt.Sprintf("%s/projects/%s/%s", c.baseURL, integrations.URLEncode(c.environmentID), collection)
	var headers map[string]string
	for range maxPages {
		var p P
		if err := c.GetWithHeaders(ctx, url, headers, &p); err != nil {
			return err
		}
		token, more := page(p).next()
		if !more {
			return nil
		}
		headers = map[string]string{"x-continuation": token}
	}
	return fmt.Errorf("%s: more than %d pages", collection, maxPages)
}

// classify maps client errors onto error codes.
func classify(err error, collection string) error {
	switch {
	case errors.Is(err, integrations.ErrUnauthorized):
		return mgerrors.Wrap(mgerrors.ErrCodeUnauthorized, err, "list %s: check the management API key", collection)
	case errors.Is(err, integrations.ErrNotFound):
		return mgerrors.Wrap(mgerrors.ErrCodeNotFound, err, "list %s: environment not found", collection)
	case errors.Is(err, integrations.ErrRateLimited):
		return mgerrors.Wrap(mgerrors.ErrCodeRateLimited, err, "list %s", collection)
	case errors.Is(err, integrations.ErrNetwork):
		return mgerrors.Wrap(mgerrors.ErrCodeNetwork, err, "list %s", collection)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return mgerrors.Wrap(mgerrors.ErrCodeInternal, err, "list %s", collection)
	}
}
