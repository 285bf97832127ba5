// Package integrations provides the shared HTTP client for external APIs.
//
// # Client Pattern
//
// API clients embed or hold a [Client], which adds:
//   - default headers (authorization, user agent)
//   - retries with exponential backoff for network failures, 5xx and 429
//     responses (see [cache.Retry])
//   - response caching through any [cache.Cache] backend via [Client.Cached]
//   - HTTP events reported to the registered observability hooks
//
// The management API client lives in the [kontent] subpackage:
//
//	c, err := kontent.NewClient(fileCache, kontent.Options{
//	    EnvironmentID: "my-env",
//	    APIKey:        key,
//	})
//	doc, err := c.FetchDocument(ctx, false)  // false = use cache
//
// [cache.Retry]: github.com/matzehuels/modelgraph/pkg/cache.Retry
// [cache.Cache]: github.com/matzehuels/modelgraph/pkg/cache.Cache
// [kontent]: github.com/matzehuels/modelgraph/pkg/integrations/kontent
package integrations
