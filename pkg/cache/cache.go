// Package cache stores management API responses between runs.
//
// Three backends implement [Cache]:
//   - [FileCache]: one JSON file per key under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance for long running servers
//   - [NullCache]: stores nothing, used when caching is disabled
//
// Wrap any backend with [Instrument] to report hits, misses and writes to
// the registered [observability.CacheHooks].
//
// Keys come from a [Keyer] so callers never build them by hand:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.CollectionKey("my-env", "types")  // "mapi:my-env:types"
//
// [observability.CacheHooks]: github.com/matzehuels/modelgraph/pkg/observability.CacheHooks
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/modelgraph/pkg/observability"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value stored under key. A missing or expired entry is
	// a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// =============================================================================
// Keys
// =============================================================================

// Keyer builds cache keys.
type Keyer interface {
	// HTTPKey is the key of a raw HTTP response within a namespace.
	HTTPKey(namespace, key string) string

	// CollectionKey is the key of one collection (types, snippets or
	// taxonomies) fetched from an environment.
	CollectionKey(environmentID, collection string) string
}

// DefaultKeyer builds readable, unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a [DefaultKeyer].
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// HTTPKey returns "http:<namespace>:<key>".
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return fmt.Sprintf("http:%s:%s", namespace, key)
}

// CollectionKey returns "mapi:<environment>:<collection>".
func (DefaultKeyer) CollectionKey(environmentID, collection string) string {
	return fmt.Sprintf("mapi:%s:%s", environmentID, collection)
}

// keyType is the first segment of a key, used to label hook events.
func keyType(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}

// =============================================================================
// Null Cache
// =============================================================================

// NullCache is a no-op cache that never stores anything.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache { return NullCache{} }

// Get always returns a miss.
func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set does nothing.
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Delete does nothing.
func (NullCache) Delete(context.Context, string) error { return nil }

// Close does nothing.
func (NullCache) Close() error { return nil }

// =============================================================================
// Instrumentation
// =============================================================================

// Instrument wraps c so every Get and Set is reported to the registered
// cache hooks, labelled with the first segment of the key.
func Instrument(c Cache) Cache {
	if c == nil {
		c = NewNullCache()
	}
	return instrumented{Cache: c}
}

type instrumented struct{ Cache }

func (c instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := c.Cache.Get(ctx, key)
	if err == nil {
		if ok {
			observability.Cache().OnCacheHit(ctx, keyType(key))
		} else {
			observability.Cache().OnCacheMiss(ctx, keyType(key))
		}
	}
	return data, ok, err
}

func (c instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.Cache.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, keyType(key), len(data))
	return nil
}

var (
	_ Cache = NullCache{}
	_ Cache = instrumented{}
)
