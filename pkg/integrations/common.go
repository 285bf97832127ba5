package integrations

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/matzehuels/modelgraph/pkg/cache"
)

const httpTimeout = 30 * time.Second

// Errors returned by [Client]. They alias the cache sentinels so retry logic
// and callers agree on identity.
var (
	// ErrNotFound is returned when the resource (or environment) doesn't exist.
	ErrNotFound = cache.ErrNotFound

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = cache.ErrNetwork

	// ErrUnauthorized is returned for 401 and 403 responses.
	ErrUnauthorized = cache.ErrUnauthorized

	// ErrRateLimited is returned for 429 responses.
	ErrRateLimited = cache.ErrRateLimited
)

// RateLimitError carries the server's Retry-After hint.
type RateLimitError struct {
	RetryAfter int // seconds, 0 if unknown
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%v: retry after %d seconds", ErrRateLimited, e.RetryAfter)
	}
	return ErrRateLimited.Error()
}

// Is makes errors.Is(err, ErrRateLimited) hold.
func (e *RateLimitError) Is(target error) bool { return target == ErrRateLimited }

// IsRateLimited reports whether err came from a 429 response.
func IsRateLimited(err error) bool { return errors.Is(err, ErrRateLimited) }

// NewHTTPClient creates an HTTP client with a standard timeout for API requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// URLEncode percent-encodes a string for use in a URL path segment.
func URLEncode(s string) string { return url.PathEscape(s) }
