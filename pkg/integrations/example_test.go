package integrations_test

import (
	"errors"
	"fmt"

	"github.com/matzehuels/modelgraph/pkg/integrations"
)

func ExampleURLEncode() {
	fmt.Println(integrations.URLEncode("my env/1"))
	// Output: my%20env%2F1
}

func ExampleRateLimitError() {
	err := error(&integrations.RateLimitError{RetryAfter: 30})
	fmt.Println(err)
	fmt.Println(errors.Is(err, integrations.ErrRateLimited))
	// Output:
	// rate limited: retry after 30 seconds
	// true
}

func Example_errors() {
	fmt.Println("ErrNotFound:", integrations.ErrNotFound)
	fmt.Println("ErrNetwork:", integrations.ErrNetwork)
	fmt.Println("ErrUnauthorized:", integrations.ErrUnauthorized)
	// Output:
	// ErrNotFound: not found
	// ErrNetwork: network error
	// ErrUnauthorized: unauthorized
}
