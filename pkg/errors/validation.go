package errors

import (
	"strings"
	"unicode"
)

// ValidateEnvironmentID validates a CMS environment identifier.
//
// Environment IDs end up in URLs, cache keys and snapshot filenames, so the
// rules reject anything that could escape a path segment:
//   - No empty IDs
//   - Maximum length of 128 characters
//   - No control characters or whitespace
//   - No path separators or traversal sequences
func ValidateEnvironmentID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "environment ID cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "environment ID too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "environment ID contains invalid characters")
		}
	}

	if strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return New(ErrCodeInvalidInput, "environment ID cannot contain path components: %q", id)
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
