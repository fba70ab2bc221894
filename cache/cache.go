// Package cache provides a small file-backed cache for HTTP responses with
// ETag revalidation and TTL-based expiration.
package cache

import (
	"encoding/json"
	"time"
)

// Entry is one cached response with its metadata.
type Entry struct {
	ETag      string          `json:"etag,omitempty"`
	FetchedAt time.Time       `json:"fetched_at"`
	Body      json.RawMessage `json:"body"`
}

// Cache is the surface the API clients consume.
type Cache interface {
	// Read retrieves an entry by key. The boolean reports whether the entry
	// is fresh within maxAge; an expired entry is still returned so callers
	// can revalidate with its ETag.
	Read(key string, maxAge time.Duration) (*Entry, bool)

	// Write stores an entry, stamping its fetch time.
	Write(key string, entry *Entry) error

	// KeyFor derives a stable key from a request path and its parameters.
	KeyFor(path string, params map[string]string) string
}
