package store

import "context"

// KeyValueStore is a flat string-keyed store of opaque values.
// Implementations must be safe for concurrent use. Values are stored and
// returned verbatim; callers own the encoding.
type KeyValueStore interface {
	// Get returns the value stored under key.
	// Returns ErrNotFound if the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}
