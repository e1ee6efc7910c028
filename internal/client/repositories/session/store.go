// Package session persists the durable session record — the two-key form of
// the authenticated session that survives application restarts. The store is
// treated as unreliable: every operation may fail, and callers degrade
// gracefully instead of crashing.
package session

import "context"

// Store is a key-value store for the durable session record.
//
// Get returns (nil, nil) when the key is absent, following the local
// repository convention used throughout the client.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error

	// Replace atomically installs the given keys in one operation, so a
	// crash mid-write cannot leave a half-formed record behind.
	Replace(ctx context.Context, values map[string][]byte) error

	// Clear wipes every stored key.
	Clear(ctx context.Context) error
}
