// Package cache stores rendered artifacts and remote listings.
//
// Three backends implement [Cache]:
//
//   - [FileCache]: files below the user cache directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [NullCache]: never stores anything, for --no-cache
//
// Keys come from a [Keyer] so that every backend sees the same key space.
// Wrap a keyer with [NewScopedKeyer] to isolate several compasses sharing one
// Redis database.
package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// Cache is a byte store with per-entry expiry. A zero TTL means the entry
// never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// DefaultDir returns the cache directory used by the CLI,
// $XDG_CACHE_HOME/clevacompass or its platform equivalent.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "clevacompass"), nil
}
