// Package cache provides pluggable storage for resolved grids and rendered
// artifacts.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under the user cache directory (CLI)
//   - [RedisCache]: shared cache for multiple server instances
//   - [NullCache]: disables caching
//
// # Keys
//
// Keys are built by a [Keyer] from a hash of the grid document and the
// options that affect the output, so any change to the tracks, viewport or
// render settings produces a new key:
//
//	k := cache.NewDefaultKeyer()
//	gridKey := k.GridKey(docHash, cache.GridKeyOpts{Width: 800, Height: 600})
//	svgKey := k.ArtifactKey(gridHash, cache.ArtifactKeyOpts{Format: "svg", Style: "simple"})
//
// Use [NewScopedKeyer] to isolate tenants that share one backend.
package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiration.
type Cache interface {
	// Get returns the stored value and true, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Default time-to-live values per entry kind.
const (
	TTLGrid     = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// AppName names the cache directory.
const AppName = "stackgrid"

// DefaultDir returns the cache directory: $XDG_CACHE_HOME/stackgrid, or
// ~/.cache/stackgrid when XDG_CACHE_HOME is unset.
func DefaultDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}
