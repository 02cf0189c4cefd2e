// Package cache memoizes rendered diagram artifacts.
//
// Parsing and layout are fast enough to redo on every call; what is worth
// keeping is the formatted output (SVG in particular, which goes through
// Graphviz). Entries are keyed by the hash of the diagram text, the output
// format and the module version, so a new release never serves stale
// artifacts.
//
// # Backends
//
//   - [FileCache]: snappy-compressed files under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP API
//   - [NullCache]: caching disabled
//
// Wrap any backend with [Instrument] to report hits and misses through
// pkg/observability.
package cache

import (
	"context"
	"time"

	"github.com/matzehuels/umlgraph/pkg/observability"
)

// Cache stores opaque byte values with an optional time to live.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by backends that can drop every entry.
type Clearer interface {
	Clear(ctx context.Context) error
}

type instrumented struct {
	Cache
	backend string
}

// Instrument reports every Get and Set on c to the registered cache hooks
// under the given backend name.
func Instrument(c Cache, backend string) Cache {
	return &instrumented{Cache: c, backend: backend}
}

func (c *instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.Cache.Get(ctx, key)
	hooks := observability.Cache()
	switch {
	case err != nil:
		hooks.OnCacheError(ctx, c.backend, err)
	case hit:
		hooks.OnCacheHit(ctx, c.backend)
	default:
		hooks.OnCacheMiss(ctx, c.backend)
	}
	return data, hit, err
}

func (c *instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := c.Cache.Set(ctx, key, data, ttl)
	if err != nil {
		observability.Cache().OnCacheError(ctx, c.backend, err)
		return err
	}
	observability.Cache().OnCacheSet(ctx, c.backend, len(data))
	return nil
}

// Clear forwards to the wrapped backend when it supports clearing.
func (c *instrumented) Clear(ctx context.Context) error {
	if cl, ok := c.Cache.(Clearer); ok {
		return cl.Clear(ctx)
	}
	return nil
}
