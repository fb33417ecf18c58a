// pkg/cache/cache.go
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/allegro/bigcache/v3"
	"go.uber.org/zap"
)

const (
	DefaultLifeWindow = time.Hour
	DefaultMaxSizeMB  = 16
)

type Config struct {
	LifeWindow time.Duration
	MaxSizeMB  int
}

// LookupCache keeps raw results of transaction lookups keyed by hash and
// encoding. Only final results belong here: a validated transaction never
// changes, so serving it from memory is indistinguishable from asking again.
type LookupCache struct {
	cache  *bigcache.BigCache
	logger *zap.Logger
}

// New creates a cache. Zero config values fall back to the defaults.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (*LookupCache, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.LifeWindow <= 0 {
		cfg.LifeWindow = DefaultLifeWindow
	}
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = DefaultMaxSizeMB
	}

	bigCacheConfig := bigcache.DefaultConfig(cfg.LifeWindow)
	bigCacheConfig.HardMaxCacheSize = cfg.MaxSizeMB
	bigCacheConfig.Shards = 64
	bigCacheConfig.MaxEntriesInWindow = 10_000
	bigCacheConfig.MaxEntrySize = 2048
	bigCacheConfig.CleanWindow = cfg.LifeWindow / 2
	bigCacheConfig.Verbose = false

	c, err := bigcache.New(ctx, bigCacheConfig)
	if err != nil {
		return nil, fmt.Errorf("create lookup cache: %w", err)
	}
	return &LookupCache{cache: c, logger: logger.Named("lookup-cache")}, nil
}

func key(hash string, binary bool) string {
	if binary {
		return strings.ToUpper(hash) + "|binary"
	}
	return strings.ToUpper(hash) + "|json"
}

// Get returns the cached result for hash, if any.
func (c *LookupCache) Get(hash string, binary bool) (json.RawMessage, bool) {
	data, err := c.cache.Get(key(hash, binary))
	if err != nil {
		if !errors.Is(err, bigcache.ErrEntryNotFound) {
			c.logger.Warn("Cache read failed", zap.String("hash", hash), zap.Error(err))
		}
		return nil, false
	}
	return json.RawMessage(data), true
}

// Set stores the result for hash.
func (c *LookupCache) Set(hash string, binary bool, result json.RawMessage) error {
	if err := c.cache.Set(key(hash, binary), result); err != nil {
		return fmt.Errorf("cache %s: %w", hash, err)
	}
	return nil
}

// Len returns the number of cached results.
func (c *LookupCache) Len() int {
	return c.cache.Len()
}

// Hits returns the number of successful reads so far.
func (c *LookupCache) Hits() int64 {
	return c.cache.Stats().Hits
}

func (c *LookupCache) Close() error {
	return c.cache.Close()
}
