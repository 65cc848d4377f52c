package core

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/liushen/calheat/internal/contract"
	"github.com/liushen/calheat/schema"
	"golang.org/x/sync/singleflight"
)

// currentCacheVersion defines the version of the cached dataset encoding.
// Bump it whenever the dataset shape or key derivation changes.
const currentCacheVersion = 1

// DatasetCache is the two-tier dataset cache: an in-memory map for the
// process lifetime and an optional durable store written on every put.
// Durable-tier failures never block an in-memory result.
type DatasetCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	store   contract.CacheStore // nil when durable caching is disabled
	group   singleflight.Group
	now     func() time.Time
}

type memoryEntry struct {
	data      *schema.HeatmapDataset
	timestamp time.Time
}

// NewDatasetCache creates a cache with the given freshness window and
// optional durable store.
func NewDatasetCache(ttl time.Duration, store contract.CacheStore) *DatasetCache {
	if ttl <= 0 {
		ttl = contract.DefaultCacheTTL
	}
	return &DatasetCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		store:   store,
		now:     time.Now,
	}
}

// CacheKey derives the deterministic key for a query option set. All fields
// that reach the key make distinct cache entries; identical options always
// produce identical keys. ColorScheme is presentation-only yet deliberately
// part of the key: existing callers rely on scheme changes producing distinct
// entries, so dropping it would change their hit patterns.
func CacheKey(opts schema.QueryOptions) string {
	raw := fmt.Sprintf("%d:%d:%s:%s:%t:%s:%t:%s:%s",
		opts.RangeStart.Unix(),
		opts.RangeEnd.Unix(),
		opts.Metric,
		opts.ColorScheme,
		opts.IncludeMerges,
		opts.DateSource,
		opts.FilterByAuthor,
		opts.AuthorEmail,
		opts.AuthorName,
	)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(raw)))
}

// Get returns a fresh cached dataset for the options, or nil on a miss.
// Expired in-memory entries are removed; a durable hit is promoted into the
// memory tier.
func (c *DatasetCache) Get(opts schema.QueryOptions) *schema.HeatmapDataset {
	key := CacheKey(opts)

	c.mu.Lock()
	if entry, ok := c.entries[key]; ok {
		if c.now().Sub(entry.timestamp) <= c.ttl {
			c.mu.Unlock()
			return entry.data
		}
		delete(c.entries, key)
	}
	c.mu.Unlock()

	return c.getDurable(key)
}

// getDurable checks the durable tier for a fresh, version-matching entry.
func (c *DatasetCache) getDurable(key string) *schema.HeatmapDataset {
	if c.store == nil {
		return nil
	}
	data, version, ts, err := c.store.Get(key)
	if err != nil {
		return nil
	}
	if version != currentCacheVersion {
		return nil
	}
	if c.now().Sub(time.Unix(ts, 0)) > c.ttl {
		return nil
	}
	var ds schema.HeatmapDataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil
	}

	c.mu.Lock()
	c.entries[key] = memoryEntry{data: &ds, timestamp: time.Unix(ts, 0)}
	c.mu.Unlock()
	return &ds
}

// Put stores a dataset in both tiers. The durable write is best-effort.
func (c *DatasetCache) Put(opts schema.QueryOptions, ds *schema.HeatmapDataset) {
	key := CacheKey(opts)
	stamp := c.now()

	c.mu.Lock()
	c.entries[key] = memoryEntry{data: ds, timestamp: stamp}
	c.mu.Unlock()

	if c.store == nil {
		return
	}
	data, err := json.Marshal(ds)
	if err != nil {
		contract.LogWarn("could not encode dataset for durable cache", err)
		return
	}
	if err := c.store.Set(key, data, currentCacheVersion, stamp.Unix()); err != nil {
		contract.LogWarn("durable cache write failed", err)
	}
}

// InvalidateAll drops both tiers.
func (c *DatasetCache) InvalidateAll() error {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()

	if c.store == nil {
		return nil
	}
	return c.store.Clear()
}

// DoOnce collapses concurrent computations for the same key into a single
// flight; every concurrent caller receives the one computed dataset.
func (c *DatasetCache) DoOnce(key string, fn func() (*schema.HeatmapDataset, error)) (*schema.HeatmapDataset, error) {
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		return nil, err
	}
	return v.(*schema.HeatmapDataset), nil
}
