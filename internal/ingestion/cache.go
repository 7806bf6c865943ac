package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/mfontes/hspulse/internal/domain/models"
)

// DatasetCache memoizes parsed datasets by source identity (a file path, or
// a content hash for byte sources). Each distinct source is parsed at most
// once: concurrent requests for the same uncached key share a single parse
// via singleflight, while different keys parse independently. There is no
// eviction; sources are small and finite. Construct one per process and
// inject it where datasets are needed.
type DatasetCache struct {
	mu      sync.RWMutex
	entries map[string][]models.TradeRecord
	group   singleflight.Group
}

// NewDatasetCache returns an empty cache.
func NewDatasetCache() *DatasetCache {
	return &DatasetCache{entries: make(map[string][]models.TradeRecord)}
}

// Get returns the dataset for key, parsing it with parse on a miss. The
// cached slice is shared between callers and must be treated as immutable.
func (c *DatasetCache) Get(key string, parse func() ([]models.TradeRecord, error)) ([]models.TradeRecord, error) {
	c.mu.RLock()
	recs, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return recs, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// Re-check under the group: another caller may have stored the
		// entry between the read above and the flight start.
		c.mu.RLock()
		recs, ok := c.entries[key]
		c.mu.RUnlock()
		if ok {
			return recs, nil
		}

		recs, err := parse()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[key] = recs
		c.mu.Unlock()
		return recs, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.TradeRecord), nil
}

// Invalidate removes one source from the cache.
func (c *DatasetCache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Clear drops every cached dataset.
func (c *DatasetCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string][]models.TradeRecord)
	c.mu.Unlock()
}

// Len reports the number of cached sources.
func (c *DatasetCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// ContentKey derives a cache key for an in-memory workbook from its bytes,
// so identical uploads hit the same entry regardless of origin.
func ContentKey(data []byte) string {
	sum := sha256.Sum256(data)
	return "bytes:" + hex.EncodeToString(sum[:])
}
