package server

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/tartampluch/go-lifecalendar/internal/config"
)

// cacheItem stores a rendered document and its metadata for HTTP caching.
type cacheItem struct {
	data         []byte
	etag         string
	lastModified string // RFC1123 format required by HTTP headers
}

func newCacheItem(data []byte, modified time.Time) *cacheItem {
	hash := sha256.Sum256(data)
	return &cacheItem{
		data:         data,
		etag:         fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:])),
		lastModified: modified.UTC().Format(http.TimeFormat),
	}
}

// docCache keeps the most recently served documents, bounded both by entry
// count and by the total size of their bodies.
type docCache struct {
	items    *lru.Cache[string, *cacheItem]
	size     atomic.Int64
	maxBytes int64
}

func newDocCache(entries int, maxBytes int64) *docCache {
	if entries <= 0 {
		entries = config.DefaultDocCacheEntries
	}
	if maxBytes <= 0 {
		maxBytes = config.DefaultDocCacheBytes
	}
	c := &docCache{maxBytes: maxBytes}
	// NewWithEvict only fails on a non-positive size.
	c.items, _ = lru.NewWithEvict(entries, func(key string, item *cacheItem) {
		c.size.Add(-int64(len(item.data)))
		slog.Debug(config.MsgDocEvicted,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyCacheKey, key,
			config.LogKeySizeBytes, len(item.data),
		)
	})
	return c
}

func (c *docCache) get(key string) (*cacheItem, bool) {
	return c.items.Get(key)
}

// add stores item unless another goroutine won the race, in which case the
// earlier item is returned. Documents larger than the whole budget are
// served but not kept.
func (c *docCache) add(key string, item *cacheItem) *cacheItem {
	if int64(len(item.data)) > c.maxBytes {
		return item
	}
	prev, found, _ := c.items.PeekOrAdd(key, item)
	if found {
		return prev
	}
	c.size.Add(int64(len(item.data)))
	for c.size.Load() > c.maxBytes && c.items.Len() > 1 {
		c.items.RemoveOldest()
	}
	return item
}

func (c *docCache) len() int {
	return c.items.Len()
}

func (c *docCache) bytes() int64 {
	return c.size.Load()
}
