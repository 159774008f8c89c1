// Package cache holds recent search responses in memory with a bounded
// entry count and a per-entry time to live. Eviction is strictly
// insertion-ordered; hits do not refresh an entry's position or age.
package cache

import (
	"strings"
	"sync"
	"time"

	"site-search/domain"
)

const (
	DefaultTTL        = 5 * time.Minute
	DefaultMaxEntries = 100
)

type entry struct {
	response  domain.SearchResponse
	expiresAt time.Time
}

// ResultCache is safe for concurrent use.
type ResultCache struct {
	mu         sync.Mutex
	entries    map[string]entry
	order      []string
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

func NewResultCache(ttl time.Duration, maxEntries int) *ResultCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &ResultCache{
		entries:    make(map[string]entry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Key derives the cache key for a query and locale. The query part is
// trimmed and lowercased so trivially different spellings share an entry.
func Key(query string, locale domain.Locale) string {
	return strings.ToLower(strings.TrimSpace(query)) + "|" + string(locale)
}

// Get returns the cached response for key, reporting whether a live entry
// was found. Expired entries are removed on access.
func (c *ResultCache) Get(key string) (domain.SearchResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return domain.SearchResponse{}, false
	}
	if c.now().After(e.expiresAt) {
		c.remove(key)
		return domain.SearchResponse{}, false
	}
	return e.response, true
}

// Set stores resp under key. When the cache is full the oldest entry by
// insertion order is evicted. Overwriting an existing key keeps its
// original insertion position but restarts its lifetime.
func (c *ResultCache) Set(key string, resp domain.SearchResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := entry{response: resp, expiresAt: c.now().Add(c.ttl)}
	if _, exists := c.entries[key]; exists {
		c.entries[key] = e
		return
	}
	if len(c.order) >= c.maxEntries {
		c.remove(c.order[0])
	}
	c.entries[key] = e
	c.order = append(c.order, key)
}

func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// remove expects c.mu to be held.
func (c *ResultCache) remove(key string) {
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
