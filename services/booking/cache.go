package booking

import (
	"sync"
	"time"

	"horizon/models"
)

type cacheEntry struct {
	trips    []models.TripIndexEntry
	cachedAt time.Time
}

// TripCache is a read-through cache for per-user trip listings: a map from user
// id to {value, timestamp} with a fixed TTL and explicit invalidation. Staleness
// is bounded by the TTL for everyone except the owner, whose own commits
// invalidate the entry immediately.
type TripCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

// NewTripCache builds a cache with the given TTL; zero means five minutes.
func NewTripCache(ttl time.Duration) *TripCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &TripCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

// Get returns the cached listing if present and fresh.
func (c *TripCache) Get(userID string) ([]models.TripIndexEntry, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[userID]
	if !ok {
		return nil, false
	}
	if time.Since(entry.cachedAt) > c.ttl {
		delete(c.entries, userID)
		return nil, false
	}
	return entry.trips, true
}

// Set stores the listing for the user.
func (c *TripCache) Set(userID string, trips []models.TripIndexEntry) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[userID] = cacheEntry{trips: trips, cachedAt: time.Now()}
}

// Invalidate drops the cached listing for one user.
func (c *TripCache) Invalidate(userID string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, userID)
}

// InvalidateAll drops every cached listing.
func (c *TripCache) InvalidateAll() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}
